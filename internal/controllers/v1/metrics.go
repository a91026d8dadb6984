package v1

import (
	"github.com/envelope-zero/financisto2bluecoins/internal/models"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the Prometheus collectors of the v1 API.
var Metrics = []prometheus.Collector{
	migrationsTotal,
	statementsTotal,
}

var migrationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "migrations_total",
		Help: "How many migrations were run, partitioned by status.",
	},
	[]string{"status"},
)

var statementsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "migration_statements_total",
		Help: "How many SQL statements were generated by successful migrations.",
	},
)

func observe(migration models.Migration) {
	migrationsTotal.WithLabelValues(string(migration.Status)).Inc()
	statementsTotal.Add(float64(migration.Statements))
}
