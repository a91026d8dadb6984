package models

import (
	"strings"

	"github.com/envelope-zero/financisto2bluecoins/internal/bluecoins"
	"github.com/envelope-zero/financisto2bluecoins/internal/importer"
)

type MigrationStatus string

const (
	MigrationSuccess MigrationStatus = "SUCCESS"
	MigrationFailed  MigrationStatus = "FAILED"
)

// Migration is the log entry of a migration run.
type Migration struct {
	DefaultModel
	Filename      string          `json:"filename" example:"20240601_120000_000.backup"`                                       // Name of the backup file
	Checksum      string          `json:"checksum" example:"dbac4a4ba50e42b6e04b43c2c9b3619e3668dc0a8caf050b584bdafaebee1787"` // SHA256 of the backup file
	Timezone      string          `json:"timezone" example:"Asia/Taipei"`                                                      // Time zone dates were written in
	Status        MigrationStatus `json:"status" example:"SUCCESS"`                                                            // Status of the migration
	Error         string          `json:"error" example:"could not parse backup: not a valid Financisto backup"`               // Error message for failed migrations
	BackupVersion string          `json:"backupVersion" example:"1.7.1"`                                                       // Financisto version that created the backup

	Statements        int `json:"statements" example:"2483"`     // Number of statements generated
	Accounts          int `json:"accounts" example:"12"`         // Number of accounts migrated
	ParentCategories  int `json:"parentCategories" example:"14"` // Number of parent categories
	ChildCategories   int `json:"childCategories" example:"87"`  // Number of child categories
	Items             int `json:"items" example:"431"`           // Number of items created for transactions
	Transactions      int `json:"transactions" example:"1802"`   // Number of transaction rows
	Collisions        int `json:"collisions" example:"3"`        // Transactions that could not use their time as ID
	Skipped           int `json:"skipped" example:"2"`           // Templates and split parts without parent
	BalanceMismatches int `json:"balanceMismatches" example:"0"` // Accounts with a balance different from Financisto
	SimilarItems      int `json:"similarItems" example:"5"`      // Pairs of items that are probably typos

	Output string `json:"-"` // Generated SQL
}

// NewMigration creates the log entry for a migration run.
func NewMigration(filename, timezone string, result importer.Result, err error) Migration {
	m := Migration{
		Filename:      filename,
		Checksum:      result.Checksum,
		Timezone:      timezone,
		Status:        MigrationSuccess,
		BackupVersion: result.Version(),
	}

	if err != nil {
		m.Status = MigrationFailed
		m.Error = err.Error()
		return m
	}

	summary := result.Summary
	stats := summary.Transactions

	m.Statements = len(result.Statements)
	m.Accounts = summary.Accounts
	m.ParentCategories = summary.ParentCategories
	m.ChildCategories = summary.ChildCategories
	m.Items = summary.Items
	m.Transactions = stats.Simple + 2*stats.Transfers + stats.SplitChildren
	m.Collisions = stats.Collisions
	m.Skipped = stats.Templates + stats.Orphans
	m.SimilarItems = len(summary.SimilarItems)

	for _, b := range summary.Balances {
		if !b.Matches() {
			m.BalanceMismatches++
		}
	}

	var output strings.Builder
	_ = bluecoins.Write(&output, result.Statements)
	m.Output = output.String()

	return m
}
