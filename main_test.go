package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/envelope-zero/financisto2bluecoins/internal/config"
	"github.com/envelope-zero/financisto2bluecoins/internal/importer/parser/financisto"
	"github.com/envelope-zero/financisto2bluecoins/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.Config {
	cfg, err := config.Load(config.Flags("migrate"))
	require.Nil(t, err)
	cfg.Timezone = "UTC"
	return cfg
}

func TestRunMigrate(t *testing.T) {
	cfg := testConfig(t)
	output := filepath.Join(t.TempDir(), "out", "bluecoins.sql")

	err := runMigrate(context.Background(), cfg, []string{"testdata/financisto/sample.backup", output})
	require.Nil(t, err)

	content, err := os.ReadFile(output)
	require.Nil(t, err)

	statements := strings.Split(string(content), "\n")
	assert.Len(t, statements, 32)
	assert.True(t, strings.HasPrefix(statements[0], `INSERT INTO "ACCOUNTSTABLE"`), statements[0])
}

func TestRunMigrateDefaultOutput(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output = filepath.Join(t.TempDir(), "default.sql")

	require.Nil(t, runMigrate(context.Background(), cfg, []string{"testdata/financisto/sample.backup"}))
	assert.FileExists(t, cfg.Output)
}

func TestRunMigrateUsage(t *testing.T) {
	cfg := testConfig(t)

	assert.ErrorIs(t, runMigrate(context.Background(), cfg, nil), errUsage)
	assert.ErrorIs(t, runMigrate(context.Background(), cfg, []string{"a", "b", "c"}), errUsage)
}

func TestRunMigrateFailure(t *testing.T) {
	cfg := testConfig(t)
	output := filepath.Join(t.TempDir(), "bluecoins.sql")

	err := runMigrate(context.Background(), cfg, []string{"testdata/financisto/not-gzip.backup", output})
	assert.ErrorIs(t, err, financisto.ErrNotABackup)
	assert.NoFileExists(t, output, "No output must be written for broken backups")
}

func TestRunMigrateRecordsRuns(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database = filepath.Join(t.TempDir(), "log", "gorm.db")
	output := filepath.Join(t.TempDir(), "bluecoins.sql")

	require.Nil(t, runMigrate(context.Background(), cfg, []string{"testdata/financisto/sample.backup", output}))
	require.NotNil(t, runMigrate(context.Background(), cfg, []string{"testdata/financisto/not-gzip.backup", output}))

	require.Nil(t, models.Connect(cfg.Database))
	defer models.Close()

	var migrations []models.Migration
	require.Nil(t, models.DB.Order("created_at ASC").Find(&migrations).Error)
	require.Len(t, migrations, 2)

	assert.Equal(t, "sample.backup", migrations[0].Filename)
	assert.Equal(t, models.MigrationSuccess, migrations[0].Status)
	assert.Equal(t, "UTC", migrations[0].Timezone)

	assert.Equal(t, "not-gzip.backup", migrations[1].Filename)
	assert.Equal(t, models.MigrationFailed, migrations[1].Status)
}

func TestSetupLogging(t *testing.T) {
	cfg := testConfig(t)
	cfg.LogLevel = "loud"
	assert.ErrorIs(t, setupLogging(cfg, os.Stderr), config.ErrInvalidLogLevel)

	cfg.LogLevel = "warn"
	assert.Nil(t, setupLogging(cfg, os.Stderr))
}
