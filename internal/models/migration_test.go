package models_test

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/envelope-zero/financisto2bluecoins/internal/importer"
	"github.com/envelope-zero/financisto2bluecoins/internal/migrate"
	"github.com/envelope-zero/financisto2bluecoins/internal/models"
)

func (suite *TestSuiteStandard) importSample() (importer.Result, error) {
	f, err := os.Open("../../testdata/financisto/sample.backup")
	suite.Require().Nil(err)
	defer f.Close()

	return importer.Import(f, migrate.Options{Location: time.UTC})
}

func (suite *TestSuiteStandard) TestNewMigration() {
	result, err := suite.importSample()
	suite.Require().Nil(err)

	m := models.NewMigration("sample.backup", "UTC", result, nil)

	suite.Assert().Equal(models.MigrationSuccess, m.Status)
	suite.Assert().Equal("", m.Error)
	suite.Assert().Equal("1.7.1", m.BackupVersion)
	suite.Assert().Equal(result.Checksum, m.Checksum)
	suite.Assert().Equal(32, m.Statements)
	suite.Assert().Equal(3, m.Accounts)
	suite.Assert().Equal(3, m.ParentCategories)
	suite.Assert().Equal(6, m.ChildCategories)
	suite.Assert().Equal(5, m.Items)
	suite.Assert().Equal(9, m.Transactions)
	suite.Assert().Equal(1, m.Collisions)
	suite.Assert().Equal(1, m.Skipped)
	suite.Assert().Equal(0, m.BalanceMismatches)
	suite.Assert().Equal(31, strings.Count(m.Output, "\n"), "Statements must be separated by newlines")
	suite.Assert().True(strings.HasPrefix(m.Output, `INSERT INTO "ACCOUNTSTABLE"`))
}

func (suite *TestSuiteStandard) TestNewMigrationFailed() {
	m := models.NewMigration("broken.backup", "Local", importer.Result{Checksum: "abc"}, errors.New("could not parse backup: broken"))

	suite.Assert().Equal(models.MigrationFailed, m.Status)
	suite.Assert().Equal("could not parse backup: broken", m.Error)
	suite.Assert().Equal("abc", m.Checksum)
	suite.Assert().Equal(0, m.Statements)
	suite.Assert().Empty(m.Output)
}

func (suite *TestSuiteStandard) TestMigrationStore() {
	result, err := suite.importSample()
	suite.Require().Nil(err)

	created := suite.createTestMigration(models.NewMigration("sample.backup", "UTC", result, nil))
	suite.Assert().NotEqual("00000000-0000-0000-0000-000000000000", created.ID.String())

	var stored models.Migration
	suite.Require().Nil(models.DB.First(&stored, models.Migration{DefaultModel: models.DefaultModel{ID: created.ID}}).Error)

	suite.Assert().Equal(created.Output, stored.Output)
	suite.Assert().Equal(created.Checksum, stored.Checksum)
	suite.Assert().Equal(time.UTC, stored.CreatedAt.Location())

	// The generated SQL is not part of the JSON representation
	j, err := json.Marshal(stored)
	suite.Require().Nil(err)
	suite.Assert().NotContains(string(j), "INSERT INTO")
	suite.Assert().Contains(string(j), `"status":"SUCCESS"`)
}

func (suite *TestSuiteStandard) TestMigrationDelete() {
	created := suite.createTestMigration(models.Migration{Filename: "a.backup"})

	suite.Require().Nil(models.DB.Delete(&created).Error)

	var stored models.Migration
	err := models.DB.First(&stored, models.Migration{DefaultModel: models.DefaultModel{ID: created.ID}}).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}
