package v1_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	v1 "github.com/envelope-zero/financisto2bluecoins/internal/controllers/v1"
	"github.com/envelope-zero/financisto2bluecoins/internal/importer/parser/financisto"
	"github.com/envelope-zero/financisto2bluecoins/internal/models"
	"github.com/envelope-zero/financisto2bluecoins/test"
	"github.com/google/uuid"
)

// upload posts a file from testdata/financisto to the migrations endpoint.
func (suite *TestSuiteStandard) upload(file, query string) (v1.MigrationResponse, int) {
	body, headers := test.LoadTestFile(suite.T(), file)
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/migrations"+query, body, headers)

	var response v1.MigrationResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	return response, recorder.Code
}

func (suite *TestSuiteStandard) createTestMigration(m models.Migration) models.Migration {
	err := models.DB.Create(&m).Error
	if err != nil {
		suite.Assert().FailNow("Migration could not be saved", "Error: %s, Migration: %#v", err, m)
	}

	return m
}

func (suite *TestSuiteStandard) TestGetV1() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.Response
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal("http://example.com/v1/migrations", response.Links.Migrations)
}

func (suite *TestSuiteStandard) TestCreateMigration() {
	response, code := suite.upload("sample.backup", "?timezone=Asia/Taipei")
	suite.Require().Equal(http.StatusCreated, code, response.Error)
	suite.Assert().Nil(response.Error)

	m := response.Data
	suite.Require().NotNil(m)
	suite.Assert().NotEqual(uuid.Nil, m.ID)
	suite.Assert().Equal(models.MigrationSuccess, m.Status)
	suite.Assert().Equal("sample.backup", m.Filename)
	suite.Assert().Equal("Asia/Taipei", m.Timezone)
	suite.Assert().Equal("1.7.1", m.BackupVersion)
	suite.Assert().Equal(32, m.Statements)
	suite.Assert().Equal(9, m.Transactions)
	suite.Assert().Len(m.Checksum, 64)
	suite.Assert().Empty(m.Output, "The generated SQL must not be part of the JSON response")
}

func (suite *TestSuiteStandard) TestCreateMigrationFails() {
	tests := []struct {
		name  string
		file  string
		query string
		err   string
	}{
		{"Not a backup", "not-gzip.backup", "", financisto.ErrNotABackup.Error()},
		{"Broken field", "corrupt-field.backup", "", "_id"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			response, code := suite.upload(tt.file, tt.query)
			suite.Assert().Equal(http.StatusBadRequest, code)

			suite.Require().NotNil(response.Error)
			suite.Assert().Contains(*response.Error, tt.err)

			// Failed runs are recorded, too
			suite.Require().NotNil(response.Data)
			suite.Assert().Equal(models.MigrationFailed, response.Data.Status)
			suite.Assert().Equal(*response.Error, response.Data.Error)
			suite.Assert().Len(response.Data.Checksum, 64)

			var count int64
			models.DB.Model(&models.Migration{}).Where(&models.Migration{DefaultModel: models.DefaultModel{ID: response.Data.ID}}).Count(&count)
			suite.Assert().Equal(int64(1), count)
		})
	}
}

func (suite *TestSuiteStandard) TestCreateMigrationRejected() {
	tests := []struct {
		name  string
		file  string
		query string
		err   string
	}{
		{"Wrong file name", "sample.txt", "", "the file name must match: *.backup"},
		{"Invalid time zone", "sample.backup", "?timezone=Mars/Olympus_Mons", "invalid time zone"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			body, headers := test.LoadTestFile(t, tt.file)
			recorder := test.Request(t, http.MethodPost, "http://example.com/v1/migrations"+tt.query, body, headers)
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
			suite.Assert().Contains(test.DecodeError(t, &recorder), tt.err)
		})
	}

	var count int64
	models.DB.Model(&models.Migration{}).Count(&count)
	suite.Assert().Equal(int64(0), count, "Rejected uploads must not be recorded")
}

func (suite *TestSuiteStandard) TestCreateMigrationNoFile() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/migrations", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	suite.Assert().Equal("you must send a file to this endpoint", test.DecodeError(suite.T(), &recorder))
}

func (suite *TestSuiteStandard) TestCreateMigrationDatabaseClosed() {
	suite.CloseDB()

	body, headers := test.LoadTestFile(suite.T(), "sample.backup")
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/migrations", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)
	suite.Assert().Contains(test.DecodeError(suite.T(), &recorder), models.ErrGeneral.Error())
}

func (suite *TestSuiteStandard) TestGetMigrations() {
	older := suite.createTestMigration(models.Migration{
		DefaultModel: models.DefaultModel{Timestamps: models.Timestamps{CreatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}},
		Filename:     "older.backup",
		Status:       models.MigrationSuccess,
	})
	newer := suite.createTestMigration(models.Migration{
		DefaultModel: models.DefaultModel{Timestamps: models.Timestamps{CreatedAt: time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)}},
		Filename:     "newer.backup",
		Status:       models.MigrationFailed,
	})

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/migrations", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.MigrationListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal(newer.ID, response.Data[0].ID, "Migrations must be sorted newest first")
	suite.Assert().Equal(older.ID, response.Data[1].ID)
}

func (suite *TestSuiteStandard) TestGetMigrationsEmpty() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/migrations", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	suite.Assert().JSONEq(`{"data": [], "error": null}`, recorder.Body.String())
}

func (suite *TestSuiteStandard) TestGetMigrationsDatabaseClosed() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/migrations", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)
}

func (suite *TestSuiteStandard) TestGetMigration() {
	m := suite.createTestMigration(models.Migration{Filename: "sample.backup", Status: models.MigrationSuccess, Statements: 3})

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/migrations/%s", m.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.MigrationResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Equal(m.ID, response.Data.ID)
	suite.Assert().Equal(3, response.Data.Statements)
}

func (suite *TestSuiteStandard) TestGetMigrationErrors() {
	tests := []struct {
		name   string
		id     string
		status int
		err    string
	}{
		{"Not a UUID", "not-a-uuid", http.StatusBadRequest, "the specified resource ID is not a valid UUID"},
		{"Nil UUID", uuid.Nil.String(), http.StatusBadRequest, "the specified resource ID is not a valid UUID"},
		{"Not found", "5e9e1b36-4c61-4a32-8a8c-0f46c5475e5e", http.StatusNotFound, "there is no migration matching your query"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			for _, path := range []string{"", "/statements"} {
				for _, method := range []string{http.MethodGet, http.MethodOptions} {
					recorder := test.Request(t, method, fmt.Sprintf("http://example.com/v1/migrations/%s%s", tt.id, path), "")
					test.AssertHTTPStatus(t, &recorder, tt.status)
					suite.Assert().Equal(tt.err, test.DecodeError(t, &recorder), "%s %s", method, path)
				}
			}

			recorder := test.Request(t, http.MethodDelete, fmt.Sprintf("http://example.com/v1/migrations/%s", tt.id), "")
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestDeleteMigration() {
	m := suite.createTestMigration(models.Migration{Filename: "sample.backup", Status: models.MigrationSuccess})
	path := fmt.Sprintf("http://example.com/v1/migrations/%s", m.ID)

	recorder := test.Request(suite.T(), http.MethodDelete, path, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, path, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGetMigrationStatements() {
	response, code := suite.upload("sample.backup", "?timezone=UTC")
	suite.Require().Equal(http.StatusCreated, code)

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/migrations/%s/statements", response.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	suite.Assert().Equal("application/sql; charset=utf-8", recorder.Header().Get("Content-Type"))
	suite.Assert().Equal(`attachment; filename="sample.sql"`, recorder.Header().Get("Content-Disposition"))

	statements := strings.Split(recorder.Body.String(), "\n")
	suite.Assert().Len(statements, response.Data.Statements)
	for _, s := range statements {
		suite.Assert().True(strings.HasPrefix(s, "INSERT INTO "), "Statement %q is not an INSERT", s)
	}
}

func (suite *TestSuiteStandard) TestGetMigrationStatementsFailed() {
	m := suite.createTestMigration(models.Migration{Filename: "broken.backup", Status: models.MigrationFailed, Error: "could not parse backup"})

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/migrations/%s/statements", m.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	suite.Assert().Equal(models.ErrNoStatements.Error(), test.DecodeError(suite.T(), &recorder))
}

func (suite *TestSuiteStandard) TestOptions() {
	m := suite.createTestMigration(models.Migration{Filename: "sample.backup", Status: models.MigrationSuccess})

	tests := []struct {
		path  string
		allow string
	}{
		{"http://example.com/v1", "OPTIONS, GET"},
		{"http://example.com/v1/migrations", "OPTIONS, GET, POST"},
		{fmt.Sprintf("http://example.com/v1/migrations/%s", m.ID), "OPTIONS, GET, DELETE"},
		{fmt.Sprintf("http://example.com/v1/migrations/%s/statements", m.ID), "OPTIONS, GET"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.path, func(t *testing.T) {
			recorder := test.Request(t, http.MethodOptions, tt.path, "")
			test.AssertHTTPStatus(t, &recorder, http.StatusNoContent)
			suite.Assert().Equal(tt.allow, recorder.Header().Get("allow"))
		})
	}
}
