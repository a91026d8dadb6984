package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// DB is the run log database.
var DB *gorm.DB

type F2BContext string

const (
	DBContextURL F2BContext = "f2b-api-url"
)

var plural = regexp.MustCompile("ies$")

// Connect opens the SQLite database, migrates the schema and configures the connection pool.
func Connect(dsn string) error {
	config := &gorm.Config{
		Logger: &logger{
			Logger: log.Logger,
		},

		// Timestamps are stored in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
	}

	separator := "?"
	if strings.Contains(dsn, "?") {
		separator = "&"
	}

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("%s%s_pragma=foreign_keys(1)", dsn, separator)), config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// SQLite only supports one writer, more connections lead to SQLITE_BUSY errors
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	err = db.Callback().Query().After("*").Register("f2b:after_query", queryCallback)
	if err != nil {
		return err
	}

	callbacks := []struct {
		name     string
		register func(string, func(*gorm.DB)) error
	}{
		{"f2b:after_query_general", db.Callback().Query().After("*").Register},
		{"f2b:after_create_general", db.Callback().Create().After("*").Register},
		{"f2b:after_delete_general", db.Callback().Delete().After("*").Register},
	}

	for _, c := range callbacks {
		if err := c.register(c.name, generalCallback); err != nil {
			return err
		}
	}

	DB = db
	return nil
}

// Close closes the database connection.
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	return sqlDB.Close()
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")
		name = plural.ReplaceAllString(name, "y")
		name = strings.TrimSuffix(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// generalCallback handles errors that users cannot do anything about.
//
// The error is logged for server admins and replaced with a general one.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// "sql: database is closed" is hard-coded in the database/sql package
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral
	}
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(Migration{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
