package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// DB is the database used by the backend.
var DB *gorm.DB

type VaultContext string

const (
	DBContextURL VaultContext = "vault-backend-url"
)

// Connect opens the SQLite database and configures the connection pool.
func Connect(dsn string) error {
	config := &gorm.Config{
		Logger: &logger{
			Logger: log.Logger,
		},
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
	}

	db, err := gorm.Open(sqlite.Open(dsn), config)
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

	// A single connection prevents SQLITE_BUSY errors. It also means that
	// nothing may use DB while a transaction started from it is open.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	err = db.Callback().Query().After("*").Register("vault:after_query", queryCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Query().After("*").Register("vault:after_query_general", generalCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Create().After("*").Register("vault:after_create_general", generalCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Update().After("*").Register("vault:after_update_general", generalCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Delete().After("*").Register("vault:after_delete_general", generalCallback)
	if err != nil {
		return err
	}

	DB = db
	return nil
}

// queryCallback replaces the generic "no record" error with one that
// names the resource.
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		name := strings.TrimSuffix(strings.ReplaceAll(db.Statement.Table, "_", " "), "s")
		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// generalCallback handles errors we cannot explain to users.
//
// The error is logged so that server admins can debug it, users get
// ErrGeneral.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// "sql: database is closed" is hard-coded in database/sql
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral
	}
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(Budget{}, Envelope{}, Transaction{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
