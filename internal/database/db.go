// Package database opens the gorm connection used by the SQL store.
package database

import (
	"fmt"
	"time"

	"recipecost/internal/store"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"              // SQLite driver
)

// Supported drivers
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Open initializes a database connection for driver and dsn
func Open(driver, dsn string, logSQL bool) (*gorm.DB, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.LogMode(logSQL)

	// Every sqlite connection to ":memory:" is its own database, and a file
	// database only takes one writer anyway.
	maxOpen := 100
	if driver == DriverSQLite {
		maxOpen = 1
	}

	// Configure connection pool
	db.DB().SetMaxIdleConns(10)
	db.DB().SetMaxOpenConns(maxOpen)
	db.DB().SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Migrate creates or updates the tables used by the SQL store
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&store.IngredientRow{},
		&store.RecipeRow{},
	).Error
}
