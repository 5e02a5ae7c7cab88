package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

var ErrDriverUnsupported = errors.New("journal: unsupported driver")

// Supported journal storage drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// OpenDB opens the journal database for the configured driver and verifies
// the connection. SQLite is the default for single-operator setups; postgres
// serves shared deployments.
func OpenDB(driver, dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("journal: open database: %w", err)
	}

	var db *bun.DB
	switch driver {
	case DriverSQLite:
		db = bun.NewDB(sqldb, sqlitedialect.New())
	case DriverPostgres:
		db = bun.NewDB(sqldb, pgdialect.New())
	default:
		_ = sqldb.Close()
		return nil, fmt.Errorf("%w: %s", ErrDriverUnsupported, driver)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal: ping database: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the journal table when missing.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().Model((*Entry)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("journal: create schema: %w", err)
	}
	return nil
}
