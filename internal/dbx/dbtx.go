// Package dbx provides tiny DB abstractions shared by repositories:
// a minimal interface (DBTX) implemented by both *sql.DB and *sql.Tx, and
// a DSN-driven opener for the supported drivers.
package dbx

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// DBTX is the subset of database/sql used by our repos.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Driver is a database/sql driver name.
type Driver string

const (
	DriverPostgres Driver = "pgx"
	DriverSQLite   Driver = "sqlite"
)

// DriverFromDSN picks the driver from the DSN scheme. PostgreSQL URLs and
// key=value strings go to pgx; "file:", "sqlite:" and ":memory:" go to sqlite.
func DriverFromDSN(dsn string) (Driver, string, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return DriverPostgres, dsn, nil
	case strings.HasPrefix(dsn, "sqlite:"):
		return DriverSQLite, strings.TrimPrefix(dsn, "sqlite:"), nil
	case strings.HasPrefix(dsn, "file:"), dsn == ":memory:":
		return DriverSQLite, dsn, nil
	case strings.Contains(dsn, "host="), strings.Contains(dsn, "dbname="):
		return DriverPostgres, dsn, nil
	default:
		return "", "", fmt.Errorf("unsupported database DSN %q", dsn)
	}
}

// Open opens and pings the database named by dsn. SQLite handles are limited
// to one connection so in-memory databases are shared by every caller.
func Open(ctx context.Context, dsn string) (*sql.DB, Driver, error) {
	driver, source, err := DriverFromDSN(dsn)
	if err != nil {
		return nil, "", err
	}

	db, err := sql.Open(string(driver), source)
	if err != nil {
		return nil, "", fmt.Errorf("db open error: %w", err)
	}

	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("db ping error: %w", err)
	}

	return db, driver, nil
}
