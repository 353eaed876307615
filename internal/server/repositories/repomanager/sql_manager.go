// Package repomanager provides a concrete RepositoryManager for the SQL
// backends, wiring together repository constructors and database migrations
// (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/migrations"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/accounts"
)

// SQLRepositoryManager vends SQL-backed repository implementations
// and exposes a schema migration hook.
type SQLRepositoryManager struct {
	dialect goose.Dialect
}

// Accounts returns an accounts.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewSQLRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(string(m.dialect)); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewRepositoryManager constructs a RepositoryManager for the given driver.
func NewRepositoryManager(driver dbx.Driver) (RepositoryManager, error) {
	switch driver {
	case dbx.DriverPostgres:
		return &SQLRepositoryManager{dialect: goose.DialectPostgres}, nil
	case dbx.DriverSQLite:
		return &SQLRepositoryManager{dialect: goose.DialectSQLite3}, nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}
