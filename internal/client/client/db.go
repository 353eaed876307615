package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/gophauth/internal/client/migrations"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/filex"
)

// RunMigrations applies the embedded state schema. It is idempotent.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect(string(goose.DialectSQLite3)); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the SQLite state file at path, creating its directory
// when missing, and migrates it.
func InitDatabase(ctx context.Context, path string) (*sql.DB, error) {
	if _, err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}

	db, _, err := dbx.Open(ctx, "sqlite:"+path)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
