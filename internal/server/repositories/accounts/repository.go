// Package accounts persists account records. The SQL is written to run
// unchanged on PostgreSQL (pgx) and SQLite (modernc).
package accounts

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Field names a uniquely constrained account column.
type Field string

const (
	FieldUsername Field = "username"
	FieldEmail    Field = "email"
	FieldPhone    Field = "phone"
)

type Repository interface {
	// Create inserts the account. A unique-constraint violation is reported
	// as *DuplicateError.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	// GetByUsername returns common.ErrorNotFound when no account matches.
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	// Exists reports whether any account has value in the given column.
	Exists(ctx context.Context, field Field, value string) (bool, error)
}

// DuplicateError reports the column whose uniqueness constraint rejected an insert.
type DuplicateError struct {
	Field Field
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

func (e *DuplicateError) Is(target error) bool {
	return target == common.ErrorAlreadyExists
}
