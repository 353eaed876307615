package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	query :=
		`INSERT INTO accounts (id, username, password_hash, email, phone, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `

	_, err := r.db.ExecContext(ctx, query,
		account.ID, account.Username, account.PasswordHash,
		nullable(account.Email), nullable(account.Phone), account.CreatedAt)

	if err != nil {
		if field, ok := duplicateField(err); ok {
			return nil, &DuplicateError{Field: field}
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *SQLRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query :=
		`SELECT id, username, password_hash, email, phone FROM accounts
		 WHERE username = $1
		 `

	account := &models.Account{}
	var email, phone sql.NullString
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&account.ID, &account.Username, &account.PasswordHash, &email, &phone)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	account.Email = email.String
	account.Phone = phone.String

	return account, nil
}

func (r *SQLRepository) Exists(ctx context.Context, field Field, value string) (bool, error) {
	column, err := columnFor(field)
	if err != nil {
		return false, err
	}

	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE ` + column + ` = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, value).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}

// columnFor keeps caller input out of the SQL text.
func columnFor(field Field) (string, error) {
	switch field {
	case FieldUsername, FieldEmail, FieldPhone:
		return string(field), nil
	default:
		return "", fmt.Errorf("unknown account field %q", field)
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// duplicateField recognizes unique violations from either driver and names
// the offending column.
func duplicateField(err error) (Field, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgerrcode.UniqueViolation {
			return "", false
		}
		return fieldFromConstraint(pgErr.ConstraintName), true
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code() != sqlite3lib.SQLITE_CONSTRAINT_UNIQUE {
			return "", false
		}
		// "UNIQUE constraint failed: accounts.email"
		return fieldFromConstraint(sqliteErr.Error()), true
	}

	return "", false
}

func fieldFromConstraint(s string) Field {
	switch {
	case strings.Contains(s, "email"):
		return FieldEmail
	case strings.Contains(s, "phone"):
		return FieldPhone
	default:
		return FieldUsername
	}
}
