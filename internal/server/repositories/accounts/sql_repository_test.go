package accounts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

const (
	insertQuery = `(?s)^INSERT\s+INTO\s+accounts\s*\(id,\s*username,\s*password_hash,\s*email,\s*phone,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*$`
	selectQuery = `(?s)^SELECT\s+id,\s*username,\s*password_hash,\s*email,\s*phone\s+FROM\s+accounts\s+WHERE\s+username\s*=\s*\$1\s*$`
)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewSQLRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQuery).
		WithArgs(sqlmock.AnyArg(), "alice", "hash", "a@x.com", "5551234567", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	a := &models.Account{Username: "alice", PasswordHash: "hash", Email: "a@x.com", Phone: "5551234567"}
	got, err := repo.Create(context.Background(), a)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID == "" || got.CreatedAt.IsZero() {
		t.Fatalf("expected generated id and timestamp, got %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_EmptyOptionalFieldsAreNull(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQuery).
		WithArgs("fixed-id", "alice", "hash", nil, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := repo.Create(context.Background(), &models.Account{ID: "fixed-id", Username: "alice", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_UniqueViolation(t *testing.T) {
	tests := []struct {
		constraint string
		want       Field
	}{
		{"accounts_username_key", FieldUsername},
		{"accounts_email_key", FieldEmail},
		{"accounts_phone_key", FieldPhone},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()

			mock.ExpectExec(insertQuery).
				WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: tt.constraint})

			_, err := repo.Create(context.Background(), &models.Account{Username: "alice", PasswordHash: "hash"})

			var dup *DuplicateError
			if !errors.As(err, &dup) {
				t.Fatalf("want *DuplicateError, got %v", err)
			}
			if dup.Field != tt.want {
				t.Fatalf("field = %q, want %q", dup.Field, tt.want)
			}
			if !errors.Is(err, common.ErrorAlreadyExists) {
				t.Fatalf("want errors.Is common.ErrorAlreadyExists")
			}
		})
	}
}

func TestCreate_OtherPgErrorIsWrapped(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQuery).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.NotNullViolation, Message: "null value"})

	_, err := repo.Create(context.Background(), &models.Account{Username: "alice", PasswordHash: "hash"})
	if err == nil || !regexp.MustCompile(`db error: .*null value`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
	if errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("not-null violation must not look like a duplicate")
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQuery).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Account{Username: "alice", PasswordHash: "hash"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByUsername_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "email", "phone"}).
		AddRow("u-1", "alice", "hash", nil, "5551234567")
	mock.ExpectQuery(selectQuery).
		WithArgs("alice").
		WillReturnRows(rows)

	got, err := repo.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByUsername error: %v", err)
	}
	if got.ID != "u-1" || got.Username != "alice" || got.PasswordHash != "hash" {
		t.Fatalf("unexpected account: %+v", got)
	}
	if got.Email != "" || got.Phone != "5551234567" {
		t.Fatalf("unexpected optional fields: %+v", got)
	}
}

func TestGetByUsername_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQuery).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByUsername_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQuery).
		WithArgs("alice").
		WillReturnError(errors.New("db err"))

	_, err := repo.GetByUsername(context.Background(), "alice")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestExists(t *testing.T) {
	for _, field := range []Field{FieldUsername, FieldEmail, FieldPhone} {
		t.Run(string(field), func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()

			q := `(?s)^SELECT\s+EXISTS\s*\(SELECT\s+1\s+FROM\s+accounts\s+WHERE\s+` + string(field) + `\s*=\s*\$1\)\s*$`
			mock.ExpectQuery(q).
				WithArgs("v").
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

			ok, err := repo.Exists(context.Background(), field, "v")
			if err != nil {
				t.Fatalf("Exists error: %v", err)
			}
			if !ok {
				t.Fatal("expected true")
			}
		})
	}
}

func TestExists_UnknownField(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	if _, err := repo.Exists(context.Background(), Field("password_hash"), "x"); err == nil {
		t.Fatal("expected error for unknown field")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no query expected: %v", err)
	}
}

func TestExists_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+EXISTS`).
		WillReturnError(errors.New("db err"))

	_, err := repo.Exists(context.Background(), FieldEmail, "a@x.com")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
