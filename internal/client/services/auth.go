// Package services contains application services for the gophauth CLI.
// This file defines the authentication service: register, login, whoami and
// logout on top of the API client and the local session store.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/validation"
)

// RegisterInput is raw user input. Free-text fields are sanitized before
// validation; the password is passed through untouched.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	Phone    string
}

// Session is the locally persisted login state.
type Session struct {
	Username string
	Email    string
	Phone    string
	Token    string
	// Verified is set by WhoAmI once the server accepted the token.
	Verified bool
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: advisory validation, then create the account on the server.
//   - Login: authenticate and persist the session locally.
//   - WhoAmI: read the persisted session and confirm the token with the server.
//   - Logout: wipe the persisted session.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, error)
	Login(ctx context.Context, username, password string) (*Session, error)
	WhoAmI(ctx context.Context) (*Session, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
}

// authService is the concrete AuthService backed by a remote Client
// and a local SQL database for session metadata.
type authService struct {
	client    client.Client
	db        *sql.DB
	policy    validation.Policy
	sanitizer *bluemonday.Policy
}

// NewAuthService constructs an AuthService bound to the given API client, DB
// and advisory policy.
func NewAuthService(c client.Client, db *sql.DB, policy validation.Policy) AuthService {
	return &authService{client: c, db: db, policy: policy, sanitizer: bluemonday.StrictPolicy()}
}

func (a *authService) getMetadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// sanitize strips markup from free text. Never applied to passwords.
func (a *authService) sanitize(s string) string {
	return strings.TrimSpace(a.sanitizer.Sanitize(s))
}

// Register sanitizes and validates the input locally, then registers it on
// the server and returns the server's confirmation message.
func (a *authService) Register(ctx context.Context, in RegisterInput) (string, error) {
	req := client.RegisterRequest{
		Username: a.sanitize(in.Username),
		Password: in.Password,
		Email:    a.sanitize(in.Email),
		Phone:    a.sanitize(in.Phone),
	}

	err := validation.ValidateRegistration(a.policy, validation.Registration{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		return "", err
	}

	return a.client.Register(ctx, req)
}

// Login authenticates against the server and replaces the persisted session.
// When the server issues no token only the username is kept.
func (a *authService) Login(ctx context.Context, username, password string) (*Session, error) {
	username = a.sanitize(username)
	if err := validation.ValidateCredentials(username, password); err != nil {
		return nil, err
	}

	res, err := a.client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	s := &Session{Username: username}
	if res.Token != "" {
		s.Token = res.Token
		s.Email = res.Email
		s.Phone = res.Phone
		if res.Username != "" {
			s.Username = res.Username
		}
	}

	if err := a.saveSession(ctx, s); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return s, nil
}

// WhoAmI returns the persisted session. With a token present it asks the
// server for the profile: a rejected token clears the session and returns
// client.ErrUnauthorized, an unreachable server returns the local view
// unverified.
func (a *authService) WhoAmI(ctx context.Context) (*Session, error) {
	s, err := a.loadSession(ctx)
	if err != nil {
		return nil, err
	}
	if s.Token == "" {
		return s, nil
	}

	p, err := a.client.Profile(ctx, s.Token)
	switch {
	case err == nil:
		s.Username, s.Email, s.Phone = p.Username, p.Email, p.Phone
		s.Verified = true
		return s, nil
	case errors.Is(err, client.ErrUnauthorized):
		if clearErr := a.Logout(ctx); clearErr != nil {
			return nil, errors.Join(err, clearErr)
		}
		return nil, err
	case errors.Is(err, client.ErrUnavailable):
		return s, nil
	default:
		return nil, err
	}
}

// Logout wipes the persisted session.
func (a *authService) Logout(ctx context.Context) error {
	return a.getMetadataRepo(a.db).Clear(ctx)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// saveSession replaces the stored session in a single transaction.
func (a *authService) saveSession(ctx context.Context, s *Session) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.getMetadataRepo(tx)
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		values := map[string]string{
			metadata.KeyUsername: s.Username,
			metadata.KeyToken:    s.Token,
			metadata.KeyEmail:    s.Email,
			metadata.KeyPhone:    s.Phone,
		}
		for k, v := range values {
			if v == "" {
				continue
			}
			if err := repo.Set(ctx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (a *authService) loadSession(ctx context.Context) (*Session, error) {
	values, err := a.getMetadataRepo(a.db).List(ctx)
	if err != nil {
		return nil, err
	}
	if values[metadata.KeyUsername] == "" {
		return nil, client.ErrLocalDataNotAvailable
	}
	return &Session{
		Username: values[metadata.KeyUsername],
		Email:    values[metadata.KeyEmail],
		Phone:    values[metadata.KeyPhone],
		Token:    values[metadata.KeyToken],
	}, nil
}
