// Package common defines shared constants and sentinel errors used across
// client and server layers of gophauth. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors. Each maps to exactly one HTTP status.
	ErrorValidation   = errors.New("validation error")
	ErrorConflict     = errors.New("conflict")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorInternal     = errors.New("internal error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
