// Package metadata is the CLI's local key/value store for session state.
package metadata

import (
	"context"
)

// Keys persisted after a successful login.
const (
	KeyToken    = "token"
	KeyUsername = "username"
	KeyEmail    = "email"
	KeyPhone    = "phone"
)

// Repository stores string values by key. Get returns common.ErrorNotFound
// for an absent key.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
