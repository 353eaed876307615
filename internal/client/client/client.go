package client

import (
	"context"
)

// RegisterRequest is the registration payload. Empty optional fields are
// sent as empty strings; the server decides whether they are required.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// LoginResult is what a successful login returns. Token is empty when the
// server runs without token issuance.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// Profile is the account view behind a bearer token.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// Client is the transport-agnostic contract of the gophauth backend.
type Client interface {
	Register(ctx context.Context, req RegisterRequest) (string, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Profile(ctx context.Context, token string) (*Profile, error)
	Ping(ctx context.Context) error
}
