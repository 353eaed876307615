// Package client contains client-side building blocks for gophauth.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) to talk
//     to the gophauth backend: Register, Login, Profile and Ping.
//  2. A concrete HTTP/JSON implementation (see HTTPClient) that attaches the
//     bearer token where needed and maps replies to errors.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations) for
//     the CLI, wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrLocalDataNotAvailable.
// Non-2xx replies are *ServerError values carrying the server's message.
//
// All operations accept context.Context and honor cancellation/timeouts.
package client
