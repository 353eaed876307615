// Package common contains shared constants and sentinel errors used across
// gophauth components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token on
// requests to protected endpoints.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token in the Authorization header value.
const BearerPrefix = "Bearer "

// NotProvided is reported in place of optional profile fields that were never set.
const NotProvided = "Not provided"
