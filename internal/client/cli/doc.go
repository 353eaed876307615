// Package cli provides the gophauth command-line client.
//
// Commands:
//   - register: prompt for account details and create the account
//   - login:    authenticate and persist the session locally
//   - whoami:   show the persisted session, confirmed with the server
//   - logout:   wipe the persisted session
//
// Passwords are read from the terminal without echo. When stdin is not a
// terminal the password is read as a plain line so the client can be scripted.
package cli
