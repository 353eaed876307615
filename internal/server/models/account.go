package models

import "time"

// Account is the only persisted entity. Email and Phone are empty when the
// caller never supplied them and are stored as NULL.
type Account struct {
	ID           string
	Username     string
	PasswordHash string
	Email        string
	Phone        string
	CreatedAt    time.Time
}
