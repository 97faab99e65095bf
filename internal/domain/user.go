package domain

import "time"

// User is the domain entity for a user account.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Subject identifies the holder of a verified bearer token.
type Subject struct {
	UserID int64
	Email  string
}
