package model

import "time"

// User represents an account known to the identity provider.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
