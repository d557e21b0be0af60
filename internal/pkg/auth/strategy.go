package auth

import "time"

// Claims carry the identity encoded into a session token.
type Claims struct {
	UserID    int64
	Email     string
	ExpiresAt time.Time
}

type Strategy interface {
	IssueToken(userID int64, email string) (string, time.Time, error)
	ParseToken(token string) (*Claims, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
