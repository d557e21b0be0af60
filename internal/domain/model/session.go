package model

import "time"

// Session is an authenticated principal's active login state.
type Session struct {
	Token     string
	UserID    int64
	Email     string
	ExpiresAt time.Time
}
