package models

import "time"

// User represents a player account in the system
type User struct {
	ID            int64
	Email         string
	PasswordHash  string
	DisplayName   string
	OAuthProvider string
	OAuthSubject  string
	IsGuest       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Session represents an authenticated session
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
