package domain

import (
	"time"

	"github.com/google/uuid"
)

// LoginMode selects how a Session is established
type LoginMode string

const (
	LoginAuto   LoginMode = "auto"
	LoginManual LoginMode = "manual"
)

// Session is an authenticated browser context bound to one client.
// At most one Session is current at a time.
type Session struct {
	Client    string
	CreatedAt time.Time
	ID        string
	Navigated bool
	Valid     bool
}

// NewSession creates a valid session for client
func NewSession(client string, now time.Time) *Session {
	return &Session{
		Client:    client,
		CreatedAt: now,
		ID:        uuid.New().String(),
		Valid:     true,
	}
}

// Matches reports whether the session is valid and bound to client
func (s *Session) Matches(client string) bool {
	return s != nil && s.Valid && s.Client == client
}

// Invalidate marks the session unusable
func (s *Session) Invalidate() {
	if s == nil {
		return
	}
	s.Valid = false
	s.Navigated = false
}

// Credentials are the login details of one client
type Credentials struct {
	Password string
	Username string
}
