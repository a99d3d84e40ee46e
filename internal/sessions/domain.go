// Package sessions manages the database-backed session records behind
// the session_id cookie: opaque tokens with a sliding 30-day expiry.
// Rows are never deleted; logout back-dates the expiry instead.
package sessions

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"
)

// Session binds an opaque token to a user and an expiry timestamp.
type Session struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Valid reports whether the session is usable at the given instant. A
// session is valid iff its expiry is strictly in the future.
func (s Session) Valid(now time.Time) bool {
	return s.ExpiresAt.After(now)
}

// ErrInvalidCredentials indicates a failed email/password login.
var ErrInvalidCredentials = errors.New("sessions: invalid credentials")

const tokenBytes = 48

// NewToken mints an opaque random session token (96 hex characters).
func NewToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
