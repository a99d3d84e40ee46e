// Package activations manages the one-shot tokens emailed to freshly
// registered accounts so they can set a password.
package activations

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Activation is a single-use token with a short expiry.
type Activation struct {
	ID        uuid.UUID `json:"id"`
	UserID    int64     `json:"user_id"`
	Used      bool      `json:"used"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ErrTokenInvalid covers missing, used and expired tokens alike so the
// client cannot probe which case it hit.
var ErrTokenInvalid = errors.New("activations: token invalid")
