// Package team manages the lawyer profiles shown on the public team page.
package team

import (
	"errors"
	"time"
)

// Member is a team-member profile.
type Member struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	OABNumber *string   `json:"oab_number,omitempty"`
	Bio       *string   `json:"bio,omitempty"`
	PhotoURL  *string   `json:"photo_url,omitempty"`
	SortOrder int       `json:"sort_order"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ErrNotFound indicates no member matches the lookup.
var ErrNotFound = errors.New("team: not found")
