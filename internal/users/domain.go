// Package users manages accounts and their feature sets, including the
// privilege-bundle rules applied when an operator edits permissions.
package users

import (
	"errors"
	"time"

	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/authz"
)

// User represents a stored account. The password hash never serializes.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Features     []string  `json:"features"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal projects the account into the authorization layer's shape.
func (u *User) Principal() authz.Principal {
	return authz.Principal{
		UserID:    u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Features:  u.Features,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

var (
	// ErrNotFound indicates no account matches the lookup.
	ErrNotFound = errors.New("users: not found")
	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("users: email already in use")
	// ErrNameTaken indicates the display name is already registered.
	ErrNameTaken = errors.New("users: name already in use")

	// ErrEditOwnFeatures blocks a principal from editing their own set.
	ErrEditOwnFeatures = errors.New("users: cannot edit own features")
	// ErrEditAdminFeatures blocks edits against an admin account.
	ErrEditAdminFeatures = errors.New("users: cannot edit an admin's features")
	// ErrEditManagerFeatures blocks non-admins from editing a manager.
	ErrEditManagerFeatures = errors.New("users: cannot edit a manager's features")
	// ErrGrantRequiresAdmin blocks non-admins from handing out the
	// grant-permissions feature.
	ErrGrantRequiresAdmin = errors.New("users: granting update:user:features requires admin")
)
