package activations

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Accounts is the slice of the users module the activation flow needs.
type Accounts interface {
	Activate(ctx context.Context, userID int64, password string) error
}

// Enqueuer dispatches the activation email through the job queue.
type Enqueuer interface {
	EnqueueActivationEmail(ctx context.Context, to, name, token string) error
}

// Service wraps the activation-token lifecycle.
type Service struct {
	repo     Repository
	accounts Accounts
	enqueuer Enqueuer
	ttl      time.Duration
}

// NewService constructs a Service with the configured token lifetime.
func NewService(repo Repository, accounts Accounts, enqueuer Enqueuer, ttl time.Duration) *Service {
	return &Service{repo: repo, accounts: accounts, enqueuer: enqueuer, ttl: ttl}
}

// StartActivation mints a token for the account and queues the email.
// Implements users.Activator.
func (s *Service) StartActivation(ctx context.Context, userID int64, name, email string) error {
	activation, err := s.repo.Create(ctx, userID, time.Now().Add(s.ttl))
	if err != nil {
		return fmt.Errorf("activations: create token: %w", err)
	}
	if s.enqueuer == nil {
		return nil
	}
	if err := s.enqueuer.EnqueueActivationEmail(ctx, email, name, activation.ID.String()); err != nil {
		return fmt.Errorf("activations: enqueue email: %w", err)
	}
	return nil
}

// Get returns a valid token record; anything else is ErrTokenInvalid.
func (s *Service) Get(ctx context.Context, token string) (*Activation, error) {
	id, err := uuid.Parse(token)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	return s.repo.FindValid(ctx, id)
}

// Use consumes a valid token: stores the account's first password,
// promotes it to the default bundle and marks the token used.
func (s *Service) Use(ctx context.Context, token, password string) (*Activation, error) {
	activation, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.accounts.Activate(ctx, activation.UserID, password); err != nil {
		return nil, fmt.Errorf("activations: activate user %d: %w", activation.UserID, err)
	}
	return s.repo.MarkUsed(ctx, activation.ID)
}
