package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/authz"
)

// UserDirectory is the slice of the users module the session layer
// depends on.
type UserDirectory interface {
	VerifyCredentials(ctx context.Context, email, password string) (authz.Principal, error)
	PrincipalByID(ctx context.Context, id int64) (authz.Principal, error)
}

// Service wraps session lifecycle rules: creation at login, sliding
// renewal on authenticated reads, and soft expiry at logout.
type Service struct {
	repo  Repository
	users UserDirectory
	ttl   time.Duration
}

// NewService constructs a Service with the configured session lifetime.
func NewService(repo Repository, users UserDirectory, ttl time.Duration) *Service {
	return &Service{repo: repo, users: users, ttl: ttl}
}

// TTL exposes the configured session lifetime.
func (s *Service) TTL() time.Duration { return s.ttl }

// Login validates credentials and mints a fresh session.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	principal, err := s.users.VerifyCredentials(ctx, email, password)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := NewToken()
	if err != nil {
		return nil, fmt.Errorf("sessions: mint token: %w", err)
	}

	created, err := s.repo.Create(ctx, Session{
		Token:     token,
		UserID:    principal.UserID,
		ExpiresAt: time.Now().Add(s.ttl),
	})
	if err != nil {
		return nil, fmt.Errorf("sessions: create: %w", err)
	}
	return created, nil
}

// Logout back-dates the session expiry. The row stays behind as history.
func (s *Service) Logout(ctx context.Context, token string) (*Session, error) {
	expired, err := s.repo.Expire(ctx, token, s.ttl)
	if err != nil {
		return nil, err
	}
	return expired, nil
}

// Authenticate resolves a token into a principal, renewing the session
// as a side effect of the read. Implements authz.Authenticator.
func (s *Service) Authenticate(ctx context.Context, token string) (authz.Principal, time.Time, error) {
	session, err := s.repo.FindValidByToken(ctx, token)
	if err != nil {
		return authz.Principal{}, time.Time{}, err
	}

	renewed, err := s.repo.Renew(ctx, token, time.Now().Add(s.ttl))
	if err != nil {
		return authz.Principal{}, time.Time{}, err
	}

	principal, err := s.users.PrincipalByID(ctx, session.UserID)
	if err != nil {
		return authz.Principal{}, time.Time{}, fmt.Errorf("sessions: load user %d: %w", session.UserID, err)
	}
	return principal, renewed.ExpiresAt, nil
}

var _ authz.Authenticator = (*Service)(nil)
