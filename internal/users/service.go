package users

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/crypto/bcrypt"

	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/authz"
)

// Activator starts the account-activation flow for a fresh registration.
type Activator interface {
	StartActivation(ctx context.Context, userID int64, name, email string) error
}

// Service wraps account business rules.
type Service struct {
	repo      Repository
	activator Activator
}

// NewService constructs a new Service.
func NewService(repo Repository, activator Activator) *Service {
	return &Service{repo: repo, activator: activator}
}

// SetActivator wires the activation flow after construction; the
// activation service points back at accounts, so one side of the pair
// has to be attached late.
func (s *Service) SetActivator(activator Activator) {
	s.activator = activator
}

// Create registers an account with only the activation-token marker
// feature and kicks off the activation flow. It pre-checks name and
// email availability; the unique constraints remain the real guarantee
// against the race between check and insert.
func (s *Service) Create(ctx context.Context, name, email string) (*User, error) {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("users: check email: %w", err)
	}
	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return nil, ErrNameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("users: check name: %w", err)
	}

	user, err := s.repo.Create(ctx, name, email, authz.PendingActivationBundle())
	if err != nil {
		return nil, err
	}

	if s.activator != nil {
		if err := s.activator.StartActivation(ctx, user.ID, user.Name, user.Email); err != nil {
			return nil, fmt.Errorf("users: start activation: %w", err)
		}
	}
	return user, nil
}

// Get fetches an account by id.
func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// UpdateSelf changes the caller's own name and/or password.
func (s *Service) UpdateSelf(ctx context.Context, id int64, name, password *string) (*User, error) {
	var hash *string
	if password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("users: hash password: %w", err)
		}
		value := string(hashed)
		hash = &value
	}
	return s.repo.UpdateProfile(ctx, id, name, hash)
}

// VerifyCredentials checks an email/password pair and returns the
// account's principal. Any failure collapses into a single error so the
// caller cannot distinguish unknown accounts from wrong passwords.
func (s *Service) VerifyCredentials(ctx context.Context, email, password string) (authz.Principal, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return authz.Principal{}, ErrNotFound
	}
	if user.PasswordHash == "" {
		return authz.Principal{}, ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return authz.Principal{}, ErrNotFound
	}
	return user.Principal(), nil
}

// PrincipalByID loads a stored account as a principal.
func (s *Service) PrincipalByID(ctx context.Context, id int64) (authz.Principal, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return authz.Principal{}, err
	}
	return user.Principal(), nil
}

// Activate sets the first password and promotes the account to the
// default bundle. Called from the activation flow.
func (s *Service) Activate(ctx context.Context, userID int64, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("users: hash password: %w", err)
	}
	_, err = s.repo.Activate(ctx, userID, string(hashed), authz.DefaultBundle())
	return err
}

// AuthorizeFeatureEdit applies the route-level rules for permission
// edits. Each rule is an explicit conditional, not a policy engine.
func AuthorizeFeatureEdit(actor authz.Principal, target *User, requested []string) error {
	if actor.UserID == target.ID {
		return ErrEditOwnFeatures
	}
	if authz.Can(target.Features, authz.FeatureIsAdmin) {
		return ErrEditAdminFeatures
	}
	if !actor.Can(authz.FeatureIsAdmin) {
		if authz.Can(target.Features, authz.FeatureUpdateFeatures) {
			return ErrEditManagerFeatures
		}
		if authz.Can(requested, authz.FeatureUpdateFeatures) {
			return ErrGrantRequiresAdmin
		}
	}
	return nil
}

// NormalizeFeatures applies the bundle-substitution rules to a requested
// feature set:
//
//  1. the default bundle is always unioned in, so baseline access can
//     never be stripped by this path;
//  2. a set carrying update:user:features without is:admin is replaced
//     wholesale by the manager bundle.
func NormalizeFeatures(requested []string) []string {
	set := make(map[string]struct{}, len(requested))
	for _, f := range requested {
		if f != "" {
			set[f] = struct{}{}
		}
	}
	for _, f := range authz.DefaultBundle() {
		set[f] = struct{}{}
	}

	if _, grants := set[authz.FeatureUpdateFeatures]; grants {
		if _, admin := set[authz.FeatureIsAdmin]; !admin {
			return authz.ManagerBundle()
		}
	}

	features := make([]string, 0, len(set))
	for f := range set {
		features = append(features, f)
	}
	sort.Strings(features)
	return features
}

// SetFeatures replaces a target account's feature set after normalizing
// the request. Route-level authorization happens in the handler.
func (s *Service) SetFeatures(ctx context.Context, targetID int64, requested []string) (*User, error) {
	return s.repo.SetFeatures(ctx, targetID, NormalizeFeatures(requested))
}
