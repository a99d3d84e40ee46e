package authz

import (
	"context"
	"time"
)

// Principal is the resolved caller of a request: either an authenticated
// account loaded from the session cookie, or the anonymous pseudo-user.
// A zero UserID marks the anonymous shape.
type Principal struct {
	UserID    int64
	Name      string
	Email     string
	Features  []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Authenticated reports whether the principal has a stored identity.
func (p Principal) Authenticated() bool { return p.UserID != 0 }

// Can checks a single feature against the principal's set.
func (p Principal) Can(feature string) bool { return Can(p.Features, feature) }

// Anonymous returns the synthetic principal carrying the anonymous bundle.
func Anonymous() Principal {
	return Principal{Features: AnonymousBundle()}
}

type principalContextKey struct{}

// ContextWithPrincipal stores the resolved principal in the context.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext extracts the principal; callers behind the
// middleware always find one, everyone else gets the anonymous shape.
func PrincipalFromContext(ctx context.Context) Principal {
	if p, ok := ctx.Value(principalContextKey{}).(Principal); ok {
		return p
	}
	return Anonymous()
}
