package authz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/platform/httpx"
)

// ErrNoSession indicates the presented token does not match an unexpired
// session.
var ErrNoSession = errors.New("authz: session not found or expired")

// Authenticator resolves a session token into a principal. A successful
// resolution renews the session as a side effect and returns the new
// expiry so the middleware can refresh the cookie.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (Principal, time.Time, error)
}

// Middleware attaches a principal to each request and gates handlers on
// a single required feature.
type Middleware struct {
	Auth   Authenticator
	Logger *slog.Logger
	Secure bool
}

// Require resolves the caller and only invokes next when the resolved
// feature set contains the required feature.
//
// A present cookie that fails session lookup is an authentication error,
// even for routes an anonymous caller could reach; the response clears
// the stale cookie. Without a cookie the caller is the anonymous
// pseudo-user carrying the fixed anonymous bundle.
func (m Middleware) Require(feature string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := Anonymous()

			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				resolved, expiresAt, err := m.Auth.Authenticate(r.Context(), cookie.Value)
				if err != nil {
					if !errors.Is(err, ErrNoSession) && m.Logger != nil {
						m.Logger.Error("authenticate session", slog.Any("error", err))
					}
					ClearSessionCookie(w, m.Secure)
					httpx.RespondError(w, m.Logger, httpx.Unauthorized(
						"Usuário não possui sessão ativa.",
						"Verifique se este usuário está logado e tente novamente.",
					).WithCause(err))
					return
				}
				principal = resolved
				SetSessionCookie(w, cookie.Value, time.Until(expiresAt), m.Secure)
			}

			if !principal.Can(feature) {
				httpx.RespondError(w, m.Logger, httpx.Forbidden(
					"Usuário não pode executar esta operação.",
					fmt.Sprintf("Verifique se este usuário possui a feature %q.", feature),
				))
				return
			}

			ctx := ContextWithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
