package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/activations"
	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/articles"
	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/observability"
	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/platform/httpx"
	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/sessions"
	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/status"
	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/team"
	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger  *slog.Logger
	Config  *Config
	Metrics *observability.Metrics

	SessionsHandler    *sessions.Handler
	UsersHandler       *users.Handler
	ActivationsHandler *activations.Handler
	ArticlesHandler    *articles.Handler
	TeamHandler        *team.Handler
	StatusHandler      *status.Handler
}

// NewRouter constructs the chi.Router with all API routes mounted.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Route("/api/v1", func(api chi.Router) {
		params.StatusHandler.MountRoutes(api)
		params.SessionsHandler.MountRoutes(api)
		params.UsersHandler.MountRoutes(api)
		params.ActivationsHandler.MountRoutes(api)
		params.ArticlesHandler.MountRoutes(api)
		params.TeamHandler.MountRoutes(api)
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.RespondError(w, params.Logger, httpx.NotFound(
			"O recurso solicitado não foi encontrado no sistema.",
			"Verifique se o caminho está correto.",
		))
	})

	return r
}
