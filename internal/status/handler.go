// Package status exposes the health endpoint consumed by uptime checks.
package status

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/platform/httpx"
)

// Handler reports service and dependency health.
type Handler struct {
	logger *slog.Logger
	pool   *pgxpool.Pool
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, pool *pgxpool.Pool) *Handler {
	return &Handler{logger: logger, pool: pool}
}

// MountRoutes registers the status route.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/status", h.show)
}

type databaseStatus struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
}

type statusResponse struct {
	UpdatedAt    time.Time `json:"updated_at"`
	Dependencies struct {
		Database databaseStatus `json:"database"`
	} `json:"dependencies"`
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{UpdatedAt: time.Now().UTC()}

	start := time.Now()
	if err := h.pool.Ping(r.Context()); err != nil {
		h.logger.Error("status database ping", slog.Any("error", err))
		resp.Dependencies.Database = databaseStatus{Status: "unhealthy", LatencyMS: time.Since(start).Milliseconds()}
		httpx.JSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	resp.Dependencies.Database = databaseStatus{Status: "healthy", LatencyMS: time.Since(start).Milliseconds()}
	httpx.JSON(w, http.StatusOK, resp)
}
