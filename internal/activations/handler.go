package activations

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/authz"
	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/platform/httpx"
)

// Handler wires activation endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	authz     authz.Middleware
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, mw authz.Middleware) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		authz:     mw,
		validator: validator.New(),
	}
}

// MountRoutes registers activation routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.authz.Require(authz.FeatureReadActivationToken)).Get("/activations/{token}", h.show)
	r.With(h.authz.Require(authz.FeatureReadActivationToken)).Patch("/activations/{token}", h.use)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	activation, err := h.service.Get(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		httpx.RespondError(w, h.logger, mapActivationError(err))
		return
	}
	httpx.JSON(w, http.StatusOK, activation)
}

type useActivationRequest struct {
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (h *Handler) use(w http.ResponseWriter, r *http.Request) {
	var req useActivationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, h.logger, httpx.Validation(
			"Os dados enviados são inválidos.",
			"Informe uma senha entre 8 e 72 caracteres.",
		).WithCause(err))
		return
	}

	activation, err := h.service.Use(r.Context(), chi.URLParam(r, "token"), req.Password)
	if err != nil {
		httpx.RespondError(w, h.logger, mapActivationError(err))
		return
	}
	httpx.JSON(w, http.StatusOK, activation)
}

func mapActivationError(err error) error {
	if errors.Is(err, ErrTokenInvalid) {
		return httpx.NotFound(
			"O token de ativação utilizado não foi encontrado ou expirou.",
			"Realize um novo cadastro para receber um novo token.",
		)
	}
	return err
}
