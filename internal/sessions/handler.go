package sessions

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/authz"
	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/platform/httpx"
)

// Handler wires the login/logout endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	authz     authz.Middleware
	validator *validator.Validate
	secure    bool
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, mw authz.Middleware, secure bool) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		authz:     mw,
		validator: validator.New(),
		secure:    secure,
	}
}

// MountRoutes registers session routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.authz.Require(authz.FeatureCreateSession)).Post("/sessions", h.create)
	r.With(h.authz.Require(authz.FeatureReadSession)).Delete("/sessions", h.destroy)
}

type createSessionRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, h.logger, httpx.Validation(
			"Os dados enviados são inválidos.",
			"Informe um email válido e uma senha entre 8 e 72 caracteres.",
		).WithCause(err))
		return
	}

	session, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httpx.RespondError(w, h.logger, httpx.Unauthorized(
				"Credenciais inválidas.",
				"Verifique se os dados enviados estão corretos.",
			))
			return
		}
		httpx.RespondError(w, h.logger, err)
		return
	}

	authz.SetSessionCookie(w, session.Token, h.service.TTL(), h.secure)
	httpx.JSON(w, http.StatusCreated, session)
}

func (h *Handler) destroy(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(authz.SessionCookieName)
	if err != nil {
		// Require(read:session) already rejected anonymous callers, so a
		// missing cookie here means the request was tampered with.
		httpx.RespondError(w, h.logger, httpx.Unauthorized("", ""))
		return
	}

	expired, err := h.service.Logout(r.Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, authz.ErrNoSession) {
			authz.ClearSessionCookie(w, h.secure)
			httpx.RespondError(w, h.logger, httpx.Unauthorized(
				"Usuário não possui sessão ativa.",
				"Verifique se este usuário está logado.",
			))
			return
		}
		httpx.RespondError(w, h.logger, err)
		return
	}

	authz.ClearSessionCookie(w, h.secure)
	httpx.JSON(w, http.StatusOK, expired)
}
