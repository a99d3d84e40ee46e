package team

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/authz"
	"github.com/gabrielmarchimedina-dev/marchimedina-sub000/internal/platform/httpx"
)

// Handler wires the public team page data and the management surface.
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

// MountRoutes registers team routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.authz.Require(authz.FeatureReadTeamMemberList)).Get("/team", h.list)
	r.With(h.authz.Require(authz.FeatureCreateTeamMember)).Post("/team", h.create)
	r.With(h.authz.Require(authz.FeatureReadTeamMemberList)).Get("/team/{id}", h.show)
	r.With(h.authz.Require(authz.FeatureUpdateTeamMember)).Patch("/team/{id}", h.update)
	r.With(h.authz.Require(authz.FeatureDeleteTeamMember)).Delete("/team/{id}", h.destroy)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	principal := authz.PrincipalFromContext(r.Context())

	// Operators with edit rights also see inactive profiles.
	var (
		members []Member
		err     error
	)
	if principal.Can(authz.FeatureUpdateTeamMember) {
		members, err = h.service.ListAll(r.Context())
	} else {
		members, err = h.service.ListPublic(r.Context())
	}
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, members)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateMemberRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, h.logger, httpx.Validation(
			"Os dados enviados são inválidos.",
			"Informe ao menos nome e cargo do integrante.",
		).WithCause(err))
		return
	}

	member, err := h.service.Create(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, member)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, ok := h.memberID(w, r)
	if !ok {
		return
	}
	member, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, h.logger, mapTeamError(err))
		return
	}
	httpx.JSON(w, http.StatusOK, member)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.memberID(w, r)
	if !ok {
		return
	}

	var req UpdateMemberRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, h.logger, httpx.Validation(
			"Os dados enviados são inválidos.",
			"Verifique os campos do integrante e tente novamente.",
		).WithCause(err))
		return
	}

	member, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		httpx.RespondError(w, h.logger, mapTeamError(err))
		return
	}
	httpx.JSON(w, http.StatusOK, member)
}

func (h *Handler) destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := h.memberID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, h.logger, mapTeamError(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) memberID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, h.logger, httpx.Validation(
			"O id informado é inválido.",
			"Informe um id numérico.",
		))
		return 0, false
	}
	return id, true
}

func mapTeamError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return httpx.NotFound(
			"O integrante informado não foi encontrado no sistema.",
			"Verifique se o id está correto.",
		)
	}
	return err
}
