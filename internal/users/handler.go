package users

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

// Handler wires account management endpoints.
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

// MountRoutes registers user routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.authz.Require(authz.FeatureCreateUser)).Post("/users", h.create)
	r.With(h.authz.Require(authz.FeatureReadUserSelf)).Get("/user", h.showSelf)
	r.With(h.authz.Require(authz.FeatureUpdateUserSelf)).Patch("/user", h.updateSelf)
	r.With(h.authz.Require(authz.FeatureReadUserList)).Get("/users", h.list)
	r.With(h.authz.Require(authz.FeatureReadUser)).Get("/users/{id}", h.show)
	r.With(h.authz.Require(authz.FeatureUpdateFeatures)).Patch("/users/{id}/features", h.setFeatures)
}

type createUserRequest struct {
	Name  string `json:"name" validate:"required,min=3,max=100"`
	Email string `json:"email" validate:"required,email"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, h.logger, httpx.Validation(
			"Os dados enviados são inválidos.",
			"Informe um nome entre 3 e 100 caracteres e um email válido.",
		).WithCause(err))
		return
	}

	user, err := h.service.Create(r.Context(), req.Name, req.Email)
	if err != nil {
		httpx.RespondError(w, h.logger, mapUserError(err))
		return
	}
	httpx.JSON(w, http.StatusCreated, user)
}

func (h *Handler) showSelf(w http.ResponseWriter, r *http.Request) {
	principal := authz.PrincipalFromContext(r.Context())
	user, err := h.service.Get(r.Context(), principal.UserID)
	if err != nil {
		httpx.RespondError(w, h.logger, mapUserError(err))
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

type updateSelfRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
}

func (h *Handler) updateSelf(w http.ResponseWriter, r *http.Request) {
	var req updateSelfRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, h.logger, httpx.Validation(
			"Os dados enviados são inválidos.",
			"Informe um nome entre 3 e 100 caracteres ou uma senha entre 8 e 72 caracteres.",
		).WithCause(err))
		return
	}

	principal := authz.PrincipalFromContext(r.Context())
	user, err := h.service.UpdateSelf(r.Context(), principal.UserID, req.Name, req.Password)
	if err != nil {
		httpx.RespondError(w, h.logger, mapUserError(err))
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, users)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, h.logger, httpx.Validation(
			"O id informado é inválido.",
			"Informe um id numérico.",
		))
		return
	}
	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, h.logger, mapUserError(err))
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

type setFeaturesRequest struct {
	Features []string `json:"features" validate:"required"`
}

func (h *Handler) setFeatures(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, h.logger, httpx.Validation(
			"O id informado é inválido.",
			"Informe um id numérico.",
		))
		return
	}

	var req setFeaturesRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, h.logger, httpx.Validation(
			"Os dados enviados são inválidos.",
			"Informe a lista de features desejada.",
		).WithCause(err))
		return
	}

	target, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, h.logger, mapUserError(err))
		return
	}

	actor := authz.PrincipalFromContext(r.Context())
	if err := AuthorizeFeatureEdit(actor, target, req.Features); err != nil {
		httpx.RespondError(w, h.logger, mapUserError(err))
		return
	}

	updated, err := h.service.SetFeatures(r.Context(), id, req.Features)
	if err != nil {
		httpx.RespondError(w, h.logger, mapUserError(err))
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func mapUserError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return httpx.NotFound(
			"O usuário informado não foi encontrado no sistema.",
			"Verifique se o id está correto.",
		)
	case errors.Is(err, ErrEmailTaken):
		return httpx.Validation(
			"O email informado já está sendo usado.",
			"Utilize outro email para realizar o cadastro.",
		)
	case errors.Is(err, ErrNameTaken):
		return httpx.Validation(
			"O nome informado já está sendo usado.",
			"Utilize outro nome para realizar o cadastro.",
		)
	case errors.Is(err, ErrEditOwnFeatures):
		return httpx.Forbidden(
			"Você não pode editar suas próprias permissões.",
			"Solicite a outro administrador que realize a alteração.",
		)
	case errors.Is(err, ErrEditAdminFeatures):
		return httpx.Forbidden(
			"Não é possível editar permissões de um administrador.",
			"Contas de administrador só podem ser alteradas diretamente no banco de dados.",
		)
	case errors.Is(err, ErrEditManagerFeatures):
		return httpx.Forbidden(
			"Não é possível editar permissões de um gerente.",
			"Solicite a um administrador que realize a alteração.",
		)
	case errors.Is(err, ErrGrantRequiresAdmin):
		return httpx.Forbidden(
			"Apenas administradores podem conceder a permissão de gerenciar permissões.",
			"Solicite a um administrador que realize a alteração.",
		)
	default:
		return err
	}
}
