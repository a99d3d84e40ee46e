package articles

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

// Handler wires public blog endpoints and the management surface.
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

// MountRoutes registers article routes. Management routes live under
// /articles/id/{id} so the public slug route stays a catch-all.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.authz.Require(authz.FeatureReadArticleList)).Get("/articles", h.list)
	r.With(h.authz.Require(authz.FeatureCreateArticle)).Post("/articles", h.create)
	r.With(h.authz.Require(authz.FeatureUpdateArticle)).Get("/articles/id/{id}", h.show)
	r.With(h.authz.Require(authz.FeatureUpdateArticle)).Patch("/articles/id/{id}", h.update)
	r.With(h.authz.Require(authz.FeatureDeleteArticle)).Delete("/articles/id/{id}", h.destroy)
	r.With(h.authz.Require(authz.FeatureUpdateArticle)).Get("/articles/id/{id}/history", h.history)
	r.With(h.authz.Require(authz.FeatureReadArticle)).Get("/articles/{slug}", h.showPublished)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, perPage := httpx.ParsePage(r)
	list, total, err := h.service.ListPublished(r.Context(), page, perPage)
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"articles":   list,
		"pagination": httpx.NewPagination(page, perPage, total),
	})
}

func (h *Handler) showPublished(w http.ResponseWriter, r *http.Request) {
	article, err := h.service.GetPublished(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httpx.RespondError(w, h.logger, mapArticleError(err))
		return
	}
	httpx.JSON(w, http.StatusOK, article)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateArticleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, h.logger, httpx.Validation(
			"Os dados enviados são inválidos.",
			"Informe ao menos título e corpo do artigo.",
		).WithCause(err))
		return
	}

	principal := authz.PrincipalFromContext(r.Context())
	article, err := h.service.Create(r.Context(), req, principal.UserID)
	if err != nil {
		httpx.RespondError(w, h.logger, mapArticleError(err))
		return
	}
	httpx.JSON(w, http.StatusCreated, article)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, ok := h.articleID(w, r)
	if !ok {
		return
	}
	article, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, h.logger, mapArticleError(err))
		return
	}
	httpx.JSON(w, http.StatusOK, article)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.articleID(w, r)
	if !ok {
		return
	}

	var req UpdateArticleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, h.logger, httpx.Validation(
			"Os dados enviados são inválidos.",
			"Verifique os campos do artigo e tente novamente.",
		).WithCause(err))
		return
	}

	principal := authz.PrincipalFromContext(r.Context())
	article, err := h.service.Update(r.Context(), id, req, principal.UserID)
	if err != nil {
		httpx.RespondError(w, h.logger, mapArticleError(err))
		return
	}
	httpx.JSON(w, http.StatusOK, article)
}

func (h *Handler) destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := h.articleID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, h.logger, mapArticleError(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	id, ok := h.articleID(w, r)
	if !ok {
		return
	}
	entries, err := h.service.History(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, h.logger, mapArticleError(err))
		return
	}
	httpx.JSON(w, http.StatusOK, entries)
}

func (h *Handler) articleID(w http.ResponseWriter, r *http.Request) (int64, bool) {
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

func mapArticleError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return httpx.NotFound(
			"O artigo informado não foi encontrado no sistema.",
			"Verifique se o slug ou id está correto.",
		)
	case errors.Is(err, ErrSlugTaken):
		return httpx.Validation(
			"O slug informado já está sendo usado.",
			"Utilize outro slug para este artigo.",
		)
	default:
		return err
	}
}
