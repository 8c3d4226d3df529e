package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"debatetab/internal/venues/models"
	"debatetab/internal/venues/service"
	"debatetab/pkg/domain"
	"debatetab/pkg/platform/httputil"
	"debatetab/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/venues-mocks.go -package=mocks Service

// Service defines the room allocation operations the handler needs.
type Service interface {
	EditInfo(ctx context.Context, slug string, seq int, multiRound bool) (*service.EditInfo, error)
	ListCategories(ctx context.Context, slug string) ([]*models.VenueCategory, error)
	SaveCategories(ctx context.Context, slug string, req *models.SaveCategoriesRequest) (*models.CategoriesSaved, error)
	ListConstraints(ctx context.Context, slug string) ([]*models.VenueConstraint, error)
	SaveConstraints(ctx context.Context, slug string, req *models.SaveConstraintsRequest) (*models.ConstraintsSaved, error)
	SubjectChoices(ctx context.Context, slug string) ([]models.SubjectChoice, error)
}

// Handler serves the room allocation and venue editing endpoints. All
// routes are admin-only; the caller mounts them behind the admin check.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the venue endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/tournaments/{slug}/rounds/{seq}/venues/edit", h.HandleEdit)
	r.Get("/tournaments/{slug}/rounds/{seq}/venues/edit-concurrent", h.HandleEditConcurrent)
	r.Get("/tournaments/{slug}/venues/categories", h.HandleListCategories)
	r.Put("/tournaments/{slug}/venues/categories", h.HandleSaveCategories)
	r.Get("/tournaments/{slug}/venues/constraints", h.HandleListConstraints)
	r.Put("/tournaments/{slug}/venues/constraints", h.HandleSaveConstraints)
	r.Get("/tournaments/{slug}/venues/constraints/subjects", h.HandleSubjectChoices)
}

// HandleEdit handles GET .../venues/edit for a single round.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	h.editInfo(w, r, false)
}

// HandleEditConcurrent handles GET .../venues/edit-concurrent, which folds
// every concurrent elimination round into one payload.
func (h *Handler) HandleEditConcurrent(w http.ResponseWriter, r *http.Request) {
	h.editInfo(w, r, true)
}

func (h *Handler) editInfo(w http.ResponseWriter, r *http.Request, multiRound bool) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()
	slug := chi.URLParam(r, "slug")

	seq, err := domain.ParseSeq(chi.URLParam(r, "seq"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	info, err := h.service.EditInfo(ctx, slug, seq, multiRound)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build room allocation payload",
			"request_id", requestID,
			"tournament", slug,
			"round_seq", seq,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "room allocation payload built",
		"request_id", requestID,
		"tournament", slug,
		"round_seq", seq,
		"multi_round", multiRound,
		"debates", len(info.Debates),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, info)
}

func (h *Handler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")
	cats, err := h.service.ListCategories(ctx, slug)
	if err != nil {
		h.logFailure(ctx, "failed to list venue categories", slug, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"categories": cats})
}

func (h *Handler) HandleSaveCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	slug := chi.URLParam(r, "slug")

	req, ok := httputil.DecodeAndPrepare[models.SaveCategoriesRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	res, err := h.service.SaveCategories(ctx, slug, req)
	if err != nil {
		h.logFailure(ctx, "failed to save venue categories", slug, err)
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "venue categories saved",
		"request_id", requestID,
		"tournament", slug,
		"message", res.Message,
	)
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) HandleListConstraints(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")
	out, err := h.service.ListConstraints(ctx, slug)
	if err != nil {
		h.logFailure(ctx, "failed to list venue constraints", slug, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"constraints": out})
}

func (h *Handler) HandleSaveConstraints(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	slug := chi.URLParam(r, "slug")

	req, ok := httputil.DecodeAndPrepare[models.SaveConstraintsRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	res, err := h.service.SaveConstraints(ctx, slug, req)
	if err != nil {
		h.logFailure(ctx, "failed to save venue constraints", slug, err)
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "venue constraints saved",
		"request_id", requestID,
		"tournament", slug,
		"message", res.Message,
	)
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) HandleSubjectChoices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")
	choices, err := h.service.SubjectChoices(ctx, slug)
	if err != nil {
		h.logFailure(ctx, "failed to list constraint subjects", slug, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"subjects": choices})
}

func (h *Handler) logFailure(ctx context.Context, msg, slug string, err error) {
	h.logger.ErrorContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"tournament", slug,
		"error", err,
	)
}
