package handler

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"debatetab/internal/registration/models"
	"debatetab/internal/registration/service"
	"debatetab/internal/tables"
	"debatetab/pkg/domain"
	dErrors "debatetab/pkg/domain-errors"
	"debatetab/pkg/platform/httputil"
	"debatetab/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/registration-mocks.go -package=mocks Service

// Service defines the registration operations the handler needs.
type Service interface {
	RegisterInstitution(ctx context.Context, slug string, req *models.InstitutionRegistrationRequest) (*models.Registered, error)
	RegisterTeam(ctx context.Context, slug string, req *models.TeamRegistrationRequest) (*models.Registered, error)
	RegisterAdjudicator(ctx context.Context, slug string, req *models.AdjudicatorRegistrationRequest) (*models.Registered, error)
	RegisterSpeaker(ctx context.Context, slug string, teamID domain.TeamID, req *models.SpeakerRequest) (*models.Registered, error)
	SaveAllocations(ctx context.Context, slug string, req *models.AllocationRequest) (*models.AllocationsSaved, error)
	InstitutionTable(ctx context.Context, slug string) (*service.InstitutionReport, error)
	TeamTable(ctx context.Context, slug string) (*tables.Table, error)
	AdjudicatorTable(ctx context.Context, slug string) (*tables.Table, error)
	CoachLanding(ctx context.Context, slug, key string) (*service.CoachLanding, error)
	Questions(ctx context.Context, slug string, kind models.QuestionKind) ([]*models.Question, error)
	SaveQuestions(ctx context.Context, slug string, kind models.QuestionKind, req *models.QuestionsRequest) (*models.QuestionsSaved, error)
}

// Handler serves the public registration forms and the admin registration
// pages.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the public registration endpoints. Whether each one is
// open is decided by tournament preferences.
func (h *Handler) Register(r chi.Router) {
	r.Post("/tournaments/{slug}/register/institution", h.HandleRegisterInstitution)
	r.Post("/tournaments/{slug}/register/team", h.HandleRegisterTeam)
	r.Post("/tournaments/{slug}/register/adjudicator", h.HandleRegisterAdjudicator)
	r.Post("/tournaments/{slug}/register/teams/{team}/speaker", h.HandleRegisterSpeaker)
}

// RegisterCoach mounts the coach's private page. The url key is the only
// credential.
func (h *Handler) RegisterCoach(r chi.Router) {
	r.Get("/tournaments/{slug}/registration/coach/{key}", h.HandleCoachLanding)
}

// RegisterAdmin mounts the admin registration pages. The caller applies the
// admin check.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/tournaments/{slug}/registration/institutions", h.HandleInstitutionTable)
	r.Post("/tournaments/{slug}/registration/institutions/allocations", h.HandleSaveAllocations)
	r.Get("/tournaments/{slug}/registration/teams", h.HandleTeamTable)
	r.Get("/tournaments/{slug}/registration/adjudicators", h.HandleAdjudicatorTable)
	r.Get("/tournaments/{slug}/registration/questions/{kind}", h.HandleListQuestions)
	r.Put("/tournaments/{slug}/registration/questions/{kind}", h.HandleSaveQuestions)
}

func (h *Handler) HandleRegisterInstitution(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	slug := chi.URLParam(r, "slug")

	req, ok := httputil.DecodeAndPrepare[models.InstitutionRegistrationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	res, err := h.service.RegisterInstitution(ctx, slug, req)
	h.writeRegistered(ctx, w, slug, "institution", res, err)
}

func (h *Handler) HandleRegisterTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	slug := chi.URLParam(r, "slug")

	req, ok := httputil.DecodeAndPrepare[models.TeamRegistrationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	res, err := h.service.RegisterTeam(ctx, slug, req)
	h.writeRegistered(ctx, w, slug, "team", res, err)
}

func (h *Handler) HandleRegisterAdjudicator(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	slug := chi.URLParam(r, "slug")

	req, ok := httputil.DecodeAndPrepare[models.AdjudicatorRegistrationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	res, err := h.service.RegisterAdjudicator(ctx, slug, req)
	h.writeRegistered(ctx, w, slug, "adjudicator", res, err)
}

func (h *Handler) HandleRegisterSpeaker(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	slug := chi.URLParam(r, "slug")

	teamID, err := domain.ParseTypedID[domain.TeamID](chi.URLParam(r, "team"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.SpeakerRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	res, err := h.service.RegisterSpeaker(ctx, slug, teamID, req)
	h.writeRegistered(ctx, w, slug, "speaker", res, err)
}

func (h *Handler) writeRegistered(ctx context.Context, w http.ResponseWriter, slug, what string, res *models.Registered, err error) {
	requestID := requestcontext.RequestID(ctx)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "registration failed",
				"request_id", requestID,
				"tournament", slug,
				"registrant", what,
				"error", err,
			)
		} else {
			h.logger.WarnContext(ctx, "registration rejected",
				"request_id", requestID,
				"tournament", slug,
				"registrant", what,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "registered",
		"request_id", requestID,
		"tournament", slug,
		"registrant", what,
		"id", res.ID,
	)
	httputil.WriteJSON(w, http.StatusCreated, res)
}

func (h *Handler) HandleSaveAllocations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	slug := chi.URLParam(r, "slug")

	req, ok := httputil.DecodeAndPrepare[models.AllocationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	res, err := h.service.SaveAllocations(ctx, slug, req)
	if err != nil {
		h.logFailure(ctx, "failed to save allocations", slug, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) HandleInstitutionTable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")
	report, err := h.service.InstitutionTable(ctx, slug)
	if err != nil {
		h.logFailure(ctx, "failed to build institution table", slug, err)
		httputil.WriteError(w, err)
		return
	}
	if wantsXLSX(r) {
		h.writeXLSX(w, r, slug+"-institutions", report.Table)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) HandleCoachLanding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")
	landing, err := h.service.CoachLanding(ctx, slug, chi.URLParam(r, "key"))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.WarnContext(ctx, "unknown coach key",
				"request_id", requestcontext.RequestID(ctx),
				"tournament", slug,
			)
		} else {
			h.logFailure(ctx, "failed to build coach page", slug, err)
		}
		httputil.WriteError(w, err)
		return
	}
	if wantsXLSX(r) {
		h.writeXLSX(w, r, slug+"-coach", landing.Adjudicators, landing.Teams)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, landing)
}

func (h *Handler) HandleTeamTable(w http.ResponseWriter, r *http.Request) {
	h.table(w, r, "teams", h.service.TeamTable)
}

func (h *Handler) HandleAdjudicatorTable(w http.ResponseWriter, r *http.Request) {
	h.table(w, r, "adjudicators", h.service.AdjudicatorTable)
}

func (h *Handler) table(w http.ResponseWriter, r *http.Request, name string, build func(context.Context, string) (*tables.Table, error)) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")
	table, err := build(ctx, slug)
	if err != nil {
		h.logFailure(ctx, "failed to build "+name+" table", slug, err)
		httputil.WriteError(w, err)
		return
	}
	if wantsXLSX(r) {
		h.writeXLSX(w, r, slug+"-"+name, table)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"table": table})
}

func wantsXLSX(r *http.Request) bool {
	return r.URL.Query().Get("format") == "xlsx"
}

// writeXLSX renders into memory first so a failed export can still answer
// with a JSON error.
func (h *Handler) writeXLSX(w http.ResponseWriter, r *http.Request, filename string, sheets ...*tables.Table) {
	var buf bytes.Buffer
	if err := tables.WriteXLSX(&buf, sheets...); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to export table",
			"request_id", requestcontext.RequestID(r.Context()),
			"file", filename,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to export table"))
		return
	}
	w.Header().Set("Content-Type", tables.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".xlsx"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) HandleListQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")
	kind, err := models.ParseQuestionKind(chi.URLParam(r, "kind"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	questions, err := h.service.Questions(ctx, slug, kind)
	if err != nil {
		h.logFailure(ctx, "failed to list questions", slug, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"questions": questions})
}

func (h *Handler) HandleSaveQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	slug := chi.URLParam(r, "slug")
	kind, err := models.ParseQuestionKind(chi.URLParam(r, "kind"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.QuestionsRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	res, err := h.service.SaveQuestions(ctx, slug, kind, req)
	if err != nil {
		h.logFailure(ctx, "failed to save questions", slug, err)
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "questions saved",
		"request_id", requestID,
		"tournament", slug,
		"kind", string(kind),
		"message", res.Message,
	)
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) logFailure(ctx context.Context, msg, slug string, err error) {
	h.logger.ErrorContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"tournament", slug,
		"error", err,
	)
}
