package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"debatetab/internal/api/service"
	bmodels "debatetab/internal/breaks/models"
	pmodels "debatetab/internal/participants/models"
	rmodels "debatetab/internal/results/models"
	tmodels "debatetab/internal/tournaments/models"
	"debatetab/pkg/domain"
	dErrors "debatetab/pkg/domain-errors"
	"debatetab/pkg/platform/httputil"
	"debatetab/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/api-mocks.go -package=mocks Service

// Service defines the REST API operations the handler needs.
type Service interface {
	Root() *service.Root
	V1Root() *service.VersionRoot
	ListTournaments(ctx context.Context) ([]*tmodels.Tournament, error)
	Tournament(ctx context.Context, slug string) (*tmodels.Tournament, error)
	ListInstitutions(ctx context.Context) ([]*pmodels.Institution, error)
	ListRounds(ctx context.Context, slug string) ([]*tmodels.Round, error)
	Round(ctx context.Context, slug string, seq int) (*tmodels.Round, error)
	PatchRound(ctx context.Context, slug string, seq int, patch *tmodels.RoundPatch) (*tmodels.Round, error)
	UpdateRound(ctx context.Context, slug string, seq int, update *tmodels.RoundUpdate) (*tmodels.Round, error)
	ListMotions(ctx context.Context, slug string) ([]*tmodels.Motion, error)
	Motion(ctx context.Context, slug string, id domain.MotionID) (*tmodels.Motion, error)
	ListSpeakerCategories(ctx context.Context, slug string) ([]*pmodels.SpeakerCategory, error)
	SpeakerEligibility(ctx context.Context, slug string, id domain.SpeakerCatID) (*service.SpeakerEligibility, error)
	ListBreakCategories(ctx context.Context, slug string) ([]*bmodels.BreakCategory, error)
	BreakEligibility(ctx context.Context, slug string, id domain.BreakCategoryID) (*service.TeamEligibility, error)
	BreakingTeams(ctx context.Context, slug string, id domain.BreakCategoryID) ([]*bmodels.BreakingTeam, error)
	GenerateBreak(ctx context.Context, slug string, id domain.BreakCategoryID) ([]*bmodels.BreakingTeam, error)
	DeleteBreak(ctx context.Context, slug string, id domain.BreakCategoryID) error
	UpdateBreak(ctx context.Context, slug string, id domain.BreakCategoryID, req *bmodels.RemarkRequest) ([]*bmodels.BreakingTeam, error)
	Ballots(ctx context.Context, slug string, seq int, debateID domain.DebateID) ([]*rmodels.BallotSubmission, error)
}

// Handler serves the versioned REST API. Register and RegisterAdmin expect
// a router already mounted at the version prefix; the caller puts the admin
// check in front of RegisterAdmin.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.HandleV1Root)
	r.Get("/institutions", h.HandleListInstitutions)
	r.Get("/tournaments", h.HandleListTournaments)
	r.Get("/tournaments/{slug}", h.HandleTournament)
	r.Get("/tournaments/{slug}/rounds", h.HandleListRounds)
	r.Get("/tournaments/{slug}/rounds/{seq}", h.HandleRound)
	r.Get("/tournaments/{slug}/motions", h.HandleListMotions)
	r.Get("/tournaments/{slug}/motions/{id}", h.HandleMotion)
	r.Get("/tournaments/{slug}/speaker-categories", h.HandleListSpeakerCategories)
	r.Get("/tournaments/{slug}/speaker-categories/{id}/eligibility", h.HandleSpeakerEligibility)
	r.Get("/tournaments/{slug}/break-categories", h.HandleListBreakCategories)
	r.Get("/tournaments/{slug}/break-categories/{id}/break", h.HandleBreakingTeams)
}

func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Patch("/tournaments/{slug}/rounds/{seq}", h.HandlePatchRound)
	r.Put("/tournaments/{slug}/rounds/{seq}", h.HandleUpdateRound)
	r.Get("/tournaments/{slug}/break-categories/{id}/eligibility", h.HandleBreakEligibility)
	r.Post("/tournaments/{slug}/break-categories/{id}/break", h.HandleGenerateBreak)
	r.Delete("/tournaments/{slug}/break-categories/{id}/break", h.HandleDeleteBreak)
	r.Patch("/tournaments/{slug}/break-categories/{id}/break", h.HandleUpdateBreak)
	r.Get("/tournaments/{slug}/rounds/{seq}/pairings/{debate}/ballots", h.HandleBallots)
}

// HandleRoot serves GET /api.
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.Root())
}

func (h *Handler) HandleV1Root(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.V1Root())
}

func (h *Handler) HandleListInstitutions(w http.ResponseWriter, r *http.Request) {
	insts, err := h.service.ListInstitutions(r.Context())
	h.respond(w, r, "failed to list institutions", insts, err)
}

func (h *Handler) HandleListTournaments(w http.ResponseWriter, r *http.Request) {
	ts, err := h.service.ListTournaments(r.Context())
	h.respond(w, r, "failed to list tournaments", ts, err)
}

func (h *Handler) HandleTournament(w http.ResponseWriter, r *http.Request) {
	t, err := h.service.Tournament(r.Context(), chi.URLParam(r, "slug"))
	h.respond(w, r, "failed to load tournament", t, err)
}

func (h *Handler) HandleListRounds(w http.ResponseWriter, r *http.Request) {
	rounds, err := h.service.ListRounds(r.Context(), chi.URLParam(r, "slug"))
	h.respond(w, r, "failed to list rounds", rounds, err)
}

func (h *Handler) HandleRound(w http.ResponseWriter, r *http.Request) {
	seq, err := domain.ParseSeq(chi.URLParam(r, "seq"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	round, err := h.service.Round(r.Context(), chi.URLParam(r, "slug"), seq)
	h.respond(w, r, "failed to load round", round, err)
}

func (h *Handler) HandlePatchRound(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	seq, err := domain.ParseSeq(chi.URLParam(r, "seq"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[tmodels.RoundPatch](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	round, err := h.service.PatchRound(ctx, chi.URLParam(r, "slug"), seq, req)
	h.respond(w, r, "failed to patch round", round, err)
}

func (h *Handler) HandleUpdateRound(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	seq, err := domain.ParseSeq(chi.URLParam(r, "seq"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[tmodels.RoundUpdate](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	round, err := h.service.UpdateRound(ctx, chi.URLParam(r, "slug"), seq, req)
	h.respond(w, r, "failed to update round", round, err)
}

func (h *Handler) HandleListMotions(w http.ResponseWriter, r *http.Request) {
	motions, err := h.service.ListMotions(r.Context(), chi.URLParam(r, "slug"))
	h.respond(w, r, "failed to list motions", motions, err)
}

func (h *Handler) HandleMotion(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseTypedID[domain.MotionID](chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	motion, err := h.service.Motion(r.Context(), chi.URLParam(r, "slug"), id)
	h.respond(w, r, "failed to load motion", motion, err)
}

func (h *Handler) HandleListSpeakerCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.service.ListSpeakerCategories(r.Context(), chi.URLParam(r, "slug"))
	h.respond(w, r, "failed to list speaker categories", cats, err)
}

func (h *Handler) HandleSpeakerEligibility(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseTypedID[domain.SpeakerCatID](chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	elig, err := h.service.SpeakerEligibility(r.Context(), chi.URLParam(r, "slug"), id)
	h.respond(w, r, "failed to load speaker eligibility", elig, err)
}

func (h *Handler) HandleListBreakCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.service.ListBreakCategories(r.Context(), chi.URLParam(r, "slug"))
	h.respond(w, r, "failed to list break categories", cats, err)
}

func (h *Handler) HandleBreakEligibility(w http.ResponseWriter, r *http.Request) {
	id, ok := h.breakCategoryID(w, r)
	if !ok {
		return
	}
	elig, err := h.service.BreakEligibility(r.Context(), chi.URLParam(r, "slug"), id)
	h.respond(w, r, "failed to load break eligibility", elig, err)
}

func (h *Handler) HandleBreakingTeams(w http.ResponseWriter, r *http.Request) {
	id, ok := h.breakCategoryID(w, r)
	if !ok {
		return
	}
	teams, err := h.service.BreakingTeams(r.Context(), chi.URLParam(r, "slug"), id)
	h.respond(w, r, "failed to load breaking teams", teams, err)
}

func (h *Handler) HandleGenerateBreak(w http.ResponseWriter, r *http.Request) {
	id, ok := h.breakCategoryID(w, r)
	if !ok {
		return
	}
	teams, err := h.service.GenerateBreak(r.Context(), chi.URLParam(r, "slug"), id)
	h.respond(w, r, "failed to generate break", teams, err)
}

func (h *Handler) HandleDeleteBreak(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.breakCategoryID(w, r)
	if !ok {
		return
	}
	slug := chi.URLParam(r, "slug")
	if err := h.service.DeleteBreak(ctx, slug, id); err != nil {
		h.logFailure(ctx, "failed to delete break", err)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleUpdateBreak(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id, ok := h.breakCategoryID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[bmodels.RemarkRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	teams, err := h.service.UpdateBreak(ctx, chi.URLParam(r, "slug"), id, req)
	h.respond(w, r, "failed to update break", teams, err)
}

func (h *Handler) HandleBallots(w http.ResponseWriter, r *http.Request) {
	seq, err := domain.ParseSeq(chi.URLParam(r, "seq"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	debateID, err := domain.ParseTypedID[domain.DebateID](chi.URLParam(r, "debate"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	ballots, err := h.service.Ballots(r.Context(), chi.URLParam(r, "slug"), seq, debateID)
	h.respond(w, r, "failed to list ballots", ballots, err)
}

func (h *Handler) breakCategoryID(w http.ResponseWriter, r *http.Request) (domain.BreakCategoryID, bool) {
	id, err := domain.ParseTypedID[domain.BreakCategoryID](chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return 0, false
	}
	return id, true
}

// respond writes v, or err when the service failed.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, msg string, v any, err error) {
	if err != nil {
		h.logFailure(r.Context(), msg, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, v)
}

// logFailure keeps visibility refusals and missing records out of the error
// log.
func (h *Handler) logFailure(ctx context.Context, msg string, err error) {
	args := []any{
		"request_id", requestcontext.RequestID(ctx),
		"api_version", requestcontext.APIVersion(ctx).String(),
		"error", err,
	}
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		h.logger.ErrorContext(ctx, msg, args...)
		return
	}
	h.logger.WarnContext(ctx, msg, args...)
}
