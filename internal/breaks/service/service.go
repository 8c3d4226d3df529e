// Package service generates and edits the breaking teams of a category.
package service

import (
	"context"
	"errors"
	"log/slog"

	"debatetab/internal/breaks/models"
	tmodels "debatetab/internal/tournaments/models"
	"debatetab/pkg/attrs"
	"debatetab/pkg/domain"
	dErrors "debatetab/pkg/domain-errors"
	"debatetab/pkg/platform/actionlog"
	"debatetab/pkg/platform/sentinel"
	txcontext "debatetab/pkg/platform/tx"
	"debatetab/pkg/requestcontext"
)

type Store interface {
	ListCategories(ctx context.Context, tournamentID domain.TournamentID) ([]*models.BreakCategory, error)
	FindCategory(ctx context.Context, tournamentID domain.TournamentID, id domain.BreakCategoryID) (*models.BreakCategory, error)
	ListEligibleTeamIDs(ctx context.Context, categoryID domain.BreakCategoryID) ([]domain.TeamID, error)
	ReplaceBreakingTeams(ctx context.Context, categoryID domain.BreakCategoryID, teams []models.BreakingTeam) error
	ListBreakingTeams(ctx context.Context, categoryID domain.BreakCategoryID) ([]*models.BreakingTeam, error)
	DeleteBreakingTeams(ctx context.Context, categoryID domain.BreakCategoryID) error
	SetRemark(ctx context.Context, categoryID domain.BreakCategoryID, teamID domain.TeamID, remark models.Remark) error
	ListStandings(ctx context.Context, teamIDs []domain.TeamID) ([]*models.TeamStanding, error)
}

type TournamentStore interface {
	FindTournamentBySlug(ctx context.Context, slug string) (*tmodels.Tournament, error)
}

type ActionLogger interface {
	Emit(ctx context.Context, entry actionlog.Entry) error
}

type Service struct {
	breaks      Store
	tournaments TournamentStore
	logger      *slog.Logger
	actionLog   ActionLogger
	tx          txcontext.Transactor
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithActionLog(al ActionLogger) Option {
	return func(s *Service) {
		s.actionLog = al
	}
}

func WithTransactor(tx txcontext.Transactor) Option {
	return func(s *Service) {
		s.tx = tx
	}
}

func New(breaks Store, tournaments TournamentStore, opts ...Option) *Service {
	s := &Service{breaks: breaks, tournaments: tournaments, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	if s.tx == nil {
		s.tx = txcontext.NewLockTransactor()
	}
	return s
}

// Tournament resolves a slug; exposed so callers can apply visibility
// preferences before asking for the break.
func (s *Service) Tournament(ctx context.Context, slug string) (*tmodels.Tournament, error) {
	t, err := s.tournaments.FindTournamentBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "tournament not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load tournament")
	}
	return t, nil
}

func (s *Service) ListCategories(ctx context.Context, tournamentID domain.TournamentID) ([]*models.BreakCategory, error) {
	cats, err := s.breaks.ListCategories(ctx, tournamentID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load break categories")
	}
	if cats == nil {
		cats = []*models.BreakCategory{}
	}
	return cats, nil
}

// Category resolves a break category within the tournament.
func (s *Service) Category(ctx context.Context, tournamentID domain.TournamentID, id domain.BreakCategoryID) (*models.BreakCategory, error) {
	c, err := s.breaks.FindCategory(ctx, tournamentID, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "break category not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load break category")
	}
	return c, nil
}

// Eligibility returns the ids of the teams eligible for the category.
func (s *Service) Eligibility(ctx context.Context, tournamentID domain.TournamentID, id domain.BreakCategoryID) ([]domain.TeamID, error) {
	if _, err := s.Category(ctx, tournamentID, id); err != nil {
		return nil, err
	}
	ids, err := s.breaks.ListEligibleTeamIDs(ctx, id)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load eligible teams")
	}
	if ids == nil {
		ids = []domain.TeamID{}
	}
	return ids, nil
}

func (s *Service) BreakingTeams(ctx context.Context, tournamentID domain.TournamentID, id domain.BreakCategoryID) ([]*models.BreakingTeam, error) {
	if _, err := s.Category(ctx, tournamentID, id); err != nil {
		return nil, err
	}
	out, err := s.breaks.ListBreakingTeams(ctx, id)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load breaking teams")
	}
	if out == nil {
		out = []*models.BreakingTeam{}
	}
	return out, nil
}

// Generate recomputes the break, keeping remarks already set on teams.
func (s *Service) Generate(ctx context.Context, tournamentID domain.TournamentID, id domain.BreakCategoryID) ([]*models.BreakingTeam, error) {
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		cat, err := s.Category(txCtx, tournamentID, id)
		if err != nil {
			return err
		}
		return s.generate(txCtx, cat)
	})
	if err != nil {
		return nil, err
	}
	s.logAction(ctx, actionlog.TypeBreakGenerate, "tournament_id", tournamentID, "break_category_id", id)
	return s.BreakingTeams(ctx, tournamentID, id)
}

func (s *Service) generate(ctx context.Context, cat *models.BreakCategory) error {
	eligible, err := s.breaks.ListEligibleTeamIDs(ctx, cat.ID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load eligible teams")
	}
	standings, err := s.breaks.ListStandings(ctx, eligible)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load team standings")
	}
	seen := make(map[domain.TeamID]struct{}, len(standings))
	for _, st := range standings {
		seen[st.TeamID] = struct{}{}
	}
	for _, tid := range eligible {
		if _, ok := seen[tid]; !ok {
			standings = append(standings, &models.TeamStanding{TeamID: tid})
		}
	}

	existing, err := s.breaks.ListBreakingTeams(ctx, cat.ID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load breaking teams")
	}
	remarks := make(map[domain.TeamID]models.Remark, len(existing))
	for _, bt := range existing {
		if bt.Remark != models.RemarkNone {
			remarks[bt.TeamID] = bt.Remark
		}
	}

	if err := s.breaks.ReplaceBreakingTeams(ctx, cat.ID, computeBreak(standings, remarks, cat.BreakSize)); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save breaking teams")
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, tournamentID domain.TournamentID, id domain.BreakCategoryID) error {
	if _, err := s.Category(ctx, tournamentID, id); err != nil {
		return err
	}
	if err := s.breaks.DeleteBreakingTeams(ctx, id); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete breaking teams")
	}
	s.logAction(ctx, actionlog.TypeBreakDelete, "tournament_id", tournamentID, "break_category_id", id)
	return nil
}

// UpdateRemark sets a remark on a team in the break and regenerates it.
func (s *Service) UpdateRemark(ctx context.Context, tournamentID domain.TournamentID, id domain.BreakCategoryID, req *models.RemarkRequest) ([]*models.BreakingTeam, error) {
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		cat, err := s.Category(txCtx, tournamentID, id)
		if err != nil {
			return err
		}
		if err := s.breaks.SetRemark(txCtx, cat.ID, req.Team, req.Remark); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.Newf(dErrors.CodeNotFound, "team %d is not in the break", req.Team)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to set remark")
		}
		return s.generate(txCtx, cat)
	})
	if err != nil {
		return nil, err
	}
	s.logAction(ctx, actionlog.TypeBreakUpdate,
		"tournament_id", tournamentID,
		"break_category_id", id,
		"team_id", req.Team,
		"remark", string(req.Remark),
	)
	return s.BreakingTeams(ctx, tournamentID, id)
}

func (s *Service) logAction(ctx context.Context, typ actionlog.Type, attributes ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", string(typ), "log_type", "action")
	s.logger.InfoContext(ctx, string(typ), args...)
	if s.actionLog == nil {
		return
	}
	entry := actionlog.Entry{
		Type:         typ,
		TournamentID: domain.TournamentID(attrs.ExtractInt64(attributes, "tournament_id")),
		SubjectKind:  "break_category",
		SubjectID:    attrs.ExtractInt64(attributes, "break_category_id"),
	}
	if err := s.actionLog.Emit(ctx, entry); err != nil {
		s.logger.WarnContext(ctx, "failed to record action", "event", string(typ), "error", err)
	}
}
