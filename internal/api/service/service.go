// Package service implements the read-mostly REST API over tournament data.
// Visibility follows the tournament preferences and the caller's role.
package service

import (
	"context"
	"errors"
	"log/slog"

	bmodels "debatetab/internal/breaks/models"
	dmodels "debatetab/internal/draw/models"
	pmodels "debatetab/internal/participants/models"
	rmodels "debatetab/internal/results/models"
	tmodels "debatetab/internal/tournaments/models"
	"debatetab/pkg/attrs"
	"debatetab/pkg/domain"
	dErrors "debatetab/pkg/domain-errors"
	"debatetab/pkg/platform/actionlog"
	"debatetab/pkg/platform/sentinel"
	txcontext "debatetab/pkg/platform/tx"
	"debatetab/pkg/requestcontext"
)

type TournamentStore interface {
	ListTournaments(ctx context.Context) ([]*tmodels.Tournament, error)
	FindTournamentBySlug(ctx context.Context, slug string) (*tmodels.Tournament, error)
	ListRounds(ctx context.Context, tournamentID domain.TournamentID) ([]*tmodels.Round, error)
	ListRoundsBySeq(ctx context.Context, tournamentID domain.TournamentID, seq int) ([]*tmodels.Round, error)
	FindRound(ctx context.Context, tournamentID domain.TournamentID, seq int) (*tmodels.Round, error)
	SaveRound(ctx context.Context, r *tmodels.Round) error
	ListMotions(ctx context.Context, tournamentID domain.TournamentID) ([]*tmodels.Motion, error)
}

type Preferences interface {
	LoadPreferences(ctx context.Context, tournamentID domain.TournamentID) (tmodels.Preferences, error)
}

type ParticipantStore interface {
	ListInstitutions(ctx context.Context) ([]*pmodels.Institution, error)
	ListSpeakerCategories(ctx context.Context, tournamentID domain.TournamentID) ([]*pmodels.SpeakerCategory, error)
	FindSpeakerCategory(ctx context.Context, tournamentID domain.TournamentID, id domain.SpeakerCatID) (*pmodels.SpeakerCategory, error)
	ListSpeakerIDsInCategory(ctx context.Context, id domain.SpeakerCatID) ([]domain.SpeakerID, error)
}

type DebateStore interface {
	FindDebate(ctx context.Context, roundID domain.RoundID, id domain.DebateID) (*dmodels.Debate, error)
}

type BallotStore interface {
	ListBallots(ctx context.Context, debateID domain.DebateID) ([]*rmodels.BallotSubmission, error)
}

// Breaks is the break service the API delegates to.
type Breaks interface {
	ListCategories(ctx context.Context, tournamentID domain.TournamentID) ([]*bmodels.BreakCategory, error)
	Category(ctx context.Context, tournamentID domain.TournamentID, id domain.BreakCategoryID) (*bmodels.BreakCategory, error)
	Eligibility(ctx context.Context, tournamentID domain.TournamentID, id domain.BreakCategoryID) ([]domain.TeamID, error)
	BreakingTeams(ctx context.Context, tournamentID domain.TournamentID, id domain.BreakCategoryID) ([]*bmodels.BreakingTeam, error)
	Generate(ctx context.Context, tournamentID domain.TournamentID, id domain.BreakCategoryID) ([]*bmodels.BreakingTeam, error)
	Delete(ctx context.Context, tournamentID domain.TournamentID, id domain.BreakCategoryID) error
	UpdateRemark(ctx context.Context, tournamentID domain.TournamentID, id domain.BreakCategoryID, req *bmodels.RemarkRequest) ([]*bmodels.BreakingTeam, error)
}

type ActionLogger interface {
	Emit(ctx context.Context, entry actionlog.Entry) error
}

// Release identifies the running build in the API root.
type Release struct {
	TimeZone    string
	Version     string
	VersionName string
}

type Service struct {
	tournaments  TournamentStore
	preferences  Preferences
	participants ParticipantStore
	debates      DebateStore
	ballots      BallotStore
	breaks       Breaks
	release      Release
	logger       *slog.Logger
	actionLog    ActionLogger
	tx           txcontext.Transactor
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

func WithRelease(r Release) Option {
	return func(s *Service) {
		s.release = r
	}
}

func New(
	tournaments TournamentStore,
	preferences Preferences,
	participants ParticipantStore,
	debates DebateStore,
	ballots BallotStore,
	breaks Breaks,
	opts ...Option,
) *Service {
	s := &Service{
		tournaments:  tournaments,
		preferences:  preferences,
		participants: participants,
		debates:      debates,
		ballots:      ballots,
		breaks:       breaks,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tx == nil {
		s.tx = txcontext.NewLockTransactor()
	}
	return s
}

// Root describes the API entry point.
func (s *Service) Root() *Root {
	return &Root{
		Links:       map[string]string{string(domain.DefaultVersion()): domain.DefaultVersion().Path()},
		TimeZone:    s.release.TimeZone,
		Version:     s.release.Version,
		VersionName: s.release.VersionName,
	}
}

// V1Root lists the top-level collections of the v1 API.
func (s *Service) V1Root() *VersionRoot {
	base := domain.APIVersionV1.Path()
	return &VersionRoot{Links: map[string]string{
		"tournaments":  base + "/tournaments",
		"institutions": base + "/institutions",
	}}
}

func (s *Service) ListTournaments(ctx context.Context) ([]*tmodels.Tournament, error) {
	ts, err := s.tournaments.ListTournaments(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load tournaments")
	}
	return nonNil(ts), nil
}

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

func (s *Service) ListInstitutions(ctx context.Context) ([]*pmodels.Institution, error) {
	insts, err := s.participants.ListInstitutions(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load institutions")
	}
	return nonNil(insts), nil
}

func (s *Service) tournamentWithPrefs(ctx context.Context, slug string) (*tmodels.Tournament, tmodels.Preferences, error) {
	t, err := s.Tournament(ctx, slug)
	if err != nil {
		return nil, tmodels.Preferences{}, err
	}
	prefs, err := s.preferences.LoadPreferences(ctx, t.ID)
	if err != nil {
		return nil, tmodels.Preferences{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load preferences")
	}
	prefs.Normalize()
	return t, prefs, nil
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
		SubjectKind:  attrs.ExtractString(attributes, "subject_kind"),
		SubjectID:    attrs.ExtractInt64(attributes, "subject_id"),
	}
	if err := s.actionLog.Emit(ctx, entry); err != nil {
		s.logger.WarnContext(ctx, "failed to record action", "event", string(typ), "error", err)
	}
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
