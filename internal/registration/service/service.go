// Package service runs the public registration workflows and the admin
// registration pages: custom questions, slot allocations and the
// registration report tables.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	pmodels "debatetab/internal/participants/models"
	"debatetab/internal/registration/models"
	tmodels "debatetab/internal/tournaments/models"
	"debatetab/pkg/attrs"
	"debatetab/pkg/domain"
	dErrors "debatetab/pkg/domain-errors"
	"debatetab/pkg/platform/actionlog"
	"debatetab/pkg/platform/secrets"
	"debatetab/pkg/platform/sentinel"
	txcontext "debatetab/pkg/platform/tx"
	"debatetab/pkg/requestcontext"
)

// urlKeyAttempts bounds retries when a generated url key collides.
const urlKeyAttempts = 5

type Store interface {
	SaveQuestion(ctx context.Context, q *models.Question) error
	ListQuestions(ctx context.Context, tournamentID domain.TournamentID, kind models.QuestionKind) ([]*models.Question, error)
	SaveAnswers(ctx context.Context, answers []models.Answer) error
	ListAnswers(ctx context.Context, tournamentID domain.TournamentID, kind models.QuestionKind) ([]models.Answer, error)
}

type TournamentStore interface {
	FindTournamentBySlug(ctx context.Context, slug string) (*tmodels.Tournament, error)
}

// Preferences is usually the Redis-backed preferences cache.
type Preferences interface {
	LoadPreferences(ctx context.Context, tournamentID domain.TournamentID) (tmodels.Preferences, error)
}

type ParticipantStore interface {
	CreateInstitution(ctx context.Context, inst *pmodels.Institution) error
	FindInstitutionByName(ctx context.Context, name string) (*pmodels.Institution, error)
	FindInstitution(ctx context.Context, id domain.InstitutionID) (*pmodels.Institution, error)
	ListInstitutions(ctx context.Context) ([]*pmodels.Institution, error)
	SaveTournamentInstitution(ctx context.Context, ti *pmodels.TournamentInstitution) error
	FindTournamentInstitution(ctx context.Context, tournamentID domain.TournamentID, institutionID domain.InstitutionID) (*pmodels.TournamentInstitution, error)
	FindTournamentInstitutionByID(ctx context.Context, id int64) (*pmodels.TournamentInstitution, error)
	ListTournamentInstitutions(ctx context.Context, tournamentID domain.TournamentID) ([]*pmodels.TournamentInstitution, error)
	CreateCoach(ctx context.Context, c *pmodels.Coach) error
	FindCoachByURLKey(ctx context.Context, key string) (*pmodels.Coach, error)
	ListCoaches(ctx context.Context, tournamentID domain.TournamentID) ([]*pmodels.Coach, error)
	CreateTeam(ctx context.Context, t *pmodels.Team) error
	UpdateTeam(ctx context.Context, t *pmodels.Team) error
	FindTeam(ctx context.Context, tournamentID domain.TournamentID, id domain.TeamID) (*pmodels.Team, error)
	ListTeams(ctx context.Context, tournamentID domain.TournamentID) ([]*pmodels.Team, error)
	ListTeamsByInstitution(ctx context.Context, tournamentID domain.TournamentID, institutionID *domain.InstitutionID) ([]*pmodels.Team, error)
	CreateSpeaker(ctx context.Context, sp *pmodels.Speaker) error
	ListSpeakersByTeam(ctx context.Context, teamID domain.TeamID) ([]*pmodels.Speaker, error)
	ListSpeakers(ctx context.Context, tournamentID domain.TournamentID) ([]*pmodels.Speaker, error)
	CreateAdjudicator(ctx context.Context, a *pmodels.Adjudicator) error
	ListAdjudicators(ctx context.Context, tournamentID domain.TournamentID) ([]*pmodels.Adjudicator, error)
}

type ActionLogger interface {
	Emit(ctx context.Context, entry actionlog.Entry) error
}

type Service struct {
	store        Store
	tournaments  TournamentStore
	preferences  Preferences
	participants ParticipantStore
	logger       *slog.Logger
	actionLog    ActionLogger
	tx           txcontext.Transactor
	newURLKey    func() (string, error)
}

type Option func(s *Service)

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

// WithURLKeyGenerator replaces the random private URL key source.
func WithURLKeyGenerator(gen func() (string, error)) Option {
	return func(s *Service) {
		s.newURLKey = gen
	}
}

func New(store Store, tournaments TournamentStore, preferences Preferences, participants ParticipantStore, opts ...Option) *Service {
	s := &Service{
		store:        store,
		tournaments:  tournaments,
		preferences:  preferences,
		participants: participants,
		logger:       slog.Default(),
		newURLKey:    secrets.URLKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tx == nil {
		s.tx = txcontext.NewLockTransactor()
	}
	return s
}

// -----------------------------------------------------------------------------
// Institutions
// -----------------------------------------------------------------------------

// RegisterInstitution registers an institution for the tournament and
// creates its coach. An institution already known by name is reused.
func (s *Service) RegisterInstitution(ctx context.Context, slug string, req *models.InstitutionRegistrationRequest) (*models.Registered, error) {
	t, prefs, err := s.tournamentWithPrefs(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !prefs.InstitutionRegistration {
		return nil, dErrors.New(dErrors.CodeForbidden, "institution registration is not open")
	}
	if !prefs.RegInstitutionSlots {
		req.TeamsRequested, req.AdjudicatorsRequested = 0, 0
	}
	questions, err := s.questions(ctx, t.ID, models.QuestionInstitution)
	if err != nil {
		return nil, err
	}
	answers, err := cleanAnswers(questions, req.Answers)
	if err != nil {
		return nil, err
	}

	var (
		inst  *pmodels.Institution
		coach *pmodels.Coach
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		inst, err = s.findOrCreateInstitution(txCtx, req.Name, req.Code)
		if err != nil {
			return err
		}
		if _, err := s.participants.FindTournamentInstitution(txCtx, t.ID, inst.ID); err == nil {
			return dErrors.Newf(dErrors.CodeConflict, "%s is already registered", inst.Name)
		} else if !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load tournament institution")
		}

		ti := &pmodels.TournamentInstitution{
			TournamentID:          t.ID,
			InstitutionID:         inst.ID,
			TeamsRequested:        req.TeamsRequested,
			AdjudicatorsRequested: req.AdjudicatorsRequested,
		}
		if err := s.participants.SaveTournamentInstitution(txCtx, ti); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.Newf(dErrors.CodeConflict, "%s is already registered", inst.Name)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save tournament institution")
		}

		coach = &pmodels.Coach{TournamentInstitutionID: ti.ID, Name: req.Coach.Name, Email: req.Coach.Email}
		if err := s.withURLKey(func(key string) error {
			coach.URLKey = key
			return s.participants.CreateCoach(txCtx, coach)
		}); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create coach")
		}
		return s.saveAnswers(txCtx, models.QuestionInstitution, ti.ID, answers)
	})
	if err != nil {
		return nil, err
	}

	s.logAction(ctx, actionlog.TypeInstitutionRegister,
		"tournament_id", t.ID,
		"subject_kind", string(models.QuestionInstitution),
		"subject_id", inst.ID,
	)
	return &models.Registered{
		ID:       int64(inst.ID),
		Name:     inst.Name,
		URLKey:   coach.URLKey,
		Messages: []string{fmt.Sprintf("Your institution %s has been registered!", inst.Name)},
	}, nil
}

func (s *Service) findOrCreateInstitution(ctx context.Context, name, code string) (*pmodels.Institution, error) {
	inst, err := s.participants.FindInstitutionByName(ctx, name)
	if err == nil {
		return inst, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load institution")
	}
	inst, err = pmodels.NewInstitution(name, code)
	if err != nil {
		return nil, err
	}
	if err := s.participants.CreateInstitution(ctx, inst); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.Newf(dErrors.CodeConflict, "institution %s already exists", name)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create institution")
	}
	return inst, nil
}

// SaveAllocations sets the teams and adjudicators allocated to registered
// institutions.
func (s *Service) SaveAllocations(ctx context.Context, slug string, req *models.AllocationRequest) (*models.AllocationsSaved, error) {
	t, err := s.findTournament(ctx, slug)
	if err != nil {
		return nil, err
	}
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		for _, a := range req.Allocations {
			ti, err := s.participants.FindTournamentInstitution(txCtx, t.ID, a.InstitutionID)
			if err != nil {
				if errors.Is(err, sentinel.ErrNotFound) {
					return dErrors.Newf(dErrors.CodeNotFound, "institution %d is not registered", a.InstitutionID)
				}
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load tournament institution")
			}
			ti.TeamsAllocated = a.TeamsAllocated
			ti.AdjudicatorsAllocated = a.AdjudicatorsAllocated
			if err := s.participants.SaveTournamentInstitution(txCtx, ti); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save allocation")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	institutions, err := s.participants.ListTournamentInstitutions(ctx, t.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load tournament institutions")
	}
	s.logAction(ctx, actionlog.TypeAllocationsEdit,
		"tournament_id", t.ID,
		"allocations", len(req.Allocations),
	)
	return &models.AllocationsSaved{
		Institutions: nonNilSlice(institutions),
		Message:      "Successfully modified institution allocations",
	}, nil
}

// -----------------------------------------------------------------------------
// Shared helpers
// -----------------------------------------------------------------------------

func (s *Service) findTournament(ctx context.Context, slug string) (*tmodels.Tournament, error) {
	t, err := s.tournaments.FindTournamentBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "tournament not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load tournament")
	}
	return t, nil
}

func (s *Service) tournamentWithPrefs(ctx context.Context, slug string) (*tmodels.Tournament, tmodels.Preferences, error) {
	t, err := s.findTournament(ctx, slug)
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

// coachInstitution resolves a coach's private key to the institution it
// registers for. Keys from other tournaments are not found.
func (s *Service) coachInstitution(ctx context.Context, tournamentID domain.TournamentID, key string) (*domain.InstitutionID, error) {
	_, ti, err := s.coachByKey(ctx, tournamentID, key)
	if err != nil {
		return nil, err
	}
	id := ti.InstitutionID
	return &id, nil
}

func (s *Service) coachByKey(ctx context.Context, tournamentID domain.TournamentID, key string) (*pmodels.Coach, *pmodels.TournamentInstitution, error) {
	coach, err := s.participants.FindCoachByURLKey(ctx, key)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil, dErrors.New(dErrors.CodeNotFound, "registration link not found")
		}
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load coach")
	}
	ti, err := s.participants.FindTournamentInstitutionByID(ctx, coach.TournamentInstitutionID)
	if err != nil || ti.TournamentID != tournamentID {
		if err == nil || errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil, dErrors.New(dErrors.CodeNotFound, "registration link not found")
		}
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load tournament institution")
	}
	return coach, ti, nil
}

// withURLKey retries create with fresh keys while the key collides.
func (s *Service) withURLKey(create func(key string) error) error {
	var err error
	for range urlKeyAttempts {
		var key string
		key, err = s.newURLKey()
		if err != nil {
			return err
		}
		if err = create(key); !errors.Is(err, sentinel.ErrConflict) {
			return err
		}
	}
	return fmt.Errorf("no free url key after %d attempts: %w", urlKeyAttempts, err)
}

func nonNilSlice[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

// logAction logs the registration and forwards it to the action log.
// Publication failures are logged and never fail the request.
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
