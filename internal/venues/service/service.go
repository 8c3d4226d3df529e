package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	dmodels "debatetab/internal/draw/models"
	pmodels "debatetab/internal/participants/models"
	tmodels "debatetab/internal/tournaments/models"
	"debatetab/internal/venues/constraints"
	venuemetrics "debatetab/internal/venues/metrics"
	"debatetab/internal/venues/models"
	"debatetab/internal/venues/store"
	"debatetab/pkg/attrs"
	"debatetab/pkg/domain"
	dErrors "debatetab/pkg/domain-errors"
	"debatetab/pkg/platform/actionlog"
	"debatetab/pkg/platform/sentinel"
	txcontext "debatetab/pkg/platform/tx"
	"debatetab/pkg/requestcontext"
)

var tracer = otel.Tracer("debatetab/internal/venues/service")

type Store interface {
	ListVenues(ctx context.Context, tournamentID domain.TournamentID) ([]*models.Venue, error)
	ListAvailableVenueIDs(ctx context.Context, roundID domain.RoundID) ([]domain.VenueID, error)
	SaveCategory(ctx context.Context, c *models.VenueCategory) error
	ListCategories(ctx context.Context, tournamentID domain.TournamentID) ([]*models.VenueCategory, error)
	SaveConstraint(ctx context.Context, c *models.VenueConstraint) error
	DeleteConstraint(ctx context.Context, id domain.ConstraintID) error
	ListConstraints(ctx context.Context, filter store.ConstraintFilter) ([]*models.VenueConstraint, error)
}

type TournamentStore interface {
	FindTournamentBySlug(ctx context.Context, slug string) (*tmodels.Tournament, error)
	FindRound(ctx context.Context, tournamentID domain.TournamentID, seq int) (*tmodels.Round, error)
	ListRoundsBySeq(ctx context.Context, tournamentID domain.TournamentID, seq int) ([]*tmodels.Round, error)
}

type DebateStore interface {
	ListDebates(ctx context.Context, roundIDs ...domain.RoundID) ([]*dmodels.Debate, error)
}

type ParticipantStore interface {
	ListTeams(ctx context.Context, tournamentID domain.TournamentID) ([]*pmodels.Team, error)
	ListAdjudicators(ctx context.Context, tournamentID domain.TournamentID) ([]*pmodels.Adjudicator, error)
	ListInstitutions(ctx context.Context) ([]*pmodels.Institution, error)
}

type ActionLogger interface {
	Emit(ctx context.Context, entry actionlog.Entry) error
}

// Service builds the room allocation payload and edits venue categories
// and constraints.
type Service struct {
	venues       Store
	tournaments  TournamentStore
	debates      DebateStore
	participants ParticipantStore
	logger       *slog.Logger
	actionLog    ActionLogger
	metrics      *venuemetrics.Metrics
	tx           txcontext.Transactor
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

func WithMetrics(m *venuemetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTransactor makes category and constraint saves atomic. Defaults to a
// process-local lock, which is enough for the in-memory stores.
func WithTransactor(tx txcontext.Transactor) Option {
	return func(s *Service) {
		s.tx = tx
	}
}

func New(venues Store, tournaments TournamentStore, debates DebateStore, participants ParticipantStore, opts ...Option) *Service {
	s := &Service{
		venues:       venues,
		tournaments:  tournaments,
		debates:      debates,
		participants: participants,
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

// -----------------------------------------------------------------------------
// Room allocation payload
// -----------------------------------------------------------------------------

// EditInfo loads the round's debates, venues and constraints and resolves
// which room categories suit each debate. In multi-round mode an elimination
// round pulls in every concurrent round sharing its seq, minus bye debates.
func (s *Service) EditInfo(ctx context.Context, slug string, seq int, multiRound bool) (_ *EditInfo, err error) {
	ctx, span := tracer.Start(ctx, "venues.EditInfo", trace.WithAttributes(
		attribute.String("tournament", slug),
		attribute.Int("round_seq", seq),
		attribute.Bool("multi_round", multiRound),
	))
	defer func() { endSpan(span, err) }()
	start := time.Now()

	t, err := s.findTournament(ctx, slug)
	if err != nil {
		return nil, err
	}
	round, err := s.tournaments.FindRound(ctx, t.ID, seq)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "round not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load round")
	}

	roundIDs := []domain.RoundID{round.ID}
	excludeByes := false
	if multiRound && round.IsBreakRound() {
		concurrent, err := s.tournaments.ListRoundsBySeq(ctx, t.ID, round.Seq)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load concurrent rounds")
		}
		roundIDs = roundIDs[:0]
		for _, r := range concurrent {
			roundIDs = append(roundIDs, r.ID)
		}
		excludeByes = true
	}

	var (
		debates     []*dmodels.Debate
		venues      []*models.Venue
		available   []domain.VenueID
		categories  []*models.VenueCategory
		teams       []*pmodels.Team
		constrained []*models.VenueConstraint
	)

	// Phase one: eager loads, independent of each other.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer s.metrics.ObserveLoad("debates", time.Now())
		var err error
		debates, err = s.debates.ListDebates(gctx, roundIDs...)
		return wrapLoad(err, "debates")
	})
	g.Go(func() error {
		defer s.metrics.ObserveLoad("venues", time.Now())
		var err error
		if venues, err = s.venues.ListVenues(gctx, t.ID); err != nil {
			return wrapLoad(err, "venues")
		}
		available, err = s.venues.ListAvailableVenueIDs(gctx, round.ID)
		return wrapLoad(err, "venue availability")
	})
	g.Go(func() error {
		defer s.metrics.ObserveLoad("categories", time.Now())
		var err error
		categories, err = s.venues.ListCategories(gctx, t.ID)
		return wrapLoad(err, "venue categories")
	})
	g.Go(func() error {
		defer s.metrics.ObserveLoad("constraints", time.Now())
		var (
			adjs []*pmodels.Adjudicator
			err  error
		)
		if teams, err = s.participants.ListTeams(gctx, t.ID); err != nil {
			return wrapLoad(err, "teams")
		}
		if adjs, err = s.participants.ListAdjudicators(gctx, t.ID); err != nil {
			return wrapLoad(err, "adjudicators")
		}
		constrained, err = s.venues.ListConstraints(gctx, tournamentFilter(teams, adjs))
		return wrapLoad(err, "venue constraints")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Phase two: pure in-memory shaping.
	if excludeByes {
		debates = slices.DeleteFunc(debates, func(d *dmodels.Debate) bool { return d.HasBye() })
	}
	resolverDebates := toResolverDebates(debates, teams)
	result := constraints.Resolve(resolverDebates, scopeToDebates(constrained, resolverDebates))

	info := &EditInfo{
		Round:       round.Seq,
		Rounds:      roundIDs,
		Debates:     debates,
		Venues:      venueViews(venues, available, categories),
		Highlights:  Highlights{Priority: priorityBands(venues), Category: categoryHighlights(categories)},
		Constraints: result,
	}
	if info.Debates == nil {
		info.Debates = []*dmodels.Debate{}
	}

	s.metrics.ObserveConstrainedDebates(len(result.Debates))
	s.metrics.ObserveLoad("total", start)
	span.SetAttributes(
		attribute.Int("debates", len(debates)),
		attribute.Int("constrained_debates", len(result.Debates)),
	)
	return info, nil
}

// tournamentFilter selects the constraints of the tournament's teams and
// adjudicators plus every institution constraint.
func tournamentFilter(teams []*pmodels.Team, adjs []*pmodels.Adjudicator) store.ConstraintFilter {
	f := store.ConstraintFilter{
		TeamIDs:         make([]int64, 0, len(teams)),
		AdjudicatorIDs:  make([]int64, 0, len(adjs)),
		AllInstitutions: true,
	}
	for _, t := range teams {
		f.TeamIDs = append(f.TeamIDs, int64(t.ID))
	}
	for _, a := range adjs {
		f.AdjudicatorIDs = append(f.AdjudicatorIDs, int64(a.ID))
	}
	return f
}

func toResolverDebates(debates []*dmodels.Debate, teams []*pmodels.Team) []constraints.Debate {
	byID := make(map[domain.TeamID]*pmodels.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}
	out := make([]constraints.Debate, 0, len(debates))
	for _, d := range debates {
		rd := constraints.Debate{ID: d.ID, Adjudicators: d.AdjudicatorIDs()}
		for _, dt := range d.Teams {
			if dt.TeamID == nil {
				rd.Teams = append(rd.Teams, nil)
				continue
			}
			rt := &constraints.Team{ID: *dt.TeamID}
			if t, ok := byID[*dt.TeamID]; ok {
				rt.InstitutionID = t.InstitutionID
			}
			rd.Teams = append(rd.Teams, rt)
		}
		out = append(out, rd)
	}
	return out
}

// scopeToDebates keeps team and adjudicator constraints of the debates'
// participants. Institution constraints are all kept so the flat
// institution map covers institutions outside the rendered debates.
func scopeToDebates(all []*models.VenueConstraint, debates []constraints.Debate) []*models.VenueConstraint {
	f := store.ConstraintFilter{AllInstitutions: true}
	for _, d := range debates {
		for _, t := range d.Teams {
			if t != nil {
				f.TeamIDs = append(f.TeamIDs, int64(t.ID))
			}
		}
		for _, a := range d.Adjudicators {
			f.AdjudicatorIDs = append(f.AdjudicatorIDs, int64(a))
		}
	}
	return slices.DeleteFunc(slices.Clone(all), func(c *models.VenueConstraint) bool {
		return !f.Matches(*c)
	})
}

// venueViews decorates venues with display names and availability. A round
// with no availability recorded treats every venue as available.
func venueViews(venues []*models.Venue, available []domain.VenueID, categories []*models.VenueCategory) []VenueView {
	out := make([]VenueView, 0, len(venues))
	for _, v := range venues {
		cats := v.CategoryIDs
		if cats == nil {
			cats = []domain.CategoryID{}
		}
		out = append(out, VenueView{
			ID:          v.ID,
			Name:        v.Name,
			DisplayName: v.DisplayName(categories),
			Priority:    v.Priority,
			Categories:  cats,
			Available:   len(available) == 0 || slices.Contains(available, v.ID),
		})
	}
	return out
}

// -----------------------------------------------------------------------------
// Categories
// -----------------------------------------------------------------------------

func (s *Service) ListCategories(ctx context.Context, slug string) ([]*models.VenueCategory, error) {
	t, err := s.findTournament(ctx, slug)
	if err != nil {
		return nil, err
	}
	cats, err := s.venues.ListCategories(ctx, t.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load venue categories")
	}
	return nonNilSlice(cats), nil
}

// SaveCategories creates or updates categories. Rows identical to the stored
// category are skipped and do not count as changes.
func (s *Service) SaveCategories(ctx context.Context, slug string, req *models.SaveCategoriesRequest) (_ *models.CategoriesSaved, err error) {
	ctx, span := tracer.Start(ctx, "venues.SaveCategories", trace.WithAttributes(attribute.String("tournament", slug)))
	defer func() { endSpan(span, err) }()

	t, err := s.findTournament(ctx, slug)
	if err != nil {
		return nil, err
	}

	var saved []string
	var savedIDs []int64
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		existing, err := s.venues.ListCategories(txCtx, t.ID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load venue categories")
		}
		venues, err := s.venues.ListVenues(txCtx, t.ID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load venues")
		}
		byID := make(map[domain.CategoryID]*models.VenueCategory, len(existing))
		for _, c := range existing {
			byID[c.ID] = c
		}
		known := make(map[domain.VenueID]struct{}, len(venues))
		for _, v := range venues {
			known[v.ID] = struct{}{}
		}

		for i, in := range req.Categories {
			c := &models.VenueCategory{
				TournamentID:           t.ID,
				Name:                   strings.TrimSpace(in.Name),
				Description:            strings.TrimSpace(in.Description),
				DisplayInVenueName:     in.DisplayInVenueName,
				DisplayInPublicTooltip: in.DisplayInPublicTooltip,
				VenueIDs:               sortedVenueIDs(in.VenueIDs),
			}
			if err := c.Validate(); err != nil {
				return err
			}
			for _, vid := range c.VenueIDs {
				if _, ok := known[vid]; !ok {
					return dErrors.Newf(dErrors.CodeValidation, "categories[%d]: venue %d is not in this tournament", i, vid)
				}
			}
			if in.ID != nil {
				prev, ok := byID[*in.ID]
				if !ok {
					return dErrors.Newf(dErrors.CodeNotFound, "venue category %d not found", *in.ID)
				}
				if sameCategory(prev, c) {
					continue
				}
				c.ID = prev.ID
			}
			if err := s.venues.SaveCategory(txCtx, c); err != nil {
				if errors.Is(err, sentinel.ErrNotFound) {
					return dErrors.New(dErrors.CodeNotFound, "venue category not found")
				}
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save venue category")
			}
			saved = append(saved, c.Name)
			savedIDs = append(savedIDs, int64(c.ID))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(saved) > 0 {
		s.metrics.AddSaved("category", len(saved))
		s.logAction(ctx, actionlog.TypeVenueCategoriesEdit, append([]any{
			"tournament_id", t.ID,
			"saved", len(saved),
		}, subjectAttrs("venue_category", savedIDs)...)...)
	}

	cats, err := s.venues.ListCategories(ctx, t.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load venue categories")
	}
	return &models.CategoriesSaved{Categories: nonNilSlice(cats), Message: categoriesMessage(saved)}, nil
}

func categoriesMessage(saved []string) string {
	switch len(saved) {
	case 0:
		return "No changes were made to the room categories."
	case 1:
		return "Saved room category: " + saved[0]
	default:
		return "Saved venue categories: " + strings.Join(saved, ", ")
	}
}

func sameCategory(a, b *models.VenueCategory) bool {
	return a.Name == b.Name &&
		a.Description == b.Description &&
		a.DisplayInVenueName == b.DisplayInVenueName &&
		a.DisplayInPublicTooltip == b.DisplayInPublicTooltip &&
		slices.Equal(sortedVenueIDs(a.VenueIDs), b.VenueIDs)
}

func sortedVenueIDs(ids []domain.VenueID) []domain.VenueID {
	out := slices.Clone(ids)
	slices.Sort(out)
	out = slices.Compact(out)
	if out == nil {
		out = []domain.VenueID{}
	}
	return out
}

// -----------------------------------------------------------------------------
// Constraints
// -----------------------------------------------------------------------------

// ListConstraints returns the constraints of the tournament's teams and
// adjudicators plus all institution constraints.
func (s *Service) ListConstraints(ctx context.Context, slug string) ([]*models.VenueConstraint, error) {
	t, err := s.findTournament(ctx, slug)
	if err != nil {
		return nil, err
	}
	filter, err := s.tournamentConstraintFilter(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	out, err := s.venues.ListConstraints(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load venue constraints")
	}
	return nonNilSlice(out), nil
}

func (s *Service) tournamentConstraintFilter(ctx context.Context, tid domain.TournamentID) (store.ConstraintFilter, error) {
	teams, err := s.participants.ListTeams(ctx, tid)
	if err != nil {
		return store.ConstraintFilter{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load teams")
	}
	adjs, err := s.participants.ListAdjudicators(ctx, tid)
	if err != nil {
		return store.ConstraintFilter{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load adjudicators")
	}
	return tournamentFilter(teams, adjs), nil
}

// SaveConstraints applies creates, updates and deletes in one transaction.
// Subjects must exist (teams and adjudicators in this tournament) and
// categories must belong to the tournament.
func (s *Service) SaveConstraints(ctx context.Context, slug string, req *models.SaveConstraintsRequest) (_ *models.ConstraintsSaved, err error) {
	ctx, span := tracer.Start(ctx, "venues.SaveConstraints", trace.WithAttributes(attribute.String("tournament", slug)))
	defer func() { endSpan(span, err) }()

	t, err := s.findTournament(ctx, slug)
	if err != nil {
		return nil, err
	}

	var savedCount, deletedCount int
	var touched []int64
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		subjects, err := s.subjectIndex(txCtx, t.ID)
		if err != nil {
			return err
		}
		cats, err := s.venues.ListCategories(txCtx, t.ID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load venue categories")
		}
		existing, err := s.venues.ListConstraints(txCtx, subjects.filter)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load venue constraints")
		}
		byID := make(map[domain.ConstraintID]*models.VenueConstraint, len(existing))
		for _, c := range existing {
			byID[c.ID] = c
		}

		for i, in := range req.Constraints {
			var prev *models.VenueConstraint
			if in.ID != nil {
				var ok bool
				if prev, ok = byID[*in.ID]; !ok {
					return dErrors.Newf(dErrors.CodeNotFound, "venue constraint %d not found", *in.ID)
				}
			}
			if in.Delete {
				if prev == nil {
					return dErrors.Newf(dErrors.CodeValidation, "constraints[%d]: only existing constraints can be deleted", i)
				}
				if err := s.venues.DeleteConstraint(txCtx, prev.ID); err != nil {
					return wrapConstraintErr(err)
				}
				delete(byID, prev.ID)
				touched = append(touched, int64(prev.ID))
				deletedCount++
				continue
			}
			if !subjects.has(in.SubjectKind, in.SubjectID) {
				return dErrors.Newf(dErrors.CodeValidation, "constraints[%d]: %s %d does not exist", i, in.SubjectKind, in.SubjectID)
			}
			if !slices.ContainsFunc(cats, func(c *models.VenueCategory) bool { return c.ID == in.CategoryID }) {
				return dErrors.Newf(dErrors.CodeValidation, "constraints[%d]: category %d is not in this tournament", i, in.CategoryID)
			}
			c := &models.VenueConstraint{
				SubjectKind: in.SubjectKind,
				SubjectID:   in.SubjectID,
				CategoryID:  in.CategoryID,
				Priority:    in.Priority,
			}
			if prev != nil {
				c.ID = prev.ID
				if *prev == *c {
					continue
				}
			}
			if err := s.venues.SaveConstraint(txCtx, c); err != nil {
				return wrapConstraintErr(err)
			}
			touched = append(touched, int64(c.ID))
			savedCount++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if savedCount+deletedCount > 0 {
		s.metrics.AddSaved("constraint", savedCount)
		s.logAction(ctx, actionlog.TypeVenueConstraintsEdit, append([]any{
			"tournament_id", t.ID,
			"saved", savedCount,
			"deleted", deletedCount,
		}, subjectAttrs("venue_constraint", touched)...)...)
	}

	out, err := s.ListConstraints(ctx, slug)
	if err != nil {
		return nil, err
	}
	return &models.ConstraintsSaved{Constraints: out, Message: constraintsMessage(savedCount, deletedCount)}, nil
}

func constraintsMessage(saved, deleted int) string {
	if saved == 0 && deleted == 0 {
		return "No changes were made to the room constraints."
	}
	var parts []string
	if saved > 0 {
		parts = append(parts, countMessage("Saved", saved))
	}
	if deleted > 0 {
		parts = append(parts, countMessage("Deleted", deleted))
	}
	return strings.Join(parts, " ")
}

func countMessage(verb string, n int) string {
	if n == 1 {
		return verb + " 1 room constraint."
	}
	return fmt.Sprintf("%s %d room constraints.", verb, n)
}

func wrapConstraintErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "venue constraint or category not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save venue constraint")
}

// -----------------------------------------------------------------------------
// Subjects
// -----------------------------------------------------------------------------

type subjects struct {
	teams        []*pmodels.Team
	adjudicators []*pmodels.Adjudicator
	institutions []*pmodels.Institution
	filter       store.ConstraintFilter
}

func (s *Service) subjectIndex(ctx context.Context, tid domain.TournamentID) (*subjects, error) {
	teams, err := s.participants.ListTeams(ctx, tid)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load teams")
	}
	adjs, err := s.participants.ListAdjudicators(ctx, tid)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load adjudicators")
	}
	insts, err := s.participants.ListInstitutions(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load institutions")
	}
	return &subjects{teams: teams, adjudicators: adjs, institutions: insts, filter: tournamentFilter(teams, adjs)}, nil
}

func (sub *subjects) has(kind models.SubjectKind, id int64) bool {
	switch kind {
	case models.SubjectTeam:
		return slices.ContainsFunc(sub.teams, func(t *pmodels.Team) bool { return int64(t.ID) == id })
	case models.SubjectAdjudicator:
		return slices.ContainsFunc(sub.adjudicators, func(a *pmodels.Adjudicator) bool { return int64(a.ID) == id })
	case models.SubjectInstitution:
		return slices.ContainsFunc(sub.institutions, func(i *pmodels.Institution) bool { return int64(i.ID) == id })
	}
	return false
}

// SubjectChoices lists every team, adjudicator and institution a constraint
// can name, sorted by label.
func (s *Service) SubjectChoices(ctx context.Context, slug string) ([]models.SubjectChoice, error) {
	t, err := s.findTournament(ctx, slug)
	if err != nil {
		return nil, err
	}
	sub, err := s.subjectIndex(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	instByID := make(map[domain.InstitutionID]*pmodels.Institution, len(sub.institutions))
	for _, inst := range sub.institutions {
		instByID[inst.ID] = inst
	}

	choices := make([]models.SubjectChoice, 0, len(sub.teams)+len(sub.adjudicators)+len(sub.institutions))
	for _, a := range sub.adjudicators {
		choices = append(choices, subjectChoice(models.SubjectAdjudicator, int64(a.ID), a.Name))
	}
	for _, team := range sub.teams {
		var inst *pmodels.Institution
		if team.InstitutionID != nil {
			inst = instByID[*team.InstitutionID]
		}
		choices = append(choices, subjectChoice(models.SubjectTeam, int64(team.ID), team.ShortName(inst)))
	}
	for _, inst := range sub.institutions {
		choices = append(choices, subjectChoice(models.SubjectInstitution, int64(inst.ID), inst.Name))
	}
	models.SortSubjectChoices(choices)
	return choices, nil
}

func subjectChoice(kind models.SubjectKind, id int64, name string) models.SubjectChoice {
	return models.SubjectChoice{ID: id, Kind: kind, Label: fmt.Sprintf("%s (%s)", name, kind.Label())}
}

// -----------------------------------------------------------------------------
// Helpers
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

func wrapLoad(err error, what string) error {
	if err == nil {
		return nil
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load "+what)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func nonNilSlice[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

// subjectAttrs names what an edit touched. The id is only set when a
// single row changed.
func subjectAttrs(kind string, ids []int64) []any {
	out := []any{"subject_kind", kind}
	if len(ids) == 1 {
		out = append(out, "subject_id", ids[0])
	}
	return out
}

// logAction logs the change and forwards it to the action log. Publication
// failures are logged and never fail the request.
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
		s.logger.WarnContext(ctx, "failed to record action",
			"event", string(typ),
			"error", err,
		)
	}
}
