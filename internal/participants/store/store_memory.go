package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"debatetab/internal/participants/models"
	"debatetab/pkg/domain"
)

// InMemoryStore keeps participants in maps guarded by one lock.
type InMemoryStore struct {
	mu                     sync.RWMutex
	nextID                 int64
	institutions           map[domain.InstitutionID]models.Institution
	tournamentInstitutions map[int64]models.TournamentInstitution
	coaches                map[domain.CoachID]models.Coach
	teams                  map[domain.TeamID]models.Team
	speakers               map[domain.SpeakerID]models.Speaker
	adjudicators           map[domain.AdjudicatorID]models.Adjudicator
	speakerCategories      map[domain.SpeakerCatID]models.SpeakerCategory
	urlKeys                map[string]struct{}
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		institutions:           make(map[domain.InstitutionID]models.Institution),
		tournamentInstitutions: make(map[int64]models.TournamentInstitution),
		coaches:                make(map[domain.CoachID]models.Coach),
		teams:                  make(map[domain.TeamID]models.Team),
		speakers:               make(map[domain.SpeakerID]models.Speaker),
		adjudicators:           make(map[domain.AdjudicatorID]models.Adjudicator),
		speakerCategories:      make(map[domain.SpeakerCatID]models.SpeakerCategory),
		urlKeys:                make(map[string]struct{}),
	}
}

func (s *InMemoryStore) newID() int64 {
	s.nextID++
	return s.nextID
}

// claimURLKey reserves a url key. Empty keys are not tracked.
func (s *InMemoryStore) claimURLKey(key string) error {
	if key == "" {
		return nil
	}
	if _, taken := s.urlKeys[key]; taken {
		return fmt.Errorf("url key: %w", ErrConflict)
	}
	s.urlKeys[key] = struct{}{}
	return nil
}

// -----------------------------------------------------------------------------
// Institutions
// -----------------------------------------------------------------------------

func (s *InMemoryStore) CreateInstitution(_ context.Context, inst *models.Institution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.institutions {
		if strings.EqualFold(existing.Name, inst.Name) {
			return fmt.Errorf("institution %q: %w", inst.Name, ErrConflict)
		}
	}
	inst.ID = domain.InstitutionID(s.newID())
	s.institutions[inst.ID] = *inst
	return nil
}

// FindInstitutionByName matches case-insensitively.
func (s *InMemoryStore) FindInstitutionByName(_ context.Context, name string) (*models.Institution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, inst := range s.institutions {
		if strings.EqualFold(inst.Name, name) {
			return &inst, nil
		}
	}
	return nil, ErrNotFound
}

func (s *InMemoryStore) FindInstitution(_ context.Context, id domain.InstitutionID) (*models.Institution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if inst, ok := s.institutions[id]; ok {
		return &inst, nil
	}
	return nil, ErrNotFound
}

func (s *InMemoryStore) ListInstitutions(_ context.Context) ([]*models.Institution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Institution, 0, len(s.institutions))
	for _, inst := range s.institutions {
		out = append(out, &inst)
	}
	slices.SortFunc(out, func(a, b *models.Institution) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

// SaveTournamentInstitution inserts when ID is zero, otherwise updates. One
// row per (tournament, institution).
func (s *InMemoryStore) SaveTournamentInstitution(_ context.Context, ti *models.TournamentInstitution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ti.ID == 0 {
		for _, existing := range s.tournamentInstitutions {
			if existing.TournamentID == ti.TournamentID && existing.InstitutionID == ti.InstitutionID {
				return fmt.Errorf("tournament institution: %w", ErrConflict)
			}
		}
		ti.ID = s.newID()
	} else if _, ok := s.tournamentInstitutions[ti.ID]; !ok {
		return ErrNotFound
	}
	s.tournamentInstitutions[ti.ID] = *ti
	return nil
}

func (s *InMemoryStore) FindTournamentInstitution(_ context.Context, tournamentID domain.TournamentID, institutionID domain.InstitutionID) (*models.TournamentInstitution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ti := range s.tournamentInstitutions {
		if ti.TournamentID == tournamentID && ti.InstitutionID == institutionID {
			return &ti, nil
		}
	}
	return nil, ErrNotFound
}

func (s *InMemoryStore) FindTournamentInstitutionByID(_ context.Context, id int64) (*models.TournamentInstitution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if ti, ok := s.tournamentInstitutions[id]; ok {
		return &ti, nil
	}
	return nil, ErrNotFound
}

func (s *InMemoryStore) ListTournamentInstitutions(_ context.Context, tournamentID domain.TournamentID) ([]*models.TournamentInstitution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.TournamentInstitution
	for _, ti := range s.tournamentInstitutions {
		if ti.TournamentID == tournamentID {
			out = append(out, &ti)
		}
	}
	slices.SortFunc(out, func(a, b *models.TournamentInstitution) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

// -----------------------------------------------------------------------------
// Coaches
// -----------------------------------------------------------------------------

func (s *InMemoryStore) CreateCoach(_ context.Context, c *models.Coach) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.claimURLKey(c.URLKey); err != nil {
		return err
	}
	c.ID = domain.CoachID(s.newID())
	s.coaches[c.ID] = *c
	return nil
}

func (s *InMemoryStore) FindCoachByURLKey(_ context.Context, key string) (*models.Coach, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.coaches {
		if key != "" && c.URLKey == key {
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (s *InMemoryStore) ListCoaches(_ context.Context, tournamentID domain.TournamentID) ([]*models.Coach, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Coach
	for _, c := range s.coaches {
		if ti, ok := s.tournamentInstitutions[c.TournamentInstitutionID]; ok && ti.TournamentID == tournamentID {
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *models.Coach) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

// -----------------------------------------------------------------------------
// Teams and speakers
// -----------------------------------------------------------------------------

func (s *InMemoryStore) CreateTeam(_ context.Context, t *models.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = domain.TeamID(s.newID())
	s.teams[t.ID] = *t
	return nil
}

func (s *InMemoryStore) UpdateTeam(_ context.Context, t *models.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.teams[t.ID]; !ok {
		return ErrNotFound
	}
	s.teams[t.ID] = *t
	return nil
}

func (s *InMemoryStore) FindTeam(_ context.Context, tournamentID domain.TournamentID, id domain.TeamID) (*models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.teams[id]
	if !ok || t.TournamentID != tournamentID {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (s *InMemoryStore) ListTeams(_ context.Context, tournamentID domain.TournamentID) ([]*models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.teamsWhere(func(t models.Team) bool { return t.TournamentID == tournamentID }), nil
}

// ListTeamsByInstitution lists an institution's teams in a tournament. A nil
// institution lists the tournament's unaffiliated teams.
func (s *InMemoryStore) ListTeamsByInstitution(_ context.Context, tournamentID domain.TournamentID, institutionID *domain.InstitutionID) ([]*models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.teamsWhere(func(t models.Team) bool {
		if t.TournamentID != tournamentID {
			return false
		}
		if institutionID == nil {
			return t.InstitutionID == nil
		}
		return t.InstitutionID != nil && *t.InstitutionID == *institutionID
	}), nil
}

func (s *InMemoryStore) teamsWhere(keep func(models.Team) bool) []*models.Team {
	var out []*models.Team
	for _, t := range s.teams {
		if keep(t) {
			out = append(out, &t)
		}
	}
	slices.SortFunc(out, func(a, b *models.Team) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (s *InMemoryStore) CreateSpeaker(_ context.Context, sp *models.Speaker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.teams[sp.TeamID]; !ok {
		return fmt.Errorf("speaker team: %w", ErrNotFound)
	}
	if err := s.claimURLKey(sp.URLKey); err != nil {
		return err
	}
	sp.ID = domain.SpeakerID(s.newID())
	stored := *sp
	stored.CategoryIDs = slices.Clone(sp.CategoryIDs)
	s.speakers[sp.ID] = stored
	return nil
}

func (s *InMemoryStore) ListSpeakersByTeam(_ context.Context, teamID domain.TeamID) ([]*models.Speaker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.speakersWhere(func(sp models.Speaker) bool { return sp.TeamID == teamID }), nil
}

func (s *InMemoryStore) ListSpeakers(_ context.Context, tournamentID domain.TournamentID) ([]*models.Speaker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.speakersWhere(func(sp models.Speaker) bool {
		t, ok := s.teams[sp.TeamID]
		return ok && t.TournamentID == tournamentID
	}), nil
}

func (s *InMemoryStore) speakersWhere(keep func(models.Speaker) bool) []*models.Speaker {
	var out []*models.Speaker
	for _, sp := range s.speakers {
		if keep(sp) {
			sp.CategoryIDs = slices.Clone(sp.CategoryIDs)
			out = append(out, &sp)
		}
	}
	slices.SortFunc(out, func(a, b *models.Speaker) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// -----------------------------------------------------------------------------
// Adjudicators
// -----------------------------------------------------------------------------

func (s *InMemoryStore) CreateAdjudicator(_ context.Context, a *models.Adjudicator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.claimURLKey(a.URLKey); err != nil {
		return err
	}
	a.ID = domain.AdjudicatorID(s.newID())
	s.adjudicators[a.ID] = *a
	return nil
}

func (s *InMemoryStore) ListAdjudicators(_ context.Context, tournamentID domain.TournamentID) ([]*models.Adjudicator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Adjudicator
	for _, a := range s.adjudicators {
		if a.TournamentID == tournamentID {
			out = append(out, &a)
		}
	}
	slices.SortFunc(out, func(a, b *models.Adjudicator) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

// -----------------------------------------------------------------------------
// Speaker categories
// -----------------------------------------------------------------------------

func (s *InMemoryStore) SaveSpeakerCategory(_ context.Context, c *models.SpeakerCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.speakerCategories {
		if existing.ID != c.ID && existing.TournamentID == c.TournamentID && existing.Slug == c.Slug {
			return fmt.Errorf("speaker category slug %q: %w", c.Slug, ErrConflict)
		}
	}
	if c.ID == 0 {
		c.ID = domain.SpeakerCatID(s.newID())
	}
	s.speakerCategories[c.ID] = *c
	return nil
}

func (s *InMemoryStore) ListSpeakerCategories(_ context.Context, tournamentID domain.TournamentID) ([]*models.SpeakerCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.SpeakerCategory
	for _, c := range s.speakerCategories {
		if c.TournamentID == tournamentID {
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *models.SpeakerCategory) int {
		return cmp.Or(cmp.Compare(a.Seq, b.Seq), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (s *InMemoryStore) FindSpeakerCategory(_ context.Context, tournamentID domain.TournamentID, id domain.SpeakerCatID) (*models.SpeakerCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.speakerCategories[id]
	if !ok || c.TournamentID != tournamentID {
		return nil, ErrNotFound
	}
	return &c, nil
}

// ListSpeakerIDsInCategory returns the members of a speaker category.
func (s *InMemoryStore) ListSpeakerIDsInCategory(_ context.Context, id domain.SpeakerCatID) ([]domain.SpeakerID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.SpeakerID
	for _, sp := range s.speakers {
		if slices.Contains(sp.CategoryIDs, id) {
			out = append(out, sp.ID)
		}
	}
	slices.Sort(out)
	return out, nil
}
