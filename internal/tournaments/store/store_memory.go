package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"debatetab/internal/tournaments/models"
	"debatetab/pkg/domain"
)

// InMemoryStore keeps tournament data in maps. Rows are copied in and out
// so callers never share memory with the store.
type InMemoryStore struct {
	mu          sync.RWMutex
	nextID      int64
	tournaments map[domain.TournamentID]models.Tournament
	rounds      map[domain.RoundID]models.Round
	motions     map[domain.MotionID]models.Motion
	preferences map[domain.TournamentID]models.Preferences
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		tournaments: make(map[domain.TournamentID]models.Tournament),
		rounds:      make(map[domain.RoundID]models.Round),
		motions:     make(map[domain.MotionID]models.Motion),
		preferences: make(map[domain.TournamentID]models.Preferences),
	}
}

func (s *InMemoryStore) newID() int64 {
	s.nextID++
	return s.nextID
}

func (s *InMemoryStore) CreateTournament(_ context.Context, t *models.Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.tournaments {
		if existing.Slug == t.Slug {
			return fmt.Errorf("tournament slug %q: %w", t.Slug, ErrConflict)
		}
	}
	t.ID = domain.TournamentID(s.newID())
	s.tournaments[t.ID] = *t
	return nil
}

func (s *InMemoryStore) FindTournamentBySlug(_ context.Context, slug string) (*models.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tournaments {
		if t.Slug == slug {
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

func (s *InMemoryStore) ListTournaments(_ context.Context) ([]*models.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Tournament, 0, len(s.tournaments))
	for _, t := range s.tournaments {
		out = append(out, &t)
	}
	slices.SortFunc(out, func(a, b *models.Tournament) int {
		if a.Seq != b.Seq {
			return a.Seq - b.Seq
		}
		return int(a.ID - b.ID)
	})
	return out, nil
}

// SaveRound inserts a round with a zero id, otherwise replaces it.
func (s *InMemoryStore) SaveRound(_ context.Context, r *models.Round) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == 0 {
		r.ID = domain.RoundID(s.newID())
	} else if _, ok := s.rounds[r.ID]; !ok {
		return ErrNotFound
	}
	s.rounds[r.ID] = *r
	return nil
}

func (s *InMemoryStore) ListRounds(_ context.Context, tournamentID domain.TournamentID) ([]*models.Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roundsWhere(func(r models.Round) bool { return r.TournamentID == tournamentID }), nil
}

// ListRoundsBySeq returns every round sharing seq, which is more than one
// for concurrent elimination rounds.
func (s *InMemoryStore) ListRoundsBySeq(_ context.Context, tournamentID domain.TournamentID, seq int) ([]*models.Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roundsWhere(func(r models.Round) bool {
		return r.TournamentID == tournamentID && r.Seq == seq
	}), nil
}

// FindRound returns the lowest-id round with seq.
func (s *InMemoryStore) FindRound(ctx context.Context, tournamentID domain.TournamentID, seq int) (*models.Round, error) {
	rounds, _ := s.ListRoundsBySeq(ctx, tournamentID, seq)
	if len(rounds) == 0 {
		return nil, ErrNotFound
	}
	return rounds[0], nil
}

func (s *InMemoryStore) roundsWhere(keep func(models.Round) bool) []*models.Round {
	var out []*models.Round
	for _, r := range s.rounds {
		if keep(r) {
			out = append(out, &r)
		}
	}
	slices.SortFunc(out, func(a, b *models.Round) int {
		if a.Seq != b.Seq {
			return a.Seq - b.Seq
		}
		return int(a.ID - b.ID)
	})
	return out
}

func (s *InMemoryStore) SaveMotion(_ context.Context, m *models.Motion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == 0 {
		m.ID = domain.MotionID(s.newID())
	}
	stored := *m
	stored.Rounds = slices.Clone(m.Rounds)
	s.motions[m.ID] = stored
	return nil
}

func (s *InMemoryStore) ListMotions(_ context.Context, tournamentID domain.TournamentID) ([]*models.Motion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Motion
	for _, m := range s.motions {
		if m.TournamentID == tournamentID {
			m.Rounds = slices.Clone(m.Rounds)
			out = append(out, &m)
		}
	}
	slices.SortFunc(out, func(a, b *models.Motion) int { return int(a.ID - b.ID) })
	return out, nil
}

func (s *InMemoryStore) FindMotion(_ context.Context, tournamentID domain.TournamentID, id domain.MotionID) (*models.Motion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.motions[id]
	if !ok || m.TournamentID != tournamentID {
		return nil, ErrNotFound
	}
	m.Rounds = slices.Clone(m.Rounds)
	return &m, nil
}

// LoadPreferences returns the stored preferences, or the defaults when the
// tournament has never saved any.
func (s *InMemoryStore) LoadPreferences(_ context.Context, tournamentID domain.TournamentID) (models.Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.preferences[tournamentID]; ok {
		return p, nil
	}
	return models.DefaultPreferences(), nil
}

func (s *InMemoryStore) SavePreferences(_ context.Context, tournamentID domain.TournamentID, prefs models.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefs.Normalize()
	s.preferences[tournamentID] = prefs
	return nil
}
