package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"debatetab/internal/venues/models"
	"debatetab/pkg/domain"
)

type InMemoryStore struct {
	mu           sync.RWMutex
	nextID       int64
	venues       map[domain.VenueID]models.Venue
	categories   map[domain.CategoryID]models.VenueCategory
	constraints  map[domain.ConstraintID]models.VenueConstraint
	availability map[domain.RoundID]map[domain.VenueID]struct{}
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		venues:       make(map[domain.VenueID]models.Venue),
		categories:   make(map[domain.CategoryID]models.VenueCategory),
		constraints:  make(map[domain.ConstraintID]models.VenueConstraint),
		availability: make(map[domain.RoundID]map[domain.VenueID]struct{}),
	}
}

func (s *InMemoryStore) newID() int64 {
	s.nextID++
	return s.nextID
}

// -----------------------------------------------------------------------------
// Venues
// -----------------------------------------------------------------------------

// SaveVenue stores the venue. Category membership is owned by categories,
// so CategoryIDs on the argument are ignored.
func (s *InMemoryStore) SaveVenue(_ context.Context, v *models.Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v.ID == 0 {
		v.ID = domain.VenueID(s.newID())
	} else if _, ok := s.venues[v.ID]; !ok {
		return ErrNotFound
	}
	stored := *v
	stored.CategoryIDs = nil
	s.venues[v.ID] = stored
	return nil
}

// ListVenues returns the tournament's venues with their category ids,
// highest priority first.
func (s *InMemoryStore) ListVenues(_ context.Context, tournamentID domain.TournamentID) ([]*models.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Venue
	for _, v := range s.venues {
		if v.TournamentID != tournamentID {
			continue
		}
		for _, c := range s.categories {
			if slices.Contains(c.VenueIDs, v.ID) {
				v.CategoryIDs = append(v.CategoryIDs, c.ID)
			}
		}
		slices.Sort(v.CategoryIDs)
		out = append(out, &v)
	}
	slices.SortFunc(out, func(a, b *models.Venue) int {
		return cmp.Or(cmp.Compare(b.Priority, a.Priority), cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

// SetAvailability replaces the set of venues available in a round.
func (s *InMemoryStore) SetAvailability(_ context.Context, roundID domain.RoundID, venueIDs []domain.VenueID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := make(map[domain.VenueID]struct{}, len(venueIDs))
	for _, id := range venueIDs {
		set[id] = struct{}{}
	}
	s.availability[roundID] = set
	return nil
}

func (s *InMemoryStore) ListAvailableVenueIDs(_ context.Context, roundID domain.RoundID) ([]domain.VenueID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.VenueID, 0, len(s.availability[roundID]))
	for id := range s.availability[roundID] {
		out = append(out, id)
	}
	slices.Sort(out)
	return out, nil
}

// -----------------------------------------------------------------------------
// Categories
// -----------------------------------------------------------------------------

func (s *InMemoryStore) SaveCategory(_ context.Context, c *models.VenueCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = domain.CategoryID(s.newID())
	} else if existing, ok := s.categories[c.ID]; !ok || existing.TournamentID != c.TournamentID {
		return ErrNotFound
	}
	stored := *c
	stored.VenueIDs = slices.Clone(c.VenueIDs)
	slices.Sort(stored.VenueIDs)
	stored.VenueIDs = slices.Compact(stored.VenueIDs)
	s.categories[c.ID] = stored
	return nil
}

func (s *InMemoryStore) DeleteCategory(_ context.Context, tournamentID domain.TournamentID, id domain.CategoryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok || c.TournamentID != tournamentID {
		return ErrNotFound
	}
	delete(s.categories, id)
	for cid, vc := range s.constraints {
		if vc.CategoryID == id {
			delete(s.constraints, cid)
		}
	}
	return nil
}

// ListCategories returns the tournament's categories in id order.
func (s *InMemoryStore) ListCategories(_ context.Context, tournamentID domain.TournamentID) ([]*models.VenueCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.VenueCategory
	for _, c := range s.categories {
		if c.TournamentID == tournamentID {
			c.VenueIDs = slices.Clone(c.VenueIDs)
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *models.VenueCategory) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

// -----------------------------------------------------------------------------
// Constraints
// -----------------------------------------------------------------------------

func (s *InMemoryStore) SaveConstraint(_ context.Context, c *models.VenueConstraint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[c.CategoryID]; !ok {
		return ErrNotFound
	}
	if c.ID == 0 {
		c.ID = domain.ConstraintID(s.newID())
	} else if _, ok := s.constraints[c.ID]; !ok {
		return ErrNotFound
	}
	s.constraints[c.ID] = *c
	return nil
}

func (s *InMemoryStore) DeleteConstraint(_ context.Context, id domain.ConstraintID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.constraints[id]; !ok {
		return ErrNotFound
	}
	delete(s.constraints, id)
	return nil
}

func (s *InMemoryStore) ListConstraints(_ context.Context, filter ConstraintFilter) ([]*models.VenueConstraint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.VenueConstraint
	for _, c := range s.constraints {
		if filter.Matches(c) {
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *models.VenueConstraint) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}
