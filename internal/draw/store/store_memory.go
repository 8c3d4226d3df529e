// Package store persists debates with their team sides and panels.
package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"debatetab/internal/draw/models"
	"debatetab/pkg/domain"
	"debatetab/pkg/platform/sentinel"
)

var ErrNotFound = sentinel.ErrNotFound

type InMemoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	debates map[domain.DebateID]models.Debate
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{debates: make(map[domain.DebateID]models.Debate)}
}

func cloneDebate(d models.Debate) models.Debate {
	d.Teams = slices.Clone(d.Teams)
	d.Adjudicators = slices.Clone(d.Adjudicators)
	return d
}

// SaveDebate inserts a debate with a zero id, otherwise replaces it with
// its sides and panel.
func (s *InMemoryStore) SaveDebate(_ context.Context, d *models.Debate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == 0 {
		s.nextID++
		d.ID = domain.DebateID(s.nextID)
	} else if _, ok := s.debates[d.ID]; !ok {
		return ErrNotFound
	}
	s.debates[d.ID] = cloneDebate(*d)
	return nil
}

// ListDebates returns the debates of the given rounds, sides in side order.
func (s *InMemoryStore) ListDebates(_ context.Context, roundIDs ...domain.RoundID) ([]*models.Debate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Debate
	for _, d := range s.debates {
		if slices.Contains(roundIDs, d.RoundID) {
			c := cloneDebate(d)
			sortSides(c.Teams)
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *models.Debate) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (s *InMemoryStore) FindDebate(_ context.Context, roundID domain.RoundID, id domain.DebateID) (*models.Debate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.debates[id]
	if !ok || d.RoundID != roundID {
		return nil, ErrNotFound
	}
	c := cloneDebate(d)
	sortSides(c.Teams)
	return &c, nil
}

func sortSides(teams []models.DebateTeam) {
	slices.SortStableFunc(teams, func(a, b models.DebateTeam) int {
		return cmp.Compare(a.Side.Order(), b.Side.Order())
	})
}
