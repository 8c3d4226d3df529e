package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"debatetab/internal/breaks/models"
	"debatetab/pkg/domain"
)

type InMemoryStore struct {
	mu         sync.RWMutex
	nextID     int64
	categories map[domain.BreakCategoryID]models.BreakCategory
	eligible   map[domain.BreakCategoryID][]domain.TeamID
	breaking   map[domain.BreakCategoryID][]models.BreakingTeam
	standings  map[domain.TeamID]models.TeamStanding
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		categories: make(map[domain.BreakCategoryID]models.BreakCategory),
		eligible:   make(map[domain.BreakCategoryID][]domain.TeamID),
		breaking:   make(map[domain.BreakCategoryID][]models.BreakingTeam),
		standings:  make(map[domain.TeamID]models.TeamStanding),
	}
}

// SaveCategory inserts a category with a zero id, otherwise replaces it.
// Slugs are unique per tournament.
func (s *InMemoryStore) SaveCategory(_ context.Context, c *models.BreakCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.categories {
		if existing.ID != c.ID && existing.TournamentID == c.TournamentID && existing.Slug == c.Slug {
			return fmt.Errorf("break category slug %q: %w", c.Slug, ErrConflict)
		}
	}
	if c.ID == 0 {
		s.nextID++
		c.ID = domain.BreakCategoryID(s.nextID)
	} else if _, ok := s.categories[c.ID]; !ok {
		return ErrNotFound
	}
	s.categories[c.ID] = *c
	return nil
}

// ListCategories returns the tournament's categories by seq.
func (s *InMemoryStore) ListCategories(_ context.Context, tournamentID domain.TournamentID) ([]*models.BreakCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.BreakCategory
	for _, c := range s.categories {
		if c.TournamentID == tournamentID {
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *models.BreakCategory) int {
		return cmp.Or(cmp.Compare(a.Seq, b.Seq), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (s *InMemoryStore) FindCategory(_ context.Context, tournamentID domain.TournamentID, id domain.BreakCategoryID) (*models.BreakCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok || c.TournamentID != tournamentID {
		return nil, ErrNotFound
	}
	return &c, nil
}

// SetEligibleTeams replaces the category's eligible teams.
func (s *InMemoryStore) SetEligibleTeams(_ context.Context, categoryID domain.BreakCategoryID, teamIDs []domain.TeamID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[categoryID]; !ok {
		return ErrNotFound
	}
	ids := slices.Clone(teamIDs)
	slices.Sort(ids)
	s.eligible[categoryID] = slices.Compact(ids)
	return nil
}

func (s *InMemoryStore) ListEligibleTeamIDs(_ context.Context, categoryID domain.BreakCategoryID) ([]domain.TeamID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.eligible[categoryID]), nil
}

// ReplaceBreakingTeams swaps the category's break for teams.
func (s *InMemoryStore) ReplaceBreakingTeams(_ context.Context, categoryID domain.BreakCategoryID, teams []models.BreakingTeam) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[categoryID]; !ok {
		return ErrNotFound
	}
	rows := make([]models.BreakingTeam, 0, len(teams))
	for _, bt := range teams {
		bt.BreakCategoryID = categoryID
		if bt.BreakRank != nil {
			r := *bt.BreakRank
			bt.BreakRank = &r
		}
		rows = append(rows, bt)
	}
	s.breaking[categoryID] = rows
	return nil
}

// ListBreakingTeams returns the break ordered by rank, then team.
func (s *InMemoryStore) ListBreakingTeams(_ context.Context, categoryID domain.BreakCategoryID) ([]*models.BreakingTeam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.BreakingTeam, 0, len(s.breaking[categoryID]))
	for _, bt := range s.breaking[categoryID] {
		if bt.BreakRank != nil {
			r := *bt.BreakRank
			bt.BreakRank = &r
		}
		out = append(out, &bt)
	}
	slices.SortFunc(out, func(a, b *models.BreakingTeam) int {
		return cmp.Or(cmp.Compare(a.Rank, b.Rank), cmp.Compare(a.TeamID, b.TeamID))
	})
	return out, nil
}

func (s *InMemoryStore) DeleteBreakingTeams(_ context.Context, categoryID domain.BreakCategoryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.breaking, categoryID)
	return nil
}

// SetRemark updates the remark of a team already in the break.
func (s *InMemoryStore) SetRemark(_ context.Context, categoryID domain.BreakCategoryID, teamID domain.TeamID, remark models.Remark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.breaking[categoryID]
	for i := range rows {
		if rows[i].TeamID == teamID {
			rows[i].Remark = remark
			return nil
		}
	}
	return ErrNotFound
}

func (s *InMemoryStore) SaveStanding(_ context.Context, st models.TeamStanding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.standings[st.TeamID] = st
	return nil
}

// ListStandings returns the standings of the given teams. Teams without a
// recorded standing are omitted.
func (s *InMemoryStore) ListStandings(_ context.Context, teamIDs []domain.TeamID) ([]*models.TeamStanding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.TeamStanding, 0, len(teamIDs))
	for _, id := range teamIDs {
		if st, ok := s.standings[id]; ok {
			out = append(out, &st)
		}
	}
	return out, nil
}
