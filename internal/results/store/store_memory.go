// Package store persists ballot submissions.
package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"debatetab/internal/results/models"
	"debatetab/pkg/domain"
	"debatetab/pkg/platform/sentinel"
)

var (
	ErrNotFound = sentinel.ErrNotFound
	ErrConflict = sentinel.ErrConflict
)

type InMemoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	ballots map[domain.BallotID]models.BallotSubmission
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{ballots: make(map[domain.BallotID]models.BallotSubmission)}
}

// SaveBallot stores a new ballot version. Versions are unique per debate.
func (s *InMemoryStore) SaveBallot(_ context.Context, b *models.BallotSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.ballots {
		if existing.DebateID == b.DebateID && existing.Version == b.Version {
			return fmt.Errorf("ballot version %d: %w", b.Version, ErrConflict)
		}
	}
	s.nextID++
	b.ID = domain.BallotID(s.nextID)
	stored := *b
	if b.MotionID != nil {
		m := *b.MotionID
		stored.MotionID = &m
	}
	s.ballots[b.ID] = stored
	return nil
}

// ListBallots returns a debate's ballots, oldest version first.
func (s *InMemoryStore) ListBallots(_ context.Context, debateID domain.DebateID) ([]*models.BallotSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.BallotSubmission{}
	for _, b := range s.ballots {
		if b.DebateID == debateID {
			out = append(out, &b)
		}
	}
	slices.SortFunc(out, func(a, b *models.BallotSubmission) int { return cmp.Compare(a.Version, b.Version) })
	return out, nil
}
