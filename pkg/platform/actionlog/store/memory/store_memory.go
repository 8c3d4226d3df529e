package memory

import (
	"context"
	"sync"

	"debatetab/pkg/domain"
	"debatetab/pkg/platform/actionlog"
)

// InMemoryStore keeps entries in insertion order.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries []actionlog.Entry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, entry actionlog.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

// ListByTournament returns a tournament's entries, oldest first.
func (s *InMemoryStore) ListByTournament(_ context.Context, tournamentID domain.TournamentID) ([]actionlog.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []actionlog.Entry
	for _, e := range s.entries {
		if e.TournamentID == tournamentID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListAll returns every entry, oldest first.
func (s *InMemoryStore) ListAll(_ context.Context) ([]actionlog.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]actionlog.Entry{}, s.entries...), nil
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}
