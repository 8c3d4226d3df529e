package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"debatetab/internal/registration/models"
	"debatetab/pkg/domain"
)

type answerKey struct {
	question domain.QuestionID
	subject  int64
}

type InMemoryStore struct {
	mu        sync.RWMutex
	nextID    int64
	questions map[domain.QuestionID]models.Question
	answers   map[answerKey]models.Answer
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		questions: make(map[domain.QuestionID]models.Question),
		answers:   make(map[answerKey]models.Answer),
	}
}

// SaveQuestion inserts a question with a zero id, otherwise replaces it.
func (s *InMemoryStore) SaveQuestion(_ context.Context, q *models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q.ID == 0 {
		s.nextID++
		q.ID = domain.QuestionID(s.nextID)
	} else if existing, ok := s.questions[q.ID]; !ok || existing.TournamentID != q.TournamentID {
		return ErrNotFound
	}
	stored := *q
	stored.Choices = slices.Clone(q.Choices)
	s.questions[q.ID] = stored
	return nil
}

// ListQuestions returns the tournament's questions of one kind by seq.
func (s *InMemoryStore) ListQuestions(_ context.Context, tournamentID domain.TournamentID, kind models.QuestionKind) ([]*models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.Question{}
	for _, q := range s.questions {
		if q.TournamentID == tournamentID && q.Kind == kind {
			q.Choices = slices.Clone(q.Choices)
			out = append(out, &q)
		}
	}
	slices.SortFunc(out, func(a, b *models.Question) int {
		return cmp.Or(cmp.Compare(a.Seq, b.Seq), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

// SaveAnswers upserts answers keyed by (question, subject).
func (s *InMemoryStore) SaveAnswers(_ context.Context, answers []models.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range answers {
		if _, ok := s.questions[a.QuestionID]; !ok {
			return ErrNotFound
		}
	}
	for _, a := range answers {
		s.answers[answerKey{a.QuestionID, a.SubjectID}] = a
	}
	return nil
}

// ListAnswers returns every answer of one subject kind to the tournament's
// questions.
func (s *InMemoryStore) ListAnswers(_ context.Context, tournamentID domain.TournamentID, kind models.QuestionKind) ([]models.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Answer{}
	for _, a := range s.answers {
		q, ok := s.questions[a.QuestionID]
		if !ok || q.TournamentID != tournamentID || a.Kind != kind {
			continue
		}
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b models.Answer) int {
		return cmp.Or(cmp.Compare(a.SubjectID, b.SubjectID), cmp.Compare(a.QuestionID, b.QuestionID))
	})
	return out, nil
}
