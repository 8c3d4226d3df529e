package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"debatetab/internal/registration/models"
	"debatetab/pkg/domain"
	dErrors "debatetab/pkg/domain-errors"
	"debatetab/pkg/platform/actionlog"
	"debatetab/pkg/platform/sentinel"
)

// Questions lists a tournament's questions of one kind by seq.
func (s *Service) Questions(ctx context.Context, slug string, kind models.QuestionKind) ([]*models.Question, error) {
	t, err := s.findTournament(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.questions(ctx, t.ID, kind)
}

// SaveQuestions saves edited questions in place and appends new ones after
// the current highest seq. Unchanged questions are left alone.
func (s *Service) SaveQuestions(ctx context.Context, slug string, kind models.QuestionKind, req *models.QuestionsRequest) (*models.QuestionsSaved, error) {
	t, err := s.findTournament(ctx, slug)
	if err != nil {
		return nil, err
	}

	saved := 0
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		existing, err := s.questions(txCtx, t.ID, kind)
		if err != nil {
			return err
		}
		byID := make(map[domain.QuestionID]*models.Question, len(existing))
		nextSeq := 1
		for _, q := range existing {
			byID[q.ID] = q
			nextSeq = max(nextSeq, q.Seq+1)
		}

		for i := range req.Questions {
			q := req.Questions[i]
			q.TournamentID = t.ID
			q.Kind = kind
			if q.ID != 0 {
				prev, ok := byID[q.ID]
				if !ok {
					return dErrors.Newf(dErrors.CodeNotFound, "question %d not found", q.ID)
				}
				q.Seq = prev.Seq
				if sameQuestion(prev, &q) {
					continue
				}
			} else {
				q.Seq = nextSeq
				nextSeq++
			}
			if err := s.store.SaveQuestion(txCtx, &q); err != nil {
				if errors.Is(err, sentinel.ErrNotFound) {
					return dErrors.Newf(dErrors.CodeNotFound, "question %d not found", q.ID)
				}
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save question")
			}
			saved++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	questions, err := s.questions(ctx, t.ID, kind)
	if err != nil {
		return nil, err
	}
	res := &models.QuestionsSaved{Questions: questions, Message: "No changes were made to the questions."}
	if saved > 0 {
		res.Message = fmt.Sprintf("Questions for %s were successfully saved.", kind.PluralLabel())
		s.logAction(ctx, actionlog.TypeQuestionsEdit,
			"tournament_id", t.ID,
			"kind", string(kind),
			"saved", saved,
		)
	}
	return res, nil
}

func sameQuestion(a, b *models.Question) bool {
	return a.Name == b.Name &&
		a.Text == b.Text &&
		a.HelpText == b.HelpText &&
		a.AnswerType == b.AnswerType &&
		a.Required == b.Required &&
		equalBound(a.MinValue, b.MinValue) &&
		equalBound(a.MaxValue, b.MaxValue) &&
		slices.Equal(a.Choices, b.Choices)
}

func equalBound(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *Service) questions(ctx context.Context, tournamentID domain.TournamentID, kind models.QuestionKind) ([]*models.Question, error) {
	questions, err := s.store.ListQuestions(ctx, tournamentID, kind)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load questions")
	}
	return nonNilSlice(questions), nil
}

// cleanAnswers validates raw answers against the questions. Answers to
// questions of another kind or tournament are rejected; blank optional
// answers are dropped.
func cleanAnswers(questions []*models.Question, raw models.Answers) ([]models.Answer, error) {
	known := make(map[domain.QuestionID]bool, len(questions))
	out := make([]models.Answer, 0, len(questions))
	for _, q := range questions {
		known[q.ID] = true
		cleaned, err := q.CleanAnswer(raw[q.ID])
		if err != nil {
			return nil, err
		}
		if cleaned == "" {
			continue
		}
		out = append(out, models.Answer{QuestionID: q.ID, Answer: cleaned})
	}
	for id := range raw {
		if !known[id] {
			return nil, dErrors.Newf(dErrors.CodeValidation, "unknown question %d", id)
		}
	}
	return out, nil
}

func (s *Service) saveAnswers(ctx context.Context, kind models.QuestionKind, subjectID int64, answers []models.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	for i := range answers {
		answers[i].Kind = kind
		answers[i].SubjectID = subjectID
	}
	if err := s.store.SaveAnswers(ctx, answers); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save answers")
	}
	return nil
}
