package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debatetab/internal/registration/models"
	"debatetab/pkg/domain"
)

func TestQuestions(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	diet := &models.Question{TournamentID: 1, Kind: models.QuestionTeam, Seq: 2, Name: "Diet", Text: "?", AnswerType: models.AnswerText}
	size := &models.Question{TournamentID: 1, Kind: models.QuestionTeam, Seq: 1, Name: "Size", Text: "?", AnswerType: models.AnswerSingleSelect, Choices: []string{"S", "M"}}
	other := &models.Question{TournamentID: 1, Kind: models.QuestionAdjudicator, Seq: 1, Name: "Exp", Text: "?", AnswerType: models.AnswerInteger}
	for _, q := range []*models.Question{diet, size, other} {
		require.NoError(t, s.SaveQuestion(ctx, q))
	}
	size.Choices[0] = "XS"

	got, err := s.ListQuestions(ctx, 1, models.QuestionTeam)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Size", got[0].Name)
	assert.Equal(t, []string{"S", "M"}, got[0].Choices)

	empty, err := s.ListQuestions(ctx, 2, models.QuestionTeam)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	t.Run("update keeps tournament scope", func(t *testing.T) {
		moved := *diet
		moved.TournamentID = 2
		assert.ErrorIs(t, s.SaveQuestion(ctx, &moved), ErrNotFound)
		assert.ErrorIs(t, s.SaveQuestion(ctx, &models.Question{ID: 99, TournamentID: 1}), ErrNotFound)
	})
}

func TestAnswers(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	q := &models.Question{TournamentID: 1, Kind: models.QuestionTeam, Name: "Diet", Text: "?", AnswerType: models.AnswerText}
	require.NoError(t, s.SaveQuestion(ctx, q))

	require.NoError(t, s.SaveAnswers(ctx, []models.Answer{
		{QuestionID: q.ID, Kind: models.QuestionTeam, SubjectID: 7, Answer: "vegan"},
		{QuestionID: q.ID, Kind: models.QuestionTeam, SubjectID: 3, Answer: "none"},
	}))
	require.NoError(t, s.SaveAnswers(ctx, []models.Answer{
		{QuestionID: q.ID, Kind: models.QuestionTeam, SubjectID: 7, Answer: "halal"},
	}))

	got, err := s.ListAnswers(ctx, 1, models.QuestionTeam)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].SubjectID)
	assert.Equal(t, "halal", got[1].Answer)

	err = s.SaveAnswers(ctx, []models.Answer{{QuestionID: domain.QuestionID(404), SubjectID: 1}})
	assert.ErrorIs(t, err, ErrNotFound)
}
