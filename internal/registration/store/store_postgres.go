package store

import (
	"context"
	"database/sql"
	"fmt"

	"debatetab/internal/platform/postgres"
	"debatetab/internal/registration/models"
	"debatetab/pkg/domain"
	pstrings "debatetab/pkg/platform/strings"
	txcontext "debatetab/pkg/platform/tx"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) SaveQuestion(ctx context.Context, q *models.Question) error {
	exec := txcontext.Exec(ctx, s.db)
	choices := pstrings.JoinNonEmpty(q.Choices, pstrings.ChoiceSeparator)
	if q.ID == 0 {
		var id int64
		err := exec.QueryRowContext(ctx, `
			INSERT INTO questions (tournament_id, kind, seq, name, text, help_text, answer_type, required, min_value, max_value, choices)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id`,
			int64(q.TournamentID), string(q.Kind), q.Seq, q.Name, q.Text, q.HelpText,
			string(q.AnswerType), q.Required, q.MinValue, q.MaxValue, choices,
		).Scan(&id)
		if err != nil {
			if postgres.IsForeignKeyViolation(err) {
				return ErrNotFound
			}
			return fmt.Errorf("insert question: %w", err)
		}
		q.ID = domain.QuestionID(id)
		return nil
	}
	res, err := exec.ExecContext(ctx, `
		UPDATE questions
		SET seq = $3, name = $4, text = $5, help_text = $6, answer_type = $7,
			required = $8, min_value = $9, max_value = $10, choices = $11
		WHERE id = $1 AND tournament_id = $2`,
		int64(q.ID), int64(q.TournamentID), q.Seq, q.Name, q.Text, q.HelpText,
		string(q.AnswerType), q.Required, q.MinValue, q.MaxValue, choices,
	)
	if err != nil {
		return fmt.Errorf("update question: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListQuestions(ctx context.Context, tournamentID domain.TournamentID, kind models.QuestionKind) ([]*models.Question, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT id, tournament_id, kind, seq, name, text, help_text, answer_type, required, min_value, max_value, choices
		FROM questions
		WHERE tournament_id = $1 AND kind = $2
		ORDER BY seq, id`,
		int64(tournamentID), string(kind))
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	out := []*models.Question{}
	for rows.Next() {
		var (
			q        models.Question
			lo, hi   sql.NullFloat64
			choices  string
		)
		if err := rows.Scan(&q.ID, &q.TournamentID, &q.Kind, &q.Seq, &q.Name, &q.Text, &q.HelpText,
			&q.AnswerType, &q.Required, &lo, &hi, &choices); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if lo.Valid {
			q.MinValue = &lo.Float64
		}
		if hi.Valid {
			q.MaxValue = &hi.Float64
		}
		q.Choices = pstrings.SplitChoices(choices)
		out = append(out, &q)
	}
	return out, rows.Err()
}

func (s *PostgresStore) SaveAnswers(ctx context.Context, answers []models.Answer) error {
	return txcontext.Run(ctx, s.db, func(ctx context.Context) error {
		exec := txcontext.Exec(ctx, s.db)
		for _, a := range answers {
			_, err := exec.ExecContext(ctx, `
				INSERT INTO answers (question_id, kind, subject_id, answer)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (question_id, subject_id) DO UPDATE SET answer = EXCLUDED.answer`,
				int64(a.QuestionID), string(a.Kind), a.SubjectID, a.Answer)
			if err != nil {
				if postgres.IsForeignKeyViolation(err) {
					return ErrNotFound
				}
				return fmt.Errorf("save answer: %w", err)
			}
		}
		return nil
	})
}

func (s *PostgresStore) ListAnswers(ctx context.Context, tournamentID domain.TournamentID, kind models.QuestionKind) ([]models.Answer, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT a.question_id, a.kind, a.subject_id, a.answer
		FROM answers a
		JOIN questions q ON q.id = a.question_id
		WHERE q.tournament_id = $1 AND a.kind = $2
		ORDER BY a.subject_id, a.question_id`,
		int64(tournamentID), string(kind))
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer rows.Close()

	out := []models.Answer{}
	for rows.Next() {
		var a models.Answer
		if err := rows.Scan(&a.QuestionID, &a.Kind, &a.SubjectID, &a.Answer); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
