package store

import (
	"context"
	"database/sql"
	"fmt"

	"debatetab/internal/platform/postgres"
	"debatetab/internal/results/models"
	"debatetab/pkg/domain"
	txcontext "debatetab/pkg/platform/tx"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) SaveBallot(ctx context.Context, b *models.BallotSubmission) error {
	var motion sql.NullInt64
	if b.MotionID != nil {
		motion = sql.NullInt64{Int64: int64(*b.MotionID), Valid: true}
	}
	var id int64
	err := txcontext.Exec(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO ballot_submissions (debate_id, version, confirmed, discarded, submitter_type, motion_id, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		int64(b.DebateID), b.Version, b.Confirmed, b.Discarded, string(b.SubmitterType), motion, b.Timestamp,
	).Scan(&id)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("ballot version %d: %w", b.Version, ErrConflict)
		}
		if postgres.IsForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("insert ballot: %w", err)
	}
	b.ID = domain.BallotID(id)
	return nil
}

func (s *PostgresStore) ListBallots(ctx context.Context, debateID domain.DebateID) ([]*models.BallotSubmission, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT id, debate_id, version, confirmed, discarded, submitter_type, motion_id, timestamp
		FROM ballot_submissions WHERE debate_id = $1 ORDER BY version`, int64(debateID))
	if err != nil {
		return nil, fmt.Errorf("list ballots: %w", err)
	}
	defer rows.Close()
	out := []*models.BallotSubmission{}
	for rows.Next() {
		var (
			b      models.BallotSubmission
			motion sql.NullInt64
		)
		if err := rows.Scan(&b.ID, &b.DebateID, &b.Version, &b.Confirmed, &b.Discarded, &b.SubmitterType, &motion, &b.Timestamp); err != nil {
			return nil, fmt.Errorf("scan ballot: %w", err)
		}
		if motion.Valid {
			m := domain.MotionID(motion.Int64)
			b.MotionID = &m
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}
