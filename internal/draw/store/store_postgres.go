package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"debatetab/internal/draw/models"
	"debatetab/pkg/domain"
	txcontext "debatetab/pkg/platform/tx"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) SaveDebate(ctx context.Context, d *models.Debate) error {
	return txcontext.Run(ctx, s.db, func(ctx context.Context) error {
		exec := txcontext.Exec(ctx, s.db)
		var venue sql.NullInt64
		if d.VenueID != nil {
			venue = sql.NullInt64{Int64: int64(*d.VenueID), Valid: true}
		}
		if d.ID == 0 {
			var id int64
			if err := exec.QueryRowContext(ctx,
				`INSERT INTO debates (round_id, venue_id) VALUES ($1, $2) RETURNING id`, int64(d.RoundID), venue,
			).Scan(&id); err != nil {
				return fmt.Errorf("insert debate: %w", err)
			}
			d.ID = domain.DebateID(id)
		} else {
			res, err := exec.ExecContext(ctx, `UPDATE debates SET round_id = $2, venue_id = $3 WHERE id = $1`,
				int64(d.ID), int64(d.RoundID), venue)
			if err != nil {
				return fmt.Errorf("update debate: %w", err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return ErrNotFound
			}
			if _, err := exec.ExecContext(ctx, `DELETE FROM debate_teams WHERE debate_id = $1`, int64(d.ID)); err != nil {
				return fmt.Errorf("clear debate teams: %w", err)
			}
			if _, err := exec.ExecContext(ctx, `DELETE FROM debate_adjudicators WHERE debate_id = $1`, int64(d.ID)); err != nil {
				return fmt.Errorf("clear debate adjudicators: %w", err)
			}
		}
		for _, dt := range d.Teams {
			var team sql.NullInt64
			if dt.TeamID != nil {
				team = sql.NullInt64{Int64: int64(*dt.TeamID), Valid: true}
			}
			if _, err := exec.ExecContext(ctx,
				`INSERT INTO debate_teams (debate_id, side, team_id) VALUES ($1, $2, $3)`,
				int64(d.ID), string(dt.Side), team); err != nil {
				return fmt.Errorf("insert debate team: %w", err)
			}
		}
		for _, da := range d.Adjudicators {
			if _, err := exec.ExecContext(ctx,
				`INSERT INTO debate_adjudicators (debate_id, adjudicator_id, position) VALUES ($1, $2, $3)`,
				int64(d.ID), int64(da.AdjudicatorID), string(da.Position)); err != nil {
				return fmt.Errorf("insert debate adjudicator: %w", err)
			}
		}
		return nil
	})
}

// ListDebates loads debates and their children in three queries.
func (s *PostgresStore) ListDebates(ctx context.Context, roundIDs ...domain.RoundID) ([]*models.Debate, error) {
	ids := make([]int64, len(roundIDs))
	for i, id := range roundIDs {
		ids[i] = int64(id)
	}
	return s.load(ctx, `WHERE round_id = ANY($1)`, pq.Array(ids))
}

func (s *PostgresStore) FindDebate(ctx context.Context, roundID domain.RoundID, id domain.DebateID) (*models.Debate, error) {
	debates, err := s.load(ctx, `WHERE round_id = $1 AND id = $2`, int64(roundID), int64(id))
	if err != nil {
		return nil, err
	}
	if len(debates) == 0 {
		return nil, ErrNotFound
	}
	return debates[0], nil
}

func (s *PostgresStore) load(ctx context.Context, where string, args ...any) ([]*models.Debate, error) {
	exec := txcontext.Exec(ctx, s.db)
	rows, err := exec.QueryContext(ctx, `SELECT id, round_id, venue_id FROM debates `+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query debates: %w", err)
	}
	var (
		out  []*models.Debate
		byID = map[domain.DebateID]*models.Debate{}
		ids  []int64
	)
	for rows.Next() {
		var (
			d     models.Debate
			venue sql.NullInt64
		)
		if err := rows.Scan(&d.ID, &d.RoundID, &venue); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan debate: %w", err)
		}
		if venue.Valid {
			v := domain.VenueID(venue.Int64)
			d.VenueID = &v
		}
		out = append(out, &d)
		byID[d.ID] = &d
		ids = append(ids, int64(d.ID))
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate debates: %w", err)
	}
	if len(ids) == 0 {
		return out, nil
	}

	teamRows, err := exec.QueryContext(ctx, `
		SELECT debate_id, side, team_id FROM debate_teams WHERE debate_id = ANY($1)
		ORDER BY debate_id, CASE side
			WHEN 'aff' THEN 0 WHEN 'og' THEN 0 WHEN 'neg' THEN 1 WHEN 'oo' THEN 1
			WHEN 'cg' THEN 2 WHEN 'co' THEN 3 ELSE 4 END`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("query debate teams: %w", err)
	}
	for teamRows.Next() {
		var (
			debateID domain.DebateID
			side     string
			team     sql.NullInt64
		)
		if err := teamRows.Scan(&debateID, &side, &team); err != nil {
			teamRows.Close()
			return nil, fmt.Errorf("scan debate team: %w", err)
		}
		dt := models.DebateTeam{Side: models.Side(side)}
		if team.Valid {
			t := domain.TeamID(team.Int64)
			dt.TeamID = &t
		}
		byID[debateID].Teams = append(byID[debateID].Teams, dt)
	}
	teamRows.Close()
	if err := teamRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate debate teams: %w", err)
	}

	adjRows, err := exec.QueryContext(ctx, `
		SELECT debate_id, adjudicator_id, position FROM debate_adjudicators WHERE debate_id = ANY($1)
		ORDER BY debate_id, position, adjudicator_id`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("query debate adjudicators: %w", err)
	}
	defer adjRows.Close()
	for adjRows.Next() {
		var (
			debateID domain.DebateID
			da       models.DebateAdjudicator
			position string
		)
		if err := adjRows.Scan(&debateID, &da.AdjudicatorID, &position); err != nil {
			return nil, fmt.Errorf("scan debate adjudicator: %w", err)
		}
		da.Position = models.AdjPosition(position)
		byID[debateID].Adjudicators = append(byID[debateID].Adjudicators, da)
	}
	return out, adjRows.Err()
}
