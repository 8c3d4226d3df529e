package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"debatetab/internal/platform/postgres"
	"debatetab/internal/tournaments/models"
	"debatetab/pkg/domain"
	txcontext "debatetab/pkg/platform/tx"
)

// PostgresStore persists tournament data in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateTournament(ctx context.Context, t *models.Tournament) error {
	query := `
		INSERT INTO tournaments (slug, name, short_name, seq, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int64
	err := txcontext.Exec(ctx, s.db).QueryRowContext(ctx, query, t.Slug, t.Name, t.ShortName, t.Seq, t.Active).Scan(&id)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("tournament slug %q: %w", t.Slug, ErrConflict)
		}
		return fmt.Errorf("insert tournament: %w", err)
	}
	t.ID = domain.TournamentID(id)
	return nil
}

func (s *PostgresStore) FindTournamentBySlug(ctx context.Context, slug string) (*models.Tournament, error) {
	query := `SELECT id, slug, name, short_name, seq, active FROM tournaments WHERE slug = $1`
	var t models.Tournament
	err := txcontext.Exec(ctx, s.db).QueryRowContext(ctx, query, slug).
		Scan(&t.ID, &t.Slug, &t.Name, &t.ShortName, &t.Seq, &t.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find tournament by slug: %w", err)
	}
	return &t, nil
}

func (s *PostgresStore) ListTournaments(ctx context.Context) ([]*models.Tournament, error) {
	query := `SELECT id, slug, name, short_name, seq, active FROM tournaments ORDER BY seq, id`
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	defer rows.Close()
	var out []*models.Tournament
	for rows.Next() {
		var t models.Tournament
		if err := rows.Scan(&t.ID, &t.Slug, &t.Name, &t.ShortName, &t.Seq, &t.Active); err != nil {
			return nil, fmt.Errorf("scan tournament: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

const roundColumns = `id, tournament_id, seq, name, abbreviation, stage, draw_type, draw_status,
	break_category_id, starts_at, completed, silent, motions_released, weight`

func (s *PostgresStore) SaveRound(ctx context.Context, r *models.Round) error {
	var breakCategory sql.NullInt64
	if r.BreakCategoryID != nil {
		breakCategory = sql.NullInt64{Int64: int64(*r.BreakCategoryID), Valid: true}
	}
	var startsAt sql.NullTime
	if r.StartsAt != nil {
		startsAt = sql.NullTime{Time: *r.StartsAt, Valid: true}
	}
	exec := txcontext.Exec(ctx, s.db)

	if r.ID == 0 {
		query := `
			INSERT INTO rounds (tournament_id, seq, name, abbreviation, stage, draw_type, draw_status,
				break_category_id, starts_at, completed, silent, motions_released, weight)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING id
		`
		var id int64
		err := exec.QueryRowContext(ctx, query,
			int64(r.TournamentID), r.Seq, r.Name, r.Abbreviation, string(r.Stage), string(r.DrawType),
			string(r.DrawStatus), breakCategory, startsAt, r.Completed, r.Silent, r.MotionsReleased, r.Weight,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert round: %w", err)
		}
		r.ID = domain.RoundID(id)
		return nil
	}

	query := `
		UPDATE rounds SET seq = $2, name = $3, abbreviation = $4, stage = $5, draw_type = $6,
			draw_status = $7, break_category_id = $8, starts_at = $9, completed = $10, silent = $11,
			motions_released = $12, weight = $13
		WHERE id = $1
	`
	res, err := exec.ExecContext(ctx, query,
		int64(r.ID), r.Seq, r.Name, r.Abbreviation, string(r.Stage), string(r.DrawType),
		string(r.DrawStatus), breakCategory, startsAt, r.Completed, r.Silent, r.MotionsReleased, r.Weight,
	)
	if err != nil {
		return fmt.Errorf("update round: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListRounds(ctx context.Context, tournamentID domain.TournamentID) ([]*models.Round, error) {
	query := `SELECT ` + roundColumns + ` FROM rounds WHERE tournament_id = $1 ORDER BY seq, id`
	return s.queryRounds(ctx, query, int64(tournamentID))
}

func (s *PostgresStore) ListRoundsBySeq(ctx context.Context, tournamentID domain.TournamentID, seq int) ([]*models.Round, error) {
	query := `SELECT ` + roundColumns + ` FROM rounds WHERE tournament_id = $1 AND seq = $2 ORDER BY id`
	return s.queryRounds(ctx, query, int64(tournamentID), seq)
}

func (s *PostgresStore) FindRound(ctx context.Context, tournamentID domain.TournamentID, seq int) (*models.Round, error) {
	rounds, err := s.ListRoundsBySeq(ctx, tournamentID, seq)
	if err != nil {
		return nil, err
	}
	if len(rounds) == 0 {
		return nil, ErrNotFound
	}
	return rounds[0], nil
}

func (s *PostgresStore) queryRounds(ctx context.Context, query string, args ...any) ([]*models.Round, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query rounds: %w", err)
	}
	defer rows.Close()

	var out []*models.Round
	for rows.Next() {
		var (
			r                           models.Round
			stage, drawType, drawStatus string
			breakCategory               sql.NullInt64
			startsAt                    sql.NullTime
		)
		err := rows.Scan(&r.ID, &r.TournamentID, &r.Seq, &r.Name, &r.Abbreviation, &stage, &drawType,
			&drawStatus, &breakCategory, &startsAt, &r.Completed, &r.Silent, &r.MotionsReleased, &r.Weight)
		if err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		r.Stage = models.Stage(stage)
		r.DrawType = models.DrawType(drawType)
		r.DrawStatus = models.DrawStatus(drawStatus)
		if breakCategory.Valid {
			id := domain.BreakCategoryID(breakCategory.Int64)
			r.BreakCategoryID = &id
		}
		if startsAt.Valid {
			t := startsAt.Time
			r.StartsAt = &t
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

// SaveMotion upserts the motion and replaces its round links.
func (s *PostgresStore) SaveMotion(ctx context.Context, m *models.Motion) error {
	return txcontext.Run(ctx, s.db, func(ctx context.Context) error {
		exec := txcontext.Exec(ctx, s.db)
		if m.ID == 0 {
			query := `INSERT INTO motions (tournament_id, text, reference, info_slide) VALUES ($1, $2, $3, $4) RETURNING id`
			var id int64
			if err := exec.QueryRowContext(ctx, query, int64(m.TournamentID), m.Text, m.Reference, m.InfoSlide).Scan(&id); err != nil {
				return fmt.Errorf("insert motion: %w", err)
			}
			m.ID = domain.MotionID(id)
		} else {
			query := `UPDATE motions SET text = $2, reference = $3, info_slide = $4 WHERE id = $1`
			if _, err := exec.ExecContext(ctx, query, int64(m.ID), m.Text, m.Reference, m.InfoSlide); err != nil {
				return fmt.Errorf("update motion: %w", err)
			}
			if _, err := exec.ExecContext(ctx, `DELETE FROM round_motions WHERE motion_id = $1`, int64(m.ID)); err != nil {
				return fmt.Errorf("clear round motions: %w", err)
			}
		}
		for _, rm := range m.Rounds {
			query := `INSERT INTO round_motions (round_id, motion_id, seq) VALUES ($1, $2, $3)`
			if _, err := exec.ExecContext(ctx, query, int64(rm.RoundID), int64(m.ID), rm.Seq); err != nil {
				return fmt.Errorf("insert round motion: %w", err)
			}
		}
		return nil
	})
}

func (s *PostgresStore) ListMotions(ctx context.Context, tournamentID domain.TournamentID) ([]*models.Motion, error) {
	return s.queryMotions(ctx, `WHERE m.tournament_id = $1`, int64(tournamentID))
}

func (s *PostgresStore) FindMotion(ctx context.Context, tournamentID domain.TournamentID, id domain.MotionID) (*models.Motion, error) {
	motions, err := s.queryMotions(ctx, `WHERE m.tournament_id = $1 AND m.id = $2`, int64(tournamentID), int64(id))
	if err != nil {
		return nil, err
	}
	if len(motions) == 0 {
		return nil, ErrNotFound
	}
	return motions[0], nil
}

func (s *PostgresStore) queryMotions(ctx context.Context, where string, args ...any) ([]*models.Motion, error) {
	query := `
		SELECT m.id, m.tournament_id, m.text, m.reference, m.info_slide, rm.round_id, rm.seq
		FROM motions m
		LEFT JOIN round_motions rm ON rm.motion_id = m.id
		` + where + `
		ORDER BY m.id, rm.seq, rm.round_id
	`
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query motions: %w", err)
	}
	defer rows.Close()

	var out []*models.Motion
	for rows.Next() {
		var (
			m       models.Motion
			roundID sql.NullInt64
			seq     sql.NullInt32
		)
		if err := rows.Scan(&m.ID, &m.TournamentID, &m.Text, &m.Reference, &m.InfoSlide, &roundID, &seq); err != nil {
			return nil, fmt.Errorf("scan motion: %w", err)
		}
		if len(out) == 0 || out[len(out)-1].ID != m.ID {
			out = append(out, &m)
		}
		if roundID.Valid {
			last := out[len(out)-1]
			last.Rounds = append(last.Rounds, models.RoundMotion{RoundID: domain.RoundID(roundID.Int64), Seq: int(seq.Int32)})
		}
	}
	return out, rows.Err()
}

func (s *PostgresStore) LoadPreferences(ctx context.Context, tournamentID domain.TournamentID) (models.Preferences, error) {
	var data []byte
	err := txcontext.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT data FROM tournament_preferences WHERE tournament_id = $1`, int64(tournamentID),
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DefaultPreferences(), nil
		}
		return models.Preferences{}, fmt.Errorf("load preferences: %w", err)
	}
	prefs := models.DefaultPreferences()
	if err := json.Unmarshal(data, &prefs); err != nil {
		return models.Preferences{}, fmt.Errorf("unmarshal preferences: %w", err)
	}
	prefs.Normalize()
	return prefs, nil
}

func (s *PostgresStore) SavePreferences(ctx context.Context, tournamentID domain.TournamentID, prefs models.Preferences) error {
	prefs.Normalize()
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	query := `
		INSERT INTO tournament_preferences (tournament_id, data) VALUES ($1, $2)
		ON CONFLICT (tournament_id) DO UPDATE SET data = EXCLUDED.data
	`
	if _, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, query, int64(tournamentID), data); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
