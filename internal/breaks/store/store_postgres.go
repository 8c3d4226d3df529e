package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"debatetab/internal/breaks/models"
	"debatetab/internal/platform/postgres"
	"debatetab/pkg/domain"
	txcontext "debatetab/pkg/platform/tx"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) SaveCategory(ctx context.Context, c *models.BreakCategory) error {
	exec := txcontext.Exec(ctx, s.db)
	if c.ID == 0 {
		var id int64
		err := exec.QueryRowContext(ctx, `
			INSERT INTO break_categories (tournament_id, name, slug, seq, break_size, is_general, priority)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			int64(c.TournamentID), c.Name, c.Slug, c.Seq, c.BreakSize, c.IsGeneral, c.Priority,
		).Scan(&id)
		if err != nil {
			return categoryErr(err, c.Slug)
		}
		c.ID = domain.BreakCategoryID(id)
		return nil
	}
	res, err := exec.ExecContext(ctx, `
		UPDATE break_categories
		SET name = $3, slug = $4, seq = $5, break_size = $6, is_general = $7, priority = $8
		WHERE id = $1 AND tournament_id = $2`,
		int64(c.ID), int64(c.TournamentID), c.Name, c.Slug, c.Seq, c.BreakSize, c.IsGeneral, c.Priority,
	)
	if err != nil {
		return categoryErr(err, c.Slug)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func categoryErr(err error, slug string) error {
	if postgres.IsUniqueViolation(err) {
		return fmt.Errorf("break category slug %q: %w", slug, ErrConflict)
	}
	if postgres.IsForeignKeyViolation(err) {
		return ErrNotFound
	}
	return fmt.Errorf("save break category: %w", err)
}

const categoryColumns = `id, tournament_id, name, slug, seq, break_size, is_general, priority`

func scanCategory(row interface{ Scan(...any) error }) (*models.BreakCategory, error) {
	var c models.BreakCategory
	err := row.Scan(&c.ID, &c.TournamentID, &c.Name, &c.Slug, &c.Seq, &c.BreakSize, &c.IsGeneral, &c.Priority)
	return &c, err
}

func (s *PostgresStore) ListCategories(ctx context.Context, tournamentID domain.TournamentID) ([]*models.BreakCategory, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM break_categories WHERE tournament_id = $1 ORDER BY seq, id`,
		int64(tournamentID))
	if err != nil {
		return nil, fmt.Errorf("list break categories: %w", err)
	}
	defer rows.Close()
	var out []*models.BreakCategory
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan break category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) FindCategory(ctx context.Context, tournamentID domain.TournamentID, id domain.BreakCategoryID) (*models.BreakCategory, error) {
	c, err := scanCategory(txcontext.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM break_categories WHERE id = $1 AND tournament_id = $2`,
		int64(id), int64(tournamentID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find break category: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) SetEligibleTeams(ctx context.Context, categoryID domain.BreakCategoryID, teamIDs []domain.TeamID) error {
	return txcontext.Run(ctx, s.db, func(ctx context.Context) error {
		exec := txcontext.Exec(ctx, s.db)
		if _, err := exec.ExecContext(ctx, `DELETE FROM break_category_teams WHERE break_category_id = $1`, int64(categoryID)); err != nil {
			return fmt.Errorf("clear eligibility: %w", err)
		}
		ids := make([]int64, len(teamIDs))
		for i, id := range teamIDs {
			ids[i] = int64(id)
		}
		_, err := exec.ExecContext(ctx, `
			INSERT INTO break_category_teams (break_category_id, team_id)
			SELECT $1, t FROM unnest($2::bigint[]) AS t
			ON CONFLICT DO NOTHING`,
			int64(categoryID), pq.Array(ids))
		if err != nil {
			if postgres.IsForeignKeyViolation(err) {
				return ErrNotFound
			}
			return fmt.Errorf("insert eligibility: %w", err)
		}
		return nil
	})
}

func (s *PostgresStore) ListEligibleTeamIDs(ctx context.Context, categoryID domain.BreakCategoryID) ([]domain.TeamID, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx,
		`SELECT team_id FROM break_category_teams WHERE break_category_id = $1 ORDER BY team_id`, int64(categoryID))
	if err != nil {
		return nil, fmt.Errorf("list eligible teams: %w", err)
	}
	defer rows.Close()
	var out []domain.TeamID
	for rows.Next() {
		var id domain.TeamID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan eligible team: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ReplaceBreakingTeams(ctx context.Context, categoryID domain.BreakCategoryID, teams []models.BreakingTeam) error {
	return txcontext.Run(ctx, s.db, func(ctx context.Context) error {
		exec := txcontext.Exec(ctx, s.db)
		if _, err := exec.ExecContext(ctx, `DELETE FROM breaking_teams WHERE break_category_id = $1`, int64(categoryID)); err != nil {
			return fmt.Errorf("clear break: %w", err)
		}
		for _, bt := range teams {
			var breakRank sql.NullInt64
			if bt.BreakRank != nil {
				breakRank = sql.NullInt64{Int64: int64(*bt.BreakRank), Valid: true}
			}
			_, err := exec.ExecContext(ctx, `
				INSERT INTO breaking_teams (break_category_id, team_id, rank, break_rank, remark)
				VALUES ($1, $2, $3, $4, $5)`,
				int64(categoryID), int64(bt.TeamID), bt.Rank, breakRank, string(bt.Remark))
			if err != nil {
				if postgres.IsForeignKeyViolation(err) {
					return ErrNotFound
				}
				return fmt.Errorf("insert breaking team: %w", err)
			}
		}
		return nil
	})
}

func (s *PostgresStore) ListBreakingTeams(ctx context.Context, categoryID domain.BreakCategoryID) ([]*models.BreakingTeam, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT break_category_id, team_id, rank, break_rank, remark
		FROM breaking_teams WHERE break_category_id = $1
		ORDER BY rank, team_id`, int64(categoryID))
	if err != nil {
		return nil, fmt.Errorf("list breaking teams: %w", err)
	}
	defer rows.Close()
	out := []*models.BreakingTeam{}
	for rows.Next() {
		var (
			bt        models.BreakingTeam
			breakRank sql.NullInt64
		)
		if err := rows.Scan(&bt.BreakCategoryID, &bt.TeamID, &bt.Rank, &breakRank, &bt.Remark); err != nil {
			return nil, fmt.Errorf("scan breaking team: %w", err)
		}
		if breakRank.Valid {
			r := int(breakRank.Int64)
			bt.BreakRank = &r
		}
		out = append(out, &bt)
	}
	return out, rows.Err()
}

func (s *PostgresStore) DeleteBreakingTeams(ctx context.Context, categoryID domain.BreakCategoryID) error {
	if _, err := txcontext.Exec(ctx, s.db).ExecContext(ctx,
		`DELETE FROM breaking_teams WHERE break_category_id = $1`, int64(categoryID)); err != nil {
		return fmt.Errorf("delete break: %w", err)
	}
	return nil
}

func (s *PostgresStore) SetRemark(ctx context.Context, categoryID domain.BreakCategoryID, teamID domain.TeamID, remark models.Remark) error {
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx,
		`UPDATE breaking_teams SET remark = $3 WHERE break_category_id = $1 AND team_id = $2`,
		int64(categoryID), int64(teamID), string(remark))
	if err != nil {
		return fmt.Errorf("set remark: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) SaveStanding(ctx context.Context, st models.TeamStanding) error {
	_, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO team_standings (team_id, points, speaker_score) VALUES ($1, $2, $3)
		ON CONFLICT (team_id) DO UPDATE SET points = EXCLUDED.points, speaker_score = EXCLUDED.speaker_score`,
		int64(st.TeamID), st.Points, st.SpeakerScore)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("save standing: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListStandings(ctx context.Context, teamIDs []domain.TeamID) ([]*models.TeamStanding, error) {
	ids := make([]int64, len(teamIDs))
	for i, id := range teamIDs {
		ids[i] = int64(id)
	}
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx,
		`SELECT team_id, points, speaker_score FROM team_standings WHERE team_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}
	defer rows.Close()
	var out []*models.TeamStanding
	for rows.Next() {
		var st models.TeamStanding
		if err := rows.Scan(&st.TeamID, &st.Points, &st.SpeakerScore); err != nil {
			return nil, fmt.Errorf("scan standing: %w", err)
		}
		out = append(out, &st)
	}
	return out, rows.Err()
}
