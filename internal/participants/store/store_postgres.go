package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"debatetab/internal/participants/models"
	"debatetab/internal/platform/postgres"
	"debatetab/pkg/domain"
	txcontext "debatetab/pkg/platform/tx"
)

// PostgresStore persists participants in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) exec(ctx context.Context) txcontext.Executor {
	return txcontext.Exec(ctx, s.db)
}

func insertErr(what string, err error) error {
	if postgres.IsUniqueViolation(err) {
		return fmt.Errorf("%s: %w", what, ErrConflict)
	}
	if postgres.IsForeignKeyViolation(err) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("insert %s: %w", what, err)
}

func nullInstitution(id *domain.InstitutionID) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*id), Valid: true}
}

func institutionPtr(v sql.NullInt64) *domain.InstitutionID {
	if !v.Valid {
		return nil
	}
	id := domain.InstitutionID(v.Int64)
	return &id
}

// -----------------------------------------------------------------------------
// Institutions
// -----------------------------------------------------------------------------

func (s *PostgresStore) CreateInstitution(ctx context.Context, inst *models.Institution) error {
	var id int64
	err := s.exec(ctx).QueryRowContext(ctx,
		`INSERT INTO institutions (name, code) VALUES ($1, $2) RETURNING id`, inst.Name, inst.Code,
	).Scan(&id)
	if err != nil {
		return insertErr("institution", err)
	}
	inst.ID = domain.InstitutionID(id)
	return nil
}

func (s *PostgresStore) FindInstitutionByName(ctx context.Context, name string) (*models.Institution, error) {
	return s.findInstitution(ctx, `SELECT id, name, code FROM institutions WHERE lower(name) = lower($1) ORDER BY id LIMIT 1`, name)
}

func (s *PostgresStore) FindInstitution(ctx context.Context, id domain.InstitutionID) (*models.Institution, error) {
	return s.findInstitution(ctx, `SELECT id, name, code FROM institutions WHERE id = $1`, int64(id))
}

func (s *PostgresStore) findInstitution(ctx context.Context, query string, arg any) (*models.Institution, error) {
	var inst models.Institution
	if err := s.exec(ctx).QueryRowContext(ctx, query, arg).Scan(&inst.ID, &inst.Name, &inst.Code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find institution: %w", err)
	}
	return &inst, nil
}

func (s *PostgresStore) ListInstitutions(ctx context.Context) ([]*models.Institution, error) {
	rows, err := s.exec(ctx).QueryContext(ctx, `SELECT id, name, code FROM institutions ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list institutions: %w", err)
	}
	defer rows.Close()
	var out []*models.Institution
	for rows.Next() {
		var inst models.Institution
		if err := rows.Scan(&inst.ID, &inst.Name, &inst.Code); err != nil {
			return nil, fmt.Errorf("scan institution: %w", err)
		}
		out = append(out, &inst)
	}
	return out, rows.Err()
}

const tournamentInstitutionColumns = `id, tournament_id, institution_id, teams_requested, teams_allocated,
	adjudicators_requested, adjudicators_allocated`

func (s *PostgresStore) SaveTournamentInstitution(ctx context.Context, ti *models.TournamentInstitution) error {
	if ti.ID == 0 {
		query := `
			INSERT INTO tournament_institutions (tournament_id, institution_id, teams_requested, teams_allocated,
				adjudicators_requested, adjudicators_allocated)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`
		err := s.exec(ctx).QueryRowContext(ctx, query, int64(ti.TournamentID), int64(ti.InstitutionID),
			ti.TeamsRequested, ti.TeamsAllocated, ti.AdjudicatorsRequested, ti.AdjudicatorsAllocated,
		).Scan(&ti.ID)
		if err != nil {
			return insertErr("tournament institution", err)
		}
		return nil
	}
	query := `
		UPDATE tournament_institutions SET teams_requested = $2, teams_allocated = $3,
			adjudicators_requested = $4, adjudicators_allocated = $5
		WHERE id = $1
	`
	res, err := s.exec(ctx).ExecContext(ctx, query, ti.ID,
		ti.TeamsRequested, ti.TeamsAllocated, ti.AdjudicatorsRequested, ti.AdjudicatorsAllocated)
	if err != nil {
		return fmt.Errorf("update tournament institution: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindTournamentInstitution(ctx context.Context, tournamentID domain.TournamentID, institutionID domain.InstitutionID) (*models.TournamentInstitution, error) {
	list, err := s.queryTournamentInstitutions(ctx,
		`WHERE tournament_id = $1 AND institution_id = $2`, int64(tournamentID), int64(institutionID))
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	return list[0], nil
}

func (s *PostgresStore) FindTournamentInstitutionByID(ctx context.Context, id int64) (*models.TournamentInstitution, error) {
	list, err := s.queryTournamentInstitutions(ctx, `WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	return list[0], nil
}

func (s *PostgresStore) ListTournamentInstitutions(ctx context.Context, tournamentID domain.TournamentID) ([]*models.TournamentInstitution, error) {
	return s.queryTournamentInstitutions(ctx, `WHERE tournament_id = $1`, int64(tournamentID))
}

func (s *PostgresStore) queryTournamentInstitutions(ctx context.Context, where string, args ...any) ([]*models.TournamentInstitution, error) {
	query := `SELECT ` + tournamentInstitutionColumns + ` FROM tournament_institutions ` + where + ` ORDER BY id`
	rows, err := s.exec(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tournament institutions: %w", err)
	}
	defer rows.Close()
	var out []*models.TournamentInstitution
	for rows.Next() {
		var ti models.TournamentInstitution
		if err := rows.Scan(&ti.ID, &ti.TournamentID, &ti.InstitutionID, &ti.TeamsRequested, &ti.TeamsAllocated,
			&ti.AdjudicatorsRequested, &ti.AdjudicatorsAllocated); err != nil {
			return nil, fmt.Errorf("scan tournament institution: %w", err)
		}
		out = append(out, &ti)
	}
	return out, rows.Err()
}

// -----------------------------------------------------------------------------
// Coaches
// -----------------------------------------------------------------------------

func (s *PostgresStore) CreateCoach(ctx context.Context, c *models.Coach) error {
	var id int64
	err := s.exec(ctx).QueryRowContext(ctx,
		`INSERT INTO coaches (tournament_institution_id, name, email, url_key) VALUES ($1, $2, $3, $4) RETURNING id`,
		c.TournamentInstitutionID, c.Name, c.Email, c.URLKey,
	).Scan(&id)
	if err != nil {
		return insertErr("coach", err)
	}
	c.ID = domain.CoachID(id)
	return nil
}

func (s *PostgresStore) FindCoachByURLKey(ctx context.Context, key string) (*models.Coach, error) {
	var c models.Coach
	err := s.exec(ctx).QueryRowContext(ctx,
		`SELECT id, tournament_institution_id, name, email, url_key FROM coaches WHERE url_key = $1`, key,
	).Scan(&c.ID, &c.TournamentInstitutionID, &c.Name, &c.Email, &c.URLKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find coach: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) ListCoaches(ctx context.Context, tournamentID domain.TournamentID) ([]*models.Coach, error) {
	query := `
		SELECT c.id, c.tournament_institution_id, c.name, c.email, c.url_key
		FROM coaches c
		JOIN tournament_institutions ti ON ti.id = c.tournament_institution_id
		WHERE ti.tournament_id = $1
		ORDER BY c.id
	`
	rows, err := s.exec(ctx).QueryContext(ctx, query, int64(tournamentID))
	if err != nil {
		return nil, fmt.Errorf("list coaches: %w", err)
	}
	defer rows.Close()
	var out []*models.Coach
	for rows.Next() {
		var c models.Coach
		if err := rows.Scan(&c.ID, &c.TournamentInstitutionID, &c.Name, &c.Email, &c.URLKey); err != nil {
			return nil, fmt.Errorf("scan coach: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// -----------------------------------------------------------------------------
// Teams and speakers
// -----------------------------------------------------------------------------

const teamColumns = `id, tournament_id, institution_id, reference, short_reference, code_name, emoji, use_institution_prefix`

func (s *PostgresStore) CreateTeam(ctx context.Context, t *models.Team) error {
	query := `
		INSERT INTO teams (tournament_id, institution_id, reference, short_reference, code_name, emoji, use_institution_prefix)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var id int64
	err := s.exec(ctx).QueryRowContext(ctx, query, int64(t.TournamentID), nullInstitution(t.InstitutionID),
		t.Reference, t.ShortReference, t.CodeName, t.Emoji, t.UseInstitutionPrefix,
	).Scan(&id)
	if err != nil {
		return insertErr("team", err)
	}
	t.ID = domain.TeamID(id)
	return nil
}

func (s *PostgresStore) UpdateTeam(ctx context.Context, t *models.Team) error {
	query := `
		UPDATE teams SET institution_id = $2, reference = $3, short_reference = $4, code_name = $5,
			emoji = $6, use_institution_prefix = $7
		WHERE id = $1
	`
	res, err := s.exec(ctx).ExecContext(ctx, query, int64(t.ID), nullInstitution(t.InstitutionID),
		t.Reference, t.ShortReference, t.CodeName, t.Emoji, t.UseInstitutionPrefix)
	if err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindTeam(ctx context.Context, tournamentID domain.TournamentID, id domain.TeamID) (*models.Team, error) {
	teams, err := s.queryTeams(ctx, `WHERE tournament_id = $1 AND id = $2`, int64(tournamentID), int64(id))
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, ErrNotFound
	}
	return teams[0], nil
}

func (s *PostgresStore) ListTeams(ctx context.Context, tournamentID domain.TournamentID) ([]*models.Team, error) {
	return s.queryTeams(ctx, `WHERE tournament_id = $1`, int64(tournamentID))
}

func (s *PostgresStore) ListTeamsByInstitution(ctx context.Context, tournamentID domain.TournamentID, institutionID *domain.InstitutionID) ([]*models.Team, error) {
	if institutionID == nil {
		return s.queryTeams(ctx, `WHERE tournament_id = $1 AND institution_id IS NULL`, int64(tournamentID))
	}
	return s.queryTeams(ctx, `WHERE tournament_id = $1 AND institution_id = $2`, int64(tournamentID), int64(*institutionID))
}

func (s *PostgresStore) queryTeams(ctx context.Context, where string, args ...any) ([]*models.Team, error) {
	rows, err := s.exec(ctx).QueryContext(ctx, `SELECT `+teamColumns+` FROM teams `+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	defer rows.Close()
	var out []*models.Team
	for rows.Next() {
		var (
			t    models.Team
			inst sql.NullInt64
		)
		if err := rows.Scan(&t.ID, &t.TournamentID, &inst, &t.Reference, &t.ShortReference, &t.CodeName,
			&t.Emoji, &t.UseInstitutionPrefix); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		t.InstitutionID = institutionPtr(inst)
		out = append(out, &t)
	}
	return out, rows.Err()
}

// CreateSpeaker inserts the speaker and its category memberships together.
func (s *PostgresStore) CreateSpeaker(ctx context.Context, sp *models.Speaker) error {
	return txcontext.Run(ctx, s.db, func(ctx context.Context) error {
		var id int64
		err := s.exec(ctx).QueryRowContext(ctx,
			`INSERT INTO speakers (team_id, name, last_name, email, url_key) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			int64(sp.TeamID), sp.Name, sp.LastName, sp.Email, sp.URLKey,
		).Scan(&id)
		if err != nil {
			return insertErr("speaker", err)
		}
		sp.ID = domain.SpeakerID(id)
		for _, cat := range sp.CategoryIDs {
			if _, err := s.exec(ctx).ExecContext(ctx,
				`INSERT INTO speaker_category_members (speaker_category_id, speaker_id) VALUES ($1, $2)`,
				int64(cat), id); err != nil {
				return insertErr("speaker category member", err)
			}
		}
		return nil
	})
}

func (s *PostgresStore) ListSpeakersByTeam(ctx context.Context, teamID domain.TeamID) ([]*models.Speaker, error) {
	return s.querySpeakers(ctx, `WHERE sp.team_id = $1`, int64(teamID))
}

func (s *PostgresStore) ListSpeakers(ctx context.Context, tournamentID domain.TournamentID) ([]*models.Speaker, error) {
	return s.querySpeakers(ctx, `JOIN teams t ON t.id = sp.team_id WHERE t.tournament_id = $1`, int64(tournamentID))
}

func (s *PostgresStore) querySpeakers(ctx context.Context, where string, args ...any) ([]*models.Speaker, error) {
	query := `
		SELECT sp.id, sp.team_id, sp.name, sp.last_name, sp.email, sp.url_key, m.speaker_category_id
		FROM speakers sp
		LEFT JOIN speaker_category_members m ON m.speaker_id = sp.id
		` + where + `
		ORDER BY sp.id, m.speaker_category_id
	`
	rows, err := s.exec(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query speakers: %w", err)
	}
	defer rows.Close()
	var out []*models.Speaker
	for rows.Next() {
		var (
			sp  models.Speaker
			cat sql.NullInt64
		)
		if err := rows.Scan(&sp.ID, &sp.TeamID, &sp.Name, &sp.LastName, &sp.Email, &sp.URLKey, &cat); err != nil {
			return nil, fmt.Errorf("scan speaker: %w", err)
		}
		if len(out) == 0 || out[len(out)-1].ID != sp.ID {
			out = append(out, &sp)
		}
		if cat.Valid {
			last := out[len(out)-1]
			last.CategoryIDs = append(last.CategoryIDs, domain.SpeakerCatID(cat.Int64))
		}
	}
	return out, rows.Err()
}

// -----------------------------------------------------------------------------
// Adjudicators
// -----------------------------------------------------------------------------

func (s *PostgresStore) CreateAdjudicator(ctx context.Context, a *models.Adjudicator) error {
	query := `
		INSERT INTO adjudicators (tournament_id, institution_id, name, email, url_key, adj_core, independent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var id int64
	err := s.exec(ctx).QueryRowContext(ctx, query, int64(a.TournamentID), nullInstitution(a.InstitutionID),
		a.Name, a.Email, a.URLKey, a.AdjCore, a.Independent,
	).Scan(&id)
	if err != nil {
		return insertErr("adjudicator", err)
	}
	a.ID = domain.AdjudicatorID(id)
	return nil
}

func (s *PostgresStore) ListAdjudicators(ctx context.Context, tournamentID domain.TournamentID) ([]*models.Adjudicator, error) {
	query := `
		SELECT id, tournament_id, institution_id, name, email, url_key, adj_core, independent
		FROM adjudicators WHERE tournament_id = $1 ORDER BY id
	`
	rows, err := s.exec(ctx).QueryContext(ctx, query, int64(tournamentID))
	if err != nil {
		return nil, fmt.Errorf("list adjudicators: %w", err)
	}
	defer rows.Close()
	var out []*models.Adjudicator
	for rows.Next() {
		var (
			a    models.Adjudicator
			inst sql.NullInt64
		)
		if err := rows.Scan(&a.ID, &a.TournamentID, &inst, &a.Name, &a.Email, &a.URLKey, &a.AdjCore, &a.Independent); err != nil {
			return nil, fmt.Errorf("scan adjudicator: %w", err)
		}
		a.InstitutionID = institutionPtr(inst)
		out = append(out, &a)
	}
	return out, rows.Err()
}

// -----------------------------------------------------------------------------
// Speaker categories
// -----------------------------------------------------------------------------

func (s *PostgresStore) SaveSpeakerCategory(ctx context.Context, c *models.SpeakerCategory) error {
	if c.ID == 0 {
		query := `
			INSERT INTO speaker_categories (tournament_id, name, slug, seq, public, "limit")
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`
		var id int64
		if err := s.exec(ctx).QueryRowContext(ctx, query, int64(c.TournamentID), c.Name, c.Slug, c.Seq, c.Public, c.Limit).Scan(&id); err != nil {
			return insertErr("speaker category", err)
		}
		c.ID = domain.SpeakerCatID(id)
		return nil
	}
	query := `UPDATE speaker_categories SET name = $2, slug = $3, seq = $4, public = $5, "limit" = $6 WHERE id = $1`
	res, err := s.exec(ctx).ExecContext(ctx, query, int64(c.ID), c.Name, c.Slug, c.Seq, c.Public, c.Limit)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("speaker category slug %q: %w", c.Slug, ErrConflict)
		}
		return fmt.Errorf("update speaker category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListSpeakerCategories(ctx context.Context, tournamentID domain.TournamentID) ([]*models.SpeakerCategory, error) {
	return s.querySpeakerCategories(ctx, `WHERE tournament_id = $1`, int64(tournamentID))
}

func (s *PostgresStore) FindSpeakerCategory(ctx context.Context, tournamentID domain.TournamentID, id domain.SpeakerCatID) (*models.SpeakerCategory, error) {
	list, err := s.querySpeakerCategories(ctx, `WHERE tournament_id = $1 AND id = $2`, int64(tournamentID), int64(id))
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	return list[0], nil
}

func (s *PostgresStore) querySpeakerCategories(ctx context.Context, where string, args ...any) ([]*models.SpeakerCategory, error) {
	query := `SELECT id, tournament_id, name, slug, seq, public, "limit" FROM speaker_categories ` + where + ` ORDER BY seq, id`
	rows, err := s.exec(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query speaker categories: %w", err)
	}
	defer rows.Close()
	var out []*models.SpeakerCategory
	for rows.Next() {
		var c models.SpeakerCategory
		if err := rows.Scan(&c.ID, &c.TournamentID, &c.Name, &c.Slug, &c.Seq, &c.Public, &c.Limit); err != nil {
			return nil, fmt.Errorf("scan speaker category: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ListSpeakerIDsInCategory(ctx context.Context, id domain.SpeakerCatID) ([]domain.SpeakerID, error) {
	rows, err := s.exec(ctx).QueryContext(ctx,
		`SELECT speaker_id FROM speaker_category_members WHERE speaker_category_id = $1 ORDER BY speaker_id`, int64(id))
	if err != nil {
		return nil, fmt.Errorf("list speaker category members: %w", err)
	}
	defer rows.Close()
	var out []domain.SpeakerID
	for rows.Next() {
		var sid domain.SpeakerID
		if err := rows.Scan(&sid); err != nil {
			return nil, fmt.Errorf("scan speaker category member: %w", err)
		}
		out = append(out, sid)
	}
	return out, rows.Err()
}
