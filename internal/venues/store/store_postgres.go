package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"debatetab/internal/platform/postgres"
	"debatetab/internal/venues/models"
	"debatetab/pkg/domain"
	txcontext "debatetab/pkg/platform/tx"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) exec(ctx context.Context) txcontext.Executor {
	return txcontext.Exec(ctx, s.db)
}

// -----------------------------------------------------------------------------
// Venues
// -----------------------------------------------------------------------------

func (s *PostgresStore) SaveVenue(ctx context.Context, v *models.Venue) error {
	if v.ID == 0 {
		var id int64
		err := s.exec(ctx).QueryRowContext(ctx,
			`INSERT INTO venues (tournament_id, name, priority) VALUES ($1, $2, $3) RETURNING id`,
			int64(v.TournamentID), v.Name, v.Priority,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert venue: %w", err)
		}
		v.ID = domain.VenueID(id)
		return nil
	}
	res, err := s.exec(ctx).ExecContext(ctx, `UPDATE venues SET name = $2, priority = $3 WHERE id = $1`,
		int64(v.ID), v.Name, v.Priority)
	if err != nil {
		return fmt.Errorf("update venue: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListVenues(ctx context.Context, tournamentID domain.TournamentID) ([]*models.Venue, error) {
	query := `
		SELECT v.id, v.tournament_id, v.name, v.priority, cv.venue_category_id
		FROM venues v
		LEFT JOIN venue_category_venues cv ON cv.venue_id = v.id
		WHERE v.tournament_id = $1
		ORDER BY v.priority DESC, v.name, v.id, cv.venue_category_id
	`
	rows, err := s.exec(ctx).QueryContext(ctx, query, int64(tournamentID))
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	defer rows.Close()
	var out []*models.Venue
	for rows.Next() {
		var (
			v   models.Venue
			cat sql.NullInt64
		)
		if err := rows.Scan(&v.ID, &v.TournamentID, &v.Name, &v.Priority, &cat); err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		if len(out) == 0 || out[len(out)-1].ID != v.ID {
			out = append(out, &v)
		}
		if cat.Valid {
			last := out[len(out)-1]
			last.CategoryIDs = append(last.CategoryIDs, domain.CategoryID(cat.Int64))
		}
	}
	return out, rows.Err()
}

func (s *PostgresStore) SetAvailability(ctx context.Context, roundID domain.RoundID, venueIDs []domain.VenueID) error {
	return txcontext.Run(ctx, s.db, func(ctx context.Context) error {
		if _, err := s.exec(ctx).ExecContext(ctx, `DELETE FROM venue_availability WHERE round_id = $1`, int64(roundID)); err != nil {
			return fmt.Errorf("clear venue availability: %w", err)
		}
		for _, id := range venueIDs {
			if _, err := s.exec(ctx).ExecContext(ctx,
				`INSERT INTO venue_availability (venue_id, round_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				int64(id), int64(roundID)); err != nil {
				return fmt.Errorf("insert venue availability: %w", err)
			}
		}
		return nil
	})
}

func (s *PostgresStore) ListAvailableVenueIDs(ctx context.Context, roundID domain.RoundID) ([]domain.VenueID, error) {
	rows, err := s.exec(ctx).QueryContext(ctx,
		`SELECT venue_id FROM venue_availability WHERE round_id = $1 ORDER BY venue_id`, int64(roundID))
	if err != nil {
		return nil, fmt.Errorf("list venue availability: %w", err)
	}
	defer rows.Close()
	var out []domain.VenueID
	for rows.Next() {
		var id domain.VenueID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan venue availability: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// -----------------------------------------------------------------------------
// Categories
// -----------------------------------------------------------------------------

// SaveCategory upserts the category and replaces its venue membership.
func (s *PostgresStore) SaveCategory(ctx context.Context, c *models.VenueCategory) error {
	return txcontext.Run(ctx, s.db, func(ctx context.Context) error {
		exec := s.exec(ctx)
		if c.ID == 0 {
			query := `
				INSERT INTO venue_categories (tournament_id, name, description, display_in_venue_name, display_in_public_tooltip)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id
			`
			var id int64
			if err := exec.QueryRowContext(ctx, query, int64(c.TournamentID), c.Name, c.Description,
				string(c.DisplayInVenueName), c.DisplayInPublicTooltip).Scan(&id); err != nil {
				return fmt.Errorf("insert venue category: %w", err)
			}
			c.ID = domain.CategoryID(id)
		} else {
			query := `
				UPDATE venue_categories SET name = $3, description = $4, display_in_venue_name = $5,
					display_in_public_tooltip = $6
				WHERE id = $1 AND tournament_id = $2
			`
			res, err := exec.ExecContext(ctx, query, int64(c.ID), int64(c.TournamentID), c.Name, c.Description,
				string(c.DisplayInVenueName), c.DisplayInPublicTooltip)
			if err != nil {
				return fmt.Errorf("update venue category: %w", err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return ErrNotFound
			}
			if _, err := exec.ExecContext(ctx, `DELETE FROM venue_category_venues WHERE venue_category_id = $1`, int64(c.ID)); err != nil {
				return fmt.Errorf("clear venue category venues: %w", err)
			}
		}
		for _, v := range c.VenueIDs {
			_, err := exec.ExecContext(ctx,
				`INSERT INTO venue_category_venues (venue_category_id, venue_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				int64(c.ID), int64(v))
			if err != nil {
				if postgres.IsForeignKeyViolation(err) {
					return fmt.Errorf("venue %d: %w", v, ErrNotFound)
				}
				return fmt.Errorf("insert venue category venue: %w", err)
			}
		}
		return nil
	})
}

func (s *PostgresStore) DeleteCategory(ctx context.Context, tournamentID domain.TournamentID, id domain.CategoryID) error {
	res, err := s.exec(ctx).ExecContext(ctx,
		`DELETE FROM venue_categories WHERE id = $1 AND tournament_id = $2`, int64(id), int64(tournamentID))
	if err != nil {
		return fmt.Errorf("delete venue category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListCategories(ctx context.Context, tournamentID domain.TournamentID) ([]*models.VenueCategory, error) {
	query := `
		SELECT c.id, c.tournament_id, c.name, c.description, c.display_in_venue_name, c.display_in_public_tooltip,
			cv.venue_id
		FROM venue_categories c
		LEFT JOIN venue_category_venues cv ON cv.venue_category_id = c.id
		WHERE c.tournament_id = $1
		ORDER BY c.id, cv.venue_id
	`
	rows, err := s.exec(ctx).QueryContext(ctx, query, int64(tournamentID))
	if err != nil {
		return nil, fmt.Errorf("list venue categories: %w", err)
	}
	defer rows.Close()
	var out []*models.VenueCategory
	for rows.Next() {
		var (
			c       models.VenueCategory
			display string
			venue   sql.NullInt64
		)
		if err := rows.Scan(&c.ID, &c.TournamentID, &c.Name, &c.Description, &display, &c.DisplayInPublicTooltip, &venue); err != nil {
			return nil, fmt.Errorf("scan venue category: %w", err)
		}
		c.DisplayInVenueName = models.VenueDisplay(display)
		if len(out) == 0 || out[len(out)-1].ID != c.ID {
			out = append(out, &c)
		}
		if venue.Valid {
			last := out[len(out)-1]
			last.VenueIDs = append(last.VenueIDs, domain.VenueID(venue.Int64))
		}
	}
	return out, rows.Err()
}

// -----------------------------------------------------------------------------
// Constraints
// -----------------------------------------------------------------------------

func (s *PostgresStore) SaveConstraint(ctx context.Context, c *models.VenueConstraint) error {
	if c.ID == 0 {
		var id int64
		err := s.exec(ctx).QueryRowContext(ctx,
			`INSERT INTO venue_constraints (subject_kind, subject_id, category_id, priority) VALUES ($1, $2, $3, $4) RETURNING id`,
			string(c.SubjectKind), c.SubjectID, int64(c.CategoryID), c.Priority,
		).Scan(&id)
		if err != nil {
			if postgres.IsForeignKeyViolation(err) {
				return fmt.Errorf("venue category %d: %w", c.CategoryID, ErrNotFound)
			}
			return fmt.Errorf("insert venue constraint: %w", err)
		}
		c.ID = domain.ConstraintID(id)
		return nil
	}
	res, err := s.exec(ctx).ExecContext(ctx,
		`UPDATE venue_constraints SET subject_kind = $2, subject_id = $3, category_id = $4, priority = $5 WHERE id = $1`,
		int64(c.ID), string(c.SubjectKind), c.SubjectID, int64(c.CategoryID), c.Priority)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return fmt.Errorf("venue category %d: %w", c.CategoryID, ErrNotFound)
		}
		return fmt.Errorf("update venue constraint: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteConstraint(ctx context.Context, id domain.ConstraintID) error {
	res, err := s.exec(ctx).ExecContext(ctx, `DELETE FROM venue_constraints WHERE id = $1`, int64(id))
	if err != nil {
		return fmt.Errorf("delete venue constraint: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListConstraints(ctx context.Context, filter ConstraintFilter) ([]*models.VenueConstraint, error) {
	query := `
		SELECT id, subject_kind, subject_id, category_id, priority
		FROM venue_constraints
		WHERE (subject_kind = 'team' AND subject_id = ANY($1))
			OR (subject_kind = 'adjudicator' AND subject_id = ANY($2))
			OR (subject_kind = 'institution' AND $3)
		ORDER BY id
	`
	rows, err := s.exec(ctx).QueryContext(ctx, query,
		pq.Array(nonNil(filter.TeamIDs)), pq.Array(nonNil(filter.AdjudicatorIDs)), filter.AllInstitutions)
	if err != nil {
		return nil, fmt.Errorf("list venue constraints: %w", err)
	}
	defer rows.Close()
	var out []*models.VenueConstraint
	for rows.Next() {
		var (
			c    models.VenueConstraint
			kind string
		)
		if err := rows.Scan(&c.ID, &kind, &c.SubjectID, &c.CategoryID, &c.Priority); err != nil {
			return nil, fmt.Errorf("scan venue constraint: %w", err)
		}
		c.SubjectKind = models.SubjectKind(kind)
		out = append(out, &c)
	}
	return out, rows.Err()
}

// nonNil keeps pq.Array from encoding a nil slice as NULL, which would make
// ANY() match nothing in a confusing way.
func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
