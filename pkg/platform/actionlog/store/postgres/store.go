package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"debatetab/pkg/domain"
	"debatetab/pkg/platform/actionlog"
	txcontext "debatetab/pkg/platform/tx"
)

// Store implements actionlog.Store on the action_log_entries table. When the
// context carries a transaction the entry commits with the change it records.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Append(ctx context.Context, entry actionlog.Entry) error {
	var tournamentID, subjectID sql.NullInt64
	if entry.TournamentID != 0 {
		tournamentID = sql.NullInt64{Int64: int64(entry.TournamentID), Valid: true}
	}
	if entry.SubjectID != 0 {
		subjectID = sql.NullInt64{Int64: entry.SubjectID, Valid: true}
	}
	query := `
		INSERT INTO action_log_entries (type, tournament_id, subject_kind, subject_id, actor, ip_address, request_id, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, query,
		string(entry.Type),
		tournamentID,
		entry.SubjectKind,
		subjectID,
		entry.Actor,
		entry.IPAddress,
		entry.RequestID,
		entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert action log entry: %w", err)
	}
	return nil
}

// ListByTournament returns a tournament's entries, newest first.
func (s *Store) ListByTournament(ctx context.Context, tournamentID domain.TournamentID, limit int) ([]actionlog.Entry, error) {
	query := `
		SELECT type, tournament_id, subject_kind, subject_id, actor, ip_address, request_id, timestamp
		FROM action_log_entries
		WHERE tournament_id = $1
		ORDER BY timestamp DESC, id DESC
		LIMIT $2
	`
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, query, int64(tournamentID), limit)
	if err != nil {
		return nil, fmt.Errorf("query action log: %w", err)
	}
	defer rows.Close()

	var out []actionlog.Entry
	for rows.Next() {
		var (
			e          actionlog.Entry
			typ        string
			tid, subID sql.NullInt64
		)
		if err := rows.Scan(&typ, &tid, &e.SubjectKind, &subID, &e.Actor, &e.IPAddress, &e.RequestID, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan action log entry: %w", err)
		}
		e.Type = actionlog.Type(typ)
		e.TournamentID = domain.TournamentID(tid.Int64)
		e.SubjectID = subID.Int64
		out = append(out, e)
	}
	return out, rows.Err()
}
