// Package actionlog records who changed what in a tournament.
package actionlog

import (
	"context"
	"errors"
	"time"

	"debatetab/pkg/domain"
)

// Type names an action-log event.
type Type string

const (
	TypeInstitutionRegister  Type = "institution_register"
	TypeTeamRegister         Type = "team_register"
	TypeAdjudicatorRegister  Type = "adjudicator_register"
	TypeSpeakerRegister      Type = "speaker_register"
	TypeAllocationsEdit      Type = "registration_allocations_edit"
	TypeQuestionsEdit        Type = "registration_questions_edit"
	TypeVenueCategoriesEdit  Type = "venue_categories_edit"
	TypeVenueConstraintsEdit Type = "venue_constraints_edit"
	TypeRoundEdit            Type = "round_edit"
	TypeBreakGenerate        Type = "break_generate"
	TypeBreakDelete          Type = "break_delete"
	TypeBreakUpdate          Type = "break_update"
)

// Entry is emitted from services after a successful change. Keep it
// transport-agnostic so stores and sinks can fan out.
type Entry struct {
	Type         Type                `json:"type"`
	TournamentID domain.TournamentID `json:"tournament,omitempty"`
	SubjectKind  string              `json:"subject_kind,omitempty"`
	SubjectID    int64               `json:"subject_id,omitempty"`
	Actor        string              `json:"actor,omitempty"`
	IPAddress    string              `json:"ip_address,omitempty"`
	RequestID    string              `json:"request_id,omitempty"`
	Timestamp    time.Time           `json:"timestamp"`
}

// Store persists entries.
type Store interface {
	Append(ctx context.Context, entry Entry) error
}

// MultiStore appends every entry to each store in turn. All stores are
// attempted; their errors are joined.
type MultiStore []Store

func (m MultiStore) Append(ctx context.Context, entry Entry) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Append(ctx, entry); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
