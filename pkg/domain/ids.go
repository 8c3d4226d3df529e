package domain

import (
	"strconv"

	dErrors "debatetab/pkg/domain-errors"
)

// Typed database identifiers. Distinct types keep a team id from being
// passed where an adjudicator id is expected.
type (
	TournamentID    int64
	RoundID         int64
	MotionID        int64
	DebateID        int64
	VenueID         int64
	CategoryID      int64
	ConstraintID    int64
	InstitutionID   int64
	TeamID          int64
	SpeakerID       int64
	AdjudicatorID   int64
	CoachID         int64
	QuestionID      int64
	SpeakerCatID    int64
	BreakCategoryID int64
	BallotID        int64
)

// maxIDLength bounds the textual form of an id; int64 needs at most 19 digits.
const maxIDLength = 19

// ParseID parses a positive decimal identifier from external input.
func ParseID(s string) (int64, error) {
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "id is required")
	}
	if len(s) > maxIDLength {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "id is too long")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, dErrors.New(dErrors.CodeInvalidInput, "id must be numeric")
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInvalidInput, "id out of range")
	}
	if v <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "id must be positive")
	}
	return v, nil
}

// ParseTypedID parses s into any of the typed identifiers.
func ParseTypedID[T ~int64](s string) (T, error) {
	v, err := ParseID(s)
	if err != nil {
		return 0, err
	}
	return T(v), nil
}

// ParseSeq parses a round sequence number (positive integer).
func ParseSeq(s string) (int, error) {
	v, err := ParseID(s)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "round sequence must be a positive integer")
	}
	return int(v), nil
}
