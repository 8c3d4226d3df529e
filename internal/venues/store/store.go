// Package store persists venues, venue categories and venue constraints.
package store

import (
	"debatetab/internal/venues/models"
	"debatetab/pkg/platform/sentinel"
)

var (
	ErrNotFound = sentinel.ErrNotFound
	ErrConflict = sentinel.ErrConflict
)

// ConstraintFilter selects constraints by subject. Team and adjudicator
// constraints match the listed ids; institution constraints are either all
// included or none.
type ConstraintFilter struct {
	TeamIDs         []int64
	AdjudicatorIDs  []int64
	AllInstitutions bool
}

// Matches reports whether the filter selects c.
func (f ConstraintFilter) Matches(c models.VenueConstraint) bool {
	switch c.SubjectKind {
	case models.SubjectTeam:
		return containsID(f.TeamIDs, c.SubjectID)
	case models.SubjectAdjudicator:
		return containsID(f.AdjudicatorIDs, c.SubjectID)
	case models.SubjectInstitution:
		return f.AllInstitutions
	}
	return false
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
