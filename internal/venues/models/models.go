package models

import (
	"sort"
	"strings"

	"debatetab/pkg/domain"
	dErrors "debatetab/pkg/domain-errors"
)

// SubjectKind is the closed set of things a venue constraint can apply to.
type SubjectKind string

const (
	SubjectTeam        SubjectKind = "team"
	SubjectInstitution SubjectKind = "institution"
	SubjectAdjudicator SubjectKind = "adjudicator"
)

// IsKnown reports whether k is one of the three recognised kinds. Stored
// constraints with any other kind are kept but never matched.
func (k SubjectKind) IsKnown() bool {
	switch k {
	case SubjectTeam, SubjectInstitution, SubjectAdjudicator:
		return true
	}
	return false
}

// Label is the human-readable suffix used in subject choices.
func (k SubjectKind) Label() string {
	switch k {
	case SubjectTeam:
		return "Team"
	case SubjectInstitution:
		return "Institution"
	case SubjectAdjudicator:
		return "Adjudicator"
	}
	return string(k)
}

// Venue is a room debates can be allocated to.
type Venue struct {
	ID           domain.VenueID      `json:"id"`
	TournamentID domain.TournamentID `json:"-"`
	Name         string              `json:"name"`
	Priority     int                 `json:"priority"`
	CategoryIDs  []domain.CategoryID `json:"categories"`
}

// DisplayName decorates the venue name with the prefixes and suffixes of
// the categories that ask for it.
func (v *Venue) DisplayName(categories []*VenueCategory) string {
	var prefixes, suffixes []string
	member := make(map[domain.CategoryID]struct{}, len(v.CategoryIDs))
	for _, id := range v.CategoryIDs {
		member[id] = struct{}{}
	}
	for _, c := range categories {
		if _, ok := member[c.ID]; !ok {
			continue
		}
		switch c.DisplayInVenueName {
		case DisplayPrefix:
			prefixes = append(prefixes, c.Name)
		case DisplaySuffix:
			suffixes = append(suffixes, c.Name)
		}
	}
	parts := append(prefixes, v.Name)
	parts = append(parts, suffixes...)
	return strings.Join(parts, " ")
}

// VenueDisplay controls whether a category name decorates its venues' names.
type VenueDisplay string

const (
	DisplayNone   VenueDisplay = "-"
	DisplayPrefix VenueDisplay = "P"
	DisplaySuffix VenueDisplay = "S"
)

func (d VenueDisplay) IsValid() bool {
	return d == DisplayNone || d == DisplayPrefix || d == DisplaySuffix
}

// VenueCategory groups venues; constraints point at categories.
type VenueCategory struct {
	ID                     domain.CategoryID   `json:"id"`
	TournamentID           domain.TournamentID `json:"-"`
	Name                   string              `json:"name"`
	Description            string              `json:"description"`
	DisplayInVenueName     VenueDisplay        `json:"display_in_venue_name"`
	DisplayInPublicTooltip bool                `json:"display_in_public_tooltip"`
	VenueIDs               []domain.VenueID    `json:"venues"`
}

// Validate checks a category before it is saved.
func (c *VenueCategory) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return dErrors.New(dErrors.CodeValidation, "category name is required")
	}
	if len(c.Name) > 80 {
		return dErrors.New(dErrors.CodeValidation, "category name must be at most 80 characters")
	}
	if c.DisplayInVenueName == "" {
		c.DisplayInVenueName = DisplayNone
	}
	if !c.DisplayInVenueName.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "display_in_venue_name must be one of -, P, S")
	}
	return nil
}

// VenueConstraint restricts a subject to rooms in a category.
type VenueConstraint struct {
	ID          domain.ConstraintID `json:"id"`
	SubjectKind SubjectKind         `json:"subject_kind"`
	SubjectID   int64               `json:"subject_id"`
	CategoryID  domain.CategoryID   `json:"category"`
	Priority    int                 `json:"priority"`
}

// SubjectChoice is one option of the constraint editor's subject picker.
type SubjectChoice struct {
	ID    int64       `json:"id"`
	Kind  SubjectKind `json:"kind"`
	Label string      `json:"label"`
}

// SortSubjectChoices orders choices by label, then kind and id for ties.
func SortSubjectChoices(choices []SubjectChoice) {
	sort.SliceStable(choices, func(i, j int) bool {
		if choices[i].Label != choices[j].Label {
			return choices[i].Label < choices[j].Label
		}
		if choices[i].Kind != choices[j].Kind {
			return choices[i].Kind < choices[j].Kind
		}
		return choices[i].ID < choices[j].ID
	})
}
