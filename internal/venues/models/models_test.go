package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debatetab/pkg/domain"
)

func TestSubjectKind(t *testing.T) {
	assert.True(t, SubjectTeam.IsKnown())
	assert.True(t, SubjectInstitution.IsKnown())
	assert.True(t, SubjectAdjudicator.IsKnown())
	assert.False(t, SubjectKind("speaker").IsKnown())
	assert.Equal(t, "Adjudicator", SubjectAdjudicator.Label())
}

func TestVenueDisplayName(t *testing.T) {
	categories := []*VenueCategory{
		{ID: 1, Name: "Accessible", DisplayInVenueName: DisplayPrefix},
		{ID: 2, Name: "(Upstairs)", DisplayInVenueName: DisplaySuffix},
		{ID: 3, Name: "Hidden", DisplayInVenueName: DisplayNone},
		{ID: 4, Name: "Other", DisplayInVenueName: DisplayPrefix},
	}
	v := &Venue{Name: "G08", CategoryIDs: []domain.CategoryID{1, 2, 3}}
	assert.Equal(t, "Accessible G08 (Upstairs)", v.DisplayName(categories))
}

func TestVenueCategoryValidate(t *testing.T) {
	c := &VenueCategory{Name: "Accessible"}
	require.NoError(t, c.Validate())
	assert.Equal(t, DisplayNone, c.DisplayInVenueName)

	c.DisplayInVenueName = "X"
	assert.Error(t, c.Validate())

	assert.Error(t, (&VenueCategory{Name: "  "}).Validate())
}

func TestSortSubjectChoices(t *testing.T) {
	choices := []SubjectChoice{
		{ID: 2, Kind: SubjectTeam, Label: "Melb A (Team)"},
		{ID: 9, Kind: SubjectAdjudicator, Label: "Alex Chen (Adjudicator)"},
		{ID: 1, Kind: SubjectInstitution, Label: "Melbourne (Institution)"},
	}
	SortSubjectChoices(choices)
	assert.Equal(t, []int64{9, 2, 1}, []int64{choices[0].ID, choices[1].ID, choices[2].ID})
}
