package constraints

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debatetab/internal/venues/models"
	"debatetab/pkg/domain"
	"debatetab/pkg/testutil"
)

func vc(kind models.SubjectKind, subject int64, category domain.CategoryID) *models.VenueConstraint {
	return &models.VenueConstraint{SubjectKind: kind, SubjectID: subject, CategoryID: category, Priority: 1}
}

func instPtr(id domain.InstitutionID) *domain.InstitutionID { return &id }

func cats(ids ...domain.CategoryID) []domain.CategoryID { return ids }

func TestResolveScenarios(t *testing.T) {
	testutil.Given(t, "a team and its institution are constrained and the other side is a bye", func(t *testing.T) {
		constraints := []*models.VenueConstraint{
			vc(models.SubjectTeam, 5, 1),
			vc(models.SubjectTeam, 5, 2),
			vc(models.SubjectInstitution, 9, 3),
		}
		debates := []Debate{{
			ID:    77,
			Teams: []*Team{{ID: 5, InstitutionID: instPtr(9)}, nil},
		}}

		res := Resolve(debates, constraints)

		testutil.Then(t, "the debate lists the team set before the institution set", func(t *testing.T) {
			assert.Equal(t, [][]domain.CategoryID{{1, 2}, {3}}, res.Debates[77])
		})
		testutil.Then(t, "the flat maps hold each subject", func(t *testing.T) {
			assert.Equal(t, cats(1, 2), res.Teams[5])
			assert.Equal(t, cats(3), res.Institutions[9])
			assert.Empty(t, res.Adjudicators)
		})
	})

	testutil.Given(t, "no constraints at all", func(t *testing.T) {
		debates := []Debate{
			{ID: 1, Teams: []*Team{{ID: 1}, {ID: 2}}, Adjudicators: []domain.AdjudicatorID{1}},
			{ID: 2, Teams: []*Team{{ID: 3}, {ID: 4}}},
		}
		res := Resolve(debates, nil)

		testutil.Then(t, "every map is empty", func(t *testing.T) {
			assert.Empty(t, res.Debates)
			assert.Empty(t, res.Teams)
			assert.Empty(t, res.Institutions)
			assert.Empty(t, res.Adjudicators)
		})
	})
}

func TestResolveUnionIsOrderIndependent(t *testing.T) {
	base := []*models.VenueConstraint{
		vc(models.SubjectAdjudicator, 4, 7),
		vc(models.SubjectAdjudicator, 4, 2),
		vc(models.SubjectAdjudicator, 4, 7),
		vc(models.SubjectAdjudicator, 4, 5),
		vc(models.SubjectTeam, 4, 9),
	}
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]*models.VenueConstraint(nil), base...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		res := Resolve(nil, shuffled)
		assert.Equal(t, cats(2, 5, 7), res.Adjudicators[4])
		assert.Equal(t, cats(9), res.Teams[4])
	}
}

func TestResolveOmitsUnconstrainedDebates(t *testing.T) {
	constraints := []*models.VenueConstraint{vc(models.SubjectTeam, 100, 1)}
	debates := []Debate{
		{ID: 1, Teams: []*Team{{ID: 1, InstitutionID: instPtr(1)}, {ID: 2}}, Adjudicators: []domain.AdjudicatorID{3}},
	}
	res := Resolve(debates, constraints)

	_, present := res.Debates[1]
	assert.False(t, present)
	assert.Equal(t, cats(1), res.Teams[100])
}

func TestResolveSingleConstrainedTeam(t *testing.T) {
	constraints := []*models.VenueConstraint{vc(models.SubjectTeam, 2, 4), vc(models.SubjectTeam, 2, 3)}
	debates := []Debate{{ID: 10, Teams: []*Team{{ID: 1}, {ID: 2}}}}

	res := Resolve(debates, constraints)

	require.Len(t, res.Debates[10], 1)
	assert.Equal(t, res.Teams[2], res.Debates[10][0])
}

func TestResolveKeepsTeamAndInstitutionSeparate(t *testing.T) {
	constraints := []*models.VenueConstraint{
		vc(models.SubjectTeam, 1, 4),
		vc(models.SubjectInstitution, 8, 4),
	}
	debates := []Debate{{ID: 3, Teams: []*Team{{ID: 1, InstitutionID: instPtr(8)}}}}

	res := Resolve(debates, constraints)

	assert.Equal(t, [][]domain.CategoryID{{4}, {4}}, res.Debates[3])
}

func TestResolveOrdersTeamsThenAdjudicators(t *testing.T) {
	constraints := []*models.VenueConstraint{
		vc(models.SubjectAdjudicator, 30, 6),
		vc(models.SubjectTeam, 2, 5),
		vc(models.SubjectInstitution, 11, 4),
		vc(models.SubjectTeam, 1, 3),
	}
	debates := []Debate{{
		ID: 1,
		Teams: []*Team{
			{ID: 1, InstitutionID: instPtr(10)},
			{ID: 2, InstitutionID: instPtr(11)},
		},
		Adjudicators: []domain.AdjudicatorID{29, 30},
	}}

	res := Resolve(debates, constraints)

	assert.Equal(t, [][]domain.CategoryID{{3}, {5}, {4}, {6}}, res.Debates[1])
}

func TestResolveIgnoresUnknownKinds(t *testing.T) {
	constraints := []*models.VenueConstraint{
		vc(models.SubjectKind("speaker"), 1, 1),
		vc(models.SubjectKind(""), 1, 2),
		nil,
	}
	debates := []Debate{{ID: 1, Teams: []*Team{{ID: 1, InstitutionID: instPtr(1)}}, Adjudicators: []domain.AdjudicatorID{1}}}

	res := Resolve(debates, constraints)

	assert.Empty(t, res.Debates)
	assert.Empty(t, res.Teams)
	assert.Empty(t, res.Institutions)
	assert.Empty(t, res.Adjudicators)
}

func TestResolveFlatMapsOnlyHoldConstrainedSubjects(t *testing.T) {
	constraints := []*models.VenueConstraint{
		vc(models.SubjectTeam, 1, 1),
		vc(models.SubjectInstitution, 2, 1),
		vc(models.SubjectAdjudicator, 3, 1),
	}
	res := Resolve(nil, constraints)

	assert.Len(t, res.Teams, 1)
	assert.Len(t, res.Institutions, 1)
	assert.Len(t, res.Adjudicators, 1)
	assert.Contains(t, res.Teams, domain.TeamID(1))
	assert.Contains(t, res.Institutions, domain.InstitutionID(2))
	assert.Contains(t, res.Adjudicators, domain.AdjudicatorID(3))
}

func TestResolveDoesNotAliasLists(t *testing.T) {
	constraints := []*models.VenueConstraint{vc(models.SubjectTeam, 1, 1)}
	res := Resolve([]Debate{{ID: 1, Teams: []*Team{{ID: 1}}}}, constraints)

	res.Debates[1][0][0] = 99
	assert.Equal(t, cats(1), res.Teams[1])
}

func TestResultJSONShape(t *testing.T) {
	constraints := []*models.VenueConstraint{vc(models.SubjectTeam, 5, 1)}
	res := Resolve([]Debate{{ID: 7, Teams: []*Team{{ID: 5}}}}, constraints)

	body, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"debates": {"7": [[1]]},
		"teams": {"5": [1]},
		"institutions": {},
		"adjudicators": {}
	}`, string(body))
}
