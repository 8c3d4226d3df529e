// Package constraints turns venue constraints into the lookup maps used to
// highlight suitable rooms on the room allocation screen.
//
// Resolve is a pure function over already-loaded data. Callers load the
// debates and constraints (see the venue service) and pass them in.
package constraints

import (
	"sort"

	"debatetab/internal/venues/models"
	"debatetab/pkg/domain"
)

// Team is the part of a team the resolver needs.
type Team struct {
	ID            domain.TeamID
	InstitutionID *domain.InstitutionID
}

// Debate is a debate reduced to its participants. Teams must be in side
// order; a nil entry is a side with no team (a bye or an unfilled side).
type Debate struct {
	ID           domain.DebateID
	Teams        []*Team
	Adjudicators []domain.AdjudicatorID
}

// Result is the payload consumed by the allocation screen. Every category
// list is sorted ascending.
type Result struct {
	// Debates holds, per debate, one category list per constrained
	// participant: teams and their institutions in side order, then
	// adjudicators. Debates without constrained participants are absent.
	Debates      map[domain.DebateID][][]domain.CategoryID    `json:"debates"`
	Teams        map[domain.TeamID][]domain.CategoryID        `json:"teams"`
	Institutions map[domain.InstitutionID][]domain.CategoryID `json:"institutions"`
	Adjudicators map[domain.AdjudicatorID][]domain.CategoryID `json:"adjudicators"`
}

type subjectKey struct {
	kind models.SubjectKind
	id   int64
}

// Index maps a constrained subject to the categories it may use.
type Index map[subjectKey][]domain.CategoryID

// BuildIndex unions the categories of every constraint per subject.
// Constraints with unknown subject kinds are dropped.
func BuildIndex(constraints []*models.VenueConstraint) Index {
	sets := make(map[subjectKey]map[domain.CategoryID]struct{})
	for _, c := range constraints {
		if c == nil || !c.SubjectKind.IsKnown() {
			continue
		}
		key := subjectKey{kind: c.SubjectKind, id: c.SubjectID}
		set, ok := sets[key]
		if !ok {
			set = make(map[domain.CategoryID]struct{})
			sets[key] = set
		}
		set[c.CategoryID] = struct{}{}
	}

	idx := make(Index, len(sets))
	for key, set := range sets {
		cats := make([]domain.CategoryID, 0, len(set))
		for id := range set {
			cats = append(cats, id)
		}
		sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
		idx[key] = cats
	}
	return idx
}

// Lookup returns the categories for a subject and whether it is constrained.
func (idx Index) Lookup(kind models.SubjectKind, id int64) ([]domain.CategoryID, bool) {
	cats, ok := idx[subjectKey{kind: kind, id: id}]
	return cats, ok
}

// Resolve aggregates constraints per debate and per subject.
func Resolve(debates []Debate, constraints []*models.VenueConstraint) Result {
	idx := BuildIndex(constraints)

	res := Result{
		Debates:      make(map[domain.DebateID][][]domain.CategoryID),
		Teams:        make(map[domain.TeamID][]domain.CategoryID),
		Institutions: make(map[domain.InstitutionID][]domain.CategoryID),
		Adjudicators: make(map[domain.AdjudicatorID][]domain.CategoryID),
	}

	for _, d := range debates {
		var lists [][]domain.CategoryID
		for _, team := range d.Teams {
			if team == nil {
				continue
			}
			if cats, ok := idx.Lookup(models.SubjectTeam, int64(team.ID)); ok {
				lists = append(lists, clone(cats))
			}
			if team.InstitutionID != nil {
				if cats, ok := idx.Lookup(models.SubjectInstitution, int64(*team.InstitutionID)); ok {
					lists = append(lists, clone(cats))
				}
			}
		}
		for _, adj := range d.Adjudicators {
			if cats, ok := idx.Lookup(models.SubjectAdjudicator, int64(adj)); ok {
				lists = append(lists, clone(cats))
			}
		}
		if len(lists) > 0 {
			res.Debates[d.ID] = lists
		}
	}

	for key, cats := range idx {
		switch key.kind {
		case models.SubjectTeam:
			res.Teams[domain.TeamID(key.id)] = clone(cats)
		case models.SubjectInstitution:
			res.Institutions[domain.InstitutionID(key.id)] = clone(cats)
		case models.SubjectAdjudicator:
			res.Adjudicators[domain.AdjudicatorID(key.id)] = clone(cats)
		}
	}

	return res
}

func clone(cats []domain.CategoryID) []domain.CategoryID {
	out := make([]domain.CategoryID, len(cats))
	copy(out, cats)
	return out
}
