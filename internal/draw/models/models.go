package models

import (
	"debatetab/pkg/domain"
)

// Side is a team's position in a debate.
type Side string

const (
	SideAff Side = "aff"
	SideNeg Side = "neg"
	SideOG  Side = "og"
	SideOO  Side = "oo"
	SideCG  Side = "cg"
	SideCO  Side = "co"
	SideBye Side = "bye"
)

// sideOrder is the rendering order of sides within a debate.
var sideOrder = map[Side]int{
	SideAff: 0, SideOG: 0,
	SideNeg: 1, SideOO: 1,
	SideCG: 2,
	SideCO: 3,
	SideBye: 4,
}

// Order returns the side's position for sorting; unknown sides sort last.
func (s Side) Order() int {
	if o, ok := sideOrder[s]; ok {
		return o
	}
	return len(sideOrder)
}

func (s Side) IsValid() bool {
	_, ok := sideOrder[s]
	return ok
}

// AdjPosition is an adjudicator's role on a panel.
type AdjPosition string

const (
	AdjChair   AdjPosition = "c"
	AdjPanel   AdjPosition = "p"
	AdjTrainee AdjPosition = "t"
)

// DebateTeam places a team (or nobody, for an unfilled side) on a side.
type DebateTeam struct {
	Side   Side           `json:"side"`
	TeamID *domain.TeamID `json:"team"`
}

// DebateAdjudicator places an adjudicator on a debate's panel.
type DebateAdjudicator struct {
	AdjudicatorID domain.AdjudicatorID `json:"adjudicator"`
	Position      AdjPosition          `json:"position"`
}

// Debate is one room of a round's draw.
type Debate struct {
	ID           domain.DebateID     `json:"id"`
	RoundID      domain.RoundID      `json:"round"`
	VenueID      *domain.VenueID     `json:"venue"`
	Teams        []DebateTeam        `json:"teams"`
	Adjudicators []DebateAdjudicator `json:"adjudicators"`
}

// HasBye reports whether any side of the debate is a bye.
func (d *Debate) HasBye() bool {
	for _, dt := range d.Teams {
		if dt.Side == SideBye {
			return true
		}
	}
	return false
}

// TeamIDs returns the ids of the teams actually placed in the debate.
func (d *Debate) TeamIDs() []domain.TeamID {
	ids := make([]domain.TeamID, 0, len(d.Teams))
	for _, dt := range d.Teams {
		if dt.TeamID != nil {
			ids = append(ids, *dt.TeamID)
		}
	}
	return ids
}

// AdjudicatorIDs returns the ids of the debate's panel.
func (d *Debate) AdjudicatorIDs() []domain.AdjudicatorID {
	ids := make([]domain.AdjudicatorID, 0, len(d.Adjudicators))
	for _, da := range d.Adjudicators {
		ids = append(ids, da.AdjudicatorID)
	}
	return ids
}
