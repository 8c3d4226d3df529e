package models

import (
	"strings"

	"debatetab/pkg/domain"
	dErrors "debatetab/pkg/domain-errors"
)

// BreakCategory is a separate break (Open, ESL, Novice...).
type BreakCategory struct {
	ID           domain.BreakCategoryID `json:"id"`
	TournamentID domain.TournamentID    `json:"-"`
	Name         string                 `json:"name"`
	Slug         string                 `json:"slug"`
	Seq          int                    `json:"seq"`
	BreakSize    int                    `json:"break_size"`
	IsGeneral    bool                   `json:"is_general"`
	Priority     int                    `json:"priority"`
}

// Remark explains why a team in the break list did not get a break rank.
type Remark string

const (
	RemarkNone           Remark = ""
	RemarkCapped         Remark = "C"
	RemarkIneligible     Remark = "I"
	RemarkDifferentBreak Remark = "D"
	RemarkDisqualified   Remark = "d"
	RemarkLostCoinToss   Remark = "t"
	RemarkWithdrawn      Remark = "w"
)

func (r Remark) IsValid() bool {
	switch r {
	case RemarkNone, RemarkCapped, RemarkIneligible, RemarkDifferentBreak,
		RemarkDisqualified, RemarkLostCoinToss, RemarkWithdrawn:
		return true
	}
	return false
}

// BreakingTeam is one row of a generated break.
type BreakingTeam struct {
	BreakCategoryID domain.BreakCategoryID `json:"break_category"`
	TeamID          domain.TeamID          `json:"team"`
	Rank            int                    `json:"rank"`
	BreakRank       *int                   `json:"break_rank"`
	Remark          Remark                 `json:"remark"`
}

// TeamStanding is the part of the team tab the break needs.
type TeamStanding struct {
	TeamID       domain.TeamID `json:"team"`
	Points       int           `json:"points"`
	SpeakerScore float64       `json:"speaker_score"`
}

// RemarkRequest sets a remark on a team and regenerates the break.
type RemarkRequest struct {
	Team   domain.TeamID `json:"team"`
	Remark Remark        `json:"remark"`
}

// Validate is called by the HTTP decoder.
func (r *RemarkRequest) Validate() error {
	r.Remark = Remark(strings.TrimSpace(string(r.Remark)))
	if r.Team <= 0 {
		return dErrors.New(dErrors.CodeValidation, "team is required")
	}
	if !r.Remark.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "unknown remark")
	}
	return nil
}
