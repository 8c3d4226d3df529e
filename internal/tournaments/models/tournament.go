package models

import (
	"strings"
	"time"

	"debatetab/pkg/domain"
	dErrors "debatetab/pkg/domain-errors"
)

// Tournament is the top-level container every other record hangs off.
type Tournament struct {
	ID        domain.TournamentID `json:"id"`
	Slug      string              `json:"slug"`
	Name      string              `json:"name"`
	ShortName string              `json:"short_name"`
	Seq       int                 `json:"seq"`
	Active    bool                `json:"active"`
}

// NewTournament validates and builds a tournament.
func NewTournament(slug, name, shortName string, seq int) (*Tournament, error) {
	slug = strings.TrimSpace(slug)
	name = strings.TrimSpace(name)
	if slug == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "tournament slug is required")
	}
	if strings.ContainsAny(slug, " /?#") {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "tournament slug must be URL safe")
	}
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "tournament name is required")
	}
	if shortName == "" {
		shortName = name
	}
	return &Tournament{Slug: slug, Name: name, ShortName: shortName, Seq: seq, Active: true}, nil
}

// Stage distinguishes preliminary from elimination rounds.
type Stage string

const (
	StagePreliminary Stage = "P"
	StageElimination Stage = "E"
)

func (s Stage) IsValid() bool {
	return s == StagePreliminary || s == StageElimination
}

// DrawType is how a round's draw is generated.
type DrawType string

const (
	DrawTypeRandom      DrawType = "R"
	DrawTypeManual      DrawType = "M"
	DrawTypeRoundRobin  DrawType = "D"
	DrawTypePowerPaired DrawType = "P"
	DrawTypeElimination DrawType = "E"
	DrawTypeSeeded      DrawType = "S"
)

func (d DrawType) IsValid() bool {
	switch d {
	case DrawTypeRandom, DrawTypeManual, DrawTypeRoundRobin, DrawTypePowerPaired, DrawTypeElimination, DrawTypeSeeded:
		return true
	}
	return false
}

// DrawStatus tracks the draw lifecycle.
type DrawStatus string

const (
	DrawStatusNone      DrawStatus = "N"
	DrawStatusDraft     DrawStatus = "D"
	DrawStatusConfirmed DrawStatus = "C"
	DrawStatusReleased  DrawStatus = "R"
)

func (d DrawStatus) IsValid() bool {
	switch d {
	case DrawStatusNone, DrawStatusDraft, DrawStatusConfirmed, DrawStatusReleased:
		return true
	}
	return false
}

// Round is one round of a tournament. Concurrent elimination rounds (one per
// break category) share a seq.
type Round struct {
	ID              domain.RoundID          `json:"id"`
	TournamentID    domain.TournamentID     `json:"-"`
	Seq             int                     `json:"seq"`
	Name            string                  `json:"name"`
	Abbreviation    string                  `json:"abbreviation"`
	Stage           Stage                   `json:"stage"`
	DrawType        DrawType                `json:"draw_type"`
	DrawStatus      DrawStatus              `json:"draw_status"`
	BreakCategoryID *domain.BreakCategoryID `json:"break_category"`
	StartsAt        *time.Time              `json:"starts_at"`
	Completed       bool                    `json:"completed"`
	Silent          bool                    `json:"silent"`
	MotionsReleased bool                    `json:"motions_released"`
	Weight          float64                 `json:"weight"`
}

// IsBreakRound reports whether the round is an elimination round.
func (r *Round) IsBreakRound() bool {
	return r.Stage == StageElimination
}

// Validate checks the invariants a stored round must hold.
func (r *Round) Validate() error {
	if r.Seq <= 0 {
		return dErrors.New(dErrors.CodeInvariantViolation, "round seq must be positive")
	}
	if strings.TrimSpace(r.Name) == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "round name is required")
	}
	if !r.Stage.IsValid() {
		return dErrors.New(dErrors.CodeInvariantViolation, "round stage must be P or E")
	}
	if !r.DrawType.IsValid() {
		return dErrors.New(dErrors.CodeInvariantViolation, "unknown draw type")
	}
	if !r.DrawStatus.IsValid() {
		return dErrors.New(dErrors.CodeInvariantViolation, "unknown draw status")
	}
	if r.Weight < 0 {
		return dErrors.New(dErrors.CodeInvariantViolation, "round weight must not be negative")
	}
	return nil
}

// RoundPatch is a partial round update; nil fields are left unchanged.
type RoundPatch struct {
	Name            *string     `json:"name"`
	Abbreviation    *string     `json:"abbreviation"`
	Completed       *bool       `json:"completed"`
	Silent          *bool       `json:"silent"`
	MotionsReleased *bool       `json:"motions_released"`
	DrawStatus      *DrawStatus `json:"draw_status"`
	StartsAt        *time.Time  `json:"starts_at"`
	Weight          *float64    `json:"weight"`
}

// Apply copies the set fields onto r.
func (p *RoundPatch) Apply(r *Round) {
	if p.Name != nil {
		r.Name = strings.TrimSpace(*p.Name)
	}
	if p.Abbreviation != nil {
		r.Abbreviation = strings.TrimSpace(*p.Abbreviation)
	}
	if p.Completed != nil {
		r.Completed = *p.Completed
	}
	if p.Silent != nil {
		r.Silent = *p.Silent
	}
	if p.MotionsReleased != nil {
		r.MotionsReleased = *p.MotionsReleased
	}
	if p.DrawStatus != nil {
		r.DrawStatus = *p.DrawStatus
	}
	if p.StartsAt != nil {
		t := *p.StartsAt
		r.StartsAt = &t
	}
	if p.Weight != nil {
		r.Weight = *p.Weight
	}
}

// Validate is called by the HTTP decoder.
func (p *RoundPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return dErrors.New(dErrors.CodeValidation, "name must not be blank")
	}
	if p.DrawStatus != nil && !p.DrawStatus.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "unknown draw status")
	}
	if p.Weight != nil && *p.Weight < 0 {
		return dErrors.New(dErrors.CodeValidation, "weight must not be negative")
	}
	return nil
}

// RoundUpdate replaces every mutable field of a round.
type RoundUpdate struct {
	Seq             int                     `json:"seq"`
	Name            string                  `json:"name"`
	Abbreviation    string                  `json:"abbreviation"`
	Stage           Stage                   `json:"stage"`
	DrawType        DrawType                `json:"draw_type"`
	DrawStatus      DrawStatus              `json:"draw_status"`
	BreakCategoryID *domain.BreakCategoryID `json:"break_category"`
	StartsAt        *time.Time              `json:"starts_at"`
	Completed       bool                    `json:"completed"`
	Silent          bool                    `json:"silent"`
	MotionsReleased bool                    `json:"motions_released"`
	Weight          float64                 `json:"weight"`
}

// Validate is called by the HTTP decoder.
func (u *RoundUpdate) Validate() error {
	r := Round{}
	u.Apply(&r)
	if err := r.Validate(); err != nil {
		return dErrors.New(dErrors.CodeValidation, err.Error())
	}
	return nil
}

// Apply overwrites r with the update, keeping identity fields.
func (u *RoundUpdate) Apply(r *Round) {
	r.Seq = u.Seq
	r.Name = strings.TrimSpace(u.Name)
	r.Abbreviation = strings.TrimSpace(u.Abbreviation)
	r.Stage = u.Stage
	r.DrawType = u.DrawType
	r.DrawStatus = u.DrawStatus
	r.BreakCategoryID = u.BreakCategoryID
	r.StartsAt = u.StartsAt
	r.Completed = u.Completed
	r.Silent = u.Silent
	r.MotionsReleased = u.MotionsReleased
	r.Weight = u.Weight
}

// Motion is a debate topic, possibly used in several rounds.
type Motion struct {
	ID           domain.MotionID     `json:"id"`
	TournamentID domain.TournamentID `json:"-"`
	Text         string              `json:"text"`
	Reference    string              `json:"reference"`
	InfoSlide    string              `json:"info_slide"`
	Rounds       []RoundMotion       `json:"rounds"`
}

// RoundMotion links a motion to a round with its position in that round.
type RoundMotion struct {
	RoundID domain.RoundID `json:"round"`
	Seq     int            `json:"seq"`
}
