package models

import (
	"strings"

	"debatetab/pkg/domain"
	dErrors "debatetab/pkg/domain-errors"
)

// Institution is shared across tournaments.
type Institution struct {
	ID   domain.InstitutionID `json:"id"`
	Name string               `json:"name"`
	Code string               `json:"code"`
}

// NewInstitution validates and builds an institution. The code defaults to
// the name.
func NewInstitution(name, code string) (*Institution, error) {
	name = strings.TrimSpace(name)
	code = strings.TrimSpace(code)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "institution name is required")
	}
	if code == "" {
		code = name
	}
	return &Institution{Name: name, Code: code}, nil
}

// TournamentInstitution records an institution's participation in one
// tournament, with requested and allocated slots.
type TournamentInstitution struct {
	ID                    int64                `json:"id"`
	TournamentID          domain.TournamentID  `json:"-"`
	InstitutionID         domain.InstitutionID `json:"institution"`
	TeamsRequested        int                  `json:"teams_requested"`
	TeamsAllocated        int                  `json:"teams_allocated"`
	AdjudicatorsRequested int                  `json:"adjudicators_requested"`
	AdjudicatorsAllocated int                  `json:"adjudicators_allocated"`
}

// Coach is the contact person registering on an institution's behalf.
type Coach struct {
	ID                      domain.CoachID `json:"id"`
	TournamentInstitutionID int64          `json:"-"`
	Name                    string         `json:"name"`
	Email                   string         `json:"email"`
	URLKey                  string         `json:"-"`
}

// Team is a tournament team. Reference is the institution-local part of
// its name ("A", "1", "Smith & Jones").
type Team struct {
	ID                   domain.TeamID         `json:"id"`
	TournamentID         domain.TournamentID   `json:"-"`
	InstitutionID        *domain.InstitutionID `json:"institution"`
	Reference            string                `json:"reference"`
	ShortReference       string                `json:"short_reference"`
	CodeName             string                `json:"code_name"`
	Emoji                string                `json:"emoji"`
	UseInstitutionPrefix bool                  `json:"use_institution_prefix"`
}

// ShortName returns the display name. Prefixed teams are named
// "<institution code> <reference>".
func (t *Team) ShortName(inst *Institution) string {
	ref := t.ShortReference
	if ref == "" {
		ref = t.Reference
	}
	if t.UseInstitutionPrefix && inst != nil {
		if ref == "" {
			return inst.Code
		}
		return inst.Code + " " + ref
	}
	return ref
}

// LongName is ShortName with the institution's full name.
func (t *Team) LongName(inst *Institution) string {
	if t.UseInstitutionPrefix && inst != nil {
		if t.Reference == "" {
			return inst.Name
		}
		return inst.Name + " " + t.Reference
	}
	return t.Reference
}

// Speaker belongs to exactly one team.
type Speaker struct {
	ID          domain.SpeakerID      `json:"id"`
	TeamID      domain.TeamID         `json:"team"`
	Name        string                `json:"name"`
	LastName    string                `json:"last_name"`
	Email       string                `json:"email"`
	URLKey      string                `json:"-"`
	CategoryIDs []domain.SpeakerCatID `json:"categories"`
}

// Adjudicator judges debates.
type Adjudicator struct {
	ID            domain.AdjudicatorID  `json:"id"`
	TournamentID  domain.TournamentID   `json:"-"`
	InstitutionID *domain.InstitutionID `json:"institution"`
	Name          string                `json:"name"`
	Email         string                `json:"email"`
	URLKey        string                `json:"-"`
	AdjCore       bool                  `json:"adj_core"`
	Independent   bool                  `json:"independent"`
}

// SpeakerCategory groups speakers for separate speaker tabs (e.g. ESL).
type SpeakerCategory struct {
	ID           domain.SpeakerCatID `json:"id"`
	TournamentID domain.TournamentID `json:"-"`
	Name         string              `json:"name"`
	Slug         string              `json:"slug"`
	Seq          int                 `json:"seq"`
	Public       bool                `json:"public"`
	Limit        int                 `json:"limit"`
}
