package models

import (
	dErrors "debatetab/pkg/domain-errors"
)

// TeamNameGenerator chooses how a registered team's reference is produced.
type TeamNameGenerator string

const (
	TeamNameUser         TeamNameGenerator = "user"
	TeamNameAlphabetical TeamNameGenerator = "alphabetical"
	TeamNameNumerical    TeamNameGenerator = "numerical"
	TeamNameInitials     TeamNameGenerator = "initials"
)

func (g TeamNameGenerator) IsValid() bool {
	switch g {
	case TeamNameUser, TeamNameAlphabetical, TeamNameNumerical, TeamNameInitials:
		return true
	}
	return false
}

// CodeNameGenerator chooses how a registered team's code name is produced.
type CodeNameGenerator string

const (
	CodeNameUser      CodeNameGenerator = "user"
	CodeNameEmoji     CodeNameGenerator = "emoji"
	CodeNameLastNames CodeNameGenerator = "last_names"
)

func (g CodeNameGenerator) IsValid() bool {
	switch g {
	case CodeNameUser, CodeNameEmoji, CodeNameLastNames:
		return true
	}
	return false
}

// Preferences are the per-tournament switches that drive visibility and
// registration. The JSON names are the stored preference keys.
type Preferences struct {
	PublicMotions                      bool              `json:"public_motions"`
	MotionTabReleased                  bool              `json:"motion_tab_released"`
	PublicBreakingTeams                bool              `json:"public_breaking_teams"`
	InstitutionRegistration            bool              `json:"institution_registration"`
	OpenTeamRegistration               bool              `json:"open_team_registration"`
	OpenAdjRegistration                bool              `json:"open_adj_registration"`
	InstitutionParticipantRegistration bool              `json:"institution_participant_registration"`
	RegInstitutionSlots                bool              `json:"reg_institution_slots"`
	SpeakersInTeam                     int               `json:"speakers_in_team"`
	TeamNameGenerator                  TeamNameGenerator `json:"team_name_generator"`
	CodeNameGenerator                  CodeNameGenerator `json:"code_name_generator"`
}

// DefaultPreferences is what a tournament gets before anyone edits it.
func DefaultPreferences() Preferences {
	return Preferences{
		SpeakersInTeam:    2,
		TeamNameGenerator: TeamNameUser,
		CodeNameGenerator: CodeNameUser,
	}
}

// Normalize fills unset values with defaults.
func (p *Preferences) Normalize() {
	def := DefaultPreferences()
	if p.SpeakersInTeam == 0 {
		p.SpeakersInTeam = def.SpeakersInTeam
	}
	if p.TeamNameGenerator == "" {
		p.TeamNameGenerator = def.TeamNameGenerator
	}
	if p.CodeNameGenerator == "" {
		p.CodeNameGenerator = def.CodeNameGenerator
	}
}

// Validate is called by the HTTP decoder and before saving.
func (p *Preferences) Validate() error {
	if p.SpeakersInTeam < 1 || p.SpeakersInTeam > 10 {
		return dErrors.New(dErrors.CodeValidation, "speakers_in_team must be between 1 and 10")
	}
	if !p.TeamNameGenerator.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "unknown team_name_generator")
	}
	if !p.CodeNameGenerator.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "unknown code_name_generator")
	}
	return nil
}
