package service

import (
	"debatetab/pkg/domain"
)

// Root is the body of GET /api.
type Root struct {
	Links       map[string]string `json:"_links"`
	TimeZone    string            `json:"timezone"`
	Version     string            `json:"version"`
	VersionName string            `json:"version_name"`
}

// VersionRoot is the body of a versioned API root.
type VersionRoot struct {
	Links map[string]string `json:"_links"`
}

// TeamEligibility lists the teams eligible for a break category.
type TeamEligibility struct {
	Slug    string          `json:"slug"`
	TeamIDs []domain.TeamID `json:"team_ids"`
}

// SpeakerEligibility lists the speakers in a speaker category.
type SpeakerEligibility struct {
	Slug       string             `json:"slug"`
	SpeakerIDs []domain.SpeakerID `json:"speaker_ids"`
}
