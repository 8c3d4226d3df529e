package service

import (
	"context"
	"strings"

	pmodels "debatetab/internal/participants/models"
	"debatetab/internal/tables"
	"debatetab/pkg/domain"
	dErrors "debatetab/pkg/domain-errors"
)

// CoachLanding is a coach's private page: what their institution has
// registered so far.
type CoachLanding struct {
	Coach        *pmodels.Coach       `json:"coach"`
	Institution  *pmodels.Institution `json:"institution"`
	Adjudicators *tables.Table        `json:"adjudicators"`
	Teams        *tables.Table        `json:"teams"`
}

// CoachLanding resolves a coach key and lists the adjudicators and teams of
// the coach's institution in this tournament.
func (s *Service) CoachLanding(ctx context.Context, slug, key string) (*CoachLanding, error) {
	t, err := s.findTournament(ctx, slug)
	if err != nil {
		return nil, err
	}
	coach, ti, err := s.coachByKey(ctx, t.ID, key)
	if err != nil {
		return nil, err
	}
	inst, err := s.participants.FindInstitution(ctx, ti.InstitutionID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load institution")
	}

	adjs, err := s.participants.ListAdjudicators(ctx, t.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load adjudicators")
	}
	var adjNames, adjEmails []string
	for _, adj := range adjs {
		if adj.InstitutionID == nil || *adj.InstitutionID != inst.ID {
			continue
		}
		adjNames = append(adjNames, adj.Name)
		adjEmails = append(adjEmails, adj.Email)
	}
	adjTable := tables.New("Adjudicators", "name").
		AddTextColumn(tables.Header{Key: "name", Title: "Name"}, adjNames).
		AddTextColumn(tables.Header{Key: "email", Title: "Email"}, adjEmails)

	teams, err := s.participants.ListTeamsByInstitution(ctx, t.ID, &inst.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load teams")
	}
	speakers, err := s.participants.ListSpeakers(ctx, t.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load speakers")
	}
	byTeam := make(map[domain.TeamID][]string)
	for _, sp := range speakers {
		byTeam[sp.TeamID] = append(byTeam[sp.TeamID], sp.Name)
	}
	teamNames, codeNames, members := make([]string, len(teams)), make([]string, len(teams)), make([]string, len(teams))
	for i, team := range teams {
		teamNames[i] = team.ShortName(inst)
		codeNames[i] = team.CodeName
		members[i] = strings.Join(byTeam[team.ID], ", ")
	}
	teamTable := tables.New("Teams", "name").
		AddTextColumn(tables.Header{Key: "name", Title: "Team"}, teamNames).
		AddTextColumn(tables.Header{Key: "code_name", Title: "Code Name"}, codeNames).
		AddTextColumn(tables.Header{Key: "speakers", Title: "Speakers"}, members)

	for _, table := range []*tables.Table{adjTable, teamTable} {
		if err := table.Err(); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build coach tables")
		}
	}
	return &CoachLanding{Coach: coach, Institution: inst, Adjudicators: adjTable, Teams: teamTable}, nil
}
