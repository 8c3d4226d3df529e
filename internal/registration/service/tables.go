package service

import (
	"context"
	"fmt"

	pmodels "debatetab/internal/participants/models"
	"debatetab/internal/registration/models"
	"debatetab/internal/tables"
	"debatetab/pkg/domain"
	dErrors "debatetab/pkg/domain-errors"
)

// InstitutionTotals sums the institution table for the page summary.
// Registered adjudicators exclude adjudication core and independents.
type InstitutionTotals struct {
	TeamsRequested         int `json:"teams_requested"`
	TeamsAllocated         int `json:"teams_allocated"`
	TeamsRegistered        int `json:"teams_registered"`
	AdjudicatorsRequested  int `json:"adjs_requested"`
	AdjudicatorsAllocated  int `json:"adjs_allocated"`
	AdjudicatorsRegistered int `json:"adjs_registered"`
}

type InstitutionReport struct {
	Table  *tables.Table     `json:"table"`
	Totals InstitutionTotals `json:"totals"`
}

// answerIndex maps subject id to question id to answer.
type answerIndex map[int64]map[domain.QuestionID]string

func (s *Service) answerIndex(ctx context.Context, tournamentID domain.TournamentID, kind models.QuestionKind) ([]*models.Question, answerIndex, error) {
	questions, err := s.questions(ctx, tournamentID, kind)
	if err != nil {
		return nil, nil, err
	}
	answers, err := s.store.ListAnswers(ctx, tournamentID, kind)
	if err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load answers")
	}
	idx := make(answerIndex)
	for _, a := range answers {
		if idx[a.SubjectID] == nil {
			idx[a.SubjectID] = make(map[domain.QuestionID]string)
		}
		idx[a.SubjectID][a.QuestionID] = a.Answer
	}
	return questions, idx, nil
}

// addQuestionColumns adds one column per question. A zero subject id is an
// empty slot and gets blank answers.
func addQuestionColumns(t *tables.Table, questions []*models.Question, answers answerIndex, subjects []int64, suffix int) {
	for _, q := range questions {
		values := make([]string, len(subjects))
		for i, id := range subjects {
			if id != 0 {
				values[i] = answers[id][q.ID]
			}
		}
		t.AddTextColumn(tables.Header{Key: fmt.Sprintf("cq-%d-%d", q.ID, suffix), Title: q.Name}, values)
	}
}

// InstitutionTable is the admin overview of registered institutions. Slot
// columns appear only when institutions request slots, registered counts
// only when institutions register their own participants.
func (s *Service) InstitutionTable(ctx context.Context, slug string) (*InstitutionReport, error) {
	t, prefs, err := s.tournamentWithPrefs(ctx, slug)
	if err != nil {
		return nil, err
	}
	tis, err := s.participants.ListTournamentInstitutions(ctx, t.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load tournament institutions")
	}
	names, err := s.institutionNames(ctx)
	if err != nil {
		return nil, err
	}
	coaches, err := s.participants.ListCoaches(ctx, t.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load coaches")
	}
	teams, err := s.participants.ListTeams(ctx, t.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load teams")
	}
	adjs, err := s.participants.ListAdjudicators(ctx, t.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load adjudicators")
	}
	questions, answers, err := s.answerIndex(ctx, t.ID, models.QuestionInstitution)
	if err != nil {
		return nil, err
	}

	coachOf := make(map[int64]string, len(coaches))
	for _, c := range coaches {
		if _, ok := coachOf[c.TournamentInstitutionID]; !ok {
			coachOf[c.TournamentInstitutionID] = c.Name
		}
	}
	var totals InstitutionTotals
	teamCount := make(map[domain.InstitutionID]int)
	for _, team := range teams {
		if team.InstitutionID != nil {
			teamCount[*team.InstitutionID]++
			totals.TeamsRegistered++
		}
	}
	adjCount := make(map[domain.InstitutionID]int)
	for _, adj := range adjs {
		if adj.InstitutionID == nil {
			continue
		}
		adjCount[*adj.InstitutionID]++
		if !adj.AdjCore && !adj.Independent {
			totals.AdjudicatorsRegistered++
		}
	}

	n := len(tis)
	var (
		name, coach                    = make([]string, n), make([]string, n)
		teamsReq, teamsAlloc, teamsReg = make([]tables.Cell, n), make([]tables.Cell, n), make([]tables.Cell, n)
		adjsReq, adjsAlloc, adjsReg    = make([]tables.Cell, n), make([]tables.Cell, n), make([]tables.Cell, n)
		subjects                       = make([]int64, n)
	)
	for i, ti := range tis {
		name[i] = names[ti.InstitutionID]
		coach[i] = coachOf[ti.ID]
		teamsReq[i] = tables.Int(ti.TeamsRequested)
		teamsAlloc[i] = tables.Int(ti.TeamsAllocated)
		teamsReg[i] = tables.Int(teamCount[ti.InstitutionID])
		adjsReq[i] = tables.Int(ti.AdjudicatorsRequested)
		adjsAlloc[i] = tables.Int(ti.AdjudicatorsAllocated)
		adjsReg[i] = tables.Int(adjCount[ti.InstitutionID])
		subjects[i] = ti.ID

		totals.TeamsRequested += ti.TeamsRequested
		totals.TeamsAllocated += ti.TeamsAllocated
		totals.AdjudicatorsRequested += ti.AdjudicatorsRequested
		totals.AdjudicatorsAllocated += ti.AdjudicatorsAllocated
	}

	table := tables.New("Responses", "name").
		AddTextColumn(tables.Header{Key: "name", Title: "Name"}, name).
		AddTextColumn(tables.Header{Key: "coach", Title: "Coach"}, coach)
	if prefs.RegInstitutionSlots {
		table.AddColumn(tables.Header{Key: "teams_requested", Title: "Teams Requested"}, teamsReq).
			AddColumn(tables.Header{Key: "teams_allocated", Title: "Teams Allocated"}, teamsAlloc)
	}
	if prefs.InstitutionParticipantRegistration {
		table.AddColumn(tables.Header{Key: "teams_registered", Title: "Teams Registered"}, teamsReg)
	}
	if prefs.RegInstitutionSlots {
		table.AddColumn(tables.Header{Key: "adjudicators_requested", Title: "Adjudicators Requested"}, adjsReq).
			AddColumn(tables.Header{Key: "adjudicators_allocated", Title: "Adjudicators Allocated"}, adjsAlloc)
	}
	if prefs.InstitutionParticipantRegistration {
		table.AddColumn(tables.Header{Key: "adjudicators_registered", Title: "Adjudicators Registered"}, adjsReg)
	}
	addQuestionColumns(table, questions, answers, subjects, 0)
	if err := table.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build institution table")
	}
	return &InstitutionReport{Table: table, Totals: totals}, nil
}

// TeamTable lists registered teams with their answers and one group of
// speaker columns per speaker slot.
func (s *Service) TeamTable(ctx context.Context, slug string) (*tables.Table, error) {
	t, prefs, err := s.tournamentWithPrefs(ctx, slug)
	if err != nil {
		return nil, err
	}
	teams, err := s.participants.ListTeams(ctx, t.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load teams")
	}
	speakers, err := s.participants.ListSpeakers(ctx, t.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load speakers")
	}
	institutions, err := s.institutionsByID(ctx)
	if err != nil {
		return nil, err
	}
	teamQuestions, teamAnswers, err := s.answerIndex(ctx, t.ID, models.QuestionTeam)
	if err != nil {
		return nil, err
	}
	spkQuestions, spkAnswers, err := s.answerIndex(ctx, t.ID, models.QuestionSpeaker)
	if err != nil {
		return nil, err
	}

	byTeam := make(map[domain.TeamID][]*pmodels.Speaker)
	for _, sp := range speakers {
		byTeam[sp.TeamID] = append(byTeam[sp.TeamID], sp)
	}

	n := len(teams)
	names, instNames, subjects := make([]string, n), make([]string, n), make([]int64, n)
	for i, team := range teams {
		var inst *pmodels.Institution
		if team.InstitutionID != nil {
			inst = institutions[*team.InstitutionID]
		}
		names[i] = team.ShortName(inst)
		if inst != nil {
			instNames[i] = inst.Name
		}
		subjects[i] = int64(team.ID)
	}

	table := tables.New("Responses", "team").
		AddTextColumn(tables.Header{Key: "team", Title: "Team"}, names).
		AddTextColumn(tables.Header{Key: "institution", Title: "Institution"}, instNames)
	addQuestionColumns(table, teamQuestions, teamAnswers, subjects, 0)

	for slot := range prefs.SpeakersInTeam {
		spkNames, emails, spkSubjects := make([]string, n), make([]string, n), make([]int64, n)
		for i, team := range teams {
			members := byTeam[team.ID]
			if slot >= len(members) {
				continue
			}
			spkNames[i] = members[slot].Name
			emails[i] = members[slot].Email
			spkSubjects[i] = int64(members[slot].ID)
		}
		table.AddTextColumn(tables.Header{Key: fmt.Sprintf("spk-%d", slot), Title: fmt.Sprintf("Speaker %d", slot+1)}, spkNames).
			AddTextColumn(tables.Header{Key: fmt.Sprintf("email-%d", slot), Title: "Email"}, emails)
		addQuestionColumns(table, spkQuestions, spkAnswers, spkSubjects, slot)
	}
	if err := table.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build team table")
	}
	return table, nil
}

// AdjudicatorTable lists registered adjudicators with their answers.
func (s *Service) AdjudicatorTable(ctx context.Context, slug string) (*tables.Table, error) {
	t, err := s.findTournament(ctx, slug)
	if err != nil {
		return nil, err
	}
	adjs, err := s.participants.ListAdjudicators(ctx, t.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load adjudicators")
	}
	names, err := s.institutionNames(ctx)
	if err != nil {
		return nil, err
	}
	questions, answers, err := s.answerIndex(ctx, t.ID, models.QuestionAdjudicator)
	if err != nil {
		return nil, err
	}

	n := len(adjs)
	adjNames, instNames, emails, subjects := make([]string, n), make([]string, n), make([]string, n), make([]int64, n)
	for i, adj := range adjs {
		adjNames[i] = adj.Name
		if adj.InstitutionID != nil {
			instNames[i] = names[*adj.InstitutionID]
		}
		emails[i] = adj.Email
		subjects[i] = int64(adj.ID)
	}

	table := tables.New("Responses", "name").
		AddTextColumn(tables.Header{Key: "name", Title: "Name"}, adjNames).
		AddTextColumn(tables.Header{Key: "institution", Title: "Institution"}, instNames).
		AddTextColumn(tables.Header{Key: "email", Title: "Email"}, emails)
	addQuestionColumns(table, questions, answers, subjects, 0)
	if err := table.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build adjudicator table")
	}
	return table, nil
}

func (s *Service) institutionsByID(ctx context.Context) (map[domain.InstitutionID]*pmodels.Institution, error) {
	institutions, err := s.participants.ListInstitutions(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load institutions")
	}
	out := make(map[domain.InstitutionID]*pmodels.Institution, len(institutions))
	for _, inst := range institutions {
		out[inst.ID] = inst
	}
	return out, nil
}

func (s *Service) institutionNames(ctx context.Context) (map[domain.InstitutionID]string, error) {
	byID, err := s.institutionsByID(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[domain.InstitutionID]string, len(byID))
	for id, inst := range byID {
		out[id] = inst.Name
	}
	return out, nil
}
