package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"debatetab/internal/participants/models"
	"debatetab/pkg/domain"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) institution(name string) *models.Institution {
	inst, err := models.NewInstitution(name, "")
	s.Require().NoError(err)
	s.Require().NoError(s.store.CreateInstitution(s.ctx, inst))
	return inst
}

func (s *InMemoryStoreSuite) TestInstitutionNamesAreUniqueIgnoringCase() {
	s.institution("Monash University")
	dup, _ := models.NewInstitution("monash university", "MON")
	s.ErrorIs(s.store.CreateInstitution(s.ctx, dup), ErrConflict)

	found, err := s.store.FindInstitutionByName(s.ctx, "MONASH UNIVERSITY")
	s.Require().NoError(err)
	s.Equal("Monash University", found.Code)

	_, err = s.store.FindInstitutionByName(s.ctx, "Sydney")
	s.ErrorIs(err, ErrNotFound)
}

func (s *InMemoryStoreSuite) TestListInstitutionsSortedByName() {
	s.institution("Yale")
	s.institution("Oxford")
	list, err := s.store.ListInstitutions(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("Oxford", list[0].Name)
}

func (s *InMemoryStoreSuite) TestTournamentInstitutionOnePerTournament() {
	inst := s.institution("Oxford")
	ti := &models.TournamentInstitution{TournamentID: 1, InstitutionID: inst.ID, TeamsRequested: 3}
	s.Require().NoError(s.store.SaveTournamentInstitution(s.ctx, ti))

	dup := &models.TournamentInstitution{TournamentID: 1, InstitutionID: inst.ID}
	s.ErrorIs(s.store.SaveTournamentInstitution(s.ctx, dup), ErrConflict)

	ti.TeamsAllocated = 2
	s.Require().NoError(s.store.SaveTournamentInstitution(s.ctx, ti))
	found, err := s.store.FindTournamentInstitution(s.ctx, 1, inst.ID)
	s.Require().NoError(err)
	s.Equal(2, found.TeamsAllocated)

	list, err := s.store.ListTournamentInstitutions(s.ctx, 2)
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *InMemoryStoreSuite) TestURLKeysAreUniqueAcrossParticipants() {
	inst := s.institution("Oxford")
	ti := &models.TournamentInstitution{TournamentID: 1, InstitutionID: inst.ID}
	s.Require().NoError(s.store.SaveTournamentInstitution(s.ctx, ti))

	s.Require().NoError(s.store.CreateCoach(s.ctx, &models.Coach{TournamentInstitutionID: ti.ID, Name: "C", URLKey: "abc12345"}))
	err := s.store.CreateAdjudicator(s.ctx, &models.Adjudicator{TournamentID: 1, Name: "A", URLKey: "abc12345"})
	s.ErrorIs(err, ErrConflict)

	coach, err := s.store.FindCoachByURLKey(s.ctx, "abc12345")
	s.Require().NoError(err)
	s.Equal("C", coach.Name)

	coaches, err := s.store.ListCoaches(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(coaches, 1)
}

func (s *InMemoryStoreSuite) TestTeamsByInstitution() {
	inst := s.institution("Oxford")
	s.Require().NoError(s.store.CreateTeam(s.ctx, &models.Team{TournamentID: 1, InstitutionID: &inst.ID, Reference: "A"}))
	s.Require().NoError(s.store.CreateTeam(s.ctx, &models.Team{TournamentID: 1, Reference: "Swing"}))
	s.Require().NoError(s.store.CreateTeam(s.ctx, &models.Team{TournamentID: 2, InstitutionID: &inst.ID, Reference: "B"}))

	oxford, err := s.store.ListTeamsByInstitution(s.ctx, 1, &inst.ID)
	s.Require().NoError(err)
	s.Require().Len(oxford, 1)
	s.Equal("A", oxford[0].Reference)

	unaffiliated, err := s.store.ListTeamsByInstitution(s.ctx, 1, nil)
	s.Require().NoError(err)
	s.Require().Len(unaffiliated, 1)
	s.Equal("Swing", unaffiliated[0].Reference)
}

func (s *InMemoryStoreSuite) TestSpeakersAndCategories() {
	team := &models.Team{TournamentID: 1, Reference: "A"}
	s.Require().NoError(s.store.CreateTeam(s.ctx, team))

	esl := &models.SpeakerCategory{TournamentID: 1, Name: "ESL", Slug: "esl", Seq: 1}
	s.Require().NoError(s.store.SaveSpeakerCategory(s.ctx, esl))
	s.ErrorIs(s.store.SaveSpeakerCategory(s.ctx, &models.SpeakerCategory{TournamentID: 1, Name: "x", Slug: "esl"}), ErrConflict)

	sp := &models.Speaker{TeamID: team.ID, Name: "Ann Lee", URLKey: "k1", CategoryIDs: []domain.SpeakerCatID{esl.ID}}
	s.Require().NoError(s.store.CreateSpeaker(s.ctx, sp))
	s.Require().NoError(s.store.CreateSpeaker(s.ctx, &models.Speaker{TeamID: team.ID, Name: "Bo", URLKey: "k2"}))

	s.ErrorIs(s.store.CreateSpeaker(s.ctx, &models.Speaker{TeamID: 999, Name: "x"}), ErrNotFound)

	members, err := s.store.ListSpeakerIDsInCategory(s.ctx, esl.ID)
	s.Require().NoError(err)
	s.Equal([]domain.SpeakerID{sp.ID}, members)

	speakers, err := s.store.ListSpeakers(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(speakers, 2)

	byTeam, err := s.store.ListSpeakersByTeam(s.ctx, team.ID)
	s.Require().NoError(err)
	s.Len(byTeam, 2)
}
