package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"debatetab/internal/breaks/models"
	breakstore "debatetab/internal/breaks/store"
	tmodels "debatetab/internal/tournaments/models"
	tournamentstore "debatetab/internal/tournaments/store"
	"debatetab/pkg/domain"
	dErrors "debatetab/pkg/domain-errors"
	"debatetab/pkg/platform/actionlog"
	"debatetab/pkg/platform/actionlog/publisher"
	actionlogmemory "debatetab/pkg/platform/actionlog/store/memory"
)

type BreakServiceSuite struct {
	suite.Suite
	ctx        context.Context
	store      *breakstore.InMemoryStore
	actions    *actionlogmemory.InMemoryStore
	service    *Service
	tournament *tmodels.Tournament
	open       *models.BreakCategory
}

func TestBreakServiceSuite(t *testing.T) {
	suite.Run(t, new(BreakServiceSuite))
}

func (s *BreakServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = breakstore.NewInMemoryStore()
	tournaments := tournamentstore.NewInMemoryStore()
	s.actions = actionlogmemory.NewInMemoryStore()
	pub := publisher.NewPublisher(s.actions)
	s.T().Cleanup(pub.Close)
	s.service = New(s.store, tournaments, WithActionLog(pub))

	s.tournament = &tmodels.Tournament{Slug: "worlds", Name: "Worlds"}
	s.Require().NoError(tournaments.CreateTournament(s.ctx, s.tournament))
	s.open = &models.BreakCategory{TournamentID: s.tournament.ID, Name: "Open", Slug: "open", Seq: 1, BreakSize: 2, IsGeneral: true}
	s.Require().NoError(s.store.SaveCategory(s.ctx, s.open))
	s.Require().NoError(s.store.SetEligibleTeams(s.ctx, s.open.ID, []domain.TeamID{1, 2, 3}))
	for _, st := range []models.TeamStanding{
		{TeamID: 1, Points: 6, SpeakerScore: 200},
		{TeamID: 2, Points: 4, SpeakerScore: 210},
		{TeamID: 3, Points: 2, SpeakerScore: 220},
	} {
		s.Require().NoError(s.store.SaveStanding(s.ctx, st))
	}
}

func (s *BreakServiceSuite) teams(bts []*models.BreakingTeam) []domain.TeamID {
	out := make([]domain.TeamID, 0, len(bts))
	for _, bt := range bts {
		out = append(out, bt.TeamID)
	}
	return out
}

func (s *BreakServiceSuite) TestGenerate() {
	got, err := s.service.Generate(s.ctx, s.tournament.ID, s.open.ID)
	s.Require().NoError(err)
	s.Equal([]domain.TeamID{1, 2}, s.teams(got))

	entries, _ := s.actions.ListAll(s.ctx)
	s.Require().Len(entries, 1)
	s.Equal(actionlog.TypeBreakGenerate, entries[0].Type)
	s.Equal(int64(s.open.ID), entries[0].SubjectID)
}

func (s *BreakServiceSuite) TestUpdateRemarkRegenerates() {
	_, err := s.service.Generate(s.ctx, s.tournament.ID, s.open.ID)
	s.Require().NoError(err)

	got, err := s.service.UpdateRemark(s.ctx, s.tournament.ID, s.open.ID, &models.RemarkRequest{Team: 2, Remark: models.RemarkIneligible})
	s.Require().NoError(err)
	s.Equal([]domain.TeamID{1, 2, 3}, s.teams(got))
	s.Nil(got[1].BreakRank)
	s.Require().NotNil(got[2].BreakRank)
	s.Equal(2, *got[2].BreakRank)

	s.Run("remark survives regeneration", func() {
		again, err := s.service.Generate(s.ctx, s.tournament.ID, s.open.ID)
		s.Require().NoError(err)
		s.Equal(models.RemarkIneligible, again[1].Remark)
	})

	s.Run("team outside the break", func() {
		_, err := s.service.UpdateRemark(s.ctx, s.tournament.ID, s.open.ID, &models.RemarkRequest{Team: 42, Remark: models.RemarkCapped})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *BreakServiceSuite) TestDelete() {
	_, err := s.service.Generate(s.ctx, s.tournament.ID, s.open.ID)
	s.Require().NoError(err)
	s.Require().NoError(s.service.Delete(s.ctx, s.tournament.ID, s.open.ID))
	got, err := s.service.BreakingTeams(s.ctx, s.tournament.ID, s.open.ID)
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *BreakServiceSuite) TestCategoryScopedToTournament() {
	_, err := s.service.Eligibility(s.ctx, s.tournament.ID+1, s.open.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	ids, err := s.service.Eligibility(s.ctx, s.tournament.ID, s.open.ID)
	s.Require().NoError(err)
	s.Equal([]domain.TeamID{1, 2, 3}, ids)
}

func (s *BreakServiceSuite) TestTournament() {
	_, err := s.service.Tournament(s.ctx, "missing")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
