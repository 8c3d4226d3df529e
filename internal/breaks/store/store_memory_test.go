package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"debatetab/internal/breaks/models"
	"debatetab/pkg/domain"
)

type InMemoryStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *InMemoryStore
	open  *models.BreakCategory
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewInMemoryStore()
	s.open = &models.BreakCategory{TournamentID: 1, Name: "Open", Slug: "open", Seq: 1, BreakSize: 4, IsGeneral: true}
	s.Require().NoError(s.store.SaveCategory(s.ctx, s.open))
}

func (s *InMemoryStoreSuite) TestCategories() {
	s.Run("slug unique per tournament", func() {
		err := s.store.SaveCategory(s.ctx, &models.BreakCategory{TournamentID: 1, Name: "Dup", Slug: "open", Seq: 2})
		s.ErrorIs(err, ErrConflict)
		s.NoError(s.store.SaveCategory(s.ctx, &models.BreakCategory{TournamentID: 2, Name: "Open", Slug: "open", Seq: 1}))
	})

	s.Run("ordered by seq", func() {
		esl := &models.BreakCategory{TournamentID: 1, Name: "ESL", Slug: "esl", Seq: 0}
		s.Require().NoError(s.store.SaveCategory(s.ctx, esl))
		cats, err := s.store.ListCategories(s.ctx, 1)
		s.Require().NoError(err)
		s.Require().Len(cats, 2)
		s.Equal("esl", cats[0].Slug)
	})

	s.Run("find is tournament scoped", func() {
		_, err := s.store.FindCategory(s.ctx, 2, s.open.ID)
		s.ErrorIs(err, ErrNotFound)
	})
}

func (s *InMemoryStoreSuite) TestBreakingTeams() {
	one := 1
	s.Require().NoError(s.store.ReplaceBreakingTeams(s.ctx, s.open.ID, []models.BreakingTeam{
		{TeamID: 8, Rank: 2, Remark: models.RemarkCapped},
		{TeamID: 5, Rank: 1, BreakRank: &one},
	}))
	one = 99

	got, err := s.store.ListBreakingTeams(s.ctx, s.open.ID)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(domain.TeamID(5), got[0].TeamID)
	s.Equal(1, *got[0].BreakRank, "stored rows do not alias caller memory")

	s.Require().NoError(s.store.SetRemark(s.ctx, s.open.ID, 5, models.RemarkWithdrawn))
	s.ErrorIs(s.store.SetRemark(s.ctx, s.open.ID, 77, models.RemarkWithdrawn), ErrNotFound)

	s.Require().NoError(s.store.DeleteBreakingTeams(s.ctx, s.open.ID))
	got, err = s.store.ListBreakingTeams(s.ctx, s.open.ID)
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *InMemoryStoreSuite) TestEligibilityAndStandings() {
	s.Require().NoError(s.store.SetEligibleTeams(s.ctx, s.open.ID, []domain.TeamID{3, 1, 3}))
	ids, err := s.store.ListEligibleTeamIDs(s.ctx, s.open.ID)
	s.Require().NoError(err)
	s.Equal([]domain.TeamID{1, 3}, ids)
	s.ErrorIs(s.store.SetEligibleTeams(s.ctx, 999, nil), ErrNotFound)

	s.Require().NoError(s.store.SaveStanding(s.ctx, models.TeamStanding{TeamID: 1, Points: 6, SpeakerScore: 150.5}))
	st, err := s.store.ListStandings(s.ctx, []domain.TeamID{1, 3})
	s.Require().NoError(err)
	s.Require().Len(st, 1)
	s.Equal(6, st[0].Points)
}
