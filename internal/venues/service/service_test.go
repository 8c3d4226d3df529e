package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	dmodels "debatetab/internal/draw/models"
	drawstore "debatetab/internal/draw/store"
	pmodels "debatetab/internal/participants/models"
	participantstore "debatetab/internal/participants/store"
	tmodels "debatetab/internal/tournaments/models"
	tournamentstore "debatetab/internal/tournaments/store"
	"debatetab/internal/venues/models"
	venuestore "debatetab/internal/venues/store"
	"debatetab/pkg/domain"
	dErrors "debatetab/pkg/domain-errors"
	"debatetab/pkg/platform/actionlog"
	"debatetab/pkg/platform/actionlog/publisher"
	actionlogmemory "debatetab/pkg/platform/actionlog/store/memory"
)

type ServiceSuite struct {
	suite.Suite
	ctx          context.Context
	venues       *venuestore.InMemoryStore
	tournaments  *tournamentstore.InMemoryStore
	debates      *drawstore.InMemoryStore
	participants *participantstore.InMemoryStore
	actions      *actionlogmemory.InMemoryStore
	service      *Service

	tournament *tmodels.Tournament
	round      *tmodels.Round
	inst       *pmodels.Institution
	teamA      *pmodels.Team
	teamB      *pmodels.Team
	adj        *pmodels.Adjudicator
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.venues = venuestore.NewInMemoryStore()
	s.tournaments = tournamentstore.NewInMemoryStore()
	s.debates = drawstore.NewInMemoryStore()
	s.participants = participantstore.NewInMemoryStore()
	s.actions = actionlogmemory.NewInMemoryStore()
	pub := publisher.NewPublisher(s.actions)
	s.T().Cleanup(pub.Close)
	s.service = New(s.venues, s.tournaments, s.debates, s.participants, WithActionLog(pub))

	s.tournament = &tmodels.Tournament{Slug: "worlds", Name: "Worlds", Active: true}
	s.Require().NoError(s.tournaments.CreateTournament(s.ctx, s.tournament))
	s.round = s.saveRound(1, tmodels.StagePreliminary)

	s.inst = &pmodels.Institution{Name: "Harvard", Code: "Harv"}
	s.Require().NoError(s.participants.CreateInstitution(s.ctx, s.inst))
	s.teamA = &pmodels.Team{TournamentID: s.tournament.ID, InstitutionID: &s.inst.ID, Reference: "A", UseInstitutionPrefix: true}
	s.Require().NoError(s.participants.CreateTeam(s.ctx, s.teamA))
	s.teamB = &pmodels.Team{TournamentID: s.tournament.ID, Reference: "Swing"}
	s.Require().NoError(s.participants.CreateTeam(s.ctx, s.teamB))
	s.adj = &pmodels.Adjudicator{TournamentID: s.tournament.ID, Name: "Ada"}
	s.Require().NoError(s.participants.CreateAdjudicator(s.ctx, s.adj))
}

func (s *ServiceSuite) saveRound(seq int, stage tmodels.Stage) *tmodels.Round {
	r := &tmodels.Round{
		TournamentID: s.tournament.ID,
		Seq:          seq,
		Name:         "Round",
		Stage:        stage,
		DrawType:     tmodels.DrawTypeManual,
		DrawStatus:   tmodels.DrawStatusDraft,
	}
	s.Require().NoError(s.tournaments.SaveRound(s.ctx, r))
	return r
}

func (s *ServiceSuite) saveDebate(roundID domain.RoundID, teams []dmodels.DebateTeam, adjs ...domain.AdjudicatorID) *dmodels.Debate {
	d := &dmodels.Debate{RoundID: roundID, Teams: teams}
	for _, a := range adjs {
		d.Adjudicators = append(d.Adjudicators, dmodels.DebateAdjudicator{AdjudicatorID: a, Position: dmodels.AdjChair})
	}
	s.Require().NoError(s.debates.SaveDebate(s.ctx, d))
	return d
}

func (s *ServiceSuite) saveCategory(name string, venues ...domain.VenueID) *models.VenueCategory {
	c := &models.VenueCategory{TournamentID: s.tournament.ID, Name: name, DisplayInVenueName: models.DisplayNone, VenueIDs: venues}
	s.Require().NoError(s.venues.SaveCategory(s.ctx, c))
	return c
}

func (s *ServiceSuite) saveConstraint(kind models.SubjectKind, subject int64, cat domain.CategoryID) {
	s.Require().NoError(s.venues.SaveConstraint(s.ctx, &models.VenueConstraint{SubjectKind: kind, SubjectID: subject, CategoryID: cat, Priority: 1}))
}

func side(side dmodels.Side, team *pmodels.Team) dmodels.DebateTeam {
	if team == nil {
		return dmodels.DebateTeam{Side: side}
	}
	return dmodels.DebateTeam{Side: side, TeamID: &team.ID}
}

func (s *ServiceSuite) TestEditInfo() {
	s.Run("resolves constraints per debate", func() {
		v := &models.Venue{TournamentID: s.tournament.ID, Name: "Room 1", Priority: 10}
		s.Require().NoError(s.venues.SaveVenue(s.ctx, v))
		access := s.saveCategory("Accessible", v.ID)
		quiet := s.saveCategory("Quiet")
		s.saveConstraint(models.SubjectTeam, int64(s.teamA.ID), access.ID)
		s.saveConstraint(models.SubjectInstitution, int64(s.inst.ID), quiet.ID)
		s.saveConstraint(models.SubjectAdjudicator, int64(s.adj.ID), quiet.ID)

		constrained := s.saveDebate(s.round.ID, []dmodels.DebateTeam{side(dmodels.SideAff, s.teamA), side(dmodels.SideNeg, s.teamB)}, s.adj.ID)
		free := s.saveDebate(s.round.ID, []dmodels.DebateTeam{side(dmodels.SideAff, s.teamB), side(dmodels.SideNeg, nil)})

		info, err := s.service.EditInfo(s.ctx, "worlds", 1, false)
		s.Require().NoError(err)

		s.Len(info.Debates, 2)
		s.Equal([][]domain.CategoryID{{access.ID}, {quiet.ID}, {quiet.ID}}, info.Constraints.Debates[constrained.ID])
		s.NotContains(info.Constraints.Debates, free.ID)
		s.Equal([]domain.CategoryID{access.ID}, info.Constraints.Teams[s.teamA.ID])
		s.Equal([]domain.CategoryID{quiet.ID}, info.Constraints.Institutions[s.inst.ID])

		s.Require().Len(info.Venues, 1)
		s.True(info.Venues[0].Available)
		s.Equal([]domain.CategoryID{access.ID}, info.Venues[0].Categories)
		s.Len(info.Highlights.Priority, numPriorityBands)
		s.Require().Len(info.Highlights.Category, 2)
		s.Equal(quiet.ID, info.Highlights.Category[0].PK)
	})

	s.Run("unknown round", func() {
		_, err := s.service.EditInfo(s.ctx, "worlds", 9, false)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("unknown tournament", func() {
		_, err := s.service.EditInfo(s.ctx, "nope", 1, false)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestEditInfoMultiRound() {
	open := s.saveRound(5, tmodels.StageElimination)
	novice := s.saveRound(5, tmodels.StageElimination)
	s.saveDebate(open.ID, []dmodels.DebateTeam{side(dmodels.SideAff, s.teamA), side(dmodels.SideNeg, s.teamB)})
	s.saveDebate(novice.ID, []dmodels.DebateTeam{side(dmodels.SideAff, s.teamB), side(dmodels.SideNeg, s.teamA)})
	s.saveDebate(novice.ID, []dmodels.DebateTeam{side(dmodels.SideAff, s.teamA), side(dmodels.SideBye, nil)})

	single, err := s.service.EditInfo(s.ctx, "worlds", 5, false)
	s.Require().NoError(err)
	s.Len(single.Debates, 1)

	multi, err := s.service.EditInfo(s.ctx, "worlds", 5, true)
	s.Require().NoError(err)
	s.Len(multi.Debates, 2, "bye debates are excluded")
	s.ElementsMatch([]domain.RoundID{open.ID, novice.ID}, multi.Rounds)
}

func (s *ServiceSuite) TestEditInfoAvailability() {
	in := &models.Venue{TournamentID: s.tournament.ID, Name: "In", Priority: 1}
	out := &models.Venue{TournamentID: s.tournament.ID, Name: "Out", Priority: 1}
	s.Require().NoError(s.venues.SaveVenue(s.ctx, in))
	s.Require().NoError(s.venues.SaveVenue(s.ctx, out))
	s.Require().NoError(s.venues.SetAvailability(s.ctx, s.round.ID, []domain.VenueID{in.ID}))

	info, err := s.service.EditInfo(s.ctx, "worlds", 1, false)
	s.Require().NoError(err)
	avail := map[string]bool{}
	for _, v := range info.Venues {
		avail[v.Name] = v.Available
	}
	s.Equal(map[string]bool{"In": true, "Out": false}, avail)
}

func (s *ServiceSuite) TestSaveCategories() {
	v := &models.Venue{TournamentID: s.tournament.ID, Name: "Room 1"}
	s.Require().NoError(s.venues.SaveVenue(s.ctx, v))

	s.Run("creates and reports", func() {
		res, err := s.service.SaveCategories(s.ctx, "worlds", &models.SaveCategoriesRequest{Categories: []models.CategoryInput{
			{Name: "Accessible", DisplayInVenueName: models.DisplayPrefix, VenueIDs: []domain.VenueID{v.ID, v.ID}},
		}})
		s.Require().NoError(err)
		s.Equal("Saved room category: Accessible", res.Message)
		s.Require().Len(res.Categories, 1)
		s.Equal([]domain.VenueID{v.ID}, res.Categories[0].VenueIDs)

		entries, _ := s.actions.ListAll(s.ctx)
		s.Require().Len(entries, 1)
		s.Equal(actionlog.TypeVenueCategoriesEdit, entries[0].Type)
		s.Equal(s.tournament.ID, entries[0].TournamentID)
		s.Equal("venue_category", entries[0].SubjectKind)
		s.Equal(int64(res.Categories[0].ID), entries[0].SubjectID)
	})

	s.Run("unchanged rows are skipped", func() {
		cats, err := s.service.ListCategories(s.ctx, "worlds")
		s.Require().NoError(err)
		id := cats[0].ID
		res, err := s.service.SaveCategories(s.ctx, "worlds", &models.SaveCategoriesRequest{Categories: []models.CategoryInput{
			{ID: &id, Name: "Accessible", DisplayInVenueName: models.DisplayPrefix, VenueIDs: []domain.VenueID{v.ID}},
		}})
		s.Require().NoError(err)
		s.Equal("No changes were made to the room categories.", res.Message)
		entries, _ := s.actions.ListAll(s.ctx)
		s.Len(entries, 1)
	})

	s.Run("several saved", func() {
		res, err := s.service.SaveCategories(s.ctx, "worlds", &models.SaveCategoriesRequest{Categories: []models.CategoryInput{
			{Name: "Quiet", DisplayInVenueName: models.DisplayNone},
			{Name: "Large", DisplayInVenueName: models.DisplayNone},
		}})
		s.Require().NoError(err)
		s.Equal("Saved venue categories: Quiet, Large", res.Message)
		entries, _ := s.actions.ListAll(s.ctx)
		last := entries[len(entries)-1]
		s.Equal("venue_category", last.SubjectKind)
		s.Zero(last.SubjectID)
	})

	s.Run("rejects foreign venues", func() {
		_, err := s.service.SaveCategories(s.ctx, "worlds", &models.SaveCategoriesRequest{Categories: []models.CategoryInput{
			{Name: "Ghost", DisplayInVenueName: models.DisplayNone, VenueIDs: []domain.VenueID{999}},
		}})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown category id", func() {
		id := domain.CategoryID(999)
		_, err := s.service.SaveCategories(s.ctx, "worlds", &models.SaveCategoriesRequest{Categories: []models.CategoryInput{
			{ID: &id, Name: "Ghost", DisplayInVenueName: models.DisplayNone},
		}})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestSaveConstraints() {
	cat := s.saveCategory("Accessible")

	s.Run("creates", func() {
		res, err := s.service.SaveConstraints(s.ctx, "worlds", &models.SaveConstraintsRequest{Constraints: []models.ConstraintInput{
			{SubjectKind: models.SubjectTeam, SubjectID: int64(s.teamA.ID), CategoryID: cat.ID, Priority: 5},
			{SubjectKind: models.SubjectInstitution, SubjectID: int64(s.inst.ID), CategoryID: cat.ID, Priority: 1},
		}})
		s.Require().NoError(err)
		s.Equal("Saved 2 room constraints.", res.Message)
		s.Len(res.Constraints, 2)
	})

	s.Run("updates and deletes", func() {
		existing, err := s.service.ListConstraints(s.ctx, "worlds")
		s.Require().NoError(err)
		s.Require().Len(existing, 2)
		first, second := existing[0].ID, existing[1].ID
		res, err := s.service.SaveConstraints(s.ctx, "worlds", &models.SaveConstraintsRequest{Constraints: []models.ConstraintInput{
			{ID: &first, SubjectKind: models.SubjectTeam, SubjectID: int64(s.teamA.ID), CategoryID: cat.ID, Priority: 9},
			{ID: &second, Delete: true},
		}})
		s.Require().NoError(err)
		s.Equal("Saved 1 room constraint. Deleted 1 room constraint.", res.Message)
		s.Require().Len(res.Constraints, 1)
		s.Equal(9, res.Constraints[0].Priority)
	})

	s.Run("no changes", func() {
		existing, err := s.service.ListConstraints(s.ctx, "worlds")
		s.Require().NoError(err)
		c := existing[0]
		res, err := s.service.SaveConstraints(s.ctx, "worlds", &models.SaveConstraintsRequest{Constraints: []models.ConstraintInput{
			{ID: &c.ID, SubjectKind: c.SubjectKind, SubjectID: c.SubjectID, CategoryID: c.CategoryID, Priority: c.Priority},
		}})
		s.Require().NoError(err)
		s.Equal("No changes were made to the room constraints.", res.Message)
	})

	s.Run("single change names the constraint", func() {
		existing, err := s.service.ListConstraints(s.ctx, "worlds")
		s.Require().NoError(err)
		c := existing[0]
		_, err = s.service.SaveConstraints(s.ctx, "worlds", &models.SaveConstraintsRequest{Constraints: []models.ConstraintInput{
			{ID: &c.ID, SubjectKind: c.SubjectKind, SubjectID: c.SubjectID, CategoryID: c.CategoryID, Priority: c.Priority + 1},
		}})
		s.Require().NoError(err)
		entries, _ := s.actions.ListAll(s.ctx)
		last := entries[len(entries)-1]
		s.Equal(actionlog.TypeVenueConstraintsEdit, last.Type)
		s.Equal("venue_constraint", last.SubjectKind)
		s.Equal(int64(c.ID), last.SubjectID)
	})

	s.Run("unknown subject", func() {
		_, err := s.service.SaveConstraints(s.ctx, "worlds", &models.SaveConstraintsRequest{Constraints: []models.ConstraintInput{
			{SubjectKind: models.SubjectAdjudicator, SubjectID: 4242, CategoryID: cat.ID},
		}})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("delete without id", func() {
		_, err := s.service.SaveConstraints(s.ctx, "worlds", &models.SaveConstraintsRequest{Constraints: []models.ConstraintInput{
			{Delete: true},
		}})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("category from elsewhere", func() {
		_, err := s.service.SaveConstraints(s.ctx, "worlds", &models.SaveConstraintsRequest{Constraints: []models.ConstraintInput{
			{SubjectKind: models.SubjectAdjudicator, SubjectID: int64(s.adj.ID), CategoryID: 4242},
		}})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestSubjectChoices() {
	choices, err := s.service.SubjectChoices(s.ctx, "worlds")
	s.Require().NoError(err)
	labels := make([]string, 0, len(choices))
	for _, c := range choices {
		labels = append(labels, c.Label)
	}
	s.Equal([]string{"Ada (Adjudicator)", "Harv A (Team)", "Harvard (Institution)", "Swing (Team)"}, labels)
}

func TestConstraintsMessage(t *testing.T) {
	assert.Equal(t, "Saved 1 room constraint.", constraintsMessage(1, 0))
	assert.Equal(t, "Saved 3 room constraints.", constraintsMessage(3, 0))
	assert.Equal(t, "Deleted 2 room constraints.", constraintsMessage(0, 2))
	assert.Equal(t, "No changes were made to the room constraints.", constraintsMessage(0, 0))
}

func TestPriorityBands(t *testing.T) {
	t.Run("no venues", func(t *testing.T) {
		assert.Empty(t, priorityBands(nil))
	})

	t.Run("bands from max down to min", func(t *testing.T) {
		bands := priorityBands([]*models.Venue{{Priority: 0}, {Priority: 100}, {Priority: 40}})
		require.Len(t, bands, 5)
		cutoffs := make([]float64, 0, len(bands))
		for _, b := range bands {
			cutoffs = append(cutoffs, b.Fields.Cutoff)
		}
		assert.Equal(t, []float64{80, 60, 40, 20, 0}, cutoffs)
		assert.Equal(t, "80+", bands[0].Fields.Name)
		assert.Equal(t, 0, bands[0].PK)
	})

	t.Run("equal priorities", func(t *testing.T) {
		bands := priorityBands([]*models.Venue{{Priority: 7}, {Priority: 7}})
		for _, b := range bands {
			assert.Equal(t, float64(7), b.Fields.Cutoff)
		}
	})
}
