package service

import (
	"context"
	"errors"
	"fmt"

	pmodels "debatetab/internal/participants/models"
	"debatetab/internal/registration/models"
	tmodels "debatetab/internal/tournaments/models"
	"debatetab/pkg/domain"
	dErrors "debatetab/pkg/domain-errors"
	"debatetab/pkg/platform/actionlog"
	"debatetab/pkg/platform/sentinel"
)

// RegisterTeam registers a team and up to speakers_in_team speakers. With a
// coach key the team joins the coach's institution; otherwise it registers
// through open registration without an institution.
func (s *Service) RegisterTeam(ctx context.Context, slug string, req *models.TeamRegistrationRequest) (*models.Registered, error) {
	t, prefs, err := s.tournamentWithPrefs(ctx, slug)
	if err != nil {
		return nil, err
	}
	institutionID, err := s.registrantInstitution(ctx, t.ID, prefs, prefs.OpenTeamRegistration, req.CoachKey, "team")
	if err != nil {
		return nil, err
	}
	if len(req.Speakers) > prefs.SpeakersInTeam {
		return nil, dErrors.Newf(dErrors.CodeValidation, "a team has at most %d speakers", prefs.SpeakersInTeam)
	}
	if req.Emoji != "" {
		if _, ok := pmodels.EmojiName(req.Emoji); !ok {
			return nil, dErrors.New(dErrors.CodeValidation, "unknown team emoji")
		}
	}

	teamQuestions, err := s.questions(ctx, t.ID, models.QuestionTeam)
	if err != nil {
		return nil, err
	}
	teamAnswers, err := cleanAnswers(teamQuestions, req.Answers)
	if err != nil {
		return nil, err
	}
	speakerQuestions, err := s.questions(ctx, t.ID, models.QuestionSpeaker)
	if err != nil {
		return nil, err
	}
	speakers := make([]*pmodels.Speaker, len(req.Speakers))
	speakerAnswers := make([][]models.Answer, len(req.Speakers))
	for i, in := range req.Speakers {
		speakers[i] = &pmodels.Speaker{Name: in.Name, LastName: in.LastName, Email: in.Email}
		if speakerAnswers[i], err = cleanAnswers(speakerQuestions, in.Answers); err != nil {
			return nil, err
		}
	}

	team := &pmodels.Team{
		TournamentID:         t.ID,
		InstitutionID:        institutionID,
		Emoji:                req.Emoji,
		UseInstitutionPrefix: req.UseInstitutionPrefix && institutionID != nil,
	}
	var inst *pmodels.Institution
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		siblings, err := s.participants.ListTeamsByInstitution(txCtx, t.ID, institutionID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load institution teams")
		}
		refs := make([]string, len(siblings))
		for i, sib := range siblings {
			refs[i] = sib.Reference
		}
		if team.Reference, err = teamReference(prefs.TeamNameGenerator, req.Reference, refs, speakers); err != nil {
			return err
		}
		if team.Emoji == "" {
			if team.Emoji, err = s.unusedEmoji(txCtx, t.ID); err != nil {
				return err
			}
		}
		team.CodeName = teamCodeName(prefs.CodeNameGenerator, req.CodeName, team.Emoji, speakers)

		if err := s.participants.CreateTeam(txCtx, team); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create team")
		}
		for i, sp := range speakers {
			sp.TeamID = team.ID
			if err := s.createSpeaker(txCtx, sp); err != nil {
				return err
			}
			if err := s.saveAnswers(txCtx, models.QuestionSpeaker, int64(sp.ID), speakerAnswers[i]); err != nil {
				return err
			}
		}
		if err := s.saveAnswers(txCtx, models.QuestionTeam, int64(team.ID), teamAnswers); err != nil {
			return err
		}
		inst, err = s.institution(txCtx, institutionID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logAction(ctx, actionlog.TypeTeamRegister,
		"tournament_id", t.ID,
		"subject_kind", string(models.QuestionTeam),
		"subject_id", team.ID,
		"speakers", len(speakers),
	)

	name := team.ShortName(inst)
	res := &models.Registered{ID: int64(team.ID), Name: name}
	if missing := prefs.SpeakersInTeam - len(speakers); missing > 0 {
		res.MissingSpeakers = missing
		res.Messages = append(res.Messages, missingSpeakersMessage(len(speakers)))
	}
	res.Messages = append(res.Messages, fmt.Sprintf("Your team %s has been registered!", name))
	return res, nil
}

func missingSpeakersMessage(n int) string {
	noun := "speakers"
	if n == 1 {
		noun = "speaker"
	}
	return fmt.Sprintf("Your team only has %d %s! The other speakers can join the team once it is registered.", n, noun)
}

// RegisterAdjudicator registers an adjudicator, institutionally with a coach
// key or through open registration.
func (s *Service) RegisterAdjudicator(ctx context.Context, slug string, req *models.AdjudicatorRegistrationRequest) (*models.Registered, error) {
	t, prefs, err := s.tournamentWithPrefs(ctx, slug)
	if err != nil {
		return nil, err
	}
	institutionID, err := s.registrantInstitution(ctx, t.ID, prefs, prefs.OpenAdjRegistration, req.CoachKey, "adjudicator")
	if err != nil {
		return nil, err
	}
	questions, err := s.questions(ctx, t.ID, models.QuestionAdjudicator)
	if err != nil {
		return nil, err
	}
	answers, err := cleanAnswers(questions, req.Answers)
	if err != nil {
		return nil, err
	}

	adj := &pmodels.Adjudicator{
		TournamentID:  t.ID,
		InstitutionID: institutionID,
		Name:          req.Name,
		Email:         req.Email,
	}
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.withURLKey(func(key string) error {
			adj.URLKey = key
			return s.participants.CreateAdjudicator(txCtx, adj)
		}); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create adjudicator")
		}
		return s.saveAnswers(txCtx, models.QuestionAdjudicator, int64(adj.ID), answers)
	})
	if err != nil {
		return nil, err
	}

	s.logAction(ctx, actionlog.TypeAdjudicatorRegister,
		"tournament_id", t.ID,
		"subject_kind", string(models.QuestionAdjudicator),
		"subject_id", adj.ID,
	)
	return &models.Registered{
		ID:       int64(adj.ID),
		Name:     adj.Name,
		URLKey:   adj.URLKey,
		Messages: []string{"You have been registered as an adjudicator!"},
	}, nil
}

// RegisterSpeaker adds a speaker to a team that is still short of speakers.
// Generated references and code names that depend on the speakers are
// recomputed afterwards.
func (s *Service) RegisterSpeaker(ctx context.Context, slug string, teamID domain.TeamID, req *models.SpeakerRequest) (*models.Registered, error) {
	t, prefs, err := s.tournamentWithPrefs(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !prefs.InstitutionParticipantRegistration {
		return nil, dErrors.New(dErrors.CodeForbidden, "speaker registration is not open")
	}
	questions, err := s.questions(ctx, t.ID, models.QuestionSpeaker)
	if err != nil {
		return nil, err
	}
	answers, err := cleanAnswers(questions, req.Answers)
	if err != nil {
		return nil, err
	}

	sp := &pmodels.Speaker{TeamID: teamID, Name: req.Name, LastName: req.LastName, Email: req.Email}
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		team, err := s.participants.FindTeam(txCtx, t.ID, teamID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "team not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load team")
		}
		current, err := s.participants.ListSpeakersByTeam(txCtx, team.ID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load speakers")
		}
		if len(current) >= prefs.SpeakersInTeam {
			return dErrors.New(dErrors.CodeConflict, "team already has all its speakers")
		}
		if err := s.createSpeaker(txCtx, sp); err != nil {
			return err
		}
		if err := s.saveAnswers(txCtx, models.QuestionSpeaker, int64(sp.ID), answers); err != nil {
			return err
		}

		all := append(current, sp)
		changed := false
		if prefs.TeamNameGenerator == tmodels.TeamNameInitials {
			team.Reference = initialsReference(all)
			changed = true
		}
		if prefs.CodeNameGenerator == tmodels.CodeNameLastNames {
			team.CodeName = lastNamesCodeName(all)
			changed = true
		}
		if !changed {
			return nil
		}
		if err := s.participants.UpdateTeam(txCtx, team); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update team")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logAction(ctx, actionlog.TypeSpeakerRegister,
		"tournament_id", t.ID,
		"subject_kind", string(models.QuestionSpeaker),
		"subject_id", sp.ID,
		"team_id", teamID,
	)
	return &models.Registered{
		ID:       int64(sp.ID),
		Name:     sp.Name,
		URLKey:   sp.URLKey,
		Messages: []string{"You have been registered as a speaker!"},
	}, nil
}

// registrantInstitution gates team and adjudicator registration. Coach keys
// need institutional participant registration; open registration needs its
// own preference.
func (s *Service) registrantInstitution(ctx context.Context, tournamentID domain.TournamentID, prefs tmodels.Preferences, open bool, coachKey, what string) (*domain.InstitutionID, error) {
	if coachKey == "" {
		if !open {
			return nil, dErrors.Newf(dErrors.CodeForbidden, "%s registration is not open", what)
		}
		return nil, nil
	}
	if !prefs.InstitutionParticipantRegistration {
		return nil, dErrors.Newf(dErrors.CodeForbidden, "institutional %s registration is not open", what)
	}
	return s.coachInstitution(ctx, tournamentID, coachKey)
}

func (s *Service) createSpeaker(ctx context.Context, sp *pmodels.Speaker) error {
	err := s.withURLKey(func(key string) error {
		sp.URLKey = key
		return s.participants.CreateSpeaker(ctx, sp)
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "team not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create speaker")
	}
	return nil
}

func (s *Service) unusedEmoji(ctx context.Context, tournamentID domain.TournamentID) (string, error) {
	teams, err := s.participants.ListTeams(ctx, tournamentID)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to load teams")
	}
	inUse := make(map[string]bool, len(teams))
	for _, team := range teams {
		inUse[team.Emoji] = true
	}
	return pmodels.NextEmoji(inUse), nil
}

func (s *Service) institution(ctx context.Context, id *domain.InstitutionID) (*pmodels.Institution, error) {
	if id == nil {
		return nil, nil
	}
	inst, err := s.participants.FindInstitution(ctx, *id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "institution not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load institution")
	}
	return inst, nil
}
