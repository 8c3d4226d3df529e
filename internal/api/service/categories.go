package service

import (
	"context"
	"errors"

	bmodels "debatetab/internal/breaks/models"
	pmodels "debatetab/internal/participants/models"
	"debatetab/pkg/domain"
	dErrors "debatetab/pkg/domain-errors"
	"debatetab/pkg/platform/sentinel"
	"debatetab/pkg/requestcontext"
)

// ListSpeakerCategories hides private categories from public callers.
func (s *Service) ListSpeakerCategories(ctx context.Context, slug string) ([]*pmodels.SpeakerCategory, error) {
	t, err := s.Tournament(ctx, slug)
	if err != nil {
		return nil, err
	}
	cats, err := s.participants.ListSpeakerCategories(ctx, t.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load speaker categories")
	}
	if requestcontext.IsAdmin(ctx) {
		return nonNil(cats), nil
	}
	out := []*pmodels.SpeakerCategory{}
	for _, c := range cats {
		if c.Public {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Service) SpeakerEligibility(ctx context.Context, slug string, id domain.SpeakerCatID) (*SpeakerEligibility, error) {
	t, err := s.Tournament(ctx, slug)
	if err != nil {
		return nil, err
	}
	cat, err := s.participants.FindSpeakerCategory(ctx, t.ID, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "speaker category not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load speaker category")
	}
	if !cat.Public && !requestcontext.IsAdmin(ctx) {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "speaker category is private")
	}
	ids, err := s.participants.ListSpeakerIDsInCategory(ctx, cat.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load speaker eligibility")
	}
	return &SpeakerEligibility{Slug: cat.Slug, SpeakerIDs: nonNil(ids)}, nil
}

func (s *Service) ListBreakCategories(ctx context.Context, slug string) ([]*bmodels.BreakCategory, error) {
	t, err := s.Tournament(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.breaks.ListCategories(ctx, t.ID)
}

func (s *Service) BreakEligibility(ctx context.Context, slug string, id domain.BreakCategoryID) (*TeamEligibility, error) {
	t, err := s.Tournament(ctx, slug)
	if err != nil {
		return nil, err
	}
	cat, err := s.breaks.Category(ctx, t.ID, id)
	if err != nil {
		return nil, err
	}
	ids, err := s.breaks.Eligibility(ctx, t.ID, id)
	if err != nil {
		return nil, err
	}
	return &TeamEligibility{Slug: cat.Slug, TeamIDs: ids}, nil
}

// BreakingTeams is public only when the tournament releases its break.
func (s *Service) BreakingTeams(ctx context.Context, slug string, id domain.BreakCategoryID) ([]*bmodels.BreakingTeam, error) {
	t, prefs, err := s.tournamentWithPrefs(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !prefs.PublicBreakingTeams && !requestcontext.IsAdmin(ctx) {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "breaking teams are not public")
	}
	return s.breaks.BreakingTeams(ctx, t.ID, id)
}

func (s *Service) GenerateBreak(ctx context.Context, slug string, id domain.BreakCategoryID) ([]*bmodels.BreakingTeam, error) {
	t, err := s.Tournament(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.breaks.Generate(ctx, t.ID, id)
}

func (s *Service) DeleteBreak(ctx context.Context, slug string, id domain.BreakCategoryID) error {
	t, err := s.Tournament(ctx, slug)
	if err != nil {
		return err
	}
	return s.breaks.Delete(ctx, t.ID, id)
}

func (s *Service) UpdateBreak(ctx context.Context, slug string, id domain.BreakCategoryID, req *bmodels.RemarkRequest) ([]*bmodels.BreakingTeam, error) {
	t, err := s.Tournament(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.breaks.UpdateRemark(ctx, t.ID, id, req)
}
