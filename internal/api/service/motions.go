package service

import (
	"context"

	tmodels "debatetab/internal/tournaments/models"
	"debatetab/pkg/domain"
	dErrors "debatetab/pkg/domain-errors"
	"debatetab/pkg/requestcontext"
)

// ListMotions returns the motions the caller may see. Admins and, once the
// motion tab is released, everyone see all motions. Otherwise public motions
// show only the rounds whose motions were released, and a motion with no
// such round is hidden.
func (s *Service) ListMotions(ctx context.Context, slug string) ([]*tmodels.Motion, error) {
	t, prefs, err := s.tournamentWithPrefs(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.visibleMotions(ctx, t, prefs)
}

func (s *Service) Motion(ctx context.Context, slug string, id domain.MotionID) (*tmodels.Motion, error) {
	t, prefs, err := s.tournamentWithPrefs(ctx, slug)
	if err != nil {
		return nil, err
	}
	motions, err := s.visibleMotions(ctx, t, prefs)
	if err != nil {
		return nil, err
	}
	for _, m := range motions {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, dErrors.Newf(dErrors.CodeNotFound, "motion %d not found", id)
}

func (s *Service) visibleMotions(ctx context.Context, t *tmodels.Tournament, prefs tmodels.Preferences) ([]*tmodels.Motion, error) {
	admin := requestcontext.IsAdmin(ctx)
	if !admin && !prefs.MotionTabReleased && !prefs.PublicMotions {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "motions are not public")
	}
	motions, err := s.tournaments.ListMotions(ctx, t.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load motions")
	}
	if admin || prefs.MotionTabReleased {
		return nonNil(motions), nil
	}

	rounds, err := s.tournaments.ListRounds(ctx, t.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load rounds")
	}
	released := make(map[domain.RoundID]bool, len(rounds))
	for _, r := range rounds {
		if r.MotionsReleased {
			released[r.ID] = true
		}
	}

	out := []*tmodels.Motion{}
	for _, m := range motions {
		var visible []tmodels.RoundMotion
		for _, rm := range m.Rounds {
			if released[rm.RoundID] {
				visible = append(visible, rm)
			}
		}
		if len(visible) == 0 {
			continue
		}
		shown := *m
		shown.Rounds = visible
		out = append(out, &shown)
	}
	return out, nil
}
