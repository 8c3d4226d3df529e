package service

import (
	"context"
	"errors"

	tmodels "debatetab/internal/tournaments/models"
	dErrors "debatetab/pkg/domain-errors"
	"debatetab/pkg/platform/actionlog"
	"debatetab/pkg/platform/sentinel"
)

func (s *Service) ListRounds(ctx context.Context, slug string) ([]*tmodels.Round, error) {
	t, err := s.Tournament(ctx, slug)
	if err != nil {
		return nil, err
	}
	rounds, err := s.tournaments.ListRounds(ctx, t.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load rounds")
	}
	return nonNil(rounds), nil
}

func (s *Service) Round(ctx context.Context, slug string, seq int) (*tmodels.Round, error) {
	t, err := s.Tournament(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.round(ctx, t, seq)
}

func (s *Service) round(ctx context.Context, t *tmodels.Tournament, seq int) (*tmodels.Round, error) {
	r, err := s.tournaments.FindRound(ctx, t.ID, seq)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "round %d not found", seq)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load round")
	}
	return r, nil
}

// PatchRound applies a partial update. Releasing motions goes through here.
func (s *Service) PatchRound(ctx context.Context, slug string, seq int, patch *tmodels.RoundPatch) (*tmodels.Round, error) {
	return s.editRound(ctx, slug, seq, patch.Apply)
}

// UpdateRound replaces every mutable field of the round.
func (s *Service) UpdateRound(ctx context.Context, slug string, seq int, update *tmodels.RoundUpdate) (*tmodels.Round, error) {
	return s.editRound(ctx, slug, seq, update.Apply)
}

func (s *Service) editRound(ctx context.Context, slug string, seq int, apply func(*tmodels.Round)) (*tmodels.Round, error) {
	t, err := s.Tournament(ctx, slug)
	if err != nil {
		return nil, err
	}
	var saved *tmodels.Round
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		r, err := s.round(txCtx, t, seq)
		if err != nil {
			return err
		}
		apply(r)
		if err := r.Validate(); err != nil {
			return dErrors.New(dErrors.CodeValidation, err.Error())
		}
		if err := s.tournaments.SaveRound(txCtx, r); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save round")
		}
		saved = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logAction(ctx, actionlog.TypeRoundEdit,
		"tournament_id", t.ID,
		"subject_kind", "round",
		"subject_id", saved.ID,
		"motions_released", saved.MotionsReleased,
	)
	return saved, nil
}
