package service

import (
	"context"
	"errors"

	rmodels "debatetab/internal/results/models"
	"debatetab/pkg/domain"
	dErrors "debatetab/pkg/domain-errors"
	"debatetab/pkg/platform/sentinel"
)

// Ballots lists the ballot submissions of a debate. The debate may belong to
// any of the rounds sharing seq.
func (s *Service) Ballots(ctx context.Context, slug string, seq int, debateID domain.DebateID) ([]*rmodels.BallotSubmission, error) {
	t, err := s.Tournament(ctx, slug)
	if err != nil {
		return nil, err
	}
	rounds, err := s.tournaments.ListRoundsBySeq(ctx, t.ID, seq)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load rounds")
	}
	if len(rounds) == 0 {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "round %d not found", seq)
	}
	for _, r := range rounds {
		d, err := s.debates.FindDebate(ctx, r.ID, debateID)
		if errors.Is(err, sentinel.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load debate")
		}
		ballots, err := s.ballots.ListBallots(ctx, d.ID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load ballots")
		}
		return nonNil(ballots), nil
	}
	return nil, dErrors.Newf(dErrors.CodeNotFound, "debate %d not found", debateID)
}
