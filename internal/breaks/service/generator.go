package service

import (
	"cmp"
	"slices"

	"debatetab/internal/breaks/models"
	"debatetab/pkg/domain"
)

// computeBreak ranks the eligible teams by points, then speaker score, and
// hands out break ranks to the first size teams without a remark. Remarked
// teams ranked above the cutoff stay in the list without a break rank.
// Teams tied on both metrics share a rank.
func computeBreak(standings []*models.TeamStanding, remarks map[domain.TeamID]models.Remark, size int) []models.BreakingTeam {
	sorted := slices.Clone(standings)
	slices.SortStableFunc(sorted, func(a, b *models.TeamStanding) int {
		return cmp.Or(
			cmp.Compare(b.Points, a.Points),
			cmp.Compare(b.SpeakerScore, a.SpeakerScore),
			cmp.Compare(a.TeamID, b.TeamID),
		)
	})

	out := []models.BreakingTeam{}
	broken := 0
	rank, breakRank := 0, 0
	var prev, prevBreaking *models.TeamStanding
	for i, st := range sorted {
		if broken >= size {
			break
		}
		if prev == nil || !tied(prev, st) {
			rank = i + 1
		}
		prev = st

		bt := models.BreakingTeam{TeamID: st.TeamID, Rank: rank, Remark: remarks[st.TeamID]}
		if bt.Remark == models.RemarkNone {
			if prevBreaking == nil || !tied(prevBreaking, st) {
				breakRank = broken + 1
			}
			prevBreaking = st
			r := breakRank
			bt.BreakRank = &r
			broken++
		}
		out = append(out, bt)
	}
	return out
}

func tied(a, b *models.TeamStanding) bool {
	return a.Points == b.Points && a.SpeakerScore == b.SpeakerScore
}
