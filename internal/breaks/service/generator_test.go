package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debatetab/internal/breaks/models"
	"debatetab/pkg/domain"
)

func standing(team domain.TeamID, points int, speaks float64) *models.TeamStanding {
	return &models.TeamStanding{TeamID: team, Points: points, SpeakerScore: speaks}
}

func breakRanks(teams []models.BreakingTeam) map[domain.TeamID]int {
	out := make(map[domain.TeamID]int)
	for _, bt := range teams {
		if bt.BreakRank != nil {
			out[bt.TeamID] = *bt.BreakRank
		} else {
			out[bt.TeamID] = 0
		}
	}
	return out
}

func TestComputeBreak(t *testing.T) {
	standings := []*models.TeamStanding{
		standing(1, 3, 200),
		standing(2, 5, 190),
		standing(3, 5, 210),
		standing(4, 2, 180),
		standing(5, 1, 170),
	}

	t.Run("orders by points then speaks", func(t *testing.T) {
		got := computeBreak(standings, nil, 3)
		require.Len(t, got, 3)
		assert.Equal(t, []domain.TeamID{3, 2, 1}, []domain.TeamID{got[0].TeamID, got[1].TeamID, got[2].TeamID})
		assert.Equal(t, map[domain.TeamID]int{3: 1, 2: 2, 1: 3}, breakRanks(got))
	})

	t.Run("remarked teams keep their rank but do not break", func(t *testing.T) {
		got := computeBreak(standings, map[domain.TeamID]models.Remark{2: models.RemarkCapped}, 3)
		require.Len(t, got, 4)
		assert.Equal(t, map[domain.TeamID]int{3: 1, 2: 0, 1: 2, 4: 3}, breakRanks(got))
		assert.Equal(t, 2, got[1].Rank)
		assert.Equal(t, models.RemarkCapped, got[1].Remark)
	})

	t.Run("ties share ranks", func(t *testing.T) {
		got := computeBreak([]*models.TeamStanding{standing(1, 4, 100), standing(2, 4, 100), standing(3, 2, 90)}, nil, 3)
		assert.Equal(t, []int{1, 1, 3}, []int{got[0].Rank, got[1].Rank, got[2].Rank})
		assert.Equal(t, map[domain.TeamID]int{1: 1, 2: 1, 3: 3}, breakRanks(got))
	})

	t.Run("break larger than field", func(t *testing.T) {
		got := computeBreak(standings[:2], nil, 8)
		assert.Len(t, got, 2)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, computeBreak(nil, nil, 4))
	})
}
