package service

import (
	"cmp"
	"math"
	"slices"
	"strconv"

	dmodels "debatetab/internal/draw/models"
	"debatetab/internal/venues/constraints"
	"debatetab/internal/venues/models"
	"debatetab/pkg/domain"
)

// EditInfo is everything the room allocation screen needs for one round, or
// for every concurrent round in multi-round mode.
type EditInfo struct {
	Round       int                `json:"round"`
	Rounds      []domain.RoundID   `json:"rounds"`
	Debates     []*dmodels.Debate  `json:"debates"`
	Venues      []VenueView        `json:"venues"`
	Highlights  Highlights         `json:"highlights"`
	Constraints constraints.Result `json:"constraints"`
}

// VenueView is an allocatable venue with its availability in the round.
type VenueView struct {
	ID          domain.VenueID      `json:"id"`
	Name        string              `json:"name"`
	DisplayName string              `json:"display_name"`
	Priority    int                 `json:"priority"`
	Categories  []domain.CategoryID `json:"categories"`
	Available   bool                `json:"available"`
}

type Highlights struct {
	Priority []PriorityBand      `json:"priority"`
	Category []CategoryHighlight `json:"category"`
}

type PriorityBand struct {
	PK     int                `json:"pk"`
	Fields PriorityBandFields `json:"fields"`
}

type PriorityBandFields struct {
	Name   string  `json:"name"`
	Cutoff float64 `json:"cutoff"`
}

type CategoryHighlight struct {
	PK     domain.CategoryID       `json:"pk"`
	Fields CategoryHighlightFields `json:"fields"`
}

type CategoryHighlightFields struct {
	Name string `json:"name"`
}

const numPriorityBands = 5

// priorityBands splits [min, max] into equal bands, highest first. A venue
// belongs to the first band whose cutoff it meets; the last cutoff is min.
func priorityBands(venues []*models.Venue) []PriorityBand {
	bands := []PriorityBand{}
	if len(venues) == 0 {
		return bands
	}
	lo, hi := venues[0].Priority, venues[0].Priority
	for _, v := range venues[1:] {
		lo = min(lo, v.Priority)
		hi = max(hi, v.Priority)
	}
	step := float64(hi-lo) / numPriorityBands
	for i := range numPriorityBands {
		cutoff := float64(lo)
		if i < numPriorityBands-1 {
			cutoff = math.Round((float64(hi)-step*float64(i+1))*100) / 100
		}
		bands = append(bands, PriorityBand{
			PK: i,
			Fields: PriorityBandFields{
				Name:   strconv.FormatFloat(cutoff, 'f', -1, 64) + "+",
				Cutoff: cutoff,
			},
		})
	}
	return bands
}

// categoryHighlights lists categories newest first, so the most recently
// created category wins when a venue is in several.
func categoryHighlights(categories []*models.VenueCategory) []CategoryHighlight {
	sorted := slices.Clone(categories)
	slices.SortFunc(sorted, func(a, b *models.VenueCategory) int { return cmp.Compare(b.ID, a.ID) })
	out := make([]CategoryHighlight, 0, len(sorted))
	for _, c := range sorted {
		out = append(out, CategoryHighlight{PK: c.ID, Fields: CategoryHighlightFields{Name: c.Name}})
	}
	return out
}
