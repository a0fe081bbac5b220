//go:build !integration

package search

import (
	"testing"
	"time"

	"devenirShop/domain"

	"github.com/stretchr/testify/assert"
)

func TestApplyPopularityBoost(t *testing.T) {
	results := []domain.FusedResult{
		{ID: 1, HybridScore: 0.8},
		{ID: 2, HybridScore: 0.5},
	}
	popularity := map[uint64]float64{1: 0.5}

	ApplyPopularityBoost(results, popularity, 0.2)

	// 0.8 * (1 + 0.5*0.2) = 0.88
	assert.InDelta(t, 0.88, results[0].HybridScore, 1e-9)
	assert.InDelta(t, 0.08, results[0].PopularityBoost, 1e-9)

	// No popularity data: untouched.
	assert.InDelta(t, 0.5, results[1].HybridScore, 1e-9)
	assert.Zero(t, results[1].PopularityBoost)
}

func TestApplyPopularityBoost_EmptyMapIsNoOp(t *testing.T) {
	results := []domain.FusedResult{{ID: 1, HybridScore: 0.8}}

	ApplyPopularityBoost(results, map[uint64]float64{}, 0.2)

	assert.InDelta(t, 0.8, results[0].HybridScore, 1e-9)
}

func TestApplySeasonalBoost(t *testing.T) {
	results := []domain.FusedResult{
		{ID: 1, HybridScore: 0.6, Metadata: map[string]any{"product_name": "Wool Coat"}},
		{ID: 2, HybridScore: 0.6, Metadata: map[string]any{"product_name": "Linen Shirt"}},
		{ID: 3, HybridScore: 0.6},
	}

	ApplySeasonalBoost(results, SeasonWinter, 0.15)

	assert.InDelta(t, 0.69, results[0].HybridScore, 1e-9)
	assert.InDelta(t, 0.15, results[0].SeasonalBoost, 1e-9)

	// Off-season item and an item with no metadata stay put.
	assert.InDelta(t, 0.6, results[1].HybridScore, 1e-9)
	assert.InDelta(t, 0.6, results[2].HybridScore, 1e-9)
}

func TestApplySeasonalBoost_MatchesTagMetadata(t *testing.T) {
	results := []domain.FusedResult{
		{ID: 1, HybridScore: 1.0, Metadata: map[string]any{"tags": "beach,sandal,vacation"}},
	}

	ApplySeasonalBoost(results, SeasonSummer, 0.15)
	assert.InDelta(t, 1.15, results[0].HybridScore, 1e-9)
}

func TestSeasonForTime(t *testing.T) {
	tests := []struct {
		month time.Month
		want  Season
	}{
		{time.January, SeasonWinter},
		{time.February, SeasonWinter},
		{time.March, SeasonSpring},
		{time.May, SeasonSpring},
		{time.June, SeasonSummer},
		{time.August, SeasonSummer},
		{time.September, SeasonFall},
		{time.November, SeasonFall},
		{time.December, SeasonWinter},
	}
	for _, tt := range tests {
		at := time.Date(2026, tt.month, 15, 12, 0, 0, 0, time.UTC)
		assert.Equal(t, tt.want, SeasonForTime(at), "month %s", tt.month)
	}
}
