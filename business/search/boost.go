package search

import (
	"strings"
	"time"

	"devenirShop/domain"
)

// Season of the calendar year, derived purely from the month.
type Season string

const (
	SeasonWinter Season = "winter"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
)

var seasonalTags = map[Season][]string{
	SeasonSpring: {"spring", "light", "windbreaker", "cardigan"},
	SeasonSummer: {"summer", "t-shirt", "tee", "shorts", "linen", "sandal"},
	SeasonFall:   {"fall", "autumn", "sweater", "flannel", "corduroy"},
	SeasonWinter: {"winter", "coat", "wool", "parka", "puffer", "thermal"},
}

// SeasonForTime maps a moment to its season: Dec-Feb winter, Mar-May spring,
// Jun-Aug summer, Sep-Nov fall.
func SeasonForTime(t time.Time) Season {
	switch m := t.Month(); {
	case m >= time.March && m <= time.May:
		return SeasonSpring
	case m >= time.June && m <= time.August:
		return SeasonSummer
	case m >= time.September && m <= time.November:
		return SeasonFall
	default:
		return SeasonWinter
	}
}

// ApplyPopularityBoost scales each score by 1 + popularity*factor.
// Products missing from the popularity map are left unchanged; an empty map
// is a no-op, not an error. The absolute delta is recorded on the result.
func ApplyPopularityBoost(results []domain.FusedResult, popularity map[uint64]float64, factor float64) {
	if len(popularity) == 0 {
		return
	}
	for i := range results {
		pop := popularity[results[i].ID]
		if pop <= 0 {
			continue
		}
		boosted := results[i].HybridScore * (1 + pop*factor)
		results[i].PopularityBoost = boosted - results[i].HybridScore
		results[i].HybridScore = boosted
	}
}

// ApplySeasonalBoost scales the score of products whose display name (or
// retriever metadata tags/category) match the season's vocabulary.
// The flat boost factor is recorded when applied.
func ApplySeasonalBoost(results []domain.FusedResult, season Season, factor float64) {
	tags := seasonalTags[season]
	if len(tags) == 0 {
		return
	}
	for i := range results {
		if !matchesSeason(results[i].Metadata, tags) {
			continue
		}
		results[i].SeasonalBoost = factor
		results[i].HybridScore *= 1 + factor
	}
}

func matchesSeason(metadata map[string]any, tags []string) bool {
	if metadata == nil {
		return false
	}
	var haystack strings.Builder
	for _, key := range []string{"product_name", "category", "tags"} {
		if v, ok := metadata[key].(string); ok {
			haystack.WriteString(strings.ToLower(v))
			haystack.WriteByte(' ')
		}
	}
	text := haystack.String()
	for _, tag := range tags {
		if strings.Contains(text, tag) {
			return true
		}
	}
	return false
}
