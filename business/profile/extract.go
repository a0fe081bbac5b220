package profile

import (
	"math"
	"sort"

	"devenirShop/domain"
)

// countRanked tallies non-empty keys and returns the top n by count.
// Ties break alphabetically so repeated builds stay deterministic.
func countRanked(counts map[string]int, n int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// extractStyleProfile returns the user's top three styles by purchase
// frequency, falling back to the item category when style is unset.
func extractStyleProfile(orders []domain.Orders) []string {
	counts := make(map[string]int)
	for _, o := range orders {
		for _, item := range o.Items {
			style := item.Style
			if style == "" {
				style = item.Category
			}
			if style != "" {
				counts[style]++
			}
		}
	}
	return countRanked(counts, 3)
}

// extractSizeHistory maps category to the most recently purchased size.
// Orders are newest first, so the first size seen per category wins.
func extractSizeHistory(orders []domain.Orders) map[string]string {
	sizes := make(map[string]string)
	for _, o := range orders {
		for _, item := range o.Items {
			if item.Category == "" || item.Size == "" {
				continue
			}
			if _, seen := sizes[item.Category]; !seen {
				sizes[item.Category] = item.Size
			}
		}
	}
	return sizes
}

// calculateBudgetRange derives a comfort band from completed order totals:
// 80% of the 25th percentile up to 120% of the 75th. Only a history with
// no priced orders falls back to the unrestricted default.
func calculateBudgetRange(orders []domain.Orders) domain.BudgetRange {
	var totals []float64
	for _, o := range orders {
		if o.TotalPrice > 0 {
			totals = append(totals, o.TotalPrice)
		}
	}
	if len(totals) == 0 {
		return domain.DefaultBudgetRange()
	}
	sort.Float64s(totals)
	p25 := totals[int(math.Floor(float64(len(totals))*0.25))]
	p75 := totals[int(math.Floor(float64(len(totals))*0.75))]
	return domain.BudgetRange{
		Min: math.Round(p25 * 0.8),
		Max: math.Round(p75 * 1.2),
	}
}

func extractFavoriteColors(orders []domain.Orders) []string {
	counts := make(map[string]int)
	for _, o := range orders {
		for _, item := range o.Items {
			if item.Color != "" {
				counts[item.Color]++
			}
		}
	}
	return countRanked(counts, 5)
}

func extractFavoriteBrands(orders []domain.Orders) []string {
	counts := make(map[string]int)
	for _, o := range orders {
		for _, item := range o.Items {
			if item.Brand != "" {
				counts[item.Brand]++
			}
		}
	}
	return countRanked(counts, 3)
}
