// Package ranking re-orders retrieved products by per-user preference
// alignment. Purely additive: it never discards a candidate, only reorders.
package ranking

import (
	"sort"
	"strings"

	"devenirShop/domain"
)

// Individual boost values. The sum is capped by the caller-provided max.
const (
	styleBoost         = 0.3
	sizeBoost          = 0.15
	budgetBoostPerfect = 0.25
	budgetBoostPartial = 0.15
	colorBoost         = 0.2
	brandBoost         = 0.2
)

// Apply computes a personalized score per product, starting at the neutral
// 1.0 and adding boosts for each preference match, capped at maxBoost.
// A nil profile makes the whole stage a pass-through: neutral scores, empty
// boost lists, input order preserved.
func Apply(products []domain.ScoredProduct, profile *domain.UserProfile, maxBoost float64) []domain.ScoredProduct {
	out := make([]domain.ScoredProduct, len(products))
	copy(out, products)

	for i := range out {
		out[i].PersonalizedScore = 1.0
		out[i].Boosts = []domain.Boost{}
	}
	if profile == nil {
		return out
	}
	if maxBoost <= 0 {
		maxBoost = 1.5
	}

	for i := range out {
		score, boosts := scoreProduct(out[i].Product, profile)
		if score > maxBoost {
			score = maxBoost
		}
		out[i].PersonalizedScore = score
		out[i].Boosts = boosts
	}

	// Stable sort so equal scores keep the upstream hybrid order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PersonalizedScore > out[j].PersonalizedScore
	})

	return out
}

func scoreProduct(p domain.Product, profile *domain.UserProfile) (float64, []domain.Boost) {
	score := 1.0
	boosts := []domain.Boost{}
	prefs := profile.Preferences

	if style := productStyle(p); style != "" && contains(prefs.StyleProfile, style) {
		score += styleBoost
		boosts = append(boosts, domain.Boost{Type: domain.BoostStyle, Value: styleBoost})
	}

	if size, ok := prefs.SizeHistory[p.Category]; ok && hasSizeInStock(p, size) {
		score += sizeBoost
		boosts = append(boosts, domain.Boost{Type: domain.BoostSize, Value: sizeBoost})
	}

	if v, reason, ok := budgetMatch(p, prefs.BudgetRange); ok {
		score += v
		boosts = append(boosts, domain.Boost{Type: domain.BoostBudget, Value: v, Reason: reason})
	}

	if hasFavoriteColor(p, prefs.FavoriteColors) {
		score += colorBoost
		boosts = append(boosts, domain.Boost{Type: domain.BoostColor, Value: colorBoost})
	}

	if p.Brand != "" && contains(prefs.FavoriteBrands, p.Brand) {
		score += brandBoost
		boosts = append(boosts, domain.Boost{Type: domain.BoostBrand, Value: brandBoost})
	}

	return score, boosts
}

func productStyle(p domain.Product) string {
	if p.Style != "" {
		return p.Style
	}
	return p.Category
}

func hasSizeInStock(p domain.Product, size string) bool {
	for _, v := range p.Variants {
		if v.Size == size && v.Stock > 0 {
			return true
		}
	}
	return false
}

// budgetMatch distinguishes a product entirely within budget (perfect fit)
// from one whose price range only overlaps it.
func budgetMatch(p domain.Product, budget domain.BudgetRange) (float64, string, bool) {
	if budget.Unrestricted() {
		return 0, "", false
	}
	lo, hi := p.PriceRange()
	if hi <= 0 {
		return 0, "", false
	}
	if hi < budget.Min || lo > budget.Max {
		return 0, "", false
	}
	if lo >= budget.Min && hi <= budget.Max {
		return budgetBoostPerfect, "perfect_fit", true
	}
	return budgetBoostPartial, "partial_overlap", true
}

// hasFavoriteColor fuzzily matches variant colors against favorites:
// substring containment in either direction, case-insensitive.
func hasFavoriteColor(p domain.Product, favorites []string) bool {
	if len(favorites) == 0 {
		return false
	}
	for _, v := range p.Variants {
		pc := strings.ToLower(v.Color)
		if pc == "" {
			continue
		}
		for _, fav := range favorites {
			fc := strings.ToLower(fav)
			if strings.Contains(pc, fc) || strings.Contains(fc, pc) {
				return true
			}
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
