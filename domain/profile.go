package domain

import "time"

// BudgetRange is derived from the 25th/75th percentile of historical order
// totals, widened by 20% on both ends.
type BudgetRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultBudgetRange is the wide unrestricted range used when a user has no
// order history.
func DefaultBudgetRange() BudgetRange {
	return BudgetRange{Min: 0, Max: 10_000_000}
}

// Unrestricted reports whether the range carries no purchasing signal (the
// no-history default), in which case budget matching is skipped entirely.
func (r BudgetRange) Unrestricted() bool {
	return r.Min <= 0 && r.Max >= DefaultBudgetRange().Max
}

type Preferences struct {
	StyleProfile   []string          `json:"style_profile"`
	SizeHistory    map[string]string `json:"size_history"`
	BudgetRange    BudgetRange       `json:"budget_range"`
	FavoriteColors []string          `json:"favorite_colors"`
	FavoriteBrands []string          `json:"favorite_brands"`
}

type BehaviorMetrics struct {
	AvgSessionLength         float64    `json:"avg_session_length"`
	ProductsViewedPerSession float64    `json:"products_viewed_per_session"`
	ConversionRate           float64    `json:"conversion_rate"`
	LastPurchaseAt           *time.Time `json:"last_purchase_at,omitempty"`
}

// UserProfile is the durable per-user personalization record. Owned and
// mutated by the profile service; everyone else reads it as-is.
type UserProfile struct {
	UserID          uint            `json:"user_id"`
	Preferences     Preferences     `json:"preferences"`
	BehaviorMetrics BehaviorMetrics `json:"behavior_metrics"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
