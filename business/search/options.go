package search

import (
	"fmt"
	"time"
)

const (
	defaultTopK                  = 50
	defaultPopularityBoostFactor = 0.2
	defaultSeasonalBoostFactor   = 0.15
	defaultMaxPersonalization    = 1.5
	defaultRetrieverTimeout      = 2 * time.Second
)

// Options tune a single search request. The zero value means "use
// defaults"; callers toggle boosts and personalization explicitly.
type Options struct {
	TopK                  int
	EnablePopularityBoost bool
	EnableSeasonalBoost   bool
	PersonalizationOn     bool
	PopularityBoostFactor float64
	SeasonalBoostFactor   float64
	MaxPersonalization    float64
	RetrieverTimeout      time.Duration
}

func DefaultOptions() Options {
	return Options{
		TopK:                  defaultTopK,
		EnablePopularityBoost: true,
		EnableSeasonalBoost:   true,
		PersonalizationOn:     true,
		PopularityBoostFactor: defaultPopularityBoostFactor,
		SeasonalBoostFactor:   defaultSeasonalBoostFactor,
		MaxPersonalization:    defaultMaxPersonalization,
		RetrieverTimeout:      defaultRetrieverTimeout,
	}
}

// withDefaults fills unset numeric fields without touching the booleans.
func (o Options) withDefaults() Options {
	if o.TopK <= 0 {
		o.TopK = defaultTopK
	}
	if o.PopularityBoostFactor == 0 {
		o.PopularityBoostFactor = defaultPopularityBoostFactor
	}
	if o.SeasonalBoostFactor == 0 {
		o.SeasonalBoostFactor = defaultSeasonalBoostFactor
	}
	if o.MaxPersonalization == 0 {
		o.MaxPersonalization = defaultMaxPersonalization
	}
	if o.RetrieverTimeout <= 0 {
		o.RetrieverTimeout = defaultRetrieverTimeout
	}
	return o
}

// Validate rejects malformed options. These errors indicate caller misuse
// and are surfaced directly, unlike backend failures which degrade.
func (o Options) Validate() error {
	if o.TopK < 0 {
		return fmt.Errorf("top_k must not be negative, got %d", o.TopK)
	}
	if o.PopularityBoostFactor < 0 {
		return fmt.Errorf("popularity boost factor must not be negative, got %g", o.PopularityBoostFactor)
	}
	if o.SeasonalBoostFactor < 0 {
		return fmt.Errorf("seasonal boost factor must not be negative, got %g", o.SeasonalBoostFactor)
	}
	if o.MaxPersonalization < 1.0 && o.MaxPersonalization != 0 {
		return fmt.Errorf("max personalization boost must be at least 1.0, got %g", o.MaxPersonalization)
	}
	return nil
}
