package domain

// Result sources for a fused candidate.
const (
	SourceVector  = "vector"
	SourceKeyword = "keyword"
	SourceBoth    = "both"
)

// RetrievalHit is one candidate from a single retriever. Score is
// retriever-native, already normalized to [0,1] by the retriever.
type RetrievalHit struct {
	ProductID uint64         `json:"product_id"`
	Score     float64        `json:"score"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// FusedResult is the merge of the retrieval hits sharing a product id.
// VectorScore/KeywordScore are nil when that retriever did not contribute.
// PopularityBoost and SeasonalBoost record the applied deltas for
// observability; HybridScore already includes them once applied.
type FusedResult struct {
	ID              uint64         `json:"id"`
	HybridScore     float64        `json:"hybrid_score"`
	VectorScore     *float64       `json:"vector_score,omitempty"`
	KeywordScore    *float64       `json:"keyword_score,omitempty"`
	Source          string         `json:"source"`
	PopularityBoost float64        `json:"popularity_boost,omitempty"`
	SeasonalBoost   float64        `json:"seasonal_boost,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// BoostType is the closed set of score adjustments the engine can apply.
type BoostType string

const (
	BoostStyle      BoostType = "style"
	BoostSize       BoostType = "size"
	BoostBudget     BoostType = "budget"
	BoostColor      BoostType = "color"
	BoostBrand      BoostType = "brand"
	BoostPopularity BoostType = "popularity"
	BoostSeasonal   BoostType = "seasonal"
)

// Boost is one audited score adjustment.
type Boost struct {
	Type   BoostType `json:"type"`
	Value  float64   `json:"value"`
	Reason string    `json:"reason,omitempty"`
}

// ScoredProduct is the final output unit: a hydrated product with its
// personalization score and the full audit trail of applied boosts.
type ScoredProduct struct {
	Product           Product     `json:"product"`
	PersonalizedScore float64     `json:"personalized_score"`
	Boosts            []Boost     `json:"boosts"`
	Retrieval         FusedResult `json:"retrieval"`
}

// SearchMetadata describes how the result set was produced, including how
// degraded it is. Error is empty on the happy path.
type SearchMetadata struct {
	QueryType     string  `json:"query_type"`
	VectorWeight  float64 `json:"vector_weight"`
	KeywordWeight float64 `json:"keyword_weight"`
	Confidence    float64 `json:"confidence"`
	VectorCount   int     `json:"vector_count"`
	KeywordCount  int     `json:"keyword_count"`
	MergedCount   int     `json:"merged_count"`
	Personalized  bool    `json:"personalized"`
	Error         string  `json:"error,omitempty"`
}

// SearchResult is the engine's single downstream contract.
type SearchResult struct {
	Products []ScoredProduct `json:"products"`
	Metadata SearchMetadata  `json:"metadata"`
}
