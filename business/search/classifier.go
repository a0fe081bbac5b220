package search

import (
	"strings"
)

// QueryType routes how much weight vector vs keyword retrieval gets.
type QueryType string

const (
	QueryTypeBrand     QueryType = "brand_search"
	QueryTypeAttribute QueryType = "attribute_search"
	QueryTypeSemantic  QueryType = "semantic_search"
	QueryTypeCategory  QueryType = "category_browse"

	// QueryTypeFallback tags responses where classification failed and the
	// engine degraded to vector-only retrieval.
	QueryTypeFallback QueryType = "fallback_vector_only"
)

// ClassifiedQuery is the per-request routing decision. Never persisted.
type ClassifiedQuery struct {
	QueryType     QueryType
	VectorWeight  float64
	KeywordWeight float64
	Confidence    float64
}

// Weight profiles per query type. Weights always sum to 1.0.
var weightProfiles = map[QueryType]ClassifiedQuery{
	QueryTypeBrand:     {QueryTypeBrand, 0.3, 0.7, 0.9},
	QueryTypeAttribute: {QueryTypeAttribute, 0.35, 0.65, 0.8},
	QueryTypeSemantic:  {QueryTypeSemantic, 0.8, 0.2, 0.85},
	QueryTypeCategory:  {QueryTypeCategory, 0.4, 0.6, 0.75},
}

var (
	brandTokens = []string{
		"devenir", "nike", "adidas", "gucci", "zara", "h&m", "uniqlo",
	}

	colorTokens = []string{
		"black", "white", "red", "blue", "green", "navy", "beige", "brown",
		"grey", "gray", "pink", "cream", "khaki",
	}

	sizeTokens = []string{
		"size", "xs", "s", "m", "l", "xl", "xxl", "fit", "cm",
	}

	attributeTokens = []string{
		"color", "colour", "size", "price", "material", "fabric", "cotton",
		"wool", "leather", "linen",
	}

	categoryTokens = []string{
		"jacket", "shirt", "t-shirt", "tee", "pants", "jeans", "shoes",
		"sneakers", "hat", "bag", "belt", "coat", "dress", "skirt", "sweater",
		"hoodie", "shorts", "socks", "scarf",
	}

	// Occasion/need phrasing that signals a meaning-driven query.
	semanticTokens = []string{
		"outfit", "wear", "wearing", "look", "style", "occasion", "wedding",
		"office", "work", "casual", "formal", "elegant", "sport", "date",
		"party", "travel", "winter", "summer", "spring", "autumn", "fall",
		"cold", "warm", "rainy",
	}

	// Verbs marking a natural-language need description rather than a noun
	// phrase.
	intentVerbs = []string{
		"need", "want", "looking", "find", "recommend", "suggest", "help",
		"show", "going", "am", "is", "should",
	}
)

// Classifier maps a free-text query to a type, a weight pair and a
// confidence. Pure, no I/O.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify evaluates the rules in fixed priority order; the first match
// wins: brand > attribute > semantic > category browse. Brand exactness is
// the strongest signal, so it is checked first even when other rules would
// also match.
func (c *Classifier) Classify(query string) ClassifiedQuery {
	q := strings.ToLower(strings.TrimSpace(query))
	words := strings.Fields(q)

	if containsAny(q, brandTokens) {
		return weightProfiles[QueryTypeBrand]
	}

	if hasAttributeSignals(q, words) {
		return weightProfiles[QueryTypeAttribute]
	}

	if readsAsNeedDescription(q, words) {
		return weightProfiles[QueryTypeSemantic]
	}

	// Short noun-phrase browse of a known category keeps the profile's
	// default confidence.
	if hasWordFrom(words, categoryTokens) && len(words) <= 3 {
		return weightProfiles[QueryTypeCategory]
	}

	// Unclassifiable: category browse weights with fixed low confidence so
	// downstream consumers can tell the routing was a guess.
	out := weightProfiles[QueryTypeCategory]
	out.Confidence = 0.5
	return out
}

// hasAttributeSignals matches explicit structured qualifiers: a color name
// plus a size token, or an attribute keyword alongside a category word.
func hasAttributeSignals(q string, words []string) bool {
	hasColor := hasWordFrom(words, colorTokens)
	hasSize := hasWordFrom(words, sizeTokens)
	if hasColor && hasSize {
		return true
	}
	return containsAny(q, attributeTokens) && hasWordFrom(words, categoryTokens)
}

// readsAsNeedDescription is the heuristic for semantic queries: occasion
// vocabulary, or a longer verb-containing sentence with no exact catalog
// token.
func readsAsNeedDescription(q string, words []string) bool {
	if containsAny(q, semanticTokens) {
		return true
	}
	if len(words) >= 4 && hasWordFrom(words, intentVerbs) && !hasWordFrom(words, categoryTokens) {
		return true
	}
	return false
}

func containsAny(q string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(q, t) {
			return true
		}
	}
	return false
}

func hasWordFrom(words []string, tokens []string) bool {
	for _, w := range words {
		w = strings.Trim(w, ".,!?;:()[]{}'\"")
		for _, t := range tokens {
			if w == t {
				return true
			}
		}
	}
	return false
}
