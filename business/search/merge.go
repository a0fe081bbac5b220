package search

import (
	"sort"

	"devenirShop/domain"
)

// sourceRank orders tie-broken candidates: a hit confirmed by both
// retrievers outranks a single-signal one.
var sourceRank = map[string]int{
	domain.SourceBoth:    0,
	domain.SourceVector:  1,
	domain.SourceKeyword: 2,
}

// MergeResults fuses the two retrieval result sets into a strict union keyed
// by product id. An absent score counts as 0; no candidate is dropped here.
// Scores are trusted to already be normalized to [0,1] by the retrievers.
func MergeResults(vectorHits, keywordHits []domain.RetrievalHit, weights ClassifiedQuery) []domain.FusedResult {
	vectorScores := make(map[uint64]float64, len(vectorHits))
	keywordScores := make(map[uint64]float64, len(keywordHits))
	metadata := make(map[uint64]map[string]any)

	for _, hit := range vectorHits {
		vectorScores[hit.ProductID] = hit.Score
		if hit.Metadata != nil {
			metadata[hit.ProductID] = hit.Metadata
		}
	}
	for _, hit := range keywordHits {
		keywordScores[hit.ProductID] = hit.Score
		if _, ok := metadata[hit.ProductID]; !ok && hit.Metadata != nil {
			metadata[hit.ProductID] = hit.Metadata
		}
	}

	merged := make([]domain.FusedResult, 0, len(vectorScores)+len(keywordScores))
	for id := range vectorScores {
		merged = append(merged, fuse(id, vectorScores, keywordScores, metadata, weights))
	}
	for id := range keywordScores {
		if _, ok := vectorScores[id]; ok {
			continue // already fused from the vector side
		}
		merged = append(merged, fuse(id, vectorScores, keywordScores, metadata, weights))
	}

	SortByScore(merged)
	return merged
}

func fuse(
	id uint64,
	vectorScores, keywordScores map[uint64]float64,
	metadata map[uint64]map[string]any,
	weights ClassifiedQuery,
) domain.FusedResult {
	out := domain.FusedResult{ID: id, Metadata: metadata[id]}

	vs, hasVector := vectorScores[id]
	ks, hasKeyword := keywordScores[id]

	hybrid := 0.0
	if hasVector {
		v := vs
		out.VectorScore = &v
		hybrid += vs * weights.VectorWeight
	}
	if hasKeyword {
		k := ks
		out.KeywordScore = &k
		hybrid += ks * weights.KeywordWeight
	}
	out.HybridScore = hybrid

	switch {
	case hasVector && hasKeyword:
		out.Source = domain.SourceBoth
	case hasVector:
		out.Source = domain.SourceVector
	default:
		out.Source = domain.SourceKeyword
	}

	return out
}

// SortByScore orders fused results descending by current score, breaking
// ties by source preference (both > vector > keyword). Callers re-run it
// after every boost stage since boosts can reorder the list.
func SortByScore(results []domain.FusedResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].HybridScore != results[j].HybridScore {
			return results[i].HybridScore > results[j].HybridScore
		}
		return sourceRank[results[i].Source] < sourceRank[results[j].Source]
	})
}
