package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"devenirShop/business/ranking"
	"devenirShop/domain"
	"devenirShop/pkg/logger"
	"devenirShop/pkg/metrics"
)

// ErrNoRetrieverResults is returned when both retrieval backends fail for
// one request. An empty result set from healthy backends is not an error.
var ErrNoRetrieverResults = errors.New("all retrieval backends failed")

// QueryClassifier routes a free-text query to retrieval weights.
type QueryClassifier interface {
	Classify(query string) ClassifiedQuery
}

// VectorRetriever performs semantic similarity search against the
// embedding service.
type VectorRetriever interface {
	Search(ctx context.Context, query string, topK int) ([]domain.RetrievalHit, error)
}

// KeywordRetriever performs lexical full-text search.
type KeywordRetriever interface {
	Search(ctx context.Context, query string, topK int) ([]domain.RetrievalHit, error)
}

// ProductStore hydrates retrieval hits into catalog records.
type ProductStore interface {
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error)
}

// PopularitySource reports recent per-product purchase volume normalized
// to [0, 1].
type PopularitySource interface {
	PopularityScores(ctx context.Context, ids []uint64) (map[uint64]float64, error)
}

// ProfileProvider resolves the caller's preference profile. A nil profile
// means the request proceeds unpersonalized.
type ProfileProvider interface {
	GetProfile(ctx context.Context, userID uint) *domain.UserProfile
}

type Service struct {
	classifier QueryClassifier
	vector     VectorRetriever
	keyword    KeywordRetriever
	products   ProductStore
	popularity PopularitySource
	profiles   ProfileProvider
	opts       Options
	now        func() time.Time
}

func NewService(
	classifier QueryClassifier,
	vector VectorRetriever,
	keyword KeywordRetriever,
	products ProductStore,
	popularity PopularitySource,
	profiles ProfileProvider,
	opts Options,
) (*Service, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("search options: %w", err)
	}
	return &Service{
		classifier: classifier,
		vector:     vector,
		keyword:    keyword,
		products:   products,
		popularity: popularity,
		profiles:   profiles,
		opts:       opts.withDefaults(),
		now:        time.Now,
	}, nil
}

// WithClock overrides the service clock, used by tests to pin the season.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Search runs the full discovery pipeline: classify, retrieve from both
// backends concurrently, fuse, boost, hydrate, and personalize. Partial
// backend failures degrade the result instead of failing the request;
// the degradation is recorded in the response metadata.
func (s *Service) Search(ctx context.Context, query string, userID uint) (domain.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.SearchResult{}, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.SearchResult{}, errors.New("query must not be empty")
	}

	start := time.Now()
	classified := s.classify(query)
	metrics.SearchRequests.WithLabelValues(string(classified.QueryType)).Inc()

	var degradation string
	vectorHits, keywordHits, retrievalErr := s.retrieve(ctx, query, classified)
	switch {
	case retrievalErr != nil:
		return domain.SearchResult{}, retrievalErr
	case classified.QueryType == QueryTypeFallback:
		degradation = "classifier fault, vector retrieval only"
	case vectorHits == nil:
		degradation = "keyword retrieval only"
	case keywordHits == nil:
		degradation = "vector retrieval only"
	}
	if degradation != "" {
		metrics.SearchDegraded.WithLabelValues(degradation).Inc()
	}

	merged := MergeResults(vectorHits, keywordHits, classified)
	s.applyBoosts(ctx, merged)
	if len(merged) > s.opts.TopK {
		merged = merged[:s.opts.TopK]
	}

	hydrated, err := s.hydrate(ctx, merged)
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("hydrate results: %w", err)
	}

	var profile *domain.UserProfile
	if s.opts.PersonalizationOn && s.profiles != nil {
		profile = s.profiles.GetProfile(ctx, userID)
	}
	scored := ranking.Apply(hydrated, profile, s.opts.MaxPersonalization)

	meta := domain.SearchMetadata{
		QueryType:     string(classified.QueryType),
		VectorWeight:  classified.VectorWeight,
		KeywordWeight: classified.KeywordWeight,
		Confidence:    classified.Confidence,
		VectorCount:   len(vectorHits),
		KeywordCount:  len(keywordHits),
		MergedCount:   len(merged),
		Personalized:  profile != nil,
		Error:         degradation,
	}

	metrics.SearchLatency.Observe(time.Since(start).Seconds())
	logger.Info("search_completed",
		"query_type", meta.QueryType,
		"results", len(scored),
		"personalized", meta.Personalized,
		"degraded", degradation != "",
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return domain.SearchResult{Products: scored, Metadata: meta}, nil
}

// classify guards against classifier faults: any panic downgrades the
// request to a vector-only fallback rather than failing it.
func (s *Service) classify(query string) (out ClassifiedQuery) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("classifier_panic", "panic", fmt.Sprintf("%v", r), "query", query)
			out = ClassifiedQuery{
				QueryType:    QueryTypeFallback,
				VectorWeight: 1.0,
				Confidence:   0,
			}
		}
	}()
	return s.classifier.Classify(query)
}

// retrieve fans out to both backends with an independent timeout each.
// One surviving backend is enough; both failing is terminal.
func (s *Service) retrieve(ctx context.Context, query string, classified ClassifiedQuery) (vectorHits, keywordHits []domain.RetrievalHit, err error) {
	keywordEnabled := classified.QueryType != QueryTypeFallback

	g, gctx := errgroup.WithContext(ctx)
	var vectorErr, keywordErr error

	g.Go(func() error {
		tctx, cancel := context.WithTimeout(gctx, s.opts.RetrieverTimeout)
		defer cancel()
		hits, serr := s.vector.Search(tctx, query, s.opts.TopK)
		if serr != nil {
			vectorErr = serr
			return nil
		}
		if hits == nil {
			hits = []domain.RetrievalHit{}
		}
		vectorHits = hits
		return nil
	})

	if keywordEnabled {
		g.Go(func() error {
			tctx, cancel := context.WithTimeout(gctx, s.opts.RetrieverTimeout)
			defer cancel()
			hits, serr := s.keyword.Search(tctx, query, s.opts.TopK)
			if serr != nil {
				keywordErr = serr
				return nil
			}
			if hits == nil {
				hits = []domain.RetrievalHit{}
			}
			keywordHits = hits
			return nil
		})
	}

	// Worker funcs stash their errors instead of returning them, so Wait
	// only surfaces context cancellation.
	if werr := g.Wait(); werr != nil {
		return nil, nil, werr
	}

	if vectorErr != nil {
		logger.Warn("vector_retrieval_failed", "error", vectorErr)
	}
	if keywordErr != nil {
		logger.Warn("keyword_retrieval_failed", "error", keywordErr)
	}

	if vectorHits == nil && keywordHits == nil {
		return nil, nil, fmt.Errorf("%w: vector: %v, keyword: %v", ErrNoRetrieverResults, vectorErr, keywordErr)
	}
	return vectorHits, keywordHits, nil
}

// applyBoosts layers popularity then seasonal signals onto the fused
// scores and restores score order. Boost failures are cosmetic and never
// fail the request.
func (s *Service) applyBoosts(ctx context.Context, results []domain.FusedResult) {
	if len(results) == 0 {
		return
	}
	if s.opts.EnablePopularityBoost && s.popularity != nil {
		ids := make([]uint64, len(results))
		for i, r := range results {
			ids[i] = r.ID
		}
		scores, err := s.popularity.PopularityScores(ctx, ids)
		if err != nil {
			logger.Warn("popularity_lookup_failed", "error", err)
		} else {
			ApplyPopularityBoost(results, scores, s.opts.PopularityBoostFactor)
		}
	}
	if s.opts.EnableSeasonalBoost {
		ApplySeasonalBoost(results, SeasonForTime(s.now()), s.opts.SeasonalBoostFactor)
	}
	SortByScore(results)
}

// hydrate resolves fused hits into catalog products, preserving score
// order and dropping ids the catalog no longer has.
func (s *Service) hydrate(ctx context.Context, results []domain.FusedResult) ([]domain.ScoredProduct, error) {
	if len(results) == 0 {
		return []domain.ScoredProduct{}, nil
	}
	ids := make([]uint64, len(results))
	for i, r := range results {
		ids[i] = r.ID
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]domain.Product, len(products))
	for _, p := range products {
		byID[uint64(p.ID)] = p
	}

	out := make([]domain.ScoredProduct, 0, len(results))
	for _, r := range results {
		p, ok := byID[r.ID]
		if !ok {
			continue
		}
		out = append(out, domain.ScoredProduct{
			Product:   p,
			Retrieval: r,
		})
	}
	return out, nil
}
