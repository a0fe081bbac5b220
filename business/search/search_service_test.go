//go:build !integration

package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"devenirShop/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRetriever struct {
	hits  []domain.RetrievalHit
	err   error
	block bool
}

func (f *fakeRetriever) Search(ctx context.Context, query string, topK int) ([]domain.RetrievalHit, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.hits, nil
}

type fakeProductStore struct {
	products []domain.Product
	err      error
}

func (f *fakeProductStore) FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

type fakePopularity struct {
	scores map[uint64]float64
	err    error
}

func (f *fakePopularity) PopularityScores(ctx context.Context, ids []uint64) (map[uint64]float64, error) {
	return f.scores, f.err
}

type fakeProfiles struct {
	profile *domain.UserProfile
}

func (f *fakeProfiles) GetProfile(ctx context.Context, userID uint) *domain.UserProfile {
	return f.profile
}

func catalog() []domain.Product {
	return []domain.Product{
		{ID: 1, ProductName: "Devenir Wool Coat", Category: "outerwear", Brand: "Devenir"},
		{ID: 2, ProductName: "Puffer Jacket", Category: "outerwear"},
		{ID: 3, ProductName: "Linen Shirt", Category: "tops"},
	}
}

func newTestSearch(t *testing.T, vector VectorRetriever, keyword KeywordRetriever, popularity PopularitySource, profiles ProfileProvider) *Service {
	t.Helper()
	opts := DefaultOptions()
	opts.EnablePopularityBoost = popularity != nil
	opts.EnableSeasonalBoost = false
	opts.RetrieverTimeout = 50 * time.Millisecond
	svc, err := NewService(
		NewClassifier(),
		vector,
		keyword,
		&fakeProductStore{products: catalog()},
		popularity,
		profiles,
		opts,
	)
	require.NoError(t, err)
	return svc
}

func TestSearch_BrandQueryEndToEnd(t *testing.T) {
	vector := &fakeRetriever{hits: []domain.RetrievalHit{
		{ProductID: 1, Score: 0.9},
		{ProductID: 3, Score: 0.7},
	}}
	keyword := &fakeRetriever{hits: []domain.RetrievalHit{
		{ProductID: 1, Score: 0.95},
		{ProductID: 2, Score: 0.4},
	}}

	svc := newTestSearch(t, vector, keyword, nil, nil)
	result, err := svc.Search(context.Background(), "devenir wool coat", 0)

	require.NoError(t, err)
	assert.Equal(t, "brand_search", result.Metadata.QueryType)
	assert.InDelta(t, 0.3, result.Metadata.VectorWeight, 1e-9)
	assert.InDelta(t, 0.7, result.Metadata.KeywordWeight, 1e-9)
	assert.Empty(t, result.Metadata.Error)
	assert.False(t, result.Metadata.Personalized)
	assert.Equal(t, 2, result.Metadata.VectorCount)
	assert.Equal(t, 2, result.Metadata.KeywordCount)
	assert.Equal(t, 3, result.Metadata.MergedCount)

	require.Len(t, result.Products, 3)
	// Product 1: 0.9*0.3 + 0.95*0.7 = 0.935 dominates.
	assert.Equal(t, uint64(1), result.Products[0].Product.ID)
	assert.Equal(t, domain.SourceBoth, result.Products[0].Retrieval.Source)
}

func TestSearch_KeywordFailureDegradesToVectorOnly(t *testing.T) {
	vector := &fakeRetriever{hits: []domain.RetrievalHit{{ProductID: 2, Score: 0.8}}}
	keyword := &fakeRetriever{err: errors.New("index offline")}

	svc := newTestSearch(t, vector, keyword, nil, nil)
	result, err := svc.Search(context.Background(), "puffer jacket", 0)

	require.NoError(t, err)
	assert.Equal(t, "vector retrieval only", result.Metadata.Error)
	require.Len(t, result.Products, 1)
	assert.Equal(t, uint64(2), result.Products[0].Product.ID)
	assert.Equal(t, domain.SourceVector, result.Products[0].Retrieval.Source)
}

func TestSearch_VectorTimeoutDegradesToKeywordOnly(t *testing.T) {
	vector := &fakeRetriever{block: true}
	keyword := &fakeRetriever{hits: []domain.RetrievalHit{{ProductID: 3, Score: 0.6}}}

	svc := newTestSearch(t, vector, keyword, nil, nil)
	result, err := svc.Search(context.Background(), "linen shirt", 0)

	require.NoError(t, err)
	assert.Equal(t, "keyword retrieval only", result.Metadata.Error)
	require.Len(t, result.Products, 1)
	assert.Equal(t, uint64(3), result.Products[0].Product.ID)
}

func TestSearch_BothBackendsFailing(t *testing.T) {
	vector := &fakeRetriever{err: errors.New("down")}
	keyword := &fakeRetriever{err: errors.New("down too")}

	svc := newTestSearch(t, vector, keyword, nil, nil)
	_, err := svc.Search(context.Background(), "coat", 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoRetrieverResults)
}

type faultyClassifier struct{}

func (faultyClassifier) Classify(query string) ClassifiedQuery {
	panic("classifier model unavailable")
}

func TestSearch_ClassifierFaultFallsBackToVectorOnly(t *testing.T) {
	vector := &fakeRetriever{hits: []domain.RetrievalHit{{ProductID: 1, Score: 0.9}}}
	keyword := &fakeRetriever{hits: []domain.RetrievalHit{{ProductID: 2, Score: 0.8}}}

	opts := DefaultOptions()
	opts.EnablePopularityBoost = false
	opts.EnableSeasonalBoost = false
	opts.RetrieverTimeout = 50 * time.Millisecond
	svc, err := NewService(faultyClassifier{}, vector, keyword, &fakeProductStore{products: catalog()}, nil, nil, opts)
	require.NoError(t, err)

	result, err := svc.Search(context.Background(), "wool coat", 0)

	require.NoError(t, err)
	assert.Equal(t, string(QueryTypeFallback), result.Metadata.QueryType)
	assert.Equal(t, "classifier fault, vector retrieval only", result.Metadata.Error)
	require.Len(t, result.Products, 1)
	assert.Equal(t, uint64(1), result.Products[0].Product.ID)
	assert.Equal(t, domain.SourceVector, result.Products[0].Retrieval.Source)
}

func TestSearch_EmptyQueryRejected(t *testing.T) {
	svc := newTestSearch(t, &fakeRetriever{}, &fakeRetriever{}, nil, nil)

	_, err := svc.Search(context.Background(), "   ", 0)
	require.Error(t, err)
}

func TestSearch_PopularityReordersResults(t *testing.T) {
	vector := &fakeRetriever{hits: []domain.RetrievalHit{
		{ProductID: 2, Score: 0.72},
		{ProductID: 3, Score: 0.7},
	}}
	keyword := &fakeRetriever{}
	popularity := &fakePopularity{scores: map[uint64]float64{3: 1.0}}

	svc := newTestSearch(t, vector, keyword, popularity, nil)
	result, err := svc.Search(context.Background(), "shirt", 0)

	require.NoError(t, err)
	require.Len(t, result.Products, 2)
	// 0.7 vector-weighted then boosted by the bestseller factor overtakes
	// the un-boosted neighbor.
	assert.Equal(t, uint64(3), result.Products[0].Product.ID)
	assert.Greater(t, result.Products[0].Retrieval.PopularityBoost, 0.0)
}

func TestSearch_PersonalizationAppliedWhenProfilePresent(t *testing.T) {
	vector := &fakeRetriever{hits: []domain.RetrievalHit{
		{ProductID: 1, Score: 0.5},
		{ProductID: 3, Score: 0.5},
	}}
	profile := &domain.UserProfile{
		UserID: 7,
		Preferences: domain.Preferences{
			FavoriteBrands: []string{"Devenir"},
		},
	}

	svc := newTestSearch(t, vector, &fakeRetriever{}, nil, &fakeProfiles{profile: profile})
	result, err := svc.Search(context.Background(), "coat", 7)

	require.NoError(t, err)
	assert.True(t, result.Metadata.Personalized)
	require.Len(t, result.Products, 2)
	assert.Equal(t, uint64(1), result.Products[0].Product.ID)
	assert.InDelta(t, 1.2, result.Products[0].PersonalizedScore, 1e-9)
	require.Len(t, result.Products[0].Boosts, 1)
	assert.Equal(t, domain.BoostBrand, result.Products[0].Boosts[0].Type)
}

func TestSearch_NilProfileKeepsHybridOrder(t *testing.T) {
	vector := &fakeRetriever{hits: []domain.RetrievalHit{
		{ProductID: 2, Score: 0.9},
		{ProductID: 1, Score: 0.4},
	}}

	svc := newTestSearch(t, vector, &fakeRetriever{}, nil, &fakeProfiles{profile: nil})
	result, err := svc.Search(context.Background(), "jacket", 0)

	require.NoError(t, err)
	assert.False(t, result.Metadata.Personalized)
	require.Len(t, result.Products, 2)
	assert.Equal(t, uint64(2), result.Products[0].Product.ID)
	for _, sp := range result.Products {
		assert.InDelta(t, 1.0, sp.PersonalizedScore, 1e-9)
	}
}

func TestSearch_SeasonalBoostFollowsInjectedClock(t *testing.T) {
	vector := &fakeRetriever{hits: []domain.RetrievalHit{
		{ProductID: 2, Score: 0.72},
		{ProductID: 1, Score: 0.7, Metadata: map[string]any{"product_name": "Devenir Wool Coat"}},
	}}

	svc := newTestSearch(t, vector, &fakeRetriever{}, nil, nil)
	svc.opts.EnableSeasonalBoost = true
	svc.WithClock(func() time.Time {
		return time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	})

	result, err := svc.Search(context.Background(), "jacket", 0)

	require.NoError(t, err)
	require.Len(t, result.Products, 2)
	// The winter-tagged coat overtakes the slightly higher raw score.
	assert.Equal(t, uint64(1), result.Products[0].Product.ID)
	assert.InDelta(t, 0.15, result.Products[0].Retrieval.SeasonalBoost, 1e-9)
}

func TestSearch_CancelledContext(t *testing.T) {
	svc := newTestSearch(t, &fakeRetriever{}, &fakeRetriever{}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Search(ctx, "coat", 0)
	require.Error(t, err)
}
