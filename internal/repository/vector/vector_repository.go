// Package vector calls the embedding sidecar over HTTP for semantic
// similarity retrieval.
package vector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"devenirShop/domain"
)

type VectorConfig struct {
	BaseUrl string
	ApiKey  string
	Timeout time.Duration
}

type VectorRepository struct {
	vectorConfig VectorConfig
	client       *http.Client
}

func NewVectorRepository(cfg VectorConfig) *VectorRepository {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &VectorRepository{
		vectorConfig: cfg,
		client:       &http.Client{Timeout: timeout},
	}
}

type searchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

type searchResponse struct {
	Results []struct {
		ProductID uint64         `json:"product_id"`
		Score     float64        `json:"score"`
		Metadata  map[string]any `json:"metadata"`
	} `json:"results"`
}

// Search posts the query to the sidecar's /search endpoint. Scores are
// cosine similarities already in [0, 1].
func (r *VectorRepository) Search(ctx context.Context, query string, topK int) ([]domain.RetrievalHit, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	payload, err := json.Marshal(searchRequest{Query: query, TopK: topK})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	url := r.vectorConfig.BaseUrl + "/search"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Add("Content-Type", "application/json")
	if r.vectorConfig.ApiKey != "" {
		req.Header.Add("Authorization", "Bearer "+r.vectorConfig.ApiKey)
	}

	res, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vector service request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read vector response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vector service returned %d: %s", res.StatusCode, string(body))
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vector response: %w", err)
	}

	hits := make([]domain.RetrievalHit, 0, len(parsed.Results))
	for _, item := range parsed.Results {
		hits = append(hits, domain.RetrievalHit{
			ProductID: item.ProductID,
			Score:     item.Score,
			Metadata:  item.Metadata,
		})
	}

	return hits, nil
}
