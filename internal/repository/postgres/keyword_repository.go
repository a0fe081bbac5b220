package postgres

import (
	"context"
	"fmt"

	"devenirShop/domain"

	"gorm.io/gorm"
)

// KeywordRepository runs lexical search over the catalog using Postgres
// full-text ranking.
type KeywordRepository struct {
	DB *gorm.DB
}

func NewKeywordRepository(db *gorm.DB) *KeywordRepository {
	return &KeywordRepository{
		DB: db,
	}
}

// Search ranks active products against the query with ts_rank. The rank
// flags (2|8) divide by document length and normalize into [0, 1), so the
// scores are comparable with cosine similarities from the vector side.
func (r *KeywordRepository) Search(ctx context.Context, query string, topK int) ([]domain.RetrievalHit, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	type row struct {
		ID          uint64
		ProductName string
		Category    string
		Tags        string
		Score       float64
	}
	var rows []row
	err := r.DB.WithContext(ctx).Raw(`
		SELECT p.id,
		       p.product_name,
		       p.category,
		       p.tags,
		       ts_rank(
		           to_tsvector('english', p.product_name || ' ' || p.description || ' ' || coalesce(p.tags, '') || ' ' || p.brand),
		           plainto_tsquery('english', ?),
		           2|8
		       ) AS score
		FROM products p
		WHERE p.is_active = true
		  AND to_tsvector('english', p.product_name || ' ' || p.description || ' ' || coalesce(p.tags, '') || ' ' || p.brand)
		      @@ plainto_tsquery('english', ?)
		ORDER BY score DESC
		LIMIT ?`, query, query, topK).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to run keyword search: %w", err)
	}

	hits := make([]domain.RetrievalHit, 0, len(rows))
	for _, rw := range rows {
		hits = append(hits, domain.RetrievalHit{
			ProductID: rw.ID,
			Score:     rw.Score,
			Metadata: map[string]any{
				"product_name": rw.ProductName,
				"category":     rw.Category,
				"tags":         rw.Tags,
			},
		})
	}

	return hits, nil
}
