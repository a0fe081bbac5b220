package postgres

import (
	"context"
	"fmt"

	"devenirShop/domain"

	"gorm.io/gorm"
)

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

// RecentOrders returns the user's completed orders newest first, with
// their denormalized items, bounded by limit.
func (r *OrdersRepository) RecentOrders(ctx context.Context, userID uint, limit int) ([]domain.Orders, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var orders []domain.Orders
	err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND order_status = ?", userID, "completed").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}

	return orders, nil
}

// PopularityScores aggregates 30-day purchase counts for the given
// products, normalized against the best seller so scores land in [0, 1].
func (r *OrdersRepository) PopularityScores(ctx context.Context, ids []uint64) (map[uint64]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(ids) == 0 {
		return map[uint64]float64{}, nil
	}

	type row struct {
		ProductID uint64
		Total     int64
	}
	var rows []row
	err := r.DB.WithContext(ctx).Raw(`
		SELECT oi.product_id AS product_id, SUM(oi.quantity) AS total
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE oi.product_id IN ?
		  AND o.order_status = 'completed'
		  AND o.created_at >= NOW() - INTERVAL '30 days'
		GROUP BY oi.product_id`, ids).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate popularity: %w", err)
	}

	var max int64
	for _, rw := range rows {
		if rw.Total > max {
			max = rw.Total
		}
	}
	scores := make(map[uint64]float64, len(rows))
	if max == 0 {
		return scores, nil
	}
	for _, rw := range rows {
		scores[rw.ProductID] = float64(rw.Total) / float64(max)
	}

	return scores, nil
}

func (r *OrdersRepository) Create(ctx context.Context, order *domain.Orders) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}
