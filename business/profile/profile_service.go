// Package profile builds and serves durable per-user preference profiles
// derived from order and interaction history.
package profile

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"devenirShop/domain"
	"devenirShop/pkg/logger"
	"devenirShop/pkg/metrics"
)

const (
	orderWindow       = 50
	interactionWindow = 100
	staleAfter        = 7 * 24 * time.Hour
)

// ---- Repository interfaces ----

type OrderHistoryRepository interface {
	RecentOrders(ctx context.Context, userID uint, limit int) ([]domain.Orders, error)
}

type InteractionRepository interface {
	RecentEvents(ctx context.Context, userID uint, limit int) ([]domain.InteractionEvent, error)
	SaveEvent(ctx context.Context, event domain.InteractionEvent) error
}

// ProfileRepository is the durable per-user profile store. Staleness is
// computed from the stored UpdatedAt, never from store-side TTL eviction.
type ProfileRepository interface {
	Get(ctx context.Context, userID uint) (*domain.UserProfile, error)
	Save(ctx context.Context, profile *domain.UserProfile) error
	Delete(ctx context.Context, userID uint) error
}

// ---- Usecase / Service ----

type Service struct {
	profileRepo     ProfileRepository
	orderRepo       OrderHistoryRepository
	interactionRepo InteractionRepository
	enabled         bool
	now             func() time.Time
}

func NewService(
	profileRepo ProfileRepository,
	orderRepo OrderHistoryRepository,
	interactionRepo InteractionRepository,
	enabled bool,
) *Service {
	return &Service{
		profileRepo:     profileRepo,
		orderRepo:       orderRepo,
		interactionRepo: interactionRepo,
		enabled:         enabled,
		now:             time.Now,
	}
}

// WithClock overrides the service clock, used by tests to pin staleness.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// GetProfile returns the cached profile, rebuilding it inline when missing
// or older than seven days. A caller never observes a profile served past
// that threshold. Returns nil (not an error) when history is unavailable,
// so discovery degrades to unpersonalized instead of failing.
func (s *Service) GetProfile(ctx context.Context, userID uint) *domain.UserProfile {
	if !s.enabled || userID == 0 {
		return nil
	}

	prof, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		logger.Warn("profile_read_failed", "user_id", userID, "error", err)
		return s.BuildProfile(ctx, userID)
	}
	if prof == nil || s.isStale(prof.UpdatedAt) {
		return s.BuildProfile(ctx, userID)
	}
	return prof
}

// BuildProfile derives a fresh profile from the user's most recent orders
// and interaction events, fetched concurrently, then persists it.
// Concurrent rebuilds for the same user are a benign race: both compute the
// same result from the same history and the last writer wins.
func (s *Service) BuildProfile(ctx context.Context, userID uint) *domain.UserProfile {
	if !s.enabled || userID == 0 {
		return nil
	}

	start := time.Now()
	var (
		orders []domain.Orders
		events []domain.InteractionEvent
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.orderRepo.RecentOrders(gctx, userID, orderWindow)
		if err != nil {
			return fmt.Errorf("load order history: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		events, err = s.interactionRepo.RecentEvents(gctx, userID, interactionWindow)
		if err != nil {
			return fmt.Errorf("load interaction history: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Error("profile_build_failed", "error", err, "user_id", userID)
		return nil
	}

	prof := &domain.UserProfile{
		UserID: userID,
		Preferences: domain.Preferences{
			StyleProfile:   extractStyleProfile(orders),
			SizeHistory:    extractSizeHistory(orders),
			BudgetRange:    calculateBudgetRange(orders),
			FavoriteColors: extractFavoriteColors(orders),
			FavoriteBrands: extractFavoriteBrands(orders),
		},
		BehaviorMetrics: domain.BehaviorMetrics{
			AvgSessionLength:         avgSessionLength(events),
			ProductsViewedPerSession: avgProductsViewed(events),
			ConversionRate:           conversionRate(len(orders), len(events)),
			LastPurchaseAt:           lastPurchaseAt(orders),
		},
		UpdatedAt: s.now(),
	}

	if err := s.profileRepo.Save(ctx, prof); err != nil {
		// A keep-warm failure is not fatal: serve the freshly built profile.
		logger.Error("profile_save_failed", "error", err, "user_id", userID)
	}

	metrics.ProfileRebuilds.Inc()
	logger.Info("profile_built",
		"user_id", userID,
		"orders_analyzed", len(orders),
		"events_analyzed", len(events),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return prof
}

// UpdateProfileIncremental applies a single behavioral event to an existing
// profile without a full rebuild. A missing profile triggers a full build.
func (s *Service) UpdateProfileIncremental(ctx context.Context, userID uint, event domain.InteractionEvent) error {
	if !s.enabled || userID == 0 {
		return nil
	}

	prof, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	if prof == nil {
		s.BuildProfile(ctx, userID)
		return nil
	}

	switch event.EventType {
	case domain.EventPurchase:
		s.applyPurchase(prof, event)
	case domain.EventProductView:
		// Views only refresh the profile timestamp for now.
	}

	prof.UpdatedAt = s.now()
	if err := s.profileRepo.Save(ctx, prof); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// DeleteProfile removes the profile on a user-data-erasure request.
func (s *Service) DeleteProfile(ctx context.Context, userID uint) error {
	if err := s.profileRepo.Delete(ctx, userID); err != nil {
		logger.Error("profile_delete_failed", "error", err, "user_id", userID)
		return fmt.Errorf("delete profile: %w", err)
	}
	logger.Info("profile_deleted", "user_id", userID)
	return nil
}

func (s *Service) applyPurchase(prof *domain.UserProfile, event domain.InteractionEvent) {
	category, _ := event.Context["category"].(string)
	size, _ := event.Context["size"].(string)
	if category != "" && size != "" {
		if prof.Preferences.SizeHistory == nil {
			prof.Preferences.SizeHistory = make(map[string]string)
		}
		prof.Preferences.SizeHistory[category] = size
	}
	now := s.now()
	prof.BehaviorMetrics.LastPurchaseAt = &now
}

func (s *Service) isStale(updatedAt time.Time) bool {
	return s.now().Sub(updatedAt) > staleAfter
}

func lastPurchaseAt(orders []domain.Orders) *time.Time {
	if len(orders) == 0 {
		return nil
	}
	// Orders arrive newest first.
	t := orders[0].CreatedAt
	return &t
}
