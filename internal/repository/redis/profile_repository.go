package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"devenirShop/domain"
)

// ProfileRepository persists user preference profiles as JSON blobs.
// Entries carry no TTL: staleness is decided by the profile service from
// the stored UpdatedAt, so a stale profile is still readable as a rebuild
// fallback.
type ProfileRepository struct {
	client *redis.Client
}

func NewProfileRepository(client *redis.Client) *ProfileRepository {
	return &ProfileRepository{
		client: client,
	}
}

func profileKey(userID uint) string {
	return fmt.Sprintf("profile:user:%d", userID)
}

// Get returns (nil, nil) for a missing profile so callers can tell
// "never built" apart from a store failure.
func (r *ProfileRepository) Get(ctx context.Context, userID uint) (*domain.UserProfile, error) {
	val, err := r.client.Get(ctx, profileKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile from Redis: %w", err)
	}

	var profile domain.UserProfile
	if err := json.Unmarshal([]byte(val), &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}

	return &profile, nil
}

func (r *ProfileRepository) Save(ctx context.Context, profile *domain.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := r.client.Set(ctx, profileKey(profile.UserID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store profile in Redis: %w", err)
	}

	return nil
}

func (r *ProfileRepository) Delete(ctx context.Context, userID uint) error {
	if err := r.client.Del(ctx, profileKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete profile from Redis: %w", err)
	}

	return nil
}
