// Package persistence provides storage adapters implementing outbound ports.
package persistence

import (
	"context"
	"fmt"
	"time"

	"voice_server/core/domain"
	"voice_server/pkg/cache"
)

// RedisProfileRepository persists the learned voice profile as a JSON
// document so a restart does not force a relearn. Implements
// out.ProfileRepository.
type RedisProfileRepository struct {
	cache *cache.RedisCache
	ttl   time.Duration
}

func NewRedisProfileRepository(redisCache *cache.RedisCache, ttl time.Duration) *RedisProfileRepository {
	return &RedisProfileRepository{cache: redisCache, ttl: ttl}
}

func profileKey(userID string) string {
	return fmt.Sprintf("voice:profile:%s", userID)
}

// SaveProfile stores the profile, refreshing the TTL.
func (r *RedisProfileRepository) SaveProfile(ctx context.Context, profile *domain.UserVoiceProfile) error {
	return r.cache.SetJSON(ctx, profileKey(profile.UserID), profile, r.ttl)
}

// LoadProfile returns the stored profile, or (nil, nil) when none exists.
func (r *RedisProfileRepository) LoadProfile(ctx context.Context, userID string) (*domain.UserVoiceProfile, error) {
	var profile domain.UserVoiceProfile
	found, err := r.cache.GetJSON(ctx, profileKey(userID), &profile)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &profile, nil
}

// DeleteProfile removes the stored profile. Deleting an absent profile is
// not an error.
func (r *RedisProfileRepository) DeleteProfile(ctx context.Context, userID string) error {
	return r.cache.Delete(ctx, profileKey(userID))
}
