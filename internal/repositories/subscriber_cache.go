package repositories

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/clipstream/clipstream/internal/logger"
)

// ErrCacheMiss is returned when no cached count exists for a channel.
var ErrCacheMiss = fmt.Errorf("subscriber count not in cache")

// SubscriberCountCacheRepository caches channel subscriber counts in
// Redis so the count aggregation is not recomputed on every channel
// profile read.
type SubscriberCountCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached counts
}

// NewSubscriberCountCacheRepository creates a new cache repository
// with the given TTL.
func NewSubscriberCountCacheRepository(client *redis.Client, expiration time.Duration) *SubscriberCountCacheRepository {
	return &SubscriberCountCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func subscriberCountKey(channelID uuid.UUID) string {
	return fmt.Sprintf("subscribers:%s", channelID)
}

// Get fetches the cached subscriber count for a channel.
func (r *SubscriberCountCacheRepository) Get(ctx context.Context, channelID uuid.UUID) (int64, error) {
	key := subscriberCountKey(channelID)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow("subscriber count cache read",
			"key", key,
			"error", err,
		)
		if err == redis.Nil {
			return 0, ErrCacheMiss
		}
		return 0, err
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		logger.Log.Errorw("subscriber count cache parse",
			"key", key,
			"value", val,
			"error", err,
		)
		return 0, err
	}

	logger.Log.Infow("subscriber count cache read",
		"key", key,
		"result", count,
	)

	return count, nil
}

// Set caches a subscriber count with expiration.
func (r *SubscriberCountCacheRepository) Set(ctx context.Context, channelID uuid.UUID, count int64) error {
	key := subscriberCountKey(channelID)
	err := r.client.Set(ctx, key, strconv.FormatInt(count, 10), r.exp).Err()

	logger.Log.Infow("subscriber count cache write",
		"key", key,
		"count", count,
		"error", err,
	)

	return err
}

// Invalidate drops the cached count, forcing the next profile read to
// recount. Called after subscribe/unsubscribe writes.
func (r *SubscriberCountCacheRepository) Invalidate(ctx context.Context, channelID uuid.UUID) error {
	key := subscriberCountKey(channelID)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow("subscriber count cache invalidate",
		"key", key,
		"error", err,
	)

	return err
}
