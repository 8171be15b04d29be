package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// ViewCountPrefix is the key prefix for per-video pending view counters
	ViewCountPrefix = "views:video:"

	// ViewCountTTL bounds how long an unflushed counter survives
	ViewCountTTL = 24 * time.Hour
)

// ViewCache absorbs the view-count write burst: the watch path increments a
// Redis counter, the worker later folds the views into the database and
// resets the counter. Pending is added on the read path so totals stay fresh.
type ViewCache interface {
	// Increment bumps the pending counter for a video and returns its value.
	Increment(ctx context.Context, videoID int64) (int64, error)

	// Pending returns the not-yet-flushed view count for a video.
	Pending(ctx context.Context, videoID int64) (int64, error)

	// Flush subtracts by from the pending counter after the views have been
	// persisted. The counter never goes negative.
	Flush(ctx context.Context, videoID int64, by int64) error
}

// RedisViewCache implements ViewCache on plain Redis counters.
type RedisViewCache struct {
	client *redis.Client
}

// NewViewCache creates a ViewCache backed by Redis.
func NewViewCache(client *redis.Client) ViewCache {
	return &RedisViewCache{client: client}
}

func viewKey(videoID int64) string {
	return fmt.Sprintf("%s%d", ViewCountPrefix, videoID)
}

// Increment bumps the counter and refreshes its TTL in one pipeline.
func (c *RedisViewCache) Increment(ctx context.Context, videoID int64) (int64, error) {
	key := viewKey(videoID)

	pipe := c.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ViewCountTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("[ViewCache] Increment FAILED: video=%d err=%v", videoID, err)
		return 0, fmt.Errorf("increment views: %w", err)
	}

	return incr.Val(), nil
}

func (c *RedisViewCache) Pending(ctx context.Context, videoID int64) (int64, error) {
	pending, err := c.client.Get(ctx, viewKey(videoID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		log.Printf("[ViewCache] Pending FAILED: video=%d err=%v", videoID, err)
		return 0, fmt.Errorf("get pending views: %w", err)
	}
	return pending, nil
}

// Flush decrements the counter by the amount persisted to the database and
// clamps at zero so a racing Increment is never lost as a negative balance.
func (c *RedisViewCache) Flush(ctx context.Context, videoID int64, by int64) error {
	if by <= 0 {
		return nil
	}
	key := viewKey(videoID)

	remaining, err := c.client.DecrBy(ctx, key, by).Result()
	if err != nil {
		log.Printf("[ViewCache] Flush FAILED: video=%d by=%d err=%v", videoID, by, err)
		return fmt.Errorf("flush views: %w", err)
	}
	if remaining < 0 {
		if err := c.client.Set(ctx, key, 0, ViewCountTTL).Err(); err != nil {
			return fmt.Errorf("reset views: %w", err)
		}
	}
	return nil
}
