package throttle

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Redis implements Limiter with a sorted-set sliding window so the quota
// holds across gateway instances.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a Redis-backed limiter.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Allow trims expired entries, counts the window, and records the send when
// under the limit. The count-then-add is pipelined but not atomic; a small
// overshoot under heavy contention is acceptable for provider quotas.
func (r *Redis) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	cutoff := now.Add(-window)
	redisKey := "throttle:" + key

	pipe := r.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(cutoff.UnixNano(), 10))
	countCmd := pipe.ZCard(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("throttle count: %w", err)
	}

	if countCmd.Val() >= int64(limit) {
		return false, nil
	}

	member := redis.Z{
		Score:  float64(now.UnixNano()),
		Member: uuid.NewString(),
	}
	pipe = r.client.TxPipeline()
	pipe.ZAdd(ctx, redisKey, member)
	pipe.Expire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("throttle record: %w", err)
	}
	return true, nil
}
