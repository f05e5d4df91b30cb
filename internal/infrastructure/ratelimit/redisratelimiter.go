// Package ratelimit provides a fixed-window request limiter backed by Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	sharedconfig "chatledger/internal/shared/config"
	"chatledger/internal/shared/logger"
)

// RedisRateLimiter counts requests per key in one-minute windows.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int
	logger logger.Interface
}

func NewRedisRateLimiter(cfg *sharedconfig.RedisConfig, requestsPerMinute int, logger logger.Interface) *RedisRateLimiter {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &RedisRateLimiter{
		client: client,
		limit:  requestsPerMinute,
		logger: logger,
	}
}

// Allow reports whether the key may make another request this minute.
// Redis outages fail open: throttling is protection, not access control.
func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	window := time.Now().UTC().Format("200601021504")
	redisKey := fmt.Sprintf("ratelimit:%s:%s", key, window)

	pipe := l.client.TxPipeline()
	count := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, 2*time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.Warnw("rate limiter unavailable, allowing request", "error", err)
		return true, nil
	}

	return count.Val() <= int64(l.limit), nil
}

// Close releases the Redis connection.
func (l *RedisRateLimiter) Close() error {
	return l.client.Close()
}
