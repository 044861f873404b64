// AngelaMos | 2026
// redis.go

package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/pizzeria/internal/config"
)

const (
	redisDialCheck   = 5 * time.Second
	redisPingTimeout = 2 * time.Second
	redisPoolTimeout = 10 * time.Second
	redisIdleTimeout = 5 * time.Minute
)

// Redis backs the shared rate limit counters. It is optional: a nil *Redis
// means no server is configured, and every method below is safe on it.
type Redis struct {
	client *redis.Client
	addr   string
}

// OpenRedis connects when cfg.URL is set and returns nil, nil otherwise.
func OpenRedis(
	ctx context.Context,
	cfg config.RedisConfig,
	logger *slog.Logger,
) (*Redis, error) {
	if cfg.URL == "" {
		logger.Info("redis not configured, rate limiting is per instance")
		return nil, nil //nolint:nilnil // disabled
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.MinIdleConns = cfg.MinIdleConns
	opts.PoolTimeout = redisPoolTimeout
	opts.ConnMaxIdleTime = redisIdleTimeout

	r := &Redis{client: redis.NewClient(opts), addr: opts.Addr}

	dialCtx, cancel := context.WithTimeout(ctx, redisDialCheck)
	defer cancel()

	if err := r.client.Ping(dialCtx).Err(); err != nil {
		_ = r.client.Close() //nolint:errcheck // connect failed
		return nil, fmt.Errorf("redis %s: %w", r.addr, err)
	}

	logger.Info("redis connected",
		"addr", r.addr,
		"db", opts.DB,
		"pool_size", opts.PoolSize,
	)

	return r, nil
}

func (r *Redis) Enabled() bool {
	return r != nil && r.client != nil
}

// Client returns nil when redis is disabled, which the rate limiter treats
// as local-only mode.
func (r *Redis) Client() *redis.Client {
	if !r.Enabled() {
		return nil
	}
	return r.client
}

func (r *Redis) Ping(ctx context.Context) error {
	if !r.Enabled() {
		return fmt.Errorf("redis: %w", ErrNotConfigured)
	}

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := r.client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis %s: %w", r.addr, err)
	}
	return nil
}

// PoolStats reports nil when redis is disabled.
func (r *Redis) PoolStats() *redis.PoolStats {
	if !r.Enabled() {
		return nil
	}
	return r.client.PoolStats()
}

func (r *Redis) Close() error {
	if !r.Enabled() {
		return nil
	}
	return r.client.Close()
}
