package booking

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Guard prevents duplicate in-flight submissions for the same
// appointment identity, the server-side analogue of disabling the submit
// button while a call is in flight.
type Guard interface {
	// Reserve returns false when an identical submission already holds
	// the reservation.
	Reserve(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string)
}

type redisGuard struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisGuard connects to Redis with a short reservation TTL. The TTL
// bounds how long a crashed submission can block a retry.
func NewRedisGuard(url string, ttl time.Duration, logger zerolog.Logger) (Guard, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &redisGuard{
		client: redis.NewClient(opts),
		ttl:    ttl,
		logger: logger.With().Str("component", "submission_guard").Logger(),
	}, nil
}

func (g *redisGuard) Reserve(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, key, 1, g.ttl).Result()
	if err != nil {
		// A broken guard must never block bookings.
		g.logger.Warn().Err(err).Msg("submission guard unavailable, skipping")
		return true, nil
	}
	return ok, nil
}

func (g *redisGuard) Release(ctx context.Context, key string) {
	if err := g.client.Del(ctx, key).Err(); err != nil {
		g.logger.Warn().Err(err).Str("key", key).Msg("failed to release submission reservation")
	}
}

// NopGuard performs no duplicate detection. Used when Redis is disabled.
type NopGuard struct{}

func (NopGuard) Reserve(context.Context, string) (bool, error) { return true, nil }

func (NopGuard) Release(context.Context, string) {}
