package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "onboarding:txn:"

// RedisGuard shares seen transaction IDs across service instances.
type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisGuard creates a guard backed by the given redis client.
func NewRedisGuard(client *redis.Client) *RedisGuard {
	return &RedisGuard{client: client, ttl: DefaultTTL}
}

// MarkSeen implements Guard via SET NX, which is atomic across instances.
func (g *RedisGuard) MarkSeen(ctx context.Context, transactionID string) (bool, error) {
	created, err := g.client.SetNX(ctx, keyPrefix+transactionID, 1, g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("mark transaction seen: %w", err)
	}
	return !created, nil
}
