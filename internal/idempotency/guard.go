package idempotency

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionGuard fences concurrent reconciliations of the same checkout
// session with a redis SETNX reservation. It is optional: a nil guard always
// grants the reservation and the transactions unique index stays the source
// of truth.
type SessionGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionGuard(addr, password string, ttl time.Duration) *SessionGuard {
	if addr == "" {
		return nil
	}
	return &SessionGuard{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password}),
		ttl:    ttl,
	}
}

func (g *SessionGuard) Reserve(ctx context.Context, sessionID string) (bool, error) {
	if g == nil {
		return true, nil
	}
	return g.client.SetNX(ctx, key(sessionID), "PROCESSING", g.ttl).Result()
}

func (g *SessionGuard) Release(ctx context.Context, sessionID string) error {
	if g == nil {
		return nil
	}
	return g.client.Del(ctx, key(sessionID)).Err()
}

func key(sessionID string) string {
	return "idempotency:payment:" + sessionID
}
