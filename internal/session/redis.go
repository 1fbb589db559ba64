package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by Redis, used when the storefront session lives
// server-side. Slots expire with the configured TTL so abandoned sessions
// do not accumulate.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis constructs a Redis-backed store scoped by the given session id.
func NewRedis(client *redis.Client, sessionID string, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Redis{client: client, prefix: "storefront:session:" + sessionID + ":", ttl: ttl}
}

// Get returns the stored value and whether the slot exists.
func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	if r == nil || r.client == nil {
		return "", false, errors.New("session: redis store not configured")
	}
	v, err := r.client.Get(ctx, r.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

// Set stores a value under the given slot with the session TTL.
func (r *Redis) Set(ctx context.Context, key, value string) error {
	if r == nil || r.client == nil {
		return errors.New("session: redis store not configured")
	}
	return r.client.Set(ctx, r.prefix+key, value, r.ttl).Err()
}

// Del removes the given slots.
func (r *Redis) Del(ctx context.Context, keys ...string) error {
	if r == nil || r.client == nil {
		return errors.New("session: redis store not configured")
	}
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, 0, len(keys))
	for _, key := range keys {
		prefixed = append(prefixed, r.prefix+key)
	}
	return r.client.Del(ctx, prefixed...).Err()
}
