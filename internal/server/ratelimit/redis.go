package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces limiter keys in a shared Redis.
const DefaultRedisPrefix = "career_coach:ratelimit:"

// RedisStore counts requests in fixed windows shared by every server instance.
// Burst is not applied; a window admits at most Limit requests.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a store on top of an existing client.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

// Take implements Store.
func (s *RedisStore) Take(ctx context.Context, key string, rule EndpointConfig) (Info, error) {
	k := s.prefix + key

	count, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return Info{}, fmt.Errorf("failed to increment %s: %w", k, err)
	}
	if count == 1 {
		if err := s.client.PExpire(ctx, k, rule.Window).Err(); err != nil {
			return Info{}, fmt.Errorf("failed to set expiry on %s: %w", k, err)
		}
	}

	ttl, err := s.client.PTTL(ctx, k).Result()
	if err != nil {
		return Info{}, fmt.Errorf("failed to read expiry of %s: %w", k, err)
	}
	if ttl < 0 {
		// Lost expiry (e.g. the first request's PEXPIRE failed); start a new window
		if err := s.client.PExpire(ctx, k, rule.Window).Err(); err != nil {
			return Info{}, fmt.Errorf("failed to set expiry on %s: %w", k, err)
		}
		ttl = rule.Window
	}

	allowed := count <= int64(rule.Limit)
	info := Info{
		Allowed:   allowed,
		Limit:     rule.Limit,
		Remaining: max(0, rule.Limit-int(count)),
		ResetTime: time.Now().Add(ttl),
	}
	if !allowed {
		info.RetryAfter = ttl
	}
	return info, nil
}

// Stop implements Store. The client is owned by the caller.
func (s *RedisStore) Stop() {}
