// Package ratelimit provides per-client request rate limiting backed by an
// in-memory token bucket or a shared Redis counter.
package ratelimit

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Rule labels for requests that match no endpoint rule.
const (
	DefaultRule   = "default"
	BlacklistRule = "blacklist"
)

// Info contains information about rate limit status.
type Info struct {
	// Rule is the path of the endpoint rule that applied, DefaultRule or
	// BlacklistRule. It never contains request-specific path segments.
	Rule       string
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Store records one request against a bucket key and reports the resulting status.
type Store interface {
	Take(ctx context.Context, key string, rule EndpointConfig) (Info, error)
	Stop()
}

// Limiter manages rate limiting for multiple clients.
type Limiter struct {
	config *Config
	store  Store
	logger *zap.Logger
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithStore replaces the default in-memory store.
func WithStore(store Store) Option {
	return func(l *Limiter) {
		l.store = store
	}
}

// WithLogger sets the logger used to report store failures.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Limiter) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLimiter creates a new rate limiter with the given configuration.
func NewLimiter(config *Config, opts ...Option) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
			Whitelist:       make(map[string]bool),
			Blacklist:       make(map[string]bool),
		}
	}

	l := &Limiter{
		config: config,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.store == nil {
		cleanup := time.Duration(0)
		if config.Enabled {
			cleanup = config.CleanupInterval
		}
		l.store = NewMemoryStore(cleanup)
	}

	return l
}

// Allow checks if a request from the given client is allowed for the specified endpoint.
// Returns true if allowed, false if rate limited, along with rate limit information.
// A failing store lets the request through.
func (l *Limiter) Allow(ctx context.Context, clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}

	if l.config.Blacklist[clientID] {
		return false, Info{Rule: BlacklistRule, Allowed: false}
	}

	// Endpoint-specific rules share one bucket per rule; everything else is keyed by path
	bucketPath := endpoint
	label := DefaultRule
	rule := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if rule == nil {
		rule = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	} else if rule.Path != "" {
		bucketPath = rule.Path
		label = rule.Path
	}

	// Unlimited endpoint (e.g., health check)
	if rule.Limit <= 0 || rule.Window <= 0 {
		return true, Info{Allowed: true}
	}

	key := clientID + ":" + bucketPath + ":" + method
	info, err := l.store.Take(ctx, key, *rule)
	if err != nil {
		l.logger.Warn("rate limit store failed; allowing request",
			zap.String("key", key), zap.Error(err))
		return true, Info{Rule: label, Allowed: true, Limit: rule.Limit, Remaining: rule.Limit}
	}
	info.Rule = label
	return info.Allowed, info
}

// Stop releases the store's background resources.
func (l *Limiter) Stop() {
	if l.store != nil {
		l.store.Stop()
	}
}

func burstOf(rule EndpointConfig) int {
	if rule.Burst > 0 {
		return rule.Burst
	}
	return rule.Limit
}
