package ratelimit

import (
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/career-coach/internal/config"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig builds the limiter configuration from the loaded settings.
func NewConfig(settings config.RateLimitConfig) *Config {
	if !settings.Enabled {
		return &Config{
			Enabled: false,
		}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    settings.DefaultLimit,
		DefaultWindow:   settings.DefaultWindow,
		CleanupInterval: settings.CleanupInterval,
		Whitelist:       parseIPList(settings.Whitelist),
		Blacklist:       parseIPList(settings.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: oracle-backed analysis (may call a paid model)
		{Path: "/analyze-resume", Method: http.MethodPost, Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/analyze-interview-response", Method: http.MethodPost, Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/generate-interview-questions", Method: http.MethodPost, Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/optimize-resume", Method: http.MethodPost, Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/resumes", Method: http.MethodPost, Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/interviews", Method: http.MethodPost, Limit: 30, Window: time.Minute, Burst: 5},

		// Tier 2: scored answers and profile writes
		{Path: "/interviews/", Method: http.MethodPost, Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/profile", Method: http.MethodPut, Limit: 100, Window: time.Minute, Burst: 10},

		// Tier 3: reads use the default limit
		// Tier 4: health, metrics and preflight are unlimited (see MatchEndpoint)
	}
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	if list == "" {
		return result
	}

	for _, ip := range strings.Split(list, ",") {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}

	return result
}
