package ratelimit

import (
	"net/http"
	"strings"
)

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Path matching supports prefix matching (e.g., "/interviews/" matches "/interviews/{id}/complete").
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// Special cases: probes and CORS preflight are unlimited
	if method == http.MethodOptions {
		return &EndpointConfig{Limit: 0}
	}
	if method == http.MethodGet && (path == "/health" || path == "/metrics") {
		return &EndpointConfig{Limit: 0}
	}

	// Try exact match first
	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	// Try prefix match (for paths ending with "/")
	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") {
			if strings.HasPrefix(path, config.Path) {
				return config
			}
		}
	}

	return nil
}
