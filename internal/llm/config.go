// Package llm provides centralized LLM configuration and client abstractions.
// Two providers are supported: an OpenAI-compatible chat-completions gateway
// and Google Gemini.
package llm

import (
	"fmt"
	"time"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGateway is an OpenAI-compatible chat-completions endpoint
	ProviderGateway Provider = "gateway"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Defaults for the chat-completions gateway.
const (
	DefaultGatewayURL   = "https://ai.gateway.lovable.dev/v1"
	DefaultGatewayModel = "google/gemini-2.5-flash"
	DefaultGeminiModel  = "gemini-2.5-flash"
	DefaultTimeout      = 60 * time.Second
)

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Model       string
	BaseURL     string
	Timeout     time.Duration
	Temperature float32
}

// DefaultConfig returns the default configuration (the chat-completions gateway)
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderGateway,
		Model:       DefaultGatewayModel,
		BaseURL:     DefaultGatewayURL,
		Timeout:     DefaultTimeout,
		Temperature: 0.2,
	}
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider:    ProviderGemini,
		Model:       DefaultGeminiModel,
		Timeout:     DefaultTimeout,
		Temperature: 0.2,
	}
}

// WithModel returns a copy of the config using model
func (c *Config) WithModel(model string) *Config {
	copied := *c
	copied.Model = model
	return &copied
}

// ParseProvider validates a provider name.
func ParseProvider(name string) (Provider, error) {
	switch Provider(name) {
	case ProviderGateway, ProviderGemini:
		return Provider(name), nil
	default:
		return "", fmt.Errorf("unknown LLM provider %q (expected %q or %q)", name, ProviderGateway, ProviderGemini)
	}
}
