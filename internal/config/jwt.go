package config

import (
	"fmt"
	"strings"
)

// minSecretLength is the shortest HS256 secret accepted.
const minSecretLength = 16

// JWTConfig holds configuration for bearer token verification. Tokens are issued
// by the external auth platform; this service only verifies them.
type JWTConfig struct {
	Secret   string
	Audience string
}

// NewJWTConfig builds a JWT configuration from the auth section.
func NewJWTConfig(auth AuthConfig) (*JWTConfig, error) {
	config := &JWTConfig{
		Secret:   strings.TrimSpace(auth.JWTSecret),
		Audience: strings.TrimSpace(auth.Audience),
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT secret is required but not set")
	}
	if len(c.Secret) < minSecretLength {
		return fmt.Errorf("JWT secret must be at least %d characters, got: %d", minSecretLength, len(c.Secret))
	}
	return nil
}
