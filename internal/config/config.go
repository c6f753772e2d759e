// Package config loads service and CLI configuration from defaults, an optional
// YAML file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CAREER_COACH_ORACLE_STRATEGY.
const EnvPrefix = "CAREER_COACH"

// Config is the complete runtime configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Oracle    OracleConfig    `mapstructure:"oracle"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OracleConfig selects the scoring strategy.
type OracleConfig struct {
	Strategy string `mapstructure:"strategy"`
}

// LLMConfig configures the remote model transport.
type LLMConfig struct {
	Provider    string        `mapstructure:"provider"`
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Temperature float32       `mapstructure:"temperature"`
}

// DatabaseConfig configures the optional Postgres store.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// AuthConfig configures bearer token verification.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Audience  string `mapstructure:"audience"`
}

// RedisConfig configures the shared rate-limit store. An empty address keeps limits in memory.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimitConfig configures the request rate limiter.
type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DefaultLimit    int           `mapstructure:"default_limit"`
	DefaultWindow   time.Duration `mapstructure:"default_window"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	Whitelist       string        `mapstructure:"whitelist"`
	Blacklist       string        `mapstructure:"blacklist"`
}

// legacyEnv maps config keys to the unprefixed environment names that deployments already use.
var legacyEnv = map[string][]string{
	"server.port":                 {"PORT"},
	"llm.api_key":                 {"LOVABLE_API_KEY", "GEMINI_API_KEY"},
	"database.url":                {"DATABASE_URL"},
	"auth.jwt_secret":             {"SUPABASE_JWT_SECRET", "JWT_SECRET"},
	"redis.addr":                  {"REDIS_ADDR"},
	"redis.password":              {"REDIS_PASSWORD"},
	"rate_limit.enabled":          {"RATE_LIMIT_ENABLED"},
	"rate_limit.default_limit":    {"RATE_LIMIT_DEFAULT_LIMIT"},
	"rate_limit.default_window":   {"RATE_LIMIT_DEFAULT_WINDOW"},
	"rate_limit.cleanup_interval": {"RATE_LIMIT_CLEANUP_INTERVAL"},
	"rate_limit.whitelist":        {"RATE_LIMIT_WHITELIST"},
	"rate_limit.blacklist":        {"RATE_LIMIT_BLACKLIST"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("oracle.strategy", "heuristic")

	v.SetDefault("llm.provider", string(llm.ProviderGateway))
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.timeout", llm.DefaultTimeout)
	v.SetDefault("llm.temperature", 0.2)

	v.SetDefault("database.url", "")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.audience", "authenticated")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.default_limit", 1000)
	v.SetDefault("rate_limit.default_window", time.Minute)
	v.SetDefault("rate_limit.cleanup_interval", 5*time.Minute)
	v.SetDefault("rate_limit.whitelist", "")
	v.SetDefault("rate_limit.blacklist", "")
}

// Load reads configuration. When path is empty, config.yaml is looked up in
// ./configs and the working directory and may be absent. An explicit path must exist.
func Load(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, names := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.NewReplacer(".", "_").Replace(key))
		if err := v.BindEnv(append([]string{key, prefixed}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadEnvFile loads .env from the working directory when present. Existing
// environment variables win.
func loadEnvFile() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}

// applyDefaults fills values that depend on other settings.
func (c *Config) applyDefaults() {
	c.Oracle.Strategy = strings.ToLower(strings.TrimSpace(c.Oracle.Strategy))
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))

	base := llm.DefaultConfig()
	if c.LLM.Provider == string(llm.ProviderGemini) {
		base = llm.DefaultGeminiConfig()
	}
	if c.LLM.Model == "" {
		c.LLM.Model = base.Model
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = base.BaseURL
	}
}

// Validate checks ranges and enumerated values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("config error: server timeouts must be non-negative")
	}

	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("config error: 'log.level' must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("config error: 'log.format' must be json or console, got %q", c.Log.Format)
	}

	switch c.Oracle.Strategy {
	case "heuristic", "remote":
	default:
		return fmt.Errorf("config error: 'oracle.strategy' must be heuristic or remote, got %q", c.Oracle.Strategy)
	}

	if _, err := llm.ParseProvider(c.LLM.Provider); err != nil {
		return fmt.Errorf("config error: 'llm.provider': %w", err)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("config error: 'llm.timeout' must be positive")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("config error: 'llm.temperature' must be between 0 and 2, got %v", c.LLM.Temperature)
	}

	if c.RateLimit.DefaultLimit < 0 {
		return fmt.Errorf("config error: 'rate_limit.default_limit' must be non-negative")
	}
	if c.RateLimit.Enabled && c.RateLimit.DefaultWindow <= 0 {
		return fmt.Errorf("config error: 'rate_limit.default_window' must be positive")
	}

	if c.Database.URL != "" && c.Auth.JWTSecret == "" {
		return fmt.Errorf("config error: 'auth.jwt_secret' is required when a database is configured")
	}

	return nil
}

// LLMClientConfig converts the LLM section into the client configuration.
func (c *Config) LLMClientConfig() *llm.Config {
	provider, _ := llm.ParseProvider(c.LLM.Provider)
	return &llm.Config{
		Provider:    provider,
		Model:       c.LLM.Model,
		BaseURL:     c.LLM.BaseURL,
		Timeout:     c.LLM.Timeout,
		Temperature: c.LLM.Temperature,
	}
}

// PersistenceEnabled reports whether the store-backed routes should be served.
func (c *Config) PersistenceEnabled() bool {
	return c.Database.URL != ""
}
