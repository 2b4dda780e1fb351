package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	do "github.com/samber/do/v2"
)

var Package = do.Package(
	do.Lazy[*Config](NewConfig),
)

const (
	BackendFile  = "file"
	BackendRedis = "redis"

	defaultBaseURL   = "https://dummyjson.com"
	defaultAddress   = ":8080"
	defaultCacheSize = 256
	defaultLogLevel  = "warn"
	defaultPrefix    = "dash:"
)

// Config holds the application configuration.
type Config struct {
	BaseURL        string        `validate:"required,url"`
	SessionBackend string        `validate:"oneof=file redis"`
	SessionFile    string        `validate:"required_if=SessionBackend file"`
	RedisAddr      string        `validate:"required_if=SessionBackend redis"`
	RedisPassword  string
	RedisPrefix    string
	CacheSize      int           `validate:"gte=0"`
	HTTPTimeout    time.Duration `validate:"gte=0"`
	Address        string        `validate:"required"`
	LogLevel       string        `validate:"oneof=trace debug info warn error disabled"`
}

// NewConfig creates a new configuration from environment variables (for DI).
func NewConfig(_ do.Injector) (*Config, error) {
	return New()
}

// New creates a new configuration from environment variables.
func New() (*Config, error) {
	cfg := &Config{
		BaseURL:        getenv("DASH_BASE_URL", defaultBaseURL),
		SessionBackend: getenv("DASH_SESSION_BACKEND", BackendFile),
		SessionFile:    os.Getenv("DASH_SESSION_FILE"),
		RedisAddr:      os.Getenv("DASH_REDIS_ADDR"),
		RedisPassword:  os.Getenv("DASH_REDIS_PASSWORD"),
		RedisPrefix:    getenv("DASH_REDIS_PREFIX", defaultPrefix),
		CacheSize:      defaultCacheSize,
		Address:        getenv("DASH_ADDRESS", defaultAddress),
		LogLevel:       getenv("DASH_LOG_LEVEL", defaultLogLevel),
	}

	if cfg.SessionBackend == BackendFile && cfg.SessionFile == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user config directory: %w", err)
		}
		cfg.SessionFile = filepath.Join(configDir, "dash", "session.yaml")
	}

	if v := os.Getenv("DASH_CACHE_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DASH_CACHE_SIZE: %w", err)
		}
		cfg.CacheSize = size
	}

	if v := os.Getenv("DASH_HTTP_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DASH_HTTP_TIMEOUT: %w", err)
		}
		cfg.HTTPTimeout = timeout
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
