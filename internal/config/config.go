package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds storefront configuration loaded from the environment.
type Config struct {
	AppEnv          string
	APIBaseURL      string
	APITimeout      time.Duration
	FreeShippingMin int64
	ShippingFlatFee int64
	RedisURL        string
	SessionTTL      time.Duration
	LogFormat       string
	LogLevel        string
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:          valueOrDefault(k.String("APP_ENV"), "development"),
		APIBaseURL:      strings.TrimSpace(k.String("API_BASE_URL")),
		APITimeout:      parseDuration(k.String("API_TIMEOUT"), "10s"),
		FreeShippingMin: parseInt64(k.String("FREE_SHIPPING_MIN"), 3000),
		ShippingFlatFee: parseInt64(k.String("SHIPPING_FLAT_FEE"), 250),
		RedisURL:        strings.TrimSpace(k.String("REDIS_URL")),
		SessionTTL:      parseDuration(k.String("SESSION_TTL"), "24h"),
		LogFormat:       valueOrDefault(k.String("OBS_LOG_FORMAT"), "json"),
		LogLevel:        valueOrDefault(k.String("OBS_LOG_LEVEL"), "info"),
	}

	if cfg.APIBaseURL == "" {
		return nil, errors.New("API_BASE_URL is required")
	}
	if cfg.FreeShippingMin < 0 {
		return nil, errors.New("FREE_SHIPPING_MIN must not be negative")
	}
	if cfg.ShippingFlatFee < 0 {
		return nil, errors.New("SHIPPING_FLAT_FEE must not be negative")
	}

	return cfg, nil
}

// MustLoad behaves like Load but panics on error. Useful for command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(envVars map[string]string) (*Config, error) {
	original := make(map[string]string, len(envVars))
	for key := range envVars {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, envVars[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseInt64(value string, fallback int64) int64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
