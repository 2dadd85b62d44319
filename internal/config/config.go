package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/vaultpass/passmate/internal/password"
)

var ErrSecretRequired = errors.New("API_TOKEN_SECRET must be set when REQUIRE_AUTH is enabled")

type Config struct {
	Port           string
	Env            string
	DatabaseDSN    string
	TokenSecret    string
	TokenTTL       time.Duration
	RequireAuth    bool
	RateLimitRPS   float64
	RateLimitBurst int
	DefaultLength  int
}

// Load reads the configuration from the environment. Malformed numeric
// values fall back to their defaults with a warning.
func Load() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		DatabaseDSN:    getEnv("DATABASE_DSN", ""),
		TokenSecret:    getEnv("API_TOKEN_SECRET", ""),
		TokenTTL:       getDuration("API_TOKEN_TTL", 30*24*time.Hour),
		RequireAuth:    getBool("REQUIRE_AUTH", false),
		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 10),
		DefaultLength:  password.Normalize(getInt("DEFAULT_LENGTH", password.DefaultLength), 0).Length,
	}

	if cfg.RequireAuth && cfg.TokenSecret == "" {
		return Config{}, ErrSecretRequired
	}
	if cfg.Env == "production" && cfg.TokenSecret == "" {
		slog.Warn("API_TOKEN_SECRET is not set, the API is open to anyone who can reach it")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		slog.Warn("invalid number in environment, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return f
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid boolean in environment, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
