package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration
// Note: the chord engine itself is stateless; DATABASE_URL and CACHE_DIR only
// back the shape catalogue and the fingering memo
type Config struct {
	// Environment
	Environment string
	Port        string

	// Storage
	DatabaseURL string // Postgres DSN for the shape catalogue, empty for the built-in seed
	CacheDir    string // Badger directory for memoized fingerings, empty for in-memory
	CacheTTL    time.Duration

	// Rate limiting (per client IP)
	RateLimitRPS   float64
	RateLimitBurst int

	// Observability
	SentryDSN string // Sentry DSN for error tracking

	// Auth mode
	// - "none": No auth (self-hosted, local dev)
	// - "gateway": Trust X-User-* headers from an upstream gateway
	AuthMode string
}

func Load() *Config {
	return &Config{
		Environment:    getEnv("ENVIRONMENT", "development"),
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		CacheDir:       getEnv("CACHE_DIR", ""),
		CacheTTL:       time.Duration(getEnvInt("CACHE_TTL_MINUTES", 60)) * time.Minute,
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 40),
		SentryDSN:      getEnv("SENTRY_DSN", ""),
		AuthMode:       getEnv("AUTH_MODE", "none"), // Default to no auth for self-hosted
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvFloat(key string, defaultValue float64) float64 {
	f, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return f
}

// IsGatewayMode returns true if running behind an authenticating gateway
func (c *Config) IsGatewayMode() bool {
	return c.AuthMode == "gateway"
}

// IsProduction reports whether CloudWatch metrics and release mode apply
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesDatabase reports whether the catalogue is backed by Postgres
func (c *Config) UsesDatabase() bool {
	return c.DatabaseURL != ""
}
