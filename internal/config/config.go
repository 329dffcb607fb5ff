// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hofhaeckerei/solr-utility/internal/database"
	"github.com/hofhaeckerei/solr-utility/internal/taxonomy"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host     string
	Port     string
	Env      string // "development", "production", "testing"
	LogLevel string

	// Database driver: "postgres" or "sqlite"
	DBDriver   string
	SQLitePath string

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache). An empty host disables result caching.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	ResultCacheTTL time.Duration

	// Resolution and indexing
	MaxDepth       int
	IndexLanguages []int

	// Requests per minute per client IP on the API. Forwarded client
	// addresses are only used when TrustProxy is set.
	RateLimit  int
	TrustProxy bool
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing or malformed.
func Load() (*Config, error) {
	cfg := &Config{
		Host:     envOrDefault("APP_HOST", "0.0.0.0"),
		Port:     envOrDefault("APP_PORT", "8080"),
		Env:      envOrDefault("APP_ENV", "development"),
		LogLevel: envOrDefault("LOG_LEVEL", "info"),

		DBDriver:   envOrDefault("DB_DRIVER", database.DriverPostgres),
		SQLitePath: envOrDefault("SQLITE_PATH", "solr-utility.db"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "solrutility"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "solrutility"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
	}

	var err error
	if cfg.ResultCacheTTL, err = time.ParseDuration(envOrDefault("RESULT_CACHE_TTL", "5m")); err != nil {
		return nil, fmt.Errorf("RESULT_CACHE_TTL: %w", err)
	}
	if cfg.MaxDepth, err = positiveInt("RESOLVE_MAX_DEPTH", taxonomy.DefaultMaxDepth); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = positiveInt("RATE_LIMIT", 600); err != nil {
		return nil, err
	}
	if cfg.TrustProxy, err = boolEnv("TRUST_PROXY"); err != nil {
		return nil, err
	}
	if cfg.IndexLanguages, err = parseLanguages(envOrDefault("INDEX_LANGUAGES", "0")); err != nil {
		return nil, err
	}

	switch cfg.DBDriver {
	case database.DriverPostgres, database.DriverSQLite:
	default:
		return nil, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", database.DriverPostgres, database.DriverSQLite, cfg.DBDriver)
	}

	if cfg.Env == "production" && cfg.DBDriver == database.DriverPostgres {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == database.DriverSQLite {
		return c.SQLitePath
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// CacheEnabled reports whether a Valkey host is configured.
func (c *Config) CacheEnabled() bool {
	return c.ValkeyHost != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func positiveInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

func boolEnv(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, v)
	}
	return b, nil
}

// parseLanguages parses a comma-separated list of language ids.
func parseLanguages(v string) ([]int, error) {
	var langs []int
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("INDEX_LANGUAGES: invalid language %q", part)
		}
		langs = append(langs, n)
	}
	if len(langs) == 0 {
		return nil, fmt.Errorf("INDEX_LANGUAGES must list at least one language")
	}
	return langs, nil
}
