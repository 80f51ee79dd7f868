// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Database drivers accepted in DATABASE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseDriver selects the storage backend: "postgres" (default) or
	// "sqlite" for single-node deployments.
	DatabaseDriver string

	// DatabaseURL is the Postgres connection string or the SQLite DSN. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MigrateOnStart applies pending Postgres migrations at startup. Defaults to true.
	MigrateOnStart bool

	// HolidaysDir optionally names a directory of production-calendar JSON
	// files that extend the built-in holiday tables.
	HolidaysDir string

	// RequestTimeout bounds every non-streaming request. Defaults to 10s.
	RequestTimeout time.Duration

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// ProjectionYears is the default maintenance schedule horizon. Defaults to 10.
	ProjectionYears int
}

// Load reads configuration from environment variables and returns a Config.
// A .env file in the working directory (or the file named by ENV_FILE) is
// read first; variables already set in the environment win.
// Returns an error listing any required variables that are not set, or
// naming the first variable whose value cannot be parsed.
func Load() (Config, error) {
	if err := loadDotenv(getEnv("ENV_FILE", ".env")); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseDriver: strings.ToLower(getEnv("DATABASE_DRIVER", DriverPostgres)),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		HolidaysDir:    os.Getenv("HOLIDAYS_DIR"),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	if cfg.DatabaseDriver != DriverPostgres && cfg.DatabaseDriver != DriverSQLite {
		return Config{}, fmt.Errorf("DATABASE_DRIVER: unsupported driver %q (want %s or %s)", cfg.DatabaseDriver, DriverPostgres, DriverSQLite)
	}

	var err error
	if cfg.MigrateOnStart, err = parseEnv("MIGRATE_ON_START", true, strconv.ParseBool); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout, err = parseEnv("REQUEST_TIMEOUT", 10*time.Second, time.ParseDuration); err != nil {
		return Config{}, err
	}
	if cfg.MaxBodyBytes, err = parseEnv("MAX_BODY_BYTES", int64(1<<20), parseInt64); err != nil {
		return Config{}, err
	}
	if cfg.ProjectionYears, err = parseEnv("PROJECTION_YEARS", 10, strconv.Atoi); err != nil {
		return Config{}, err
	}
	if cfg.ProjectionYears < 1 || cfg.ProjectionYears > 100 {
		return Config{}, fmt.Errorf("PROJECTION_YEARS: must be between 1 and 100, got %d", cfg.ProjectionYears)
	}

	return cfg, nil
}

// loadDotenv reads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func loadDotenv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseEnv parses the variable named by key with parse, or returns fallback
// when it is unset. Parse errors name the variable.
func parseEnv[T any](key string, fallback T, parse func(string) (T, error)) (T, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	out, err := parse(v)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%s: invalid value %q: %w", key, v, err)
	}
	return out, nil
}

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
