// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// JWTSecret signs and verifies login tokens. Required; rotating it
	// invalidates every outstanding session.
	JWTSecret string

	// MileageRates overrides the built-in IRS standard mileage rate table
	// when MILEAGE_RATES is set to a "year:rate" list, e.g.
	// "2024:0.67,2025:0.70". Nil when unset, meaning use the built-in table.
	MileageRates map[int]float64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	if raw := os.Getenv("MILEAGE_RATES"); raw != "" {
		rates, err := parseMileageRates(raw)
		if err != nil {
			return Config{}, fmt.Errorf("MILEAGE_RATES: %w", err)
		}
		cfg.MileageRates = rates
	}

	return cfg, nil
}

// parseMileageRates parses a "year:rate,year:rate" list into a rate table.
func parseMileageRates(raw string) (map[int]float64, error) {
	rates := make(map[int]float64)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		year, rate, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("entry %q is not in year:rate form", pair)
		}
		y, err := strconv.Atoi(strings.TrimSpace(year))
		if err != nil {
			return nil, fmt.Errorf("entry %q has a non-integer year", pair)
		}
		r, err := strconv.ParseFloat(strings.TrimSpace(rate), 64)
		if err != nil || r < 0 {
			return nil, fmt.Errorf("entry %q has an invalid rate", pair)
		}
		rates[y] = r
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("no entries")
	}
	return rates, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
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
