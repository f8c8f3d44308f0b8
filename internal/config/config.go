// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string `env:"PORT" envDefault:"8080"`

	// StorageURL selects the persistence slot backend by scheme, e.g.
	// sqlite://trips.db, postgres://..., redis://..., file:///var/lib/trips
	// or mem://. Required.
	StorageURL string `env:"STORAGE_URL,required,notEmpty"`

	// SlotKey names the slot inside the backend. Defaults to "tripData".
	SlotKey string `env:"SLOT_KEY" envDefault:"tripData"`

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	// MapsAPIKey is handed to the map widget unchanged. Optional.
	MapsAPIKey string `env:"MAPS_API_KEY"`
}

// Load reads configuration from the process environment.
// Returns an error naming any required variable that is not set.
func Load() (Config, error) {
	return LoadFrom(env.ToMap(os.Environ()))
}

// LoadFrom reads configuration from the given variables instead of the
// process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	// Entries are trimmed and blanks dropped, so "a, b," works.
	cfg.CORSOrigins = splitCSV(strings.Join(cfg.CORSOrigins, ","))
	if cfg.MaxBodyBytes < 0 {
		return Config{}, fmt.Errorf("config.Load: MAX_BODY_BYTES must not be negative, got %d", cfg.MaxBodyBytes)
	}
	return cfg, nil
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
