package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds runtime settings loaded from env vars.
type Config struct {
	HTTPAddr    string
	APIKey      string
	Sensor      bool
	Environment string
	LogLevel    string
	LogFormat   string
	LogOutput   string

	// Endpoint overrides, empty means the production URLs. Pointing these
	// at a mock server is how integration tests run without credentials.
	GeocodeURL string
	SearchURL  string
	DetailURL  string
	CheckInURL string
}

// Load loads configuration from environment variables.
// Required variables: PLACES_API_KEY
// Optional variables with defaults: HTTP_ADDR, PLACES_SENSOR, ENVIRONMENT,
// LOG_LEVEL, LOG_FORMAT, LOG_OUTPUT, and the *_URL endpoint overrides.
func Load() Config {
	return Config{
		HTTPAddr:    envOr("HTTP_ADDR", ":8080"),
		APIKey:      envRequired("PLACES_API_KEY"),
		Sensor:      envBool("PLACES_SENSOR", false),
		Environment: envOr("ENVIRONMENT", "development"),
		LogLevel:    envOr("LOG_LEVEL", "info"),
		LogFormat:   envOr("LOG_FORMAT", "json"),
		LogOutput:   envOr("LOG_OUTPUT", "stdout"),
		GeocodeURL:  os.Getenv("PLACES_GEOCODE_URL"),
		SearchURL:   os.Getenv("PLACES_SEARCH_URL"),
		DetailURL:   os.Getenv("PLACES_DETAIL_URL"),
		CheckInURL:  os.Getenv("PLACES_CHECKIN_URL"),
	}
}

// Validate checks that all required configuration is present and valid.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("PLACES_API_KEY is required")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		// In development, allow empty but warn
		fmt.Printf("WARNING: %s is not set. This is required in production.\n", key)
	}
	return value
}
