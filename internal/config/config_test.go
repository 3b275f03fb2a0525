package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	// Test defaults
	os.Clearenv()
	cfg := Load()

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("Expected default HTTPAddr :8080, got %s", cfg.HTTPAddr)
	}
	if cfg.Sensor {
		t.Error("Expected default Sensor false")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default LogLevel info, got %s", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("Expected default LogFormat json, got %s", cfg.LogFormat)
	}
	if cfg.GeocodeURL != "" {
		t.Errorf("Expected empty GeocodeURL by default, got %s", cfg.GeocodeURL)
	}

	// Test overrides
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("PLACES_API_KEY", "test-key")
	t.Setenv("PLACES_SENSOR", "true")
	t.Setenv("PLACES_SEARCH_URL", "http://localhost:1234/search/json")

	cfg = Load()

	if cfg.HTTPAddr != ":9090" {
		t.Errorf("Expected HTTPAddr :9090, got %s", cfg.HTTPAddr)
	}
	if cfg.APIKey != "test-key" {
		t.Errorf("Expected APIKey test-key, got %s", cfg.APIKey)
	}
	if !cfg.Sensor {
		t.Error("Expected Sensor true")
	}
	if cfg.SearchURL != "http://localhost:1234/search/json" {
		t.Errorf("Expected SearchURL override, got %s", cfg.SearchURL)
	}
}

func TestEnvBool_Invalid(t *testing.T) {
	t.Setenv("PLACES_SENSOR", "not-a-bool")

	cfg := Load()

	if cfg.Sensor {
		t.Error("Expected invalid PLACES_SENSOR to fall back to false")
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{APIKey: ""}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for missing API key")
	}

	cfg.APIKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}
