package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OPENWEATHER_API_KEY", "OPENWEATHER_LANG", "WEATHER_BUCKET", "STAGING_DIR",
		"HTTP_TIMEOUT", "STAGE_MAX_RETRIES", "STAGE_RETRY_DELAY", "SCHEDULE_CRON",
		"RUN_TIMEOUT", "LOCATIONS_FILE", "STORE_MAX_HISTORY", "PORT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Documented fallback: unset credential becomes the placeholder, which
	// will fail authentication upstream. Deliberate, not a hidden default.
	if cfg.OpenWeatherAPIKey != FallbackAPIKey {
		t.Errorf("api key = %q, want fallback %q", cfg.OpenWeatherAPIKey, FallbackAPIKey)
	}
	if cfg.Bucket != "weather-data-pipeline" {
		t.Errorf("bucket = %q", cfg.Bucket)
	}
	if cfg.Schedule != "0 2 * * *" {
		t.Errorf("schedule = %q", cfg.Schedule)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("http timeout = %v", cfg.HTTPTimeout)
	}
	if cfg.StageMaxRetries != 3 || cfg.StageRetryDelay != 5*time.Minute {
		t.Errorf("retry policy = %d/%v", cfg.StageMaxRetries, cfg.StageRetryDelay)
	}
	if cfg.RunTimeout != 30*time.Minute {
		t.Errorf("run timeout = %v", cfg.RunTimeout)
	}
	if len(cfg.Locations) != 20 {
		t.Errorf("default locations = %d, want 20", len(cfg.Locations))
	}
}

func TestLoadExplicitValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENWEATHER_API_KEY", "real-key")
	t.Setenv("WEATHER_BUCKET", "my-bucket")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("STAGE_MAX_RETRIES", "1")
	t.Setenv("STAGE_RETRY_DELAY", "10s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.OpenWeatherAPIKey != "real-key" || cfg.Bucket != "my-bucket" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.HTTPTimeout != 3*time.Second || cfg.StageMaxRetries != 1 || cfg.StageRetryDelay != 10*time.Second {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_TIMEOUT", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid HTTP_TIMEOUT")
	}
}

func TestLoadLocationsFromYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "locations.yaml")
	doc := `locations:
  - city: Lisboa
    country: PT
  - city: Porto
    country: PT
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LOCATIONS_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.Locations) != 2 {
		t.Fatalf("locations = %d, want 2", len(cfg.Locations))
	}
	if cfg.Locations[0].City != "Lisboa" || cfg.Locations[0].Country != "PT" {
		t.Errorf("locations[0] = %+v", cfg.Locations[0])
	}
}

func TestLoadEmptyLocationsFileIsError(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "locations.yaml")
	if err := os.WriteFile(path, []byte("locations: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LOCATIONS_FILE", path)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for empty locations file")
	}
}
