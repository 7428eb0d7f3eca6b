package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/tiagomars/weather-data-pipeline/internal/weather"
)

// FallbackAPIKey is used when OPENWEATHER_API_KEY is unset. It is a placeholder
// that will fail authentication upstream; the pipeline still runs and produces
// an empty batch. Deliberate, and warned about at load time.
const FallbackAPIKey = "demo_key"

var validate = validator.New()

type AppConfig struct {
	OpenWeatherAPIKey string `validate:"required"`

	// Lang selects the locale of the weather descriptions.
	Lang string

	// Bucket is the durable storage container both layers land in.
	Bucket string `validate:"required"`

	// StagingDir holds the per-run local staging files.
	StagingDir string `validate:"required"`

	// HTTPTimeout bounds each upstream weather call.
	HTTPTimeout time.Duration

	// Stage retry policy, honored by the pipeline runner.
	StageMaxRetries int `validate:"gte=0"`
	StageRetryDelay time.Duration

	// Schedule is the cron expression for the daily trigger.
	Schedule string `validate:"required"`

	// RunTimeout is the wall-clock budget for a whole run.
	RunTimeout time.Duration

	// Locations to collect, in fetch order.
	Locations []weather.Location `validate:"min=1"`

	// Run-history retention (number of executions kept in memory).
	StoreMaxHistory int

	Port string
}

// Load reads configuration from the environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	if cfg.OpenWeatherAPIKey == "" {
		log.Printf("WARN: OPENWEATHER_API_KEY is not set; using placeholder credential %q (all extraction calls will fail authentication)", FallbackAPIKey)
		cfg.OpenWeatherAPIKey = FallbackAPIKey
	}

	cfg.Lang = getenvDefault("OPENWEATHER_LANG", "pt_br")
	cfg.Bucket = getenvDefault("WEATHER_BUCKET", "weather-data-pipeline")
	cfg.StagingDir = getenvDefault("STAGING_DIR", os.TempDir())

	timeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	cfg.StageMaxRetries = getenvInt("STAGE_MAX_RETRIES", 3)

	delay, err := getenvDuration("STAGE_RETRY_DELAY", "5m")
	if err != nil {
		return nil, err
	}
	cfg.StageRetryDelay = delay

	cfg.Schedule = getenvDefault("SCHEDULE_CRON", "0 2 * * *")

	runTimeout, err := getenvDuration("RUN_TIMEOUT", "30m")
	if err != nil {
		return nil, err
	}
	cfg.RunTimeout = runTimeout

	locs, err := loadLocations(os.Getenv("LOCATIONS_FILE"))
	if err != nil {
		return nil, err
	}
	cfg.Locations = locs

	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 90)
	cfg.Port = getenvDefault("PORT", "8080")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadLocations reads the location set from a YAML file, or falls back to the
// built-in default set when no file is configured.
func loadLocations(path string) ([]weather.Location, error) {
	if path == "" {
		return defaultLocations(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read locations file: %w", err)
	}

	var doc struct {
		Locations []weather.Location `yaml:"locations"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse locations file %s: %w", path, err)
	}
	if len(doc.Locations) == 0 {
		return nil, fmt.Errorf("locations file %s defines no locations", path)
	}

	return doc.Locations, nil
}

// defaultLocations is the original deployment's city set.
func defaultLocations() []weather.Location {
	cities := []string{
		"São Paulo", "Rio de Janeiro", "Brasília", "Salvador", "Fortaleza",
		"Belo Horizonte", "Manaus", "Curitiba", "Recife", "Porto Alegre",
		"Belém", "Goiânia", "Guarulhos", "Campinas", "São Luís",
		"São Gonçalo", "Maceió", "Duque de Caxias", "Natal", "Teresina",
	}

	locs := make([]weather.Location, 0, len(cities))
	for _, c := range cities {
		locs = append(locs, weather.Location{City: c})
	}
	return locs
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	v := getenvDefault(key, def)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
