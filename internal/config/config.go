// Package config handles application configuration from environment variables.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/randytsao24/railronda/internal/route"
)

// Config holds all application configuration.
type Config struct {
	Port string `validate:"required,numeric"`
	Env  string `validate:"oneof=development production test"`

	// TopologyFile overrides the embedded station topology when set.
	TopologyFile string
	GemDataDir   string `validate:"required"`
	StrictGems   bool

	GemRadiusMeters float64       `validate:"gt=0"`
	GemCacheTTL     time.Duration `validate:"gt=0"`
	SearchLimit     int           `validate:"gt=0,lte=100"`
	HTTPTimeout     time.Duration `validate:"gt=0"`

	Route route.Config
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present; real
// environment variables take precedence over it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	defaults := route.DefaultConfig()

	return &Config{
		Port:            getEnv("PORT", "3000"),
		Env:             getEnv("ENV", "development"),
		TopologyFile:    getEnv("TOPOLOGY_FILE", ""),
		GemDataDir:      getEnv("GEM_DATA_DIR", "data/gems"),
		StrictGems:      getBoolEnv("STRICT_GEM_DATA", false),
		GemRadiusMeters: getFloatEnv("GEM_RADIUS_METERS", 2000),
		GemCacheTTL:     getDurationEnv("GEM_CACHE_TTL_SECONDS", 300) * time.Second,
		SearchLimit:     getIntEnv("SEARCH_LIMIT", route.DefaultSearchLimit),
		HTTPTimeout:     getDurationEnv("HTTP_TIMEOUT_SECONDS", 10) * time.Second,
		Route: route.Config{
			MinutesPerStop:      getIntEnv("MINUTES_PER_STOP", defaults.MinutesPerStop),
			TransferMins:        getIntEnv("TRANSFER_MINUTES", defaults.TransferMins),
			WalkMetersPerMinute: getFloatEnv("WALK_METERS_PER_MINUTE", defaults.WalkMetersPerMinute),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultSeconds int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds)
		}
	}
	return time.Duration(defaultSeconds)
}
