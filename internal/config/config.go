package config

import (
	"os"
	"strconv"
	"time"

	"projectpulse/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Sheet    SheetConfig
	Server   ServerConfig
	Tracker  TrackerConfig
	Database DatabaseConfig
}

// SheetConfig holds the spreadsheet source settings. Exactly one of URL or
// DataFile must be set: URL fetches a public Google Sheet as CSV, DataFile
// reads a local .xlsx/.csv export.
type SheetConfig struct {
	URL          string
	DataFile     string
	MarkerColumn string
	CacheTTL     time.Duration
	HTTPTimeout  time.Duration
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	APIPort string
}

// TrackerConfig holds project tracker persistence settings
type TrackerConfig struct {
	DataFile string
}

// DatabaseConfig holds optional PostgreSQL settings for the tracker
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Sheet: SheetConfig{
			URL:          os.Getenv("SHEET_URL"),
			DataFile:     os.Getenv("DATA_FILE"),
			MarkerColumn: getEnvOrDefault("MARKER_COLUMN", "Type"),
			CacheTTL:     time.Duration(getEnvIntOrDefault("CACHE_TTL_SECONDS", 300)) * time.Second,
			HTTPTimeout:  time.Duration(getEnvIntOrDefault("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			APIPort: getEnvOrDefault("API_PORT", "8081"),
		},
		Tracker: TrackerConfig{
			DataFile: getEnvOrDefault("TRACKER_FILE", "projects.json"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Sheet.URL == "" && config.Sheet.DataFile == "" {
		return errors.ConfigInvalid("either SHEET_URL or DATA_FILE is required")
	}
	if config.Sheet.URL != "" && config.Sheet.DataFile != "" {
		return errors.ConfigInvalid("SHEET_URL and DATA_FILE are mutually exclusive")
	}
	if config.Sheet.CacheTTL <= 0 {
		return errors.ConfigInvalid("CACHE_TTL_SECONDS must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
