package config

import (
	"os"
	"strconv"
	"strings"

	"hrdash/internal/errors"
)

// Data source kinds
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config represents the complete application configuration
type Config struct {
	Data    DataConfig
	Server  ServerConfig
	Ranker  RankerConfig
	Logging LoggingConfig
}

// DataConfig describes where the employee table comes from
type DataConfig struct {
	Source      string // "file" or "postgres"
	File        string
	DatabaseURL string
	Table       string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port           string
	APIPort        string
	GinMode        string
	StylesheetPath string
}

// RankerConfig holds the feature-importance model settings
type RankerConfig struct {
	Trees     int
	Seed      int64
	TopN      int
	CacheSize int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data:    loadDataConfig(),
		Server:  loadServerConfig(),
		Ranker:  loadRankerConfig(),
		Logging: LoggingConfig{Level: getEnvOrDefault("LOG_LEVEL", "INFO")},
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDataConfig() DataConfig {
	return DataConfig{
		Source:      strings.ToLower(getEnvOrDefault("DATA_SOURCE", SourceFile)),
		File:        getEnvOrDefault("DATA_FILE", "WA_Fn-UseC_-HR-Employee-Attrition.csv"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Table:       getEnvOrDefault("DATA_TABLE", "employees"),
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:           getEnvOrDefault("PORT", "8080"),
		APIPort:        getEnvOrDefault("API_PORT", "8081"),
		GinMode:        getEnvOrDefault("GIN_MODE", "release"),
		StylesheetPath: getEnvOrDefault("STYLESHEET_PATH", "style.css"),
	}
}

func loadRankerConfig() RankerConfig {
	return RankerConfig{
		Trees:     getEnvIntOrDefault("RANKER_TREES", 100),
		Seed:      getEnvInt64OrDefault("RANKER_SEED", 42),
		TopN:      getEnvIntOrDefault("RANKER_TOP_N", 10),
		CacheSize: getEnvIntOrDefault("RANKER_CACHE_SIZE", 64),
	}
}

// Validate checks that all configuration values are usable
func (c *Config) Validate() error {
	switch c.Data.Source {
	case SourceFile:
		if c.Data.File == "" {
			return errors.ConfigInvalid("DATA_FILE is required when DATA_SOURCE=file")
		}
	case SourcePostgres:
		if c.Data.DatabaseURL == "" {
			return errors.ConfigInvalid("DATABASE_URL is required when DATA_SOURCE=postgres")
		}
		if c.Data.Table == "" {
			return errors.ConfigInvalid("DATA_TABLE is required when DATA_SOURCE=postgres")
		}
	default:
		return errors.ConfigInvalid("DATA_SOURCE must be one of: file, postgres")
	}

	if c.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	if c.Ranker.Trees < 1 {
		return errors.ConfigInvalid("RANKER_TREES must be at least 1")
	}
	if c.Ranker.TopN < 1 {
		return errors.ConfigInvalid("RANKER_TOP_N must be at least 1")
	}
	if c.Ranker.CacheSize < 0 {
		return errors.ConfigInvalid("RANKER_CACHE_SIZE must not be negative")
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

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
