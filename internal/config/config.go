// Package config reads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Port string

	// Dataset file (.csv or .parquet)
	DatasetPath string

	// Figure response cache
	FigureCacheSize int
	FigureCacheTTL  time.Duration
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatasetPath: getEnv("DATASET_PATH", "data/healthcare_dataset.csv"),

		FigureCacheSize: getEnvInt("FIGURE_CACHE_SIZE", 128),
		FigureCacheTTL:  getEnvDuration("FIGURE_CACHE_TTL", 5*time.Minute),
	}
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DatasetPath == "" {
		errors = append(errors, "dataset path cannot be empty")
	} else if _, err := os.Stat(c.DatasetPath); os.IsNotExist(err) {
		errors = append(errors, fmt.Sprintf("dataset file does not exist: %s", c.DatasetPath))
	}

	if c.FigureCacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid figure cache size %d: must be at least 1", c.FigureCacheSize))
	}
	if c.FigureCacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid figure cache TTL %v: must be at least 1 second", c.FigureCacheTTL))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
