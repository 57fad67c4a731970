// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/zetflix/zetflix-api/internal/constants"
)

const (
	defaultConfigFile   = "config.json"
	defaultDatabasePath = "./zetflix.db"
)

// Config holds the application configuration.
// It supports loading from environment variables and an optional JSON file;
// environment variables take precedence.
type Config struct {
	Port        string `json:"PORT"`
	TokenSecret string `json:"TOKEN_SECRET"`
	TMDBAPIKey  string `json:"TMDB_API_KEY"`

	DatabasePath string        `json:"DATABASE_PATH"`
	CacheSize    int           `json:"CACHE_SIZE"`
	CacheTTL     time.Duration `json:"CACHE_TTL"`
}

// Load reads configuration from an optional JSON file and environment
// variables. Returns an error if the configuration is invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         constants.DefaultPort,
		CacheSize:    constants.DefaultCacheSize,
		CacheTTL:     time.Duration(constants.DefaultCacheTTL) * time.Hour,
		DatabasePath: defaultDatabasePath,
	}

	configFile := getEnvOrDefault("CONFIG_FILE", defaultConfigFile)
	if err := cfg.loadFromFile(configFile); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Port = port
	}
	if secret := os.Getenv("TOKEN_SECRET"); secret != "" {
		c.TokenSecret = secret
	}
	if tmdbKey := os.Getenv("TMDB_API_KEY"); tmdbKey != "" {
		c.TMDBAPIKey = tmdbKey
	}
	if dbPath := os.Getenv("DATABASE_PATH"); dbPath != "" {
		c.DatabasePath = dbPath
	}
}

func (c *Config) loadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, c)
}

// Validate checks if the configuration is valid.
// TMDB_API_KEY is optional; new-episode detection and dashboard enrichment
// degrade to estimates without it.
func (c *Config) Validate() error {
	if c.TokenSecret == "" {
		return fmt.Errorf("TOKEN_SECRET is required")
	}
	if len(c.TokenSecret) < 32 {
		return fmt.Errorf("TOKEN_SECRET must be at least 32 characters")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
