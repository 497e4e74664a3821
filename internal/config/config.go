package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/idilsaglam/grocery/internal/model"
)

const (
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

type Config struct {
	Environment string

	// Storage
	Backend  string
	DataPath string

	// Presentation
	Sort  model.SortMode
	Theme string

	// Logging
	LogLevel  string
	LogFormat string // json or console
}

func Load() (*Config, error) {
	// Load .env file if exists (for local development)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Backend:     strings.ToLower(getEnv("GROCERY_BACKEND", BackendFile)),
		Theme:       strings.ToLower(getEnv("GROCERY_THEME", "classic")),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "warn")),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "console")),
	}
	cfg.DataPath = getEnv("GROCERY_DATA_PATH", defaultDataPath(cfg.Backend))

	sort, err := model.ParseSortMode(getEnv("GROCERY_SORT", "name"))
	if err != nil {
		return nil, fmt.Errorf("GROCERY_SORT: %w", err)
	}
	cfg.Sort = sort

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendBadger, BackendMemory:
	default:
		return fmt.Errorf("invalid backend: %s (valid: file, badger, memory)", c.Backend)
	}
	if c.Backend != BackendMemory && c.DataPath == "" {
		return fmt.Errorf("GROCERY_DATA_PATH is required for the %s backend", c.Backend)
	}

	validThemes := map[string]bool{"classic": true, "neon": true, "mono": true}
	if !validThemes[c.Theme] {
		return fmt.Errorf("invalid theme: %s (valid: classic, neon, mono)", c.Theme)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.LogLevel)
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("invalid log format: %s (valid: json, console)", c.LogFormat)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

func defaultDataPath(backend string) string {
	switch backend {
	case BackendBadger:
		return "grocery.db"
	case BackendMemory:
		return ""
	default:
		return "grocery.json"
	}
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
