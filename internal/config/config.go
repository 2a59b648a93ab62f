package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mgiraldez/mansion-engine/pkg/state"
)

// Config holds all runtime settings. Defaults are overridden first by an
// optional YAML file (pointed to by MANSION_CONFIG), then by environment
// variables.
type Config struct {
	Environment  string
	LogLevel     slog.Level
	RedisURL     string
	Difficulty   state.Difficulty
	DarknessMode bool
	TickInterval time.Duration
}

// fileConfig mirrors the YAML schema. Pointers distinguish "absent" from
// zero values.
type fileConfig struct {
	Environment  string `yaml:"environment"`
	LogLevel     string `yaml:"log_level"`
	RedisURL     string `yaml:"redis_url"`
	Difficulty   string `yaml:"difficulty"`
	DarknessMode *bool  `yaml:"darkness_mode"`
	TickInterval string `yaml:"tick_interval"`
}

// Load builds the configuration from defaults, the optional config file,
// and the environment, in that order of precedence.
func Load() (*Config, error) {
	cfg := &Config{
		Environment:  "development",
		LogLevel:     slog.LevelInfo,
		RedisURL:     "redis://localhost:6379",
		Difficulty:   state.DifficultyNormal,
		DarknessMode: true,
		TickInterval: time.Second,
	}

	if path := os.Getenv("MANSION_CONFIG"); path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}

	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = parseLogLevel(v)
	}
	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)
	if v := os.Getenv("DIFFICULTY"); v != "" {
		d, err := state.ParseDifficulty(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DIFFICULTY: %w", err)
		}
		cfg.Difficulty = d
	}
	if v := os.Getenv("DARKNESS_MODE"); v != "" {
		cfg.DarknessMode = strings.EqualFold(v, "true") || v == "1"
	}
	if v := os.Getenv("TICK_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TICK_INTERVAL: %w", err)
		}
		cfg.TickInterval = d
	}

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if fc.Environment != "" {
		cfg.Environment = fc.Environment
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = parseLogLevel(fc.LogLevel)
	}
	if fc.RedisURL != "" {
		cfg.RedisURL = fc.RedisURL
	}
	if fc.Difficulty != "" {
		d, err := state.ParseDifficulty(fc.Difficulty)
		if err != nil {
			return fmt.Errorf("invalid difficulty in config file: %w", err)
		}
		cfg.Difficulty = d
	}
	if fc.DarknessMode != nil {
		cfg.DarknessMode = *fc.DarknessMode
	}
	if fc.TickInterval != "" {
		d, err := time.ParseDuration(fc.TickInterval)
		if err != nil {
			return fmt.Errorf("invalid tick_interval in config file: %w", err)
		}
		cfg.TickInterval = d
	}

	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
