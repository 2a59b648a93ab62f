package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mgiraldez/mansion-engine/pkg/state"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("Expected environment 'development', got %q", cfg.Environment)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("Expected log level info, got %v", cfg.LogLevel)
	}
	if cfg.RedisURL != "redis://localhost:6379" {
		t.Errorf("Unexpected redis URL %q", cfg.RedisURL)
	}
	if cfg.Difficulty != state.DifficultyNormal {
		t.Errorf("Expected normal difficulty, got %q", cfg.Difficulty)
	}
	if !cfg.DarknessMode {
		t.Error("Expected darkness mode on by default")
	}
	if cfg.TickInterval != time.Second {
		t.Errorf("Expected 1s tick interval, got %v", cfg.TickInterval)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DIFFICULTY", "Nightmare")
	t.Setenv("DARKNESS_MODE", "false")
	t.Setenv("TICK_INTERVAL", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Environment != "production" {
		t.Errorf("Expected environment 'production', got %q", cfg.Environment)
	}
	if cfg.LogLevel != slog.LevelError {
		t.Errorf("Expected log level error, got %v", cfg.LogLevel)
	}
	if cfg.Difficulty != state.DifficultyNightmare {
		t.Errorf("Expected nightmare difficulty, got %q", cfg.Difficulty)
	}
	if cfg.DarknessMode {
		t.Error("Expected darkness mode off")
	}
	if cfg.TickInterval != 250*time.Millisecond {
		t.Errorf("Expected 250ms tick interval, got %v", cfg.TickInterval)
	}
}

func TestLoad_InvalidDifficulty(t *testing.T) {
	t.Setenv("DIFFICULTY", "impossible")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error for invalid difficulty")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "environment: production\ndifficulty: hard\ndarkness_mode: false\ntick_interval: 2s\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("MANSION_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Environment != "production" {
		t.Errorf("Expected environment 'production', got %q", cfg.Environment)
	}
	if cfg.Difficulty != state.DifficultyHard {
		t.Errorf("Expected hard difficulty, got %q", cfg.Difficulty)
	}
	if cfg.DarknessMode {
		t.Error("Expected darkness mode off from file")
	}
	if cfg.TickInterval != 2*time.Second {
		t.Errorf("Expected 2s tick interval, got %v", cfg.TickInterval)
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("difficulty: easy\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("MANSION_CONFIG", path)
	t.Setenv("DIFFICULTY", "hard")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Difficulty != state.DifficultyHard {
		t.Errorf("Expected env to win with hard, got %q", cfg.Difficulty)
	}
}
