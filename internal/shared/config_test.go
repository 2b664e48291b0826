package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./reel.db" {
			t.Errorf("expected database path ./reel.db, got %s", config.Database.Path)
		}

		if config.API.BaseURL != "http://127.0.0.1:8000" {
			t.Errorf("expected API base URL http://127.0.0.1:8000, got %s", config.API.BaseURL)
		}

		if config.Feed.PrefetchMargin != 3 {
			t.Errorf("expected prefetch margin 3, got %d", config.Feed.PrefetchMargin)
		}

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}
	})

	t.Run("ViewThreshold", func(t *testing.T) {
		config := DefaultConfig()
		if config.ViewThreshold() != 3*time.Second {
			t.Errorf("expected 3s view threshold, got %s", config.ViewThreshold())
		}

		config.Feed.ViewThresholdSec = 5
		if config.ViewThreshold() != 5*time.Second {
			t.Errorf("expected 5s view threshold, got %s", config.ViewThreshold())
		}

		config.Feed.ViewThresholdSec = 0
		if config.ViewThreshold() != 3*time.Second {
			t.Errorf("expected default threshold for zero, got %s", config.ViewThreshold())
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[api]
base_url = "https://reel.example.com"
timeout_seconds = 10
requests_per_sec = 4.0

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[feed]
prefetch_margin = 5
view_threshold_seconds = 2

[server]
host = "0.0.0.0"
port = 8080
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.BaseURL != "https://reel.example.com" {
			t.Errorf("expected custom base URL, got %s", config.API.BaseURL)
		}
		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected custom database path, got %s", config.Database.Path)
		}
		if config.Feed.PrefetchMargin != 5 {
			t.Errorf("expected prefetch margin 5, got %d", config.Feed.PrefetchMargin)
		}
		if config.Server.Host != "0.0.0.0" {
			t.Errorf("expected custom host, got %s", config.Server.Host)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("LoadConfig Malformed File", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := os.WriteFile(configPath, []byte("not [valid toml"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig for malformed file, got %v", err)
		}
	})
}
