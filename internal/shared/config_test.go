package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.BaseURL != "http://127.0.0.1:8080/etlApi" {
			t.Errorf("expected base URL http://127.0.0.1:8080/etlApi, got %s", config.API.BaseURL)
		}

		if config.API.TimeoutSeconds != 30 {
			t.Errorf("expected timeout 30s, got %d", config.API.TimeoutSeconds)
		}

		if config.API.Language != "en" {
			t.Errorf("expected language en, got %s", config.API.Language)
		}

		if config.Credentials.Path != "./etlctl.db" {
			t.Errorf("expected credentials path ./etlctl.db, got %s", config.Credentials.Path)
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
		if config.Credentials.Path != defaultConfig.Credentials.Path {
			t.Errorf("created config credentials path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[api]
base_url = "https://etl.example.com/etlApi"
timeout_seconds = 10
rate_limit = 2.5
language = "zh"

[credentials]
path = "/custom/path.db"
max_open_conns = 4
max_idle_conns = 2

[log]
level = "debug"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.BaseURL != "https://etl.example.com/etlApi" {
			t.Errorf("expected base URL https://etl.example.com/etlApi, got %s", config.API.BaseURL)
		}

		if config.API.Language != "zh" {
			t.Errorf("expected language zh, got %s", config.API.Language)
		}

		if config.Credentials.Path != "/custom/path.db" {
			t.Errorf("expected credentials path /custom/path.db, got %s", config.Credentials.Path)
		}

		if config.Log.Level != "debug" {
			t.Errorf("expected log level debug, got %s", config.Log.Level)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}
