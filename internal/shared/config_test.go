package shared

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.BaseURL != "http://localhost:8000" {
			t.Errorf("expected base URL http://localhost:8000, got %s", config.API.BaseURL)
		}

		if config.Database.Path != "twilight.db" {
			t.Errorf("expected database path twilight.db, got %s", config.Database.Path)
		}

		if config.Callback.Port != 3000 {
			t.Errorf("expected callback port 3000, got %d", config.Callback.Port)
		}

		if config.Posts.Limit != 10 {
			t.Errorf("expected posts limit 10, got %d", config.Posts.Limit)
		}
	})

	t.Run("CallbackAddr", func(t *testing.T) {
		config := DefaultConfig()
		if addr := config.CallbackAddr(); addr != "127.0.0.1:3000" {
			t.Errorf("expected 127.0.0.1:3000, got %s", addr)
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

		err = CreateConfigFile(configPath)
		if err == nil {
			t.Fatal("creating config file again should fail")
		}
		if strings.Contains(err.Error(), "%!w") {
			t.Errorf("malformed error message: %v", err)
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		content := `
[api]
base_url = "https://api.twilight.example"
rate_limit = 2.5

[database]
path = "/tmp/custom.db"

[callback]
host = "0.0.0.0"
port = 9999

[posts]
limit = 50
`
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.BaseURL != "https://api.twilight.example" {
			t.Errorf("unexpected base URL: %s", config.API.BaseURL)
		}
		if config.API.RateLimit != 2.5 {
			t.Errorf("unexpected rate limit: %f", config.API.RateLimit)
		}
		if config.Callback.Port != 9999 {
			t.Errorf("unexpected callback port: %d", config.Callback.Port)
		}
		if config.Posts.Limit != 50 {
			t.Errorf("unexpected posts limit: %d", config.Posts.Limit)
		}
	})

	t.Run("LoadConfig with missing file", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("LoadConfig with malformed TOML", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")
		if err := os.WriteFile(configPath, []byte("[api\nbase_url ="), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected parse error")
		}
	})
}
