// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns the documented defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.OpenSky.URL != "https://opensky-network.org/api/states/all" {
		t.Errorf("OpenSky.URL = %q", cfg.OpenSky.URL)
	}
	if cfg.OpenSky.Timeout != 15*time.Second {
		t.Errorf("OpenSky.Timeout = %v, want 15s", cfg.OpenSky.Timeout)
	}
	if cfg.Cycle.CooldownWindow != 300*time.Second {
		t.Errorf("Cycle.CooldownWindow = %v, want 5m", cfg.Cycle.CooldownWindow)
	}
	if cfg.Stream.Interval != 60*time.Second {
		t.Errorf("Stream.Interval = %v, want 60s", cfg.Stream.Interval)
	}
	if cfg.Email.SMTPHost != "smtp.gmail.com" || cfg.Email.SMTPPort != 465 {
		t.Errorf("Email SMTP = %s:%d, want smtp.gmail.com:465", cfg.Email.SMTPHost, cfg.Email.SMTPPort)
	}
	if cfg.Email.TLSMode != "implicit" {
		t.Errorf("Email.TLSMode = %q, want implicit", cfg.Email.TLSMode)
	}
	if cfg.Database.Enabled {
		t.Error("Database.Enabled should be false by default")
	}
	if len(cfg.Security.CORSOrigins) != 4 {
		t.Errorf("expected 4 default CORS origins, got %v", cfg.Security.CORSOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"EMAIL_ADDRESS", "email.address"},
		{"EMAIL_PASSWORD", "email.password"},
		{"ALERT_EMAIL", "email.recipient"},
		{"HTTP_PORT", "server.port"},
		{"LOG_LEVEL", "logging.level"},
		{"ALERT_COOLDOWN", "cycle.cooldown_window"},
		{"OPENSKY_URL", "opensky.url"},
		{"DRONE_DB_ENABLED", "database.enabled"},
		{"DUCKDB_PATH", "database.path"},
		{"COOLDOWN_STORE_PATH", "cooldown.store_path"},
		{"EVENTS_BACKEND", "events.backend"},
		{"NATS_URL", "events.nats_url"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"cycle_interval", "cycle.interval"},

		// Unmapped variables are dropped
		{"PATH", ""},
		{"HOME", ""},
		{"RANDOM_VAR", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "custom.yaml")
	if err := os.WriteFile(configPath, []byte("server:\n  port: 9000\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	t.Setenv(ConfigPathEnvVar, configPath)
	if got := findConfigFile(); got != configPath {
		t.Errorf("findConfigFile() = %q, want %q", got, configPath)
	}

	t.Setenv(ConfigPathEnvVar, filepath.Join(tmpDir, "missing.yaml"))
	if got := findConfigFile(); got != "" {
		t.Errorf("findConfigFile() = %q, want empty for missing file", got)
	}
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("EMAIL_ADDRESS", "alerts@example.com")
	t.Setenv("EMAIL_PASSWORD", "app-password")
	t.Setenv("ALERT_EMAIL", "ops@example.com")
	t.Setenv("ALERT_COOLDOWN", "2m")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Email.Address != "alerts@example.com" {
		t.Errorf("Email.Address = %q", cfg.Email.Address)
	}
	if cfg.Email.Recipient != "ops@example.com" {
		t.Errorf("Email.Recipient = %q", cfg.Email.Recipient)
	}
	if cfg.Cycle.CooldownWindow != 2*time.Minute {
		t.Errorf("Cycle.CooldownWindow = %v, want 2m", cfg.Cycle.CooldownWindow)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if strings.Join(cfg.Security.CORSOrigins, ",") != strings.Join(want, ",") {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	configContent := `
server:
  port: 8888
  host: "127.0.0.1"
email:
  enabled: false
database:
  enabled: true
  path: "/tmp/skywatch-test.duckdb"
logging:
  level: "warn"
`
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 8888 || cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server = %s, want 127.0.0.1:8888", cfg.Server.Addr())
	}
	if cfg.Email.Enabled {
		t.Error("Email.Enabled should come from the file (false)")
	}
	if !cfg.Database.Enabled || cfg.Database.Path != "/tmp/skywatch-test.duckdb" {
		t.Errorf("Database = %+v", cfg.Database)
	}
	// env beats file
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	// defaults still apply
	if cfg.OpenSky.MinInterval != 10*time.Second {
		t.Errorf("OpenSky.MinInterval = %v, want 10s", cfg.OpenSky.MinInterval)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"bad opensky url", func(c *Config) { c.OpenSky.URL = "ftp://x" }, "OPENSKY_URL"},
		{"opensky disabled ignores url", func(c *Config) {
			c.OpenSky.Enabled = false
			c.OpenSky.URL = ""
		}, ""},
		{"zero cooldown", func(c *Config) { c.Cycle.CooldownWindow = 0 }, "ALERT_COOLDOWN"},
		{"bad tls mode", func(c *Config) { c.Email.TLSMode = "ssl" }, "SMTP_TLS_MODE"},
		{"webhook without url", func(c *Config) { c.Webhook.Enabled = true }, "WEBHOOK_URL"},
		{"database without path", func(c *Config) {
			c.Database.Enabled = true
			c.Database.Path = ""
		}, "DUCKDB_PATH"},
		{"unknown events backend", func(c *Config) { c.Events.Backend = "kafka" }, "EVENTS_BACKEND"},
		{"rate limit zero", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQUESTS"},
		{"rate limit disabled", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
