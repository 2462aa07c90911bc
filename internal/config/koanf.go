// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists config file locations in priority order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/skywatch/config.yaml",
	"/etc/skywatch/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    90 * time.Second, // manual cycles can take a full OpenSky timeout plus SMTP
			ShutdownTimeout: 10 * time.Second,
			Environment:     "production",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		OpenSky: OpenSkyConfig{
			Enabled:     true,
			URL:         "https://opensky-network.org/api/states/all",
			Timeout:     15 * time.Second,
			MinInterval: 10 * time.Second,
		},
		Cycle: CycleConfig{
			Interval:       60 * time.Second,
			CooldownWindow: 300 * time.Second,
			Timeout:        60 * time.Second,
		},
		Stream: StreamConfig{
			Interval:    60 * time.Second,
			SendTimeout: 10 * time.Second,
		},
		Simulation: SimulationConfig{
			Enabled: true,
		},
		Email: EmailConfig{
			Enabled:  true,
			SMTPHost: "smtp.gmail.com",
			SMTPPort: 465,
			TLSMode:  "implicit",
			FromName: "Skywatch Alerts",
			Timeout:  30 * time.Second,
		},
		Webhook: WebhookConfig{
			Enabled:   false,
			Timeout:   10 * time.Second,
			RateLimit: 1,
		},
		Database: DatabaseConfig{
			Enabled:   false,
			Path:      "/data/skywatch.duckdb",
			MaxMemory: "512MB",
		},
		Cooldown: CooldownConfig{
			StoreEnabled: false,
			StorePath:    "/data/cooldown",
			PurgeEvery:   5 * time.Minute,
		},
		Events: EventsConfig{
			Enabled:        true,
			Backend:        "gochannel",
			NATSURL:        "nats://127.0.0.1:4222",
			EmbeddedServer: true,
			StoreDir:       "/data/nats",
			ViolationTopic: "skywatch.violations",
			CycleTopic:     "skywatch.cycles",
		},
		Security: SecurityConfig{
			CORSOrigins: []string{
				"http://localhost:3000",
				"http://localhost:3001",
				"http://127.0.0.1:3000",
				"http://127.0.0.1:3001",
			},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
	}
}

// LoadWithKoanf layers defaults, the optional YAML file and the environment.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// EMAIL_ADDRESS -> email.address, HTTP_PORT -> server.port
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are split on commas when they arrive as a single string.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment names to koanf paths. Names not
// listed here are ignored so unrelated variables cannot leak into the config.
var envMappings = map[string]string{
	"http_host":        "server.host",
	"http_port":        "server.port",
	"http_timeout":     "server.write_timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"opensky_enabled":      "opensky.enabled",
	"opensky_url":          "opensky.url",
	"opensky_timeout":      "opensky.timeout",
	"opensky_min_interval": "opensky.min_interval",
	"opensky_username":     "opensky.username",
	"opensky_password":     "opensky.password",

	"cycle_interval": "cycle.interval",
	"alert_cooldown": "cycle.cooldown_window",
	"cycle_timeout":  "cycle.timeout",

	"stream_interval":     "stream.interval",
	"stream_send_timeout": "stream.send_timeout",

	"simulation_enabled": "simulation.enabled",
	"simulation_seed":    "simulation.seed",

	// Names kept from the original deployment scripts.
	"email_enabled":   "email.enabled",
	"email_address":   "email.address",
	"email_password":  "email.password",
	"alert_email":     "email.recipient",
	"smtp_host":       "email.smtp_host",
	"smtp_port":       "email.smtp_port",
	"smtp_tls_mode":   "email.tls_mode",
	"email_from_name": "email.from_name",

	"webhook_enabled":    "webhook.enabled",
	"webhook_url":        "webhook.url",
	"webhook_timeout":    "webhook.timeout",
	"webhook_rate_limit": "webhook.rate_limit",

	"drone_db_enabled":  "database.enabled",
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	"cooldown_store_enabled": "cooldown.store_enabled",
	"cooldown_store_path":    "cooldown.store_path",
	"cooldown_purge_every":   "cooldown.purge_every",

	"events_enabled":         "events.enabled",
	"events_backend":         "events.backend",
	"nats_url":               "events.nats_url",
	"nats_embedded":          "events.embedded_server",
	"nats_store_dir":         "events.store_dir",
	"events_violation_topic": "events.violation_topic",
	"events_cycle_topic":     "events.cycle_topic",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
}

func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
