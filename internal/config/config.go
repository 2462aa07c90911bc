// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
//
// Loading order (Koanf v2, highest priority last):
//  1. Defaults from defaultConfig()
//  2. Optional YAML file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment variables mapped in envTransformFunc
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	OpenSky    OpenSkyConfig    `koanf:"opensky"`
	Cycle      CycleConfig      `koanf:"cycle"`
	Stream     StreamConfig     `koanf:"stream"`
	Simulation SimulationConfig `koanf:"simulation"`
	Email      EmailConfig      `koanf:"email"`
	Webhook    WebhookConfig    `koanf:"webhook"`
	Database   DatabaseConfig   `koanf:"database"`
	Cooldown   CooldownConfig   `koanf:"cooldown"`
	Events     EventsConfig     `koanf:"events"`
	Security   SecurityConfig   `koanf:"security"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// OpenSkyConfig configures the live state-vector source.
type OpenSkyConfig struct {
	Enabled bool          `koanf:"enabled"`
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
	// MinInterval is the shortest gap between two upstream requests.
	// Anonymous OpenSky access allows one /states/all call every 10 seconds.
	MinInterval time.Duration `koanf:"min_interval"`
	Username    string        `koanf:"username"`
	Password    string        `koanf:"password"`
}

// CycleConfig configures the periodic batch processor.
type CycleConfig struct {
	Interval       time.Duration `koanf:"interval"`
	CooldownWindow time.Duration `koanf:"cooldown_window"`
	// Timeout bounds one cycle, including fetch and notification.
	Timeout time.Duration `koanf:"timeout"`
}

// StreamConfig configures websocket delivery.
type StreamConfig struct {
	Interval    time.Duration `koanf:"interval"`
	SendTimeout time.Duration `koanf:"send_timeout"`
}

// SimulationConfig configures the fallback synthetic data generator.
type SimulationConfig struct {
	Enabled bool `koanf:"enabled"`
	// Seed fixes the random source when non-zero.
	Seed uint64 `koanf:"seed"`
}

// EmailConfig configures the SMTP alert channel.
type EmailConfig struct {
	Enabled   bool          `koanf:"enabled"`
	SMTPHost  string        `koanf:"smtp_host"`
	SMTPPort  int           `koanf:"smtp_port"`
	TLSMode   string        `koanf:"tls_mode"` // implicit, starttls or none
	Address   string        `koanf:"address"`
	Password  string        `koanf:"password"`
	Recipient string        `koanf:"recipient"`
	FromName  string        `koanf:"from_name"`
	Timeout   time.Duration `koanf:"timeout"`
}

// WebhookConfig configures the JSON webhook alert channel.
type WebhookConfig struct {
	Enabled   bool          `koanf:"enabled"`
	URL       string        `koanf:"url"`
	Timeout   time.Duration `koanf:"timeout"`
	RateLimit float64       `koanf:"rate_limit"` // requests per second
}

// DatabaseConfig configures the DuckDB drone log.
type DatabaseConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`
}

// CooldownConfig configures persistence of alert cooldown state.
type CooldownConfig struct {
	StoreEnabled bool          `koanf:"store_enabled"`
	StorePath    string        `koanf:"store_path"`
	PurgeEvery   time.Duration `koanf:"purge_every"`
}

// EventsConfig configures the violation event bus.
type EventsConfig struct {
	Enabled bool `koanf:"enabled"`
	// Backend is gochannel (in-process) or nats (requires -tags nats).
	Backend        string `koanf:"backend"`
	NATSURL        string `koanf:"nats_url"`
	EmbeddedServer bool   `koanf:"embedded_server"`
	StoreDir       string `koanf:"store_dir"`
	ViolationTopic string `koanf:"violation_topic"`
	CycleTopic     string `koanf:"cycle_topic"`
}

// SecurityConfig holds CORS and request rate limiting.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Load reads configuration from defaults, config file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}
