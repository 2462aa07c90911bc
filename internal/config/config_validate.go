// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that the configuration is usable.
// Missing email credentials are not an error: the notifier logs and skips
// sends, matching how the alert mailer has always behaved.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateOpenSky(); err != nil {
		return err
	}
	if err := c.validateCycle(); err != nil {
		return err
	}
	if err := c.validateEmail(); err != nil {
		return err
	}
	if err := c.validateWebhook(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateEvents(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateOpenSky() error {
	if !c.OpenSky.Enabled {
		return nil
	}
	if err := validateHTTPURL(c.OpenSky.URL); err != nil {
		return fmt.Errorf("OPENSKY_URL is invalid: %w", err)
	}
	if c.OpenSky.Timeout <= 0 {
		return fmt.Errorf("OPENSKY_TIMEOUT must be positive")
	}
	if c.OpenSky.MinInterval < 0 {
		return fmt.Errorf("OPENSKY_MIN_INTERVAL cannot be negative")
	}
	return nil
}

func (c *Config) validateCycle() error {
	if c.Cycle.Interval <= 0 {
		return fmt.Errorf("CYCLE_INTERVAL must be positive")
	}
	if c.Cycle.CooldownWindow <= 0 {
		return fmt.Errorf("ALERT_COOLDOWN must be positive")
	}
	if c.Cycle.Timeout <= 0 {
		return fmt.Errorf("CYCLE_TIMEOUT must be positive")
	}
	if c.Stream.Interval <= 0 {
		return fmt.Errorf("STREAM_INTERVAL must be positive")
	}
	if c.Stream.SendTimeout <= 0 {
		return fmt.Errorf("STREAM_SEND_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateEmail() error {
	if !c.Email.Enabled {
		return nil
	}
	switch c.Email.TLSMode {
	case "implicit", "starttls", "none":
	default:
		return fmt.Errorf("SMTP_TLS_MODE must be implicit, starttls or none, got %q", c.Email.TLSMode)
	}
	if c.Email.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST is required when email alerts are enabled")
	}
	if c.Email.SMTPPort < 1 || c.Email.SMTPPort > 65535 {
		return fmt.Errorf("SMTP_PORT must be between 1 and 65535, got %d", c.Email.SMTPPort)
	}
	return nil
}

func (c *Config) validateWebhook() error {
	if !c.Webhook.Enabled {
		return nil
	}
	if err := validateHTTPURL(c.Webhook.URL); err != nil {
		return fmt.Errorf("WEBHOOK_URL is invalid: %w", err)
	}
	if c.Webhook.RateLimit <= 0 {
		return fmt.Errorf("WEBHOOK_RATE_LIMIT must be positive")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if !c.Database.Enabled {
		return nil
	}
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required when DRONE_DB_ENABLED=true")
	}
	return nil
}

func (c *Config) validateEvents() error {
	if !c.Events.Enabled {
		return nil
	}
	switch c.Events.Backend {
	case "gochannel", "nats":
	default:
		return fmt.Errorf("EVENTS_BACKEND must be gochannel or nats, got %q", c.Events.Backend)
	}
	if c.Events.ViolationTopic == "" || c.Events.CycleTopic == "" {
		return fmt.Errorf("event topics cannot be empty")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive")
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func validateHTTPURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required")
	}
	return nil
}
