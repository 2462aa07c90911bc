// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

/*
Package config loads and validates Skywatch configuration.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file, then environment variables. Only environment variables listed in
envMappings are read.

# Key Environment Variables

	HTTP_PORT            listen port (default 8000)
	CYCLE_INTERVAL       batch processor period (default 60s)
	ALERT_COOLDOWN       per-callsign alert cooldown (default 300s)
	OPENSKY_URL          state vector endpoint
	EMAIL_ADDRESS        SMTP sender and login
	EMAIL_PASSWORD       SMTP password (app password for Gmail)
	ALERT_EMAIL          alert recipient
	DRONE_DB_ENABLED     enable the DuckDB drone log
	COOLDOWN_STORE_PATH  BadgerDB directory for cooldown state
	EVENTS_BACKEND       gochannel or nats

# Example config.yaml

	server:
	  port: 8000
	cycle:
	  interval: 60s
	  cooldown_window: 5m
	email:
	  smtp_host: smtp.gmail.com
	  smtp_port: 465
	  tls_mode: implicit
	database:
	  enabled: true
	  path: /data/skywatch.duckdb
*/
package config
