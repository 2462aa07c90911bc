// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

/*
Command server runs the Skywatch drone monitoring service.

# Startup order

 1. Configuration (koanf: defaults, optional YAML file, environment)
 2. Logging (zerolog, bridged to slog for the supervisor)
 3. Cooldown tracker, restored from badger when COOLDOWN_STORE_ENABLED
 4. DuckDB drone log when DRONE_DB_ENABLED
 5. OpenSky client, simulation generator and alert channels
 6. Event bus and consumer router when EVENTS_ENABLED
 7. Detection processor, websocket hub and HTTP router
 8. Supervisor tree; blocks until SIGINT or SIGTERM

# Build tags

	go build ./cmd/server               # in-process event bus only
	go build -tags nats ./cmd/server    # adds the NATS JetStream backend

# Example

	export EMAIL_ENABLED=true
	export EMAIL_ADDRESS=alerts@example.com
	export EMAIL_PASSWORD=app-password
	export ALERT_EMAIL=ops@example.com
	export DRONE_DB_ENABLED=true
	./skywatch

The API listens on HTTP_PORT (default 8000). Swagger UI is served at
/swagger/index.html and Prometheus metrics at /metrics.
*/
package main
