// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

/*
Package metrics provides Prometheus metrics for Skywatch.

Metrics are registered on the default registry with promauto and exposed
at GET /metrics:

	curl http://localhost:8000/metrics

# Available Metrics

Cycle Metrics:
  - skywatch_cycles_total: cycles by mode (live, simulated)
  - skywatch_cycle_duration_seconds: cycle latency (histogram)
  - skywatch_drones_classified_total: reports by status
  - skywatch_violations_total: new violation events after cooldown
  - skywatch_cooldown_entries: entities currently suppressed

Ingestion Metrics:
  - skywatch_opensky_requests_total: upstream requests by outcome
  - skywatch_normalizer_rejections_total: rejected state vectors by reason

Delivery Metrics:
  - skywatch_notifications_total: alert batches by channel and result
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open

API and WebSocket Metrics:
  - api_requests_total, api_request_duration_seconds
  - websocket_connections, websocket_messages_sent_total

# Example Alerts

	- alert: SkywatchSimulationOnly
	  expr: rate(skywatch_cycles_total{mode="live"}[30m]) == 0
	  for: 30m

	- alert: SkywatchAlertDeliveryFailing
	  expr: rate(skywatch_notifications_total{result="failure"}[15m]) > 0
*/
package metrics
