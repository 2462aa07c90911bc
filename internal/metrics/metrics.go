// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - Processing cycles and classification outcomes
// - OpenSky ingestion and normalizer rejections
// - Alert delivery channels
// - DuckDB drone log queries
// - API endpoints and WebSocket clients

var (
	// Cycle Metrics
	CyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skywatch_cycles_total",
			Help: "Total number of processing cycles",
		},
		[]string{"mode"}, // "live", "simulated"
	)

	CycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "skywatch_cycle_duration_seconds",
			Help:    "Duration of a processing cycle in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
	)

	CycleLastCompleted = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "skywatch_cycle_last_completed_timestamp_seconds",
			Help: "Unix timestamp of the last completed cycle",
		},
	)

	DronesClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skywatch_drones_classified_total",
			Help: "Total number of classified drone reports",
		},
		[]string{"status"}, // "authorized", "unauthorized"
	)

	ViolationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skywatch_violations_total",
			Help: "Total number of new violation events (after cooldown)",
		},
	)

	CooldownEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "skywatch_cooldown_entries",
			Help: "Current number of entities in alert cooldown",
		},
	)

	// Ingestion Metrics
	NormalizerRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skywatch_normalizer_rejections_total",
			Help: "Total number of raw state vectors rejected by the normalizer",
		},
		[]string{"reason"},
	)

	OpenSkyRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skywatch_opensky_requests_total",
			Help: "Total number of OpenSky requests by outcome",
		},
		[]string{"outcome"},
	)

	OpenSkyRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "skywatch_opensky_request_duration_seconds",
			Help:    "OpenSky request duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		},
	)

	// Notification Metrics
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skywatch_notifications_total",
			Help: "Total number of alert batch deliveries by channel and result",
		},
		[]string{"channel", "result"},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"}, // "write", "slow_client", "upgrade"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Event Bus Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skywatch_events_published_total",
			Help: "Total number of events published to the event bus",
		},
		[]string{"topic"},
	)

	EventsPublishErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skywatch_events_publish_errors_total",
			Help: "Total number of failed event publishes",
		},
		[]string{"topic"},
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skywatch_events_consumed_total",
			Help: "Total number of events handled by in-process consumers",
		},
		[]string{"topic"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordCycle records the outcome of one processing cycle.
func RecordCycle(simulated bool, duration time.Duration, authorized, unauthorized, violations int) {
	mode := "live"
	if simulated {
		mode = "simulated"
	}
	CyclesTotal.WithLabelValues(mode).Inc()
	CycleDuration.Observe(duration.Seconds())
	CycleLastCompleted.Set(float64(time.Now().Unix()))
	DronesClassified.WithLabelValues("authorized").Add(float64(authorized))
	DronesClassified.WithLabelValues("unauthorized").Add(float64(unauthorized))
	ViolationsTotal.Add(float64(violations))
}

// RecordRejection records a normalizer rejection.
func RecordRejection(reason string) {
	NormalizerRejections.WithLabelValues(reason).Inc()
}

// RecordOpenSkyRequest records one upstream request. outcome is "ok" or the
// fallback reason (e.g. "429", "Timeout").
func RecordOpenSkyRequest(outcome string, duration time.Duration) {
	OpenSkyRequests.WithLabelValues(outcome).Inc()
	if duration > 0 {
		OpenSkyRequestDuration.Observe(duration.Seconds())
	}
}

// RecordNotification records a delivery attempt on one channel.
func RecordNotification(channel string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	NotificationsTotal.WithLabelValues(channel, result).Inc()
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordAPIStatus is RecordAPIRequest for an integer status code.
func RecordAPIStatus(method, endpoint string, status int, duration time.Duration) {
	RecordAPIRequest(method, endpoint, strconv.Itoa(status), duration)
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordEventPublish records a publish attempt on topic.
func RecordEventPublish(topic string, err error) {
	if err != nil {
		EventsPublishErrors.WithLabelValues(topic).Inc()
		return
	}
	EventsPublished.WithLabelValues(topic).Inc()
}
