// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package models

import (
	"time"
)

// APIResponse is the envelope used by endpoints that are not bound to a
// fixed legacy payload (health, drone logs, errors). The drone, zone and
// force-drone endpoints return their payloads unwrapped because existing
// map clients read those shapes directly.
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {"code": "VALIDATION_ERROR", "message": "latitude is required"},
//	  "metadata": {"timestamp": "2026-01-02T15:04:05Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data,omitempty"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response timing.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is a machine-readable error.
//
// Codes used by the API:
//   - VALIDATION_ERROR: bad query parameters
//   - DATABASE_ERROR: drone log query failed
//   - SERVICE_UNAVAILABLE: optional component disabled
//   - RATE_LIMIT_EXCEEDED: too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is returned by GET /health.
type HealthStatus struct {
	Status        string     `json:"status"`
	LastCycleAt   *time.Time `json:"last_cycle_at,omitempty"`
	LastSource    string     `json:"last_source,omitempty"`
	WSClients     int        `json:"ws_clients"`
	Persistence   bool       `json:"persistence"`
	DroneLogs     *int64     `json:"drone_logs,omitempty"`
	CooldownCount int        `json:"cooldown_entries"`
	Cycles        int64      `json:"cycles"`
}

// ForceDroneCallsign is the callsign reported by POST /force-drone.
const ForceDroneCallsign = "TEST-DRONE"

// PointCheck is the body of POST /force-drone.
type PointCheck struct {
	Callsign     string  `json:"callsign"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Unauthorized bool    `json:"unauthorized"`
	Zone         *string `json:"zone"`
}

// BannerResponse is the body of GET /.
type BannerResponse struct {
	Message string `json:"message"`
}

// DroneLogsResponse is the data of GET /drone-logs.
type DroneLogsResponse struct {
	Logs  []DroneLog `json:"logs"`
	Count int        `json:"count"`
	Limit int        `json:"limit"`
}

// ViolationsResponse is the data of GET /violations.
type ViolationsResponse struct {
	Violations []ViolationEvent `json:"violations"`
	Total      int64            `json:"total"`
}
