// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

// Package database persists classified drone reports to DuckDB.
//
// Persistence is optional (DRONE_DB_ENABLED). When enabled, every cycle's
// reports are appended to the drone_logs table in one transaction and the
// API serves the most recent rows from GET /drone-logs. Write failures are
// logged by the caller and never stop a cycle.
//
// # Schema
//
//	drone_logs(id, callsign, latitude, longitude, altitude, velocity,
//	           unauthorized, zone, source, logged_at)
//
// The driver is github.com/duckdb/duckdb-go/v2 (CGO). Extension auto-install
// is disabled so startup never reaches the network.
package database
