// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

// Package query builds parameterized WHERE clauses for drone_logs queries.
//
// Every value goes through a placeholder; column names are fixed by the
// helper methods, so user input never reaches the SQL text.
package query
