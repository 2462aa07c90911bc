// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

// Package main provides the Skywatch HTTP server
//
// @title Skywatch API
// @version 1.0
// @description Restricted airspace drone monitoring: zone classification, live cycle results and alert history.
// @description
// @description ## Data flow
// @description
// @description A detection cycle fetches OpenSky state vectors (or generates a simulated batch when the
// @description live source is unavailable), classifies every report against the restricted zones and
// @description emails or posts alerts for unauthorized drones outside their cooldown window.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address. Health probes are not limited.
// @description
// @description ## Error Responses
// @description
// @description Envelope endpoints report errors as:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {"code": "VALIDATION_ERROR", "message": "...", "details": {}},
// @description   "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/skywatch
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /
//
// @tag.name Core
// @tag.description Banner and health probes
//
// @tag.name Zones
// @tag.description Restricted zone catalogue
//
// @tag.name Drones
// @tag.description Detection cycles, point checks and history
//
// @tag.name Realtime
// @tag.description WebSocket stream of cycle results
package main
