// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

/*
Package api provides the HTTP surface of Skywatch on the Chi router.

Endpoints:

	GET       /                       service banner
	GET       /ws                     websocket stream of cycle results
	GET       /restricted-zones       the static zone registry
	GET       /fetch-drones-live      runs one cycle, returns {drones, validation}
	GET, POST /fetch-drones-manual    same as /fetch-drones-live
	POST      /force-drone            classifies a single TEST-DRONE point
	GET       /drone-logs             recent persisted reports, newest first
	GET       /violations             recent violation events seen on the bus
	GET       /health                 liveness and component status
	GET       /metrics                Prometheus exposition
	GET       /swagger/*              API documentation

The drone, zone and force-drone endpoints return their payloads unwrapped
because map clients read those shapes directly. Health, drone logs,
violations and every error use the models.APIResponse envelope.

Middleware stack (outermost first): request id with logging context, real
IP, panic recovery, CORS, response compression. REST routes additionally
get per-IP rate limiting, security headers and Prometheus request metrics.
The websocket route is never compressed or rate limited per frame.

Cycle endpoints share the in-flight cycle with the periodic driver, so a
burst of HTTP callers never starts more than one upstream fetch.
*/
package api
