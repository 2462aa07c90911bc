// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

/*
Package ingestion fetches and normalizes OpenSky state vectors.

Client.Fetch never returns an error. Every upstream outcome is folded into
a FetchResult: OK with the raw state vectors, or not OK with a short reason
("429", "Timeout", "HTTP 503", ...) that becomes the simulation source tag
("Simulation (429)").

Normalize turns one raw state vector into a models.PositionReport or a
Rejection. The OpenSky state vector layout used here:

	[1]  callsign (string, padded with spaces)
	[5]  longitude (degrees)
	[6]  latitude (degrees)
	[7]  barometric altitude (m)
	[9]  velocity over ground (m/s)
	[13] geometric altitude (m)

Geometric altitude is preferred over barometric. Velocity is converted to
km/h and rounded to one decimal.
*/
package ingestion
