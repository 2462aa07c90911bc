// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

/*
Package geo classifies positions against restricted airspace.

DistanceKm is the haversine great-circle distance on a 6371 km sphere.
Classify walks a zone list in order and reports the first zone whose
radius contains the point.

# Overlapping Zones

Zones may overlap (the Pentagon and White House circles do). The zone
reported is always the earliest one in registry order; there is no
priority field. Callers that need a specific zone to win must place it
first.

# Missing Coordinates

A nil latitude or longitude classifies as authorized. Missing data never
produces a violation.
*/
package geo
