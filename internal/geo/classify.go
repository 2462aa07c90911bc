// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package geo

import (
	"github.com/tomtom215/skywatch/internal/models"
)

// Classify reports whether (lat, lon) lies inside any zone. Zones are
// checked in slice order and the first containing zone wins. A point on
// the boundary (distance == radius) is inside.
func Classify(lat, lon *float64, zones []models.RestrictedZone) models.Classification {
	if lat == nil || lon == nil {
		return models.Classification{}
	}
	p := &Point{Lat: *lat, Lon: *lon}
	for i := range zones {
		z := &zones[i]
		if DistanceKm(p, &Point{Lat: z.Latitude, Lon: z.Longitude}) <= z.RadiusKm {
			name := z.Name
			return models.Classification{Unauthorized: true, Zone: &name}
		}
	}
	return models.Classification{}
}

// ClassifyPoint is Classify for callers that always have coordinates.
func ClassifyPoint(lat, lon float64, zones []models.RestrictedZone) models.Classification {
	return Classify(&lat, &lon, zones)
}
