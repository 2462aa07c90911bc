// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package models

// ZoneCategory classifies a restricted zone.
type ZoneCategory string

const (
	ZoneCategoryAirport    ZoneCategory = "Airport"
	ZoneCategoryMilitary   ZoneCategory = "Military"
	ZoneCategoryGovernment ZoneCategory = "Government"
)

// Valid reports whether c is a known category.
func (c ZoneCategory) Valid() bool {
	switch c {
	case ZoneCategoryAirport, ZoneCategoryMilitary, ZoneCategoryGovernment:
		return true
	default:
		return false
	}
}

// RestrictedZone is a named circular exclusion area. Zones are immutable
// once the registry is built.
type RestrictedZone struct {
	Name      string       `json:"name"`
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	RadiusKm  float64      `json:"radius"`
	Category  ZoneCategory `json:"type"`
}

// ZoneListResponse is the body of GET /restricted-zones.
type ZoneListResponse struct {
	RestrictedZones []RestrictedZone `json:"restricted_zones"`
}
