// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package geo

import (
	"github.com/tomtom215/skywatch/internal/models"
)

// defaultZones is the built-in registry. Order matters: see Classify.
var defaultZones = []models.RestrictedZone{
	// Airports
	{Name: "JFK Airport", Latitude: 40.6413, Longitude: -73.7781, RadiusKm: 10, Category: models.ZoneCategoryAirport},
	{Name: "Los Angeles Airport", Latitude: 33.9416, Longitude: -118.4085, RadiusKm: 10, Category: models.ZoneCategoryAirport},
	{Name: "Hartsfield-Jackson Atlanta Airport", Latitude: 33.6407, Longitude: -84.4277, RadiusKm: 10, Category: models.ZoneCategoryAirport},
	{Name: "Denver International Airport", Latitude: 39.8561, Longitude: -104.6737, RadiusKm: 10, Category: models.ZoneCategoryAirport},
	{Name: "Chicago O'Hare Airport", Latitude: 41.9742, Longitude: -87.9073, RadiusKm: 10, Category: models.ZoneCategoryAirport},
	{Name: "Dallas/Fort Worth Airport", Latitude: 32.8998, Longitude: -97.0403, RadiusKm: 10, Category: models.ZoneCategoryAirport},
	{Name: "Miami International Airport", Latitude: 25.7959, Longitude: -80.2870, RadiusKm: 10, Category: models.ZoneCategoryAirport},
	{Name: "San Francisco International Airport", Latitude: 37.6213, Longitude: -122.3790, RadiusKm: 10, Category: models.ZoneCategoryAirport},
	{Name: "Seattle-Tacoma International Airport", Latitude: 47.4502, Longitude: -122.3088, RadiusKm: 10, Category: models.ZoneCategoryAirport},
	{Name: "Orlando International Airport", Latitude: 28.4312, Longitude: -81.3081, RadiusKm: 10, Category: models.ZoneCategoryAirport},

	// Military
	{Name: "Pentagon", Latitude: 38.8719, Longitude: -77.0563, RadiusKm: 5, Category: models.ZoneCategoryMilitary},
	{Name: "Fort Liberty (Bragg)", Latitude: 35.1401, Longitude: -79.0060, RadiusKm: 10, Category: models.ZoneCategoryMilitary},
	{Name: "Edwards Air Force Base", Latitude: 34.9054, Longitude: -117.8844, RadiusKm: 15, Category: models.ZoneCategoryMilitary},
	{Name: "Wright-Patterson Air Force Base", Latitude: 39.8149, Longitude: -84.0497, RadiusKm: 10, Category: models.ZoneCategoryMilitary},
	{Name: "Norfolk Naval Base", Latitude: 36.9460, Longitude: -76.3087, RadiusKm: 10, Category: models.ZoneCategoryMilitary},

	// Government
	{Name: "White House", Latitude: 38.8977, Longitude: -77.0365, RadiusKm: 3, Category: models.ZoneCategoryGovernment},
	{Name: "Area 51", Latitude: 37.2431, Longitude: -115.7930, RadiusKm: 15, Category: models.ZoneCategoryGovernment},
	{Name: "Cheyenne Mountain Complex", Latitude: 38.6766, Longitude: -104.7887, RadiusKm: 8, Category: models.ZoneCategoryMilitary},
	{Name: "Los Alamos National Lab", Latitude: 35.8440, Longitude: -106.2857, RadiusKm: 8, Category: models.ZoneCategoryGovernment},
	{Name: "Groom Lake Facility (CIA)", Latitude: 37.2491, Longitude: -115.8001, RadiusKm: 12, Category: models.ZoneCategoryGovernment},
}

// Registry is an immutable, ordered zone list. It is safe for concurrent
// use without locking because nothing mutates it after construction.
type Registry struct {
	zones []models.RestrictedZone
}

// NewRegistry copies zones into a registry, keeping their order.
func NewRegistry(zones []models.RestrictedZone) *Registry {
	cp := make([]models.RestrictedZone, len(zones))
	copy(cp, zones)
	return &Registry{zones: cp}
}

// DefaultRegistry returns the built-in 20-zone registry.
func DefaultRegistry() *Registry {
	return NewRegistry(defaultZones)
}

// Zones returns a copy of the zones in registry order.
func (r *Registry) Zones() []models.RestrictedZone {
	cp := make([]models.RestrictedZone, len(r.zones))
	copy(cp, r.zones)
	return cp
}

// Len returns the number of zones.
func (r *Registry) Len() int { return len(r.zones) }

// Zone returns the i-th zone.
func (r *Registry) Zone(i int) models.RestrictedZone { return r.zones[i] }

// Classify runs Classify against this registry.
func (r *Registry) Classify(lat, lon *float64) models.Classification {
	return Classify(lat, lon, r.zones)
}
