// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package ingestion

import (
	"math"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stateVector builds a 17-field OpenSky state vector.
func stateVector(callsign any, lon, lat, baro, velocity, geo any) []any {
	return []any{
		"abc123",   // 0  icao24
		callsign,   // 1  callsign
		"US",       // 2  origin
		1700000000, // 3  time_position
		1700000000, // 4  last_contact
		lon,        // 5  longitude
		lat,        // 6  latitude
		baro,       // 7  baro_altitude
		false,      // 8  on_ground
		velocity,   // 9  velocity
		180.0,      // 10 true_track
		0.0,        // 11 vertical_rate
		nil,        // 12 sensors
		geo,        // 13 geo_altitude
		"1234",     // 14 squawk
		false,      // 15 spi
		0,          // 16 position_source
	}
}

func TestNormalize_Valid(t *testing.T) {
	r, rej := Normalize(stateVector("UAL456  ", -73.9, 40.7, 10000.0, 250.0, 10500.0))
	require.Equal(t, RejectNone, rej)

	assert.Equal(t, "UAL456", r.EntityID)
	assert.InDelta(t, 40.7, r.Latitude, 1e-9)
	assert.InDelta(t, -73.9, r.Longitude, 1e-9)
	assert.InDelta(t, 10500.0, r.AltitudeM, 1e-9, "geo altitude is preferred")
	assert.InDelta(t, 900.0, r.SpeedKmh, 1e-9)
	assert.Empty(t, r.SourceTag)
}

func TestNormalize_Rejections(t *testing.T) {
	tests := []struct {
		name string
		raw  []any
		want Rejection
	}{
		{"nil vector", nil, RejectTooShort},
		{"13 fields", make([]any, 13), RejectTooShort},
		{"nil callsign", stateVector(nil, -73.9, 40.7, nil, nil, nil), RejectBlankCallsign},
		{"whitespace callsign", stateVector("   ", -73.9, 40.7, nil, nil, nil), RejectBlankCallsign},
		{"numeric callsign", stateVector(42, -73.9, 40.7, nil, nil, nil), RejectBlankCallsign},
		{"nil latitude", stateVector("A1", -73.9, nil, nil, nil, nil), RejectInvalidLatitude},
		{"string latitude", stateVector("A1", -73.9, "40.7", nil, nil, nil), RejectInvalidLatitude},
		{"latitude above 90", stateVector("A1", -73.9, 90.5, nil, nil, nil), RejectInvalidLatitude},
		{"latitude NaN", stateVector("A1", -73.9, math.NaN(), nil, nil, nil), RejectInvalidLatitude},
		{"nil longitude", stateVector("A1", nil, 40.7, nil, nil, nil), RejectInvalidLongitude},
		{"longitude below -180", stateVector("A1", -180.1, 40.7, nil, nil, nil), RejectInvalidLongitude},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rej := Normalize(tt.raw)
			assert.Equal(t, tt.want, rej)
		})
	}
}

func TestNormalize_AltitudeFallback(t *testing.T) {
	tests := []struct {
		name      string
		baro, geo any
		want      float64
	}{
		{"geo preferred", 1000.0, 1100.0, 1100.0},
		{"baro when geo missing", 1000.0, nil, 1000.0},
		{"zero when both missing", nil, nil, 0},
		{"integer geo", nil, 750, 750},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, rej := Normalize(stateVector("A1", 0.5, 0.5, tt.baro, nil, tt.geo))
			require.Equal(t, RejectNone, rej)
			assert.InDelta(t, tt.want, r.AltitudeM, 1e-9)
		})
	}
}

func TestNormalize_Velocity(t *testing.T) {
	tests := []struct {
		name     string
		velocity any
		want     float64
	}{
		{"missing", nil, 0},
		{"rounded to one decimal", 12.345, 44.4}, // 44.442
		{"rounds half up", 0.125, 0.5},           // 0.45
		{"json number", json.Number("10"), 36.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, rej := Normalize(stateVector("A1", 0.5, 0.5, nil, tt.velocity, nil))
			require.Equal(t, RejectNone, rej)
			assert.InDelta(t, tt.want, r.SpeedKmh, 1e-9)
		})
	}
}

func TestNormalize_BoundaryCoordinates(t *testing.T) {
	for _, c := range [][2]float64{{90, 180}, {-90, -180}, {0, 0}} {
		_, rej := Normalize(stateVector("EDGE", c[1], c[0], nil, nil, nil))
		assert.Equal(t, RejectNone, rej, "lat=%v lon=%v", c[0], c[1])
	}
}
