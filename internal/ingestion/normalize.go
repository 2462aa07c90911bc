// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package ingestion

import (
	"math"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/skywatch/internal/models"
)

// Rejection explains why a raw state vector was dropped. The zero value
// means the vector was accepted.
type Rejection string

const (
	RejectNone             Rejection = ""
	RejectTooShort         Rejection = "too_short"
	RejectBlankCallsign    Rejection = "blank_callsign"
	RejectInvalidLatitude  Rejection = "invalid_latitude"
	RejectInvalidLongitude Rejection = "invalid_longitude"
)

// MinStateFields is the shortest state vector that carries geo altitude.
const MinStateFields = 14

const (
	idxCallsign    = 1
	idxLongitude   = 5
	idxLatitude    = 6
	idxBaroAlt     = 7
	idxVelocity    = 9
	idxGeoAltitude = 13

	msToKmh = 3.6
)

// Normalize validates one raw state vector. Rejected vectors must not be
// classified, stored or counted.
func Normalize(raw []any) (models.PositionReport, Rejection) {
	if len(raw) < MinStateFields {
		return models.PositionReport{}, RejectTooShort
	}

	callsign, _ := raw[idxCallsign].(string)
	callsign = strings.TrimSpace(callsign)
	if callsign == "" {
		return models.PositionReport{}, RejectBlankCallsign
	}

	lat, ok := toFloat(raw[idxLatitude])
	if !ok || lat < -90 || lat > 90 {
		return models.PositionReport{}, RejectInvalidLatitude
	}
	lon, ok := toFloat(raw[idxLongitude])
	if !ok || lon < -180 || lon > 180 {
		return models.PositionReport{}, RejectInvalidLongitude
	}

	altitude, ok := toFloat(raw[idxGeoAltitude])
	if !ok {
		altitude, ok = toFloat(raw[idxBaroAlt])
		if !ok {
			altitude = 0
		}
	}

	var speed float64
	if v, ok := toFloat(raw[idxVelocity]); ok {
		speed = math.Round(v*msToKmh*10) / 10
	}

	return models.PositionReport{
		EntityID:  callsign,
		Latitude:  lat,
		Longitude: lon,
		AltitudeM: altitude,
		SpeedKmh:  speed,
	}, RejectNone
}

// toFloat accepts the numeric shapes a JSON decoder or a test may produce.
// NaN and infinities are treated as missing.
func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
