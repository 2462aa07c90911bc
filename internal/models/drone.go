// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package models

import (
	"math"
	"time"
)

// PositionReport is one normalized sample. Reports that fail normalization
// never reach this type.
type PositionReport struct {
	EntityID  string
	Latitude  float64
	Longitude float64
	AltitudeM float64
	SpeedKmh  float64
	SourceTag string
}

// Classification is the zone check outcome. Zone is nil when authorized.
type Classification struct {
	Unauthorized bool
	Zone         *string
}

// ZoneName returns the matched zone name or "".
func (c Classification) ZoneName() string {
	if c.Zone == nil {
		return ""
	}
	return *c.Zone
}

// ClassifiedReport is a drone as delivered to clients and persisted.
type ClassifiedReport struct {
	Callsign     string  `json:"callsign"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Altitude     int64   `json:"altitude"` // meters, rounded
	Velocity     float64 `json:"velocity"` // km/h, one decimal
	Unauthorized bool    `json:"unauthorized"`
	Zone         *string `json:"zone"`
	Source       string  `json:"source"`
}

// NewClassifiedReport joins a report with its classification.
func NewClassifiedReport(r PositionReport, c Classification) ClassifiedReport {
	return ClassifiedReport{
		Callsign:     r.EntityID,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		Altitude:     int64(math.Round(r.AltitudeM)),
		Velocity:     r.SpeedKmh,
		Unauthorized: c.Unauthorized,
		Zone:         c.Zone,
		Source:       r.SourceTag,
	}
}

// ZoneName returns the zone name or "".
func (r ClassifiedReport) ZoneName() string {
	if r.Zone == nil {
		return ""
	}
	return *r.Zone
}

// ViolationEvent is emitted once per entity per cooldown window.
type ViolationEvent struct {
	EntityID   string    `json:"callsign"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	ZoneName   string    `json:"zone"`
	DetectedAt time.Time `json:"detected_at"`
}

// DroneLog is a persisted drone_logs row.
type DroneLog struct {
	ID           int64     `json:"id"`
	Callsign     string    `json:"callsign"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Altitude     int64     `json:"altitude"`
	Velocity     float64   `json:"velocity"`
	Unauthorized bool      `json:"unauthorized"`
	Zone         *string   `json:"zone"`
	Source       string    `json:"source"`
	LoggedAt     time.Time `json:"logged_at"`
}
