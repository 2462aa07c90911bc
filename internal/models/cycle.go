// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package models

import "time"

// Validation summarizes one cycle. Authorized + Unauthorized == Total.
type Validation struct {
	Total            int  `json:"total_drones"`
	Authorized       int  `json:"authorized"`
	Unauthorized     int  `json:"unauthorized"`
	CountsConsistent bool `json:"validation_passed"`
}

// NewValidation counts the reports in a single pass.
func NewValidation(drones []ClassifiedReport) Validation {
	v := Validation{Total: len(drones)}
	for i := range drones {
		if drones[i].Unauthorized {
			v.Unauthorized++
		} else {
			v.Authorized++
		}
	}
	v.CountsConsistent = v.Authorized+v.Unauthorized == v.Total
	return v
}

// CycleResult is the output of one processing cycle. Only Drones and
// Validation are serialized; that is the payload map clients expect.
type CycleResult struct {
	Drones     []ClassifiedReport `json:"drones"`
	Validation Validation         `json:"validation"`

	ID          string           `json:"-"`
	Source      string           `json:"-"`
	StartedAt   time.Time        `json:"-"`
	Duration    time.Duration    `json:"-"`
	Events      []ViolationEvent `json:"-"`
	Simulated   bool             `json:"-"`
	Rejected    int              `json:"-"`
	NotifyError error            `json:"-"`
}

// CycleSummary is the event bus payload published after each cycle.
type CycleSummary struct {
	CycleID      string    `json:"cycle_id"`
	Source       string    `json:"source"`
	StartedAt    time.Time `json:"started_at"`
	DurationMS   int64     `json:"duration_ms"`
	Total        int       `json:"total_drones"`
	Authorized   int       `json:"authorized"`
	Unauthorized int       `json:"unauthorized"`
	Violations   int       `json:"violations"`
	Simulated    bool      `json:"simulated"`
}

// Summary returns the bus payload for r.
func (r *CycleResult) Summary() CycleSummary {
	return CycleSummary{
		CycleID:      r.ID,
		Source:       r.Source,
		StartedAt:    r.StartedAt,
		DurationMS:   r.Duration.Milliseconds(),
		Total:        r.Validation.Total,
		Authorized:   r.Validation.Authorized,
		Unauthorized: r.Validation.Unauthorized,
		Violations:   len(r.Events),
		Simulated:    r.Simulated,
	}
}
