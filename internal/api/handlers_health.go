// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/skywatch/internal/logging"
	"github.com/tomtom215/skywatch/internal/models"
)

// Health status values.
const (
	StatusHealthy  = "healthy"
	StatusStarting = "starting"
	StatusDegraded = "degraded"
)

// Health reports cycle progress and component status.
//
// The service is "starting" until the first cycle completes and "degraded"
// when persistence is enabled but the database does not answer.
//
// @Summary Get system health status
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus} "Health status retrieved successfully"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	health := models.HealthStatus{
		Status:      StatusHealthy,
		Persistence: h.db != nil,
	}

	if h.processor != nil {
		health.Cycles = h.processor.CycleCount()
		if latest := h.processor.Latest(); latest != nil {
			at := latest.StartedAt.UTC()
			health.LastCycleAt = &at
			health.LastSource = latest.Source
		} else {
			health.Status = StatusStarting
		}
		if tracker := h.processor.Tracker(); tracker != nil {
			health.CooldownCount = tracker.Len()
		}
	}

	if h.wsHub != nil {
		health.WSClients = h.wsHub.GetClientCount()
	}

	if h.db != nil {
		total, _, err := h.db.CountLogs(r.Context())
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Health check: drone log count failed")
			health.Status = StatusDegraded
		} else {
			health.DroneLogs = &total
		}
	}

	respondSuccess(w, health, start)
}

// HealthLive is a dependency-free liveness probe.
//
// @Summary Liveness probe
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondSuccess(w, map[string]interface{}{
		"status":         "alive",
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
	}, time.Now())
}
