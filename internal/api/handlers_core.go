// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/skywatch/internal/database"
	"github.com/tomtom215/skywatch/internal/logging"
	"github.com/tomtom215/skywatch/internal/models"
	"github.com/tomtom215/skywatch/internal/validation"
)

// BannerMessage is returned by GET /.
const BannerMessage = "Skywatch drone tracking API running. Connect clients to /ws"

// Root returns the service banner.
//
// @Summary Service banner
// @Tags Core
// @Produce json
// @Success 200 {object} models.BannerResponse
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	respondRaw(w, http.StatusOK, models.BannerResponse{Message: BannerMessage})
}

// RestrictedZones lists the zone registry in classification order.
//
// @Summary List restricted zones
// @Description Zones are checked in this order; the first zone containing a point wins.
// @Tags Zones
// @Produce json
// @Success 200 {object} models.ZoneListResponse
// @Router /restricted-zones [get]
func (h *Handler) RestrictedZones(w http.ResponseWriter, _ *http.Request) {
	respondRaw(w, http.StatusOK, models.ZoneListResponse{RestrictedZones: h.registry.Zones()})
}

// FetchDronesLive runs one detection cycle and returns its result.
//
// @Summary Run a detection cycle
// @Description Fetches live state vectors (falling back to simulation), classifies them against the restricted zones and returns the classified drones. Concurrent callers share one in-flight cycle.
// @Tags Drones
// @Produce json
// @Success 200 {object} models.CycleResult
// @Failure 503 {object} models.APIResponse "Detection not configured"
// @Router /fetch-drones-live [get]
func (h *Handler) FetchDronesLive(w http.ResponseWriter, r *http.Request) {
	h.runCycle(w, r, "/fetch-drones-live")
}

// FetchDronesManual is an alias of FetchDronesLive kept for existing clients.
//
// @Summary Run a detection cycle (alias)
// @Tags Drones
// @Produce json
// @Success 200 {object} models.CycleResult
// @Failure 503 {object} models.APIResponse "Detection not configured"
// @Router /fetch-drones-manual [get]
// @Router /fetch-drones-manual [post]
func (h *Handler) FetchDronesManual(w http.ResponseWriter, r *http.Request) {
	h.runCycle(w, r, "/fetch-drones-manual")
}

func (h *Handler) runCycle(w http.ResponseWriter, r *http.Request, endpoint string) {
	if h.processor == nil {
		respondError(w, http.StatusServiceUnavailable, CodeServiceUnavailable, "Detection is not configured", nil)
		return
	}

	logger := logging.Ctx(r.Context())
	logger.Info().Str("endpoint", endpoint).Msg("Manual cycle triggered")

	result := h.processor.Cycle(r.Context())

	logger.Info().
		Str("endpoint", endpoint).
		Str("cycle_id", result.ID).
		Str("source", result.Source).
		Int("total", result.Validation.Total).
		Int("unauthorized", result.Validation.Unauthorized).
		Msg("Manual cycle completed")

	respondRaw(w, http.StatusOK, result)
}

// ForceDrone classifies a single point without touching cooldown state,
// persistence or notifications.
//
// @Summary Check a point against the restricted zones
// @Tags Drones
// @Produce json
// @Param latitude query number true "Latitude in degrees" minimum(-90) maximum(90)
// @Param longitude query number true "Longitude in degrees" minimum(-180) maximum(180)
// @Success 200 {object} models.PointCheck
// @Failure 400 {object} models.APIResponse "Missing or invalid coordinates"
// @Router /force-drone [post]
func (h *Handler) ForceDrone(w http.ResponseWriter, r *http.Request) {
	req, verr := validation.ParsePointRequest(r.URL.Query())
	if verr != nil {
		respondValidationError(w, verr)
		return
	}

	c := h.registry.Classify(req.Latitude, req.Longitude)
	logging.Ctx(r.Context()).Info().
		Float64("latitude", *req.Latitude).
		Float64("longitude", *req.Longitude).
		Bool("unauthorized", c.Unauthorized).
		Str("zone", c.ZoneName()).
		Msg("Point check")

	respondRaw(w, http.StatusOK, models.PointCheck{
		Callsign:     models.ForceDroneCallsign,
		Latitude:     *req.Latitude,
		Longitude:    *req.Longitude,
		Unauthorized: c.Unauthorized,
		Zone:         c.Zone,
	})
}

// DroneLogs returns recent persisted drone reports, newest first.
//
// @Summary Recent drone log rows
// @Tags Drones
// @Produce json
// @Param limit query int false "Maximum rows" default(100) minimum(1) maximum(1000)
// @Param unauthorized query bool false "Only unauthorized reports"
// @Param callsign query string false "Exact callsign"
// @Param zone query string false "Exact zone name"
// @Param since query string false "RFC 3339 lower bound on logged_at"
// @Success 200 {object} models.APIResponse{data=models.DroneLogsResponse}
// @Failure 400 {object} models.APIResponse "Invalid query"
// @Failure 500 {object} models.APIResponse "Query failed"
// @Failure 503 {object} models.APIResponse "Persistence disabled"
// @Router /drone-logs [get]
func (h *Handler) DroneLogs(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.db == nil {
		respondError(w, http.StatusServiceUnavailable, CodeServiceUnavailable, "Drone log persistence is disabled", nil)
		return
	}

	req, verr := validation.ParseDroneLogsRequest(r.URL.Query())
	if verr != nil {
		respondValidationError(w, verr)
		return
	}

	logs, err := h.db.RecentLogs(r.Context(), database.DroneLogFilter{
		Limit:            req.Limit,
		UnauthorizedOnly: req.UnauthorizedOnly,
		Callsign:         req.Callsign,
		Zone:             req.Zone,
		Since:            req.Since,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeDatabase, "Failed to query drone logs", err)
		return
	}

	respondSuccess(w, models.DroneLogsResponse{Logs: logs, Count: len(logs), Limit: req.Limit}, start)
}

// Violations returns the most recent violation events consumed from the
// event bus.
//
// @Summary Recent violation events
// @Tags Drones
// @Produce json
// @Param limit query int false "Maximum events" default(100) minimum(1) maximum(1000)
// @Success 200 {object} models.APIResponse{data=models.ViolationsResponse}
// @Failure 400 {object} models.APIResponse "Invalid query"
// @Failure 503 {object} models.APIResponse "Event bus disabled"
// @Router /violations [get]
func (h *Handler) Violations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.recorder == nil {
		respondError(w, http.StatusServiceUnavailable, CodeServiceUnavailable, "Event bus is disabled", nil)
		return
	}

	req, verr := validation.ParseViolationsRequest(r.URL.Query())
	if verr != nil {
		respondValidationError(w, verr)
		return
	}
	respondSuccess(w, models.ViolationsResponse{
		Violations: h.recorder.Recent(req.Limit),
		Total:      h.recorder.Total(),
	}, start)
}
