// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package api

import (
	"time"

	"github.com/tomtom215/skywatch/internal/config"
	"github.com/tomtom215/skywatch/internal/database"
	"github.com/tomtom215/skywatch/internal/detection"
	"github.com/tomtom215/skywatch/internal/eventprocessor"
	"github.com/tomtom215/skywatch/internal/geo"
	ws "github.com/tomtom215/skywatch/internal/websocket"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response and logging helpers
//   - handlers_core.go: zone, cycle, force-drone and log endpoints
//   - handlers_health.go: health endpoints
//   - handlers_websocket.go: websocket upgrade and origin check
type Handler struct {
	processor *detection.Processor
	registry  *geo.Registry
	wsHub     *ws.Hub
	db        *database.DB
	recorder  *eventprocessor.ViolationRecorder
	config    *config.Config
	startTime time.Time
}

// HandlerDeps groups the optional collaborators of a Handler. Processor and
// Config are required; a nil Hub disables /ws, a nil DB disables
// /drone-logs and a nil Recorder disables /violations.
type HandlerDeps struct {
	Processor *detection.Processor
	Hub       *ws.Hub
	DB        *database.DB
	Recorder  *eventprocessor.ViolationRecorder
	Config    *config.Config
}

// NewHandler creates a new API handler.
//
// Example:
//
//	handler := api.NewHandler(api.HandlerDeps{Processor: proc, Hub: hub, Config: cfg})
//	router := api.NewRouter(handler, api.NewChiMiddlewareFromSecurity(cfg.Security))
//	http.ListenAndServe(cfg.Server.Addr(), router.SetupChi())
func NewHandler(deps HandlerDeps) *Handler {
	h := &Handler{
		processor: deps.Processor,
		wsHub:     deps.Hub,
		db:        deps.DB,
		recorder:  deps.Recorder,
		config:    deps.Config,
		startTime: time.Now(),
	}
	if deps.Processor != nil {
		h.registry = deps.Processor.Registry()
	}
	if h.registry == nil {
		h.registry = geo.DefaultRegistry()
	}
	return h
}
