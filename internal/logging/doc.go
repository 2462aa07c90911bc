// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

// Package logging provides zerolog-based structured logging for Skywatch.
//
// A single global logger is configured once at startup from the LOG_LEVEL,
// LOG_FORMAT and LOG_CALLER settings and then used everywhere through the
// level helpers:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Int("drones", n).Msg("Cycle complete")
//	logging.Warn().Err(err).Msg("Persistence write failed")
//
// Components create child loggers with a component field:
//
//	log := logging.WithComponent("detection")
//	log.Debug().Str("callsign", id).Msg("Suppressed by cooldown")
//
// Request and cycle scoped values travel on the context:
//
//	ctx = logging.ContextWithNewCorrelationID(ctx)
//	logging.Ctx(ctx).Info().Msg("Cycle started")
//
// # Adapters
//
// Two adapters route third-party logging into the same zerolog output:
//
//   - SlogHandler implements slog.Handler for sutureslog (supervisor events)
//   - WatermillAdapter implements watermill.LoggerAdapter for the event bus
//
// # Output Formats
//
// JSON (default) for production log shipping, console for local development:
//
//	{"level":"info","component":"detection","total":42,"time":"...","message":"Cycle complete"}
//	15:04:05 INF Cycle complete component=detection total=42
package logging
