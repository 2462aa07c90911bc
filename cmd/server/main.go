// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/skywatch/docs" // Import generated swagger docs
	"github.com/tomtom215/skywatch/internal/api"
	"github.com/tomtom215/skywatch/internal/config"
	"github.com/tomtom215/skywatch/internal/logging"
	"github.com/tomtom215/skywatch/internal/supervisor"
	"github.com/tomtom215/skywatch/internal/supervisor/services"
	ws "github.com/tomtom215/skywatch/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Bool("opensky", cfg.OpenSky.Enabled).
		Bool("simulation", cfg.Simulation.Enabled).
		Bool("email", cfg.Email.Enabled).
		Bool("webhook", cfg.Webhook.Enabled).
		Bool("drone_db", cfg.Database.Enabled).
		Bool("events", cfg.Events.Enabled).
		Dur("cycle_interval", cfg.Cycle.Interval).
		Dur("alert_cooldown", cfg.Cycle.CooldownWindow).
		Msg("Configuration loaded")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	comp, err := buildComponents(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize detection pipeline")
	}
	defer comp.close()

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	for _, origin := range cfg.Security.CORSOrigins {
		if origin == "*" {
			logging.Warn().Msg("CORS is configured with wildcard origin (CORS_ORIGINS=*)")
			break
		}
	}

	wsHub := ws.NewHub(cfg.Stream)

	handler := api.NewHandler(api.HandlerDeps{
		Processor: comp.processor,
		Hub:       wsHub,
		DB:        comp.db,
		Recorder:  comp.recorder,
		Config:    cfg,
	})
	router := api.NewRouter(handler, api.NewChiMiddlewareFromSecurity(cfg.Security))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Data layer
	tree.AddDataService(services.NewCycleService(comp.processor, wsHub, cfg.Cycle.Interval))
	var gc services.GarbageCollector
	if comp.store != nil {
		gc = comp.store
	}
	tree.AddDataService(services.NewCooldownJanitorService(comp.tracker, gc, cfg.Cooldown.PurgeEvery))

	// Messaging layer
	tree.AddMessagingService(services.NewWebSocketHubService(wsHub))
	if comp.router != nil {
		tree.AddMessagingService(services.NewEventRouterService(comp.router))
	}

	// API layer
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for services to stop")
		err = <-errCh
	case err = <-errCh:
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	logging.Info().Msg("Skywatch stopped")
}
