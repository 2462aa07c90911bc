// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

/*
Package supervisor runs Skywatch's long-lived services under a suture v4 tree.

# Overview

Services are grouped into three layers so that a failure in one layer is
restarted without disturbing the others:

	RootSupervisor ("skywatch")
	├── DataSupervisor ("data-layer")
	│   ├── CycleService            (periodic detection cycle)
	│   └── CooldownJanitorService  (cooldown purge + badger GC)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── WebSocketHubService
	│   └── EventRouterService      (if EVENTS_ENABLED)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Events (starts, panics, backoff, timeouts) are logged through the sutureslog
adapter, which receives a *slog.Logger bridged from zerolog.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewCycleService(processor, hub, cfg.Cycle.Interval))
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor stopped")
	}

See the services subpackage for the wrappers.
*/
package supervisor
