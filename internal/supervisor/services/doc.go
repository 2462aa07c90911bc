// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

/*
Package services adapts Skywatch components to suture.Service.

Each wrapper depends on a small interface rather than the concrete type so
that it can be tested with fakes:

  - CycleService: runs a detection cycle every interval and publishes the
    result to the websocket hub
  - CooldownJanitorService: purges expired cooldown entries and runs badger
    value log GC
  - WebSocketHubService: runs the hub's broadcast loop
  - EventRouterService: runs the watermill router for bus consumers
  - HTTPServerService: runs http.Server with graceful shutdown

Every wrapper implements fmt.Stringer so suture logs it by name.
*/
package services
