// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

// Package simulation generates synthetic drone reports when live data is
// unavailable, so map clients always have something to show and the alert
// pipeline keeps being exercised.
//
// Authorized drones are sampled uniformly inside the continental US box and
// kept only if they classify authorized. Unauthorized candidates are placed
// near a random zone at 0.5 to 1.1 times its radius; some land outside and
// are reported as authorized. The random source is injected so tests are
// deterministic.
package simulation
