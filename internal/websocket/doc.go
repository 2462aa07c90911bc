// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

/*
Package websocket streams cycle results to map clients.

The hub keeps the latest CycleResult, encoded once per cycle, and fans it
out to every connected client. A new client immediately receives the latest
snapshot. When no cycle result has been broadcast for a full stream interval
the latest snapshot is resent, so clients see a frame at least once per
interval.

Architecture:

	┌──────────────┐  Publish   ┌──────────┐
	│ CycleService │ ─────────▶ │   Hub    │
	└──────────────┘            └────┬─────┘
	                                 │ bounded send queues
	               ┌─────────────────┼─────────────────┐
	               ▼                 ▼                 ▼
	           Client 1          Client 2          Client 3

Each client runs two goroutines:
  - readPump: watches for close, answers {"type":"ping"} with {"type":"pong"}
  - writePump: writes frames with a per-frame write deadline, sends pings

A client whose queue is full, or whose write fails, is dropped. No other
client is affected and no cycle work ever runs on a client goroutine.

Frame format (text):

	{"drones": [...], "validation": {"total_drones": 30, "authorized": 28,
	 "unauthorized": 2, "validation_passed": true}}
*/
package websocket
