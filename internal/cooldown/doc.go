// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

/*
Package cooldown limits alerts to one per entity per window.

Each entity is either Quiet (no entry) or Suppressing (entry holding the
time of its last alert). The window is measured from the alert itself, not
from the most recent sighting, so an entity that stays inside a zone is
re-alerted once per window rather than never.

	t=0    ShouldAlert -> true, RecordAlert
	t=100  ShouldAlert -> false (no refresh)
	t=301  ShouldAlert -> true  (window 300s, strictly greater)

All methods take an explicit now so callers and tests control the clock.

# Persistence

A Tracker may be backed by a Store. BadgerStore keeps entries with a TTL
equal to the window, so a restart inside the window does not re-alert.
Store errors are logged and never block alerting.
*/
package cooldown
