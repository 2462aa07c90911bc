// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

/*
Package detection runs the drone batch cycle and delivers violation alerts.

A cycle takes one batch of raw state vectors, normalizes and classifies each
report against the restricted zone registry, and emits a ViolationEvent for
each unauthorized callsign that is outside its alert cooldown. When the live
batch is empty or the fetch failed, a simulated batch tagged
"Simulation (<reason>)" is processed instead, so clients always receive data.

# Cycle Steps

 1. Normalize each state vector (ingestion.Normalize); rejected vectors are counted.
 2. Classify against the zone registry (first matching zone wins).
 3. Check the cooldown tracker and record an alert for new violations.
 4. Fall back to simulation when there is no live data.
 5. Purge expired cooldown entries.
 6. Persist reports to the drone log (best effort).
 7. Hand all new events to the notifier in one SendBatch call.
 8. Compute the validation block and publish the cycle summary.

A failed notification does not roll back the cooldown: the entity stays
suppressed for the rest of its window.

# Notification Channels

  - EmailNotifier: one plain text SMTP message per batch (implicit TLS,
    STARTTLS or plain).
  - WebhookNotifier: JSON POST of the batch, paced by a token bucket.
  - MultiNotifier: fans a batch out to every enabled channel in parallel.

# Concurrency

Processor.Cycle may be called from the periodic driver and from HTTP handlers
at the same time. Concurrent calls share one in-flight cycle through
singleflight and RunCycle holds a mutex, so cooldown decisions never race.
*/
package detection
