// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package cooldown

import (
	"sync"
	"time"

	"github.com/tomtom215/skywatch/internal/logging"
	"github.com/tomtom215/skywatch/internal/metrics"
)

// DefaultWindow is the alert cooldown used when none is configured.
const DefaultWindow = 300 * time.Second

// Store persists cooldown entries.
type Store interface {
	// Save records the last alert time for id; the entry may expire after ttl.
	Save(id string, at time.Time, ttl time.Duration) error
	Delete(ids ...string) error
	LoadAll() (map[string]time.Time, error)
}

// Tracker holds the last alert time per entity.
type Tracker struct {
	mu      sync.Mutex
	window  time.Duration
	entries map[string]time.Time
	store   Store
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithStore persists entries to s.
func WithStore(s Store) Option {
	return func(t *Tracker) { t.store = s }
}

// NewTracker creates a tracker. A non-positive window uses DefaultWindow.
func NewTracker(window time.Duration, opts ...Option) *Tracker {
	if window <= 0 {
		window = DefaultWindow
	}
	t := &Tracker{
		window:  window,
		entries: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Window returns the cooldown window.
func (t *Tracker) Window() time.Duration { return t.window }

// ShouldAlert reports whether id has no entry or its last alert is older
// than the window.
func (t *Tracker) ShouldAlert(id string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	last, ok := t.entries[id]
	return !ok || now.Sub(last) > t.window
}

// RecordAlert sets the last alert time for id to now.
func (t *Tracker) RecordAlert(id string, now time.Time) {
	t.mu.Lock()
	t.entries[id] = now
	n := len(t.entries)
	t.mu.Unlock()

	metrics.CooldownEntries.Set(float64(n))

	if t.store != nil {
		if err := t.store.Save(id, now, t.window); err != nil {
			logging.Warn().Err(err).Str("component", "cooldown").Str("entity", id).Msg("Failed to persist cooldown entry")
		}
	}
}

// PurgeExpired removes entries whose last alert is older than the window
// and returns how many were removed.
func (t *Tracker) PurgeExpired(now time.Time) int {
	t.mu.Lock()
	var expired []string
	for id, last := range t.entries {
		if now.Sub(last) > t.window {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		delete(t.entries, id)
	}
	n := len(t.entries)
	t.mu.Unlock()

	metrics.CooldownEntries.Set(float64(n))

	if len(expired) > 0 && t.store != nil {
		if err := t.store.Delete(expired...); err != nil {
			logging.Warn().Err(err).Str("component", "cooldown").Int("count", len(expired)).Msg("Failed to delete expired cooldown entries")
		}
	}
	return len(expired)
}

// Len returns the number of entities in cooldown.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// LastAlert returns the last alert time for id.
func (t *Tracker) LastAlert(id string) (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	last, ok := t.entries[id]
	return last, ok
}

// Restore loads persisted entries, skipping ones already expired at now.
// It returns the number of entries restored.
func (t *Tracker) Restore(now time.Time) (int, error) {
	if t.store == nil {
		return 0, nil
	}
	loaded, err := t.store.LoadAll()
	if err != nil {
		return 0, err
	}

	t.mu.Lock()
	restored := 0
	for id, last := range loaded {
		if now.Sub(last) > t.window {
			continue
		}
		t.entries[id] = last
		restored++
	}
	n := len(t.entries)
	t.mu.Unlock()

	metrics.CooldownEntries.Set(float64(n))
	return restored, nil
}
