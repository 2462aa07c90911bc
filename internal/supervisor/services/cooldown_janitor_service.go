// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package services

import (
	"context"
	"time"

	"github.com/tomtom215/skywatch/internal/logging"
)

// CooldownPurger drops expired cooldown entries.
// *cooldown.Tracker satisfies this interface.
type CooldownPurger interface {
	PurgeExpired(now time.Time) int
}

// GarbageCollector reclaims space in the backing store.
// *cooldown.BadgerStore satisfies this interface.
type GarbageCollector interface {
	RunGC() error
}

// CooldownJanitorService periodically purges the cooldown tracker and, when
// a persistent store is configured, runs badger value log GC after each
// purge. GC errors are logged and never stop the service.
type CooldownJanitorService struct {
	purger   CooldownPurger
	gc       GarbageCollector
	interval time.Duration
	clock    func() time.Time
	name     string
}

// NewCooldownJanitorService creates the janitor. gc may be nil.
func NewCooldownJanitorService(purger CooldownPurger, gc GarbageCollector, interval time.Duration) *CooldownJanitorService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CooldownJanitorService{
		purger:   purger,
		gc:       gc,
		interval: interval,
		clock:    time.Now,
		name:     "cooldown-janitor",
	}
}

// Serve implements suture.Service.
func (s *CooldownJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *CooldownJanitorService) sweep() {
	if n := s.purger.PurgeExpired(s.clock()); n > 0 {
		logging.Debug().Int("purged", n).Msg("Expired cooldown entries purged")
	}
	if s.gc == nil {
		return
	}
	if err := s.gc.RunGC(); err != nil {
		logging.Warn().Err(err).Msg("Cooldown store GC failed")
	}
}

// String implements fmt.Stringer for logging.
func (s *CooldownJanitorService) String() string {
	return s.name
}
