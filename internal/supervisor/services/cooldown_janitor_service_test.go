// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/skywatch/internal/cooldown"
)

type fakeGC struct {
	runs atomic.Int32
	err  error
}

func (g *fakeGC) RunGC() error {
	g.runs.Add(1)
	return g.err
}

func TestCooldownJanitorService_PurgesExpired(t *testing.T) {
	tracker := cooldown.NewTracker(time.Minute)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tracker.RecordAlert("OLD", now.Add(-2*time.Minute))
	tracker.RecordAlert("NEW", now)

	gc := &fakeGC{}
	svc := NewCooldownJanitorService(tracker, gc, 5*time.Millisecond)
	svc.clock = func() time.Time { return now }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	eventually(t, func() bool { return gc.runs.Load() >= 1 })
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v", err)
	}

	if tracker.Len() != 1 {
		t.Errorf("tracker len = %d, want 1", tracker.Len())
	}
	if _, ok := tracker.LastAlert("NEW"); !ok {
		t.Error("fresh entry purged")
	}
}

func TestCooldownJanitorService_GCErrorKeepsRunning(t *testing.T) {
	gc := &fakeGC{err: errors.New("disk full")}
	svc := NewCooldownJanitorService(cooldown.NewTracker(time.Minute), gc, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	eventually(t, func() bool { return gc.runs.Load() >= 3 })
	cancel()
	<-done
}

func TestCooldownJanitorService_NoStore(t *testing.T) {
	svc := NewCooldownJanitorService(cooldown.NewTracker(time.Minute), nil, 0)
	if svc.interval != 5*time.Minute {
		t.Errorf("default interval = %v", svc.interval)
	}
	svc.sweep()
	if svc.String() != "cooldown-janitor" {
		t.Errorf("String() = %q", svc.String())
	}
}
