// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package detection

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/tomtom215/skywatch/internal/models"
)

type stubChannel struct {
	name    string
	enabled bool
	err     error
	calls   atomic.Int32
}

func (c *stubChannel) Name() string  { return c.name }
func (c *stubChannel) Enabled() bool { return c.enabled }

func (c *stubChannel) Deliver(_ context.Context, events []models.ViolationEvent) *DeliveryResult {
	c.calls.Add(1)
	if c.err != nil {
		return failureResult(c.name, len(events), ErrorCodeServerError, true, c.err)
	}
	return successResult(c.name, len(events))
}

func TestMultiNotifier_FanOut(t *testing.T) {
	a := &stubChannel{name: "a", enabled: true}
	b := &stubChannel{name: "b", enabled: true, err: errors.New("boom")}
	off := &stubChannel{name: "off"}

	m := NewMultiNotifier(a, b, off, nil)

	if got := strings.Join(m.Channels(), ","); got != "a,b" {
		t.Errorf("Channels() = %q, want a,b", got)
	}

	results := m.Deliver(context.Background(), testEvents())
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].Channel != "a" || !results[0].Success {
		t.Errorf("results[0] = %+v", results[0])
	}
	if results[1].Channel != "b" || results[1].Success {
		t.Errorf("results[1] = %+v", results[1])
	}
	if off.calls.Load() != 0 {
		t.Error("disabled channel should not be called")
	}
}

func TestMultiNotifier_SendBatch(t *testing.T) {
	a := &stubChannel{name: "a", enabled: true}
	b := &stubChannel{name: "b", enabled: true, err: errors.New("boom")}
	m := NewMultiNotifier(a, b)

	err := m.SendBatch(context.Background(), testEvents())
	if err == nil || !strings.Contains(err.Error(), "b: boom") {
		t.Errorf("SendBatch() = %v, want error naming channel b", err)
	}
	if a.calls.Load() != 1 {
		t.Error("healthy channel should still receive the batch")
	}

	if err := m.SendBatch(context.Background(), nil); err != nil {
		t.Errorf("SendBatch(nil) = %v, want nil", err)
	}
	if a.calls.Load() != 1 {
		t.Error("empty batch should not reach channels")
	}
}

func TestMultiNotifier_NoChannels(t *testing.T) {
	m := NewMultiNotifier()
	if err := m.SendBatch(context.Background(), testEvents()); err != nil {
		t.Errorf("SendBatch() = %v, want nil", err)
	}
}
