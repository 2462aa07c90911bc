// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package eventprocessor

import (
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/skywatch/internal/logging"
	"github.com/tomtom215/skywatch/internal/metrics"
	"github.com/tomtom215/skywatch/internal/models"
)

// DefaultRecorderCapacity is the number of violations ViolationRecorder keeps.
const DefaultRecorderCapacity = 100

// ViolationRecorder keeps the most recent violation events received from
// the bus in a fixed-size ring.
type ViolationRecorder struct {
	mu    sync.RWMutex
	ring  []models.ViolationEvent
	next  int
	full  bool
	total int64
}

// NewViolationRecorder creates a recorder holding up to capacity events.
func NewViolationRecorder(capacity int) *ViolationRecorder {
	if capacity <= 0 {
		capacity = DefaultRecorderCapacity
	}
	return &ViolationRecorder{ring: make([]models.ViolationEvent, capacity)}
}

// Handle decodes a violation message and records it. Malformed payloads are
// returned as errors so the router retries and then poisons them.
func (r *ViolationRecorder) Handle(msg *message.Message) error {
	e, err := DecodeViolation(msg)
	if err != nil {
		return err
	}
	r.Add(e)
	metrics.EventsConsumed.WithLabelValues(consumedTopic(msg, EventTypeViolation)).Inc()
	logging.Debug().
		Str("callsign", e.EntityID).
		Str("zone", e.ZoneName).
		Msg("Violation event consumed")
	return nil
}

// Add records e, evicting the oldest event when full.
func (r *ViolationRecorder) Add(e models.ViolationEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ring[r.next] = e
	r.next = (r.next + 1) % len(r.ring)
	if r.next == 0 {
		r.full = true
	}
	r.total++
}

// Recent returns up to limit events, newest first. limit <= 0 returns all.
func (r *ViolationRecorder) Recent(limit int) []models.ViolationEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := r.next
	if r.full {
		n = len(r.ring)
	}
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]models.ViolationEvent, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (r.next - i + len(r.ring)) % len(r.ring)
		out = append(out, r.ring[idx])
	}
	return out
}

// Total returns the number of events recorded since start.
func (r *ViolationRecorder) Total() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.total
}

// CycleObserver tracks the most recent cycle summary seen on the bus.
type CycleObserver struct {
	mu     sync.RWMutex
	last   *models.CycleSummary
	seen   int64
	simmed int64
}

// NewCycleObserver creates an empty observer.
func NewCycleObserver() *CycleObserver {
	return &CycleObserver{}
}

// Handle decodes and records a cycle summary.
func (o *CycleObserver) Handle(msg *message.Message) error {
	s, err := DecodeCycle(msg)
	if err != nil {
		return err
	}
	o.mu.Lock()
	o.last = &s
	o.seen++
	if s.Simulated {
		o.simmed++
	}
	o.mu.Unlock()
	metrics.EventsConsumed.WithLabelValues(consumedTopic(msg, EventTypeCycle)).Inc()
	return nil
}

// Last returns the latest summary, or nil.
func (o *CycleObserver) Last() *models.CycleSummary {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.last == nil {
		return nil
	}
	s := *o.last
	return &s
}

// Counts returns cycles seen and how many of them were simulated.
func (o *CycleObserver) Counts() (seen, simulated int64) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.seen, o.simmed
}

// consumedTopic returns the topic the router delivered msg from, or
// fallback outside a router.
func consumedTopic(msg *message.Message, fallback string) string {
	if topic := message.SubscribeTopicFromCtx(msg.Context()); topic != "" {
		return topic
	}
	return fallback
}

// RegisterConsumers wires the recorder and observer to the bus topics.
// Publish-only buses register nothing.
func RegisterConsumers(r *Router, bus *Bus, recorder *ViolationRecorder, observer *CycleObserver) {
	sub := bus.Subscriber()
	if sub == nil {
		return
	}
	cfg := bus.Config()
	if recorder != nil {
		r.AddConsumerHandler("violation-recorder", cfg.ViolationTopic, sub, recorder.Handle)
	}
	if observer != nil {
		r.AddConsumerHandler("cycle-observer", cfg.CycleTopic, sub, observer.Handle)
	}
}
