// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package eventprocessor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/skywatch/internal/logging"
	"github.com/tomtom215/skywatch/internal/metrics"
	"github.com/tomtom215/skywatch/internal/models"
)

// Bus publishes violation events and cycle summaries. It is outbound only:
// nothing on the bus feeds back into cycle processing.
type Bus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	cfg        BusConfig
	cb         *gobreaker.CircuitBreaker[interface{}]
	backend    string

	mu      sync.RWMutex
	closed  bool
	closers []func() error
}

// NewBus wraps an existing publisher/subscriber pair. The subscriber may be
// nil for publish-only buses.
func NewBus(backend string, pub message.Publisher, sub message.Subscriber, cfg BusConfig) (*Bus, error) {
	if pub == nil {
		return nil, ErrNilPublisher
	}
	return &Bus{
		publisher:  pub,
		subscriber: sub,
		cfg:        cfg,
		backend:    backend,
	}, nil
}

// NewGoChannelBus creates an in-process bus.
func NewGoChannelBus(cfg BusConfig) *Bus {
	ch := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: cfg.OutputBuffer,
	}, logging.NewWatermillAdapter())
	return &Bus{
		publisher:  ch,
		subscriber: ch,
		cfg:        cfg,
		backend:    "gochannel",
	}
}

// SetCircuitBreaker guards publishes with cb.
func (b *Bus) SetCircuitBreaker(cb *gobreaker.CircuitBreaker[interface{}]) {
	b.cb = cb
}

// OnClose registers cleanup run after the publisher and subscriber close,
// in reverse order.
func (b *Bus) OnClose(fn func() error) {
	b.mu.Lock()
	b.closers = append(b.closers, fn)
	b.mu.Unlock()
}

// Backend returns "gochannel" or "nats".
func (b *Bus) Backend() string { return b.backend }

// Config returns the bus topics.
func (b *Bus) Config() BusConfig { return b.cfg }

// Publisher returns the underlying Watermill publisher.
func (b *Bus) Publisher() message.Publisher { return b.publisher }

// Subscriber returns the underlying Watermill subscriber, or nil.
func (b *Bus) Subscriber() message.Subscriber { return b.subscriber }

// Publish sends msgs to topic through the circuit breaker.
func (b *Bus) Publish(_ context.Context, topic string, msgs ...*message.Message) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrBusClosed
	}

	var err error
	if b.cb != nil {
		_, err = b.cb.Execute(func() (interface{}, error) {
			return nil, b.publisher.Publish(topic, msgs...)
		})
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			metrics.CircuitBreakerRequests.WithLabelValues(b.cb.Name(), "rejected").Inc()
		case err != nil:
			metrics.CircuitBreakerRequests.WithLabelValues(b.cb.Name(), "failure").Inc()
		default:
			metrics.CircuitBreakerRequests.WithLabelValues(b.cb.Name(), "success").Inc()
		}
	} else {
		err = b.publisher.Publish(topic, msgs...)
	}

	metrics.RecordEventPublish(topic, err)
	if err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

// PublishViolations publishes one message per event.
func (b *Bus) PublishViolations(ctx context.Context, events []models.ViolationEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]*message.Message, 0, len(events))
	for _, e := range events {
		msg, err := NewViolationMessage(e)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	return b.Publish(ctx, b.cfg.ViolationTopic, msgs...)
}

// PublishCycle publishes a cycle summary.
func (b *Bus) PublishCycle(ctx context.Context, s models.CycleSummary) error {
	msg, err := NewCycleMessage(s)
	if err != nil {
		return err
	}
	return b.Publish(ctx, b.cfg.CycleTopic, msg)
}

// Close closes the publisher, the subscriber (when distinct) and any
// registered cleanup. It is idempotent.
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	closers := b.closers
	b.mu.Unlock()

	var errs []error
	if err := b.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close publisher: %w", err))
	}
	if b.subscriber != nil && interface{}(b.subscriber) != interface{}(b.publisher) {
		if err := b.subscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close subscriber: %w", err))
		}
	}
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
