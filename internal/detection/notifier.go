// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package detection

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/skywatch/internal/logging"
	"github.com/tomtom215/skywatch/internal/metrics"
	"github.com/tomtom215/skywatch/internal/models"
)

// MultiNotifier fans a batch out to every enabled channel in parallel.
// A failing channel does not stop the others.
type MultiNotifier struct {
	mu       sync.RWMutex
	channels []Channel
}

// NewMultiNotifier creates a notifier over the given channels.
func NewMultiNotifier(channels ...Channel) *MultiNotifier {
	m := &MultiNotifier{}
	for _, c := range channels {
		m.Register(c)
	}
	return m
}

// Register adds a channel.
func (m *MultiNotifier) Register(c Channel) {
	if c == nil {
		return
	}
	m.mu.Lock()
	m.channels = append(m.channels, c)
	m.mu.Unlock()
	logging.Info().Str("channel", c.Name()).Bool("enabled", c.Enabled()).Msg("Registered alert channel")
}

// Channels returns the enabled channel names.
func (m *MultiNotifier) Channels() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.channels))
	for _, c := range m.channels {
		if c.Enabled() {
			names = append(names, c.Name())
		}
	}
	return names
}

// Deliver sends the batch to every enabled channel and returns one result
// per channel, in registration order.
func (m *MultiNotifier) Deliver(ctx context.Context, events []models.ViolationEvent) []*DeliveryResult {
	m.mu.RLock()
	active := make([]Channel, 0, len(m.channels))
	for _, c := range m.channels {
		if c.Enabled() {
			active = append(active, c)
		}
	}
	m.mu.RUnlock()

	results := make([]*DeliveryResult, len(active))
	var g errgroup.Group
	for i, c := range active {
		g.Go(func() error {
			r := c.Deliver(ctx, events)
			if r == nil {
				r = successResult(c.Name(), len(events))
			}
			results[i] = r
			metrics.RecordNotification(c.Name(), r.Err)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// SendBatch implements Notifier. The returned error joins every channel
// failure.
func (m *MultiNotifier) SendBatch(ctx context.Context, events []models.ViolationEvent) error {
	if len(events) == 0 {
		return nil
	}
	var errs []error
	for _, r := range m.Deliver(ctx, events) {
		if r.Success {
			logging.Info().Str("channel", r.Channel).Int("events", r.Events).Msg("Alert batch delivered")
			continue
		}
		logging.Error().
			Str("channel", r.Channel).
			Str("code", r.ErrorCode).
			Bool("transient", r.IsTransient).
			Str("error", r.ErrorMessage).
			Msg("Alert batch delivery failed")
		err := r.Err
		if err == nil {
			err = errors.New(r.ErrorMessage)
		}
		errs = append(errs, fmt.Errorf("%s: %w", r.Channel, err))
	}
	return errors.Join(errs...)
}
