// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package eventprocessor

import (
	"context"
	"fmt"

	"github.com/tomtom215/skywatch/internal/config"
)

// NewBusFromConfig builds the configured bus with a publish circuit
// breaker attached. It returns nil, nil when events are disabled.
func NewBusFromConfig(ctx context.Context, cfg config.EventsConfig) (*Bus, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	var (
		bus *Bus
		err error
	)
	switch cfg.Backend {
	case "", "gochannel":
		bus = NewGoChannelBus(BusConfigFrom(cfg))
	case "nats":
		bus, err = NewNATSBus(ctx, cfg)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}

	bus.SetCircuitBreaker(NewCircuitBreaker(DefaultCircuitBreakerConfig()))
	return bus, nil
}
