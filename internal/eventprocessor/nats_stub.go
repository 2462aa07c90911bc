// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

//go:build !nats

package eventprocessor

import (
	"context"

	"github.com/tomtom215/skywatch/internal/config"
)

// NewNATSBus is unavailable without -tags nats.
func NewNATSBus(_ context.Context, _ config.EventsConfig) (*Bus, error) {
	return nil, ErrNATSNotCompiled
}
