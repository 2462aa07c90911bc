// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package eventprocessor

import "errors"

// ErrNATSNotCompiled is returned when the nats backend is selected in a
// binary built without -tags nats.
var ErrNATSNotCompiled = errors.New("NATS event bus not compiled (build with -tags nats)")

// ErrBusClosed is returned by publishes after Close.
var ErrBusClosed = errors.New("event bus is closed")

// ErrNilPublisher is returned when a bus is built without a publisher.
var ErrNilPublisher = errors.New("publisher cannot be nil")

// ErrUnknownBackend is returned for an unsupported EVENTS_BACKEND.
var ErrUnknownBackend = errors.New("unknown event bus backend")
