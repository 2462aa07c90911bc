// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

// Package eventprocessor publishes detection results to a Watermill event bus.
//
// After each detection cycle the processor publishes one message per new
// violation to the violation topic and one cycle summary to the cycle topic.
// The bus is outbound only: detection never reads from it.
//
// # Backends
//
//   - gochannel: in-process Watermill GoChannel, the default
//   - nats: NATS JetStream via watermill-nats, optionally with an embedded
//     server (requires -tags nats)
//
// With the nats backend a single stream named SKYWATCH is created up front
// by StreamInitializer covering the configured topics. Publishers run with
// AutoProvision disabled and subscribers bind to that stream.
//
// # Resilience
//
// Publishes pass through a gobreaker circuit breaker. Consumers run inside a
// Watermill Router with Recoverer, Retry and an optional PoisonQueue.
//
// # Consumers
//
// ViolationRecorder keeps a ring of recent violations for the API and
// CycleObserver tracks the latest cycle summary.
package eventprocessor
