// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package services

import (
	"context"
	"errors"
	"fmt"
)

// EventRouter is a message router that runs until its context ends.
// *eventprocessor.Router satisfies this interface.
type EventRouter interface {
	Run(ctx context.Context) error
	Close() error
}

// EventRouterService runs the bus consumers' router.
//
// The router is closed when Serve returns. In-flight handlers get the
// router's CloseTimeout to finish.
type EventRouterService struct {
	router EventRouter
	name   string
}

// NewEventRouterService wraps router.
func NewEventRouterService(router EventRouter) *EventRouterService {
	return &EventRouterService{
		router: router,
		name:   "event-router",
	}
}

// Serve implements suture.Service.
func (s *EventRouterService) Serve(ctx context.Context) error {
	runErr := s.router.Run(ctx)
	closeErr := s.router.Close()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if runErr != nil {
		return fmt.Errorf("event router stopped: %w", errors.Join(runErr, closeErr))
	}
	return errors.New("event router exited unexpectedly")
}

// String implements fmt.Stringer for logging.
func (s *EventRouterService) String() string {
	return s.name
}
