// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package services

import (
	"context"
	"time"

	"github.com/tomtom215/skywatch/internal/logging"
	"github.com/tomtom215/skywatch/internal/models"
)

// CycleRunner runs one detection cycle.
// *detection.Processor satisfies this interface.
type CycleRunner interface {
	Cycle(ctx context.Context) *models.CycleResult
}

// ResultPublisher receives every cycle result.
// *websocket.Hub satisfies this interface.
type ResultPublisher interface {
	Publish(result *models.CycleResult)
}

// CycleService drives the detection cycle on a fixed interval.
//
// A cycle runs as soon as the service starts so that clients connecting
// right after boot get data without waiting a full interval. Ticks that
// arrive while a cycle is still running are dropped by time.Ticker.
type CycleService struct {
	runner    CycleRunner
	publisher ResultPublisher
	interval  time.Duration
	name      string
}

// NewCycleService creates the periodic driver. publisher may be nil.
func NewCycleService(runner CycleRunner, publisher ResultPublisher, interval time.Duration) *CycleService {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &CycleService{
		runner:    runner,
		publisher: publisher,
		interval:  interval,
		name:      "detection-cycle",
	}
}

// Serve implements suture.Service.
func (s *CycleService) Serve(ctx context.Context) error {
	logging.Info().Dur("interval", s.interval).Msg("Detection cycle driver started")

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *CycleService) runOnce(ctx context.Context) {
	result := s.runner.Cycle(ctx)
	if result == nil || s.publisher == nil {
		return
	}
	s.publisher.Publish(result)
}

// String implements fmt.Stringer for logging.
func (s *CycleService) String() string {
	return s.name
}
