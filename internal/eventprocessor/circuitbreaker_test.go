// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package eventprocessor

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/skywatch/internal/metrics"
)

func TestNewCircuitBreaker(t *testing.T) {
	cb := NewCircuitBreaker(DefaultCircuitBreakerConfig())
	if cb.Name() != "event-bus" {
		t.Errorf("Name = %q, want event-bus", cb.Name())
	}
	if state := CircuitBreakerState(cb); state != "closed" {
		t.Errorf("initial state = %q, want closed", state)
	}
}

func TestCircuitBreaker_TripsAndRecordsTransition(t *testing.T) {
	cfg := CircuitBreakerConfig{
		Name:             "trip-test",
		MaxRequests:      1,
		Interval:         time.Second,
		Timeout:          time.Minute,
		FailureThreshold: 3,
	}
	cb := NewCircuitBreaker(cfg)
	transitions := metrics.CircuitBreakerTransitions.WithLabelValues("trip-test", "closed", "open")
	before := testutil.ToFloat64(transitions)

	fail := errors.New("fail")
	for i := 0; i < 3; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, fail })
	}

	if state := CircuitBreakerState(cb); state != "open" {
		t.Errorf("state = %q, want open", state)
	}
	if got := testutil.ToFloat64(transitions) - before; got != 1 {
		t.Errorf("closed->open transitions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("trip-test")); got != 2 {
		t.Errorf("state gauge = %v, want 2", got)
	}
}

func TestDefaultRouterConfig(t *testing.T) {
	cfg := DefaultRouterConfig()

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"CloseTimeout", cfg.CloseTimeout, 10 * time.Second},
		{"RetryMaxRetries", cfg.RetryMaxRetries, 3},
		{"RetryInitialInterval", cfg.RetryInitialInterval, 100 * time.Millisecond},
		{"RetryMaxInterval", cfg.RetryMaxInterval, 5 * time.Second},
		{"RetryMultiplier", cfg.RetryMultiplier, 2.0},
		{"ThrottlePerSecond", cfg.ThrottlePerSecond, int64(0)},
		{"PoisonQueueTopic", cfg.PoisonQueueTopic, "skywatch.poison"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}
