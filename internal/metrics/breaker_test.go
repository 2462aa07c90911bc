// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	gobreaker "github.com/sony/gobreaker/v2"
)

func TestBreakerStateEncoding(t *testing.T) {
	tests := []struct {
		state     gobreaker.State
		wantStr   string
		wantValue float64
	}{
		{gobreaker.StateClosed, "closed", 0},
		{gobreaker.StateHalfOpen, "half-open", 1},
		{gobreaker.StateOpen, "open", 2},
		{gobreaker.State(42), "unknown", -1},
	}
	for _, tt := range tests {
		t.Run(tt.wantStr, func(t *testing.T) {
			if got := BreakerStateString(tt.state); got != tt.wantStr {
				t.Errorf("BreakerStateString() = %q, want %q", got, tt.wantStr)
			}
			if got := BreakerStateValue(tt.state); got != tt.wantValue {
				t.Errorf("BreakerStateValue() = %v, want %v", got, tt.wantValue)
			}
		})
	}
}

func TestRecordBreakerTransition(t *testing.T) {
	const name = "test-breaker-transition"
	transitions := CircuitBreakerTransitions.WithLabelValues(name, "closed", "open")
	before := testutil.ToFloat64(transitions)

	RecordBreakerTransition(name, gobreaker.StateClosed, gobreaker.StateOpen)

	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues(name)); got != 2 {
		t.Errorf("state gauge = %v, want 2", got)
	}
	if got := testutil.ToFloat64(transitions) - before; got != 1 {
		t.Errorf("transitions delta = %v, want 1", got)
	}
}
