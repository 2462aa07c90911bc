// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestRecordCycle(t *testing.T) {
	liveBefore := testutil.ToFloat64(CyclesTotal.WithLabelValues("live"))
	simBefore := testutil.ToFloat64(CyclesTotal.WithLabelValues("simulated"))
	unauthBefore := testutil.ToFloat64(DronesClassified.WithLabelValues("unauthorized"))
	violationsBefore := testutil.ToFloat64(ViolationsTotal)

	RecordCycle(false, 200*time.Millisecond, 10, 2, 1)
	RecordCycle(true, time.Second, 30, 5, 5)

	if got := testutil.ToFloat64(CyclesTotal.WithLabelValues("live")) - liveBefore; got != 1 {
		t.Errorf("live cycles delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(CyclesTotal.WithLabelValues("simulated")) - simBefore; got != 1 {
		t.Errorf("simulated cycles delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(DronesClassified.WithLabelValues("unauthorized")) - unauthBefore; got != 7 {
		t.Errorf("unauthorized delta = %v, want 7", got)
	}
	if got := testutil.ToFloat64(ViolationsTotal) - violationsBefore; got != 6 {
		t.Errorf("violations delta = %v, want 6", got)
	}
	if testutil.ToFloat64(CycleLastCompleted) == 0 {
		t.Error("CycleLastCompleted should be set")
	}
}

func TestRecordNotification(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		result string
	}{
		{"success", nil, "success"},
		{"failure", errors.New("smtp: 535 auth failed"), "failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(NotificationsTotal.WithLabelValues("email", tt.result))
			RecordNotification("email", tt.err)
			if got := testutil.ToFloat64(NotificationsTotal.WithLabelValues("email", tt.result)) - before; got != 1 {
				t.Errorf("delta = %v, want 1", got)
			}
		})
	}
}

func TestRecordDBQuery_ErrorTruncation(t *testing.T) {
	longErr := errors.New("this is a very long error message that exceeds fifty characters and should be truncated properly")
	RecordDBQuery("INSERT", "drone_logs", 5*time.Millisecond, longErr)

	truncated := longErr.Error()[:50]
	if got := testutil.ToFloat64(DBQueryErrors.WithLabelValues("INSERT", "drone_logs", truncated)); got < 1 {
		t.Errorf("expected truncated error label to be recorded, got %v", got)
	}
}

func TestRecordAPIStatus(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/restricted-zones", "200"))
	RecordAPIStatus("GET", "/restricted-zones", 200, 3*time.Millisecond)
	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/restricted-zones", "200")) - before; got != 1 {
		t.Errorf("delta = %v, want 1", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	TrackActiveRequest(true)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests) - before; got != 1 {
		t.Errorf("active delta = %v, want 1", got)
	}
	TrackActiveRequest(false)
}

func TestRecordEventPublish(t *testing.T) {
	okBefore := testutil.ToFloat64(EventsPublished.WithLabelValues("skywatch.violations"))
	errBefore := testutil.ToFloat64(EventsPublishErrors.WithLabelValues("skywatch.violations"))

	RecordEventPublish("skywatch.violations", nil)
	RecordEventPublish("skywatch.violations", errors.New("bus closed"))

	if got := testutil.ToFloat64(EventsPublished.WithLabelValues("skywatch.violations")) - okBefore; got != 1 {
		t.Errorf("published delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(EventsPublishErrors.WithLabelValues("skywatch.violations")) - errBefore; got != 1 {
		t.Errorf("errors delta = %v, want 1", got)
	}
}

func TestCooldownGauge(t *testing.T) {
	CooldownEntries.Set(3)

	m := &dto.Metric{}
	if err := CooldownEntries.Write(m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if m.GetGauge().GetValue() != 3 {
		t.Errorf("gauge = %v, want 3", m.GetGauge().GetValue())
	}
}

func TestCycleDurationHistogram(t *testing.T) {
	m := &dto.Metric{}
	if err := CycleDuration.Write(m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	before := m.GetHistogram().GetSampleCount()

	CycleDuration.Observe(0.3)

	m = &dto.Metric{}
	if err := CycleDuration.Write(m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got := m.GetHistogram().GetSampleCount() - before; got != 1 {
		t.Errorf("sample count delta = %d, want 1", got)
	}
}

func TestConcurrentMetricRecording(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordRejection("blank_callsign")
			RecordOpenSkyRequest("ok", 10*time.Millisecond)
			RecordAPIRequest("GET", "/health", "200", time.Millisecond)
		}()
	}
	wg.Wait()
}

func TestMetricsRegistration(t *testing.T) {
	collectors := []prometheus.Collector{
		CyclesTotal,
		CycleDuration,
		CycleLastCompleted,
		DronesClassified,
		ViolationsTotal,
		CooldownEntries,
		NormalizerRejections,
		OpenSkyRequests,
		OpenSkyRequestDuration,
		NotificationsTotal,
		DBQueryDuration,
		DBQueryErrors,
		APIRequestsTotal,
		APIRequestDuration,
		APIActiveRequests,
		APIRateLimitHits,
		WSConnections,
		WSMessagesSent,
		WSErrors,
		CircuitBreakerState,
		CircuitBreakerRequests,
		CircuitBreakerConsecutiveFailures,
		CircuitBreakerTransitions,
		EventsPublished,
		EventsPublishErrors,
		EventsConsumed,
		AppInfo,
		AppUptime,
	}

	for _, c := range collectors {
		ch := make(chan *prometheus.Desc, 10)
		c.Describe(ch)
		close(ch)

		count := 0
		for range ch {
			count++
		}
		if count == 0 {
			t.Errorf("collector has no descriptors")
		}
	}
}

func BenchmarkRecordCycle(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordCycle(false, 100*time.Millisecond, 40, 3, 1)
	}
}
