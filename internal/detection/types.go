// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package detection

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/skywatch/internal/ingestion"
	"github.com/tomtom215/skywatch/internal/models"
)

// Source produces one batch of raw state vectors per call. It never fails;
// failures are reported through FetchResult.OK and FetchResult.Reason.
type Source interface {
	Fetch(ctx context.Context) ingestion.FetchResult
}

// Sink persists classified reports. Errors are logged and otherwise ignored.
type Sink interface {
	LogReport(ctx context.Context, r models.ClassifiedReport) error
}

// BatchSink is implemented by sinks that can write a whole cycle at once.
// The processor prefers it over per-report LogReport calls.
type BatchSink interface {
	Sink
	LogReports(ctx context.Context, reports []models.ClassifiedReport) error
}

// Notifier delivers one batch of violation events. It is called at most
// once per cycle and only with a non-empty batch.
type Notifier interface {
	SendBatch(ctx context.Context, events []models.ViolationEvent) error
}

// Channel is a single notification transport (email, webhook).
type Channel interface {
	// Name returns the channel name used in logs and metrics.
	Name() string

	// Enabled returns whether the channel should be used.
	Enabled() bool

	// Deliver sends the batch and reports the outcome.
	Deliver(ctx context.Context, events []models.ViolationEvent) *DeliveryResult
}

// EventPublisher forwards cycle output to the event bus.
type EventPublisher interface {
	PublishViolations(ctx context.Context, events []models.ViolationEvent) error
	PublishCycle(ctx context.Context, summary models.CycleSummary) error
}

// Delivery error codes.
const (
	ErrorCodeInvalidConfig     = "INVALID_CONFIG"
	ErrorCodeConnectionFailed  = "CONNECTION_FAILED"
	ErrorCodeAuthFailed        = "AUTH_FAILED"
	ErrorCodeRateLimited       = "RATE_LIMITED"
	ErrorCodeRecipientNotFound = "RECIPIENT_NOT_FOUND"
	ErrorCodeServerError       = "SERVER_ERROR"
	ErrorCodeTimeout           = "TIMEOUT"
	ErrorCodeUnknown           = "UNKNOWN"
)

// ErrMissingCredentials is returned by the email channel when the sender
// address, password or recipient is not configured.
var ErrMissingCredentials = errors.New("email credentials not configured")

// DeliveryResult is the outcome of one Deliver call.
type DeliveryResult struct {
	Channel      string
	Success      bool
	Events       int
	DeliveredAt  *time.Time
	ErrorCode    string
	ErrorMessage string
	IsTransient  bool
	ResponseCode int
	Err          error
}

func successResult(channel string, events int) *DeliveryResult {
	now := time.Now()
	return &DeliveryResult{
		Channel:     channel,
		Success:     true,
		Events:      events,
		DeliveredAt: &now,
	}
}

func failureResult(channel string, events int, code string, transient bool, err error) *DeliveryResult {
	return &DeliveryResult{
		Channel:      channel,
		Events:       events,
		ErrorCode:    code,
		ErrorMessage: err.Error(),
		IsTransient:  transient,
		Err:          err,
	}
}
