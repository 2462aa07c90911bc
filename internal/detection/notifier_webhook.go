// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package detection

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/skywatch/internal/config"
	"github.com/tomtom215/skywatch/internal/models"
)

const defaultWebhookTimeout = 10 * time.Second

// WebhookNotifier posts alert batches to a generic JSON webhook endpoint.
type WebhookNotifier struct {
	mu         sync.RWMutex
	webhookURL string
	headers    map[string]string
	client     *http.Client
	enabled    bool
	limiter    *rate.Limiter
}

// WebhookPayload is the JSON body sent to the endpoint.
type WebhookPayload struct {
	EventType string                  `json:"event_type"` // drone_violation_batch
	Count     int                     `json:"count"`
	Alerts    []models.ViolationEvent `json:"alerts"`
	Timestamp time.Time               `json:"timestamp"`
	Source    string                  `json:"source"` // skywatch
}

// NewWebhookNotifier creates the webhook alert channel.
func NewWebhookNotifier(cfg config.WebhookConfig) *WebhookNotifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultWebhookTimeout
	}
	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Limit(2)
	}
	return &WebhookNotifier{
		webhookURL: cfg.URL,
		headers:    make(map[string]string),
		enabled:    cfg.Enabled,
		limiter:    rate.NewLimiter(limit, 1),
		client:     &http.Client{Timeout: timeout},
	}
}

// Name returns the channel name.
func (n *WebhookNotifier) Name() string { return "webhook" }

// Enabled returns whether this channel is enabled.
func (n *WebhookNotifier) Enabled() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.enabled && n.webhookURL != ""
}

// SetHeaders replaces the custom request headers (e.g. Authorization).
func (n *WebhookNotifier) SetHeaders(headers map[string]string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.headers = make(map[string]string, len(headers))
	for k, v := range headers {
		n.headers[k] = v
	}
}

// SendBatch lets the webhook be used as the only notifier.
func (n *WebhookNotifier) SendBatch(ctx context.Context, events []models.ViolationEvent) error {
	if len(events) == 0 {
		return nil
	}
	return n.Deliver(ctx, events).Err
}

// Deliver posts the batch. The limiter waits rather than dropping; the
// caller's context bounds the wait.
func (n *WebhookNotifier) Deliver(ctx context.Context, events []models.ViolationEvent) *DeliveryResult {
	n.mu.RLock()
	webhookURL := n.webhookURL
	headers := make(map[string]string, len(n.headers))
	for k, v := range n.headers {
		headers[k] = v
	}
	n.mu.RUnlock()

	fail := func(err error) *DeliveryResult {
		code := classifyDeliveryError(err)
		return failureResult(n.Name(), len(events), code, isTransientDeliveryError(code), err)
	}

	if err := n.limiter.Wait(ctx); err != nil {
		return fail(fmt.Errorf("webhook rate limit wait: %w", err))
	}

	body, err := json.Marshal(WebhookPayload{
		EventType: "drone_violation_batch",
		Count:     len(events),
		Alerts:    events,
		Timestamp: time.Now().UTC(),
		Source:    "skywatch",
	})
	if err != nil {
		return fail(fmt.Errorf("failed to marshal webhook payload: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return fail(fmt.Errorf("failed to create webhook request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fail(fmt.Errorf("failed to send webhook: %w", err))
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10)) //nolint:errcheck // drain for keep-alive

	if resp.StatusCode >= 400 {
		r := fail(fmt.Errorf("webhook returned status %d", resp.StatusCode))
		r.ResponseCode = resp.StatusCode
		return r
	}

	r := successResult(n.Name(), len(events))
	r.ResponseCode = resp.StatusCode
	return r
}
