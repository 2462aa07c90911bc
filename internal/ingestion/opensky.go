// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package ingestion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/skywatch/internal/config"
	"github.com/tomtom215/skywatch/internal/logging"
	"github.com/tomtom215/skywatch/internal/metrics"
)

const (
	breakerName = "opensky-api"

	// A full /states/all response is a few MB.
	maxResponseBytes = 64 << 20

	userAgent = "skywatch/1.0 (+https://github.com/tomtom215/skywatch)"
)

// fetchError carries the fallback reason through the circuit breaker.
type fetchError struct {
	reason string
	err    error
}

func (e *fetchError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("opensky: %s: %v", e.reason, e.err)
	}
	return "opensky: " + e.reason
}

func (e *fetchError) Unwrap() error { return e.err }

// statesPayload is the decoded body of /states/all.
type statesPayload struct {
	Time   int64           `json:"time"`
	States json.RawMessage `json:"states"`
}

// states is what the breaker returns on success. noContent is a 204.
type states struct {
	items     [][]any
	noContent bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithURL overrides the state vector endpoint.
func WithURL(url string) Option {
	return func(c *Client) { c.url = url }
}

// WithMinInterval sets the minimum gap between upstream requests.
// Zero disables the limit.
func WithMinInterval(d time.Duration) Option {
	return func(c *Client) { c.limiter = newLimiter(d) }
}

// WithBreakerThreshold sets when the circuit opens: at least minRequests
// in the current window with a failure ratio of at least ratio.
func WithBreakerThreshold(minRequests uint32, ratio float64) Option {
	return func(c *Client) {
		c.minRequests = minRequests
		c.failureRatio = ratio
	}
}

// WithBreakerTimeout sets how long the circuit stays open.
func WithBreakerTimeout(d time.Duration) Option {
	return func(c *Client) { c.openTimeout = d }
}

// Client fetches state vectors from the OpenSky Network.
//
// Requests pass through a token bucket (one request per MinInterval, no
// waiting: a denied request is reported as "Rate Limited") and a circuit
// breaker. Both short-circuit to a not-OK FetchResult so the cycle falls
// back to simulation without touching the network.
type Client struct {
	url        string
	httpClient *http.Client
	username   string
	password   string
	limiter    *rate.Limiter

	minRequests  uint32
	failureRatio float64
	openTimeout  time.Duration
	cb           *gobreaker.CircuitBreaker[*states]
}

// NewClient creates an OpenSky client from configuration.
func NewClient(cfg config.OpenSkyConfig, opts ...Option) *Client {
	c := &Client{
		url:          cfg.URL,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		username:     cfg.Username,
		password:     cfg.Password,
		limiter:      newLimiter(cfg.MinInterval),
		minRequests:  10,
		failureRatio: 0.6,
		openTimeout:  2 * time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cb = c.newBreaker()
	return c
}

func newLimiter(minInterval time.Duration) *rate.Limiter {
	if minInterval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(minInterval), 1)
}

func (c *Client) newBreaker() *gobreaker.CircuitBreaker[*states] {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(0)

	return gobreaker.NewCircuitBreaker[*states](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    5 * time.Minute,
		Timeout:     c.openTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < c.minRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= c.failureRatio
			if shouldTrip {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening OpenSky circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).
				Str("from", metrics.BreakerStateString(from)).
				Str("to", metrics.BreakerStateString(to)).
				Msg("[CIRCUIT BREAKER] State transition")

			metrics.RecordBreakerTransition(name, from, to)
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})
}

// BreakerState returns the current circuit state as a string.
func (c *Client) BreakerState() string {
	return metrics.BreakerStateString(c.cb.State())
}

// Fetch retrieves the current state vectors. It never returns an error;
// failures are reported in the result.
func (c *Client) Fetch(ctx context.Context) FetchResult {
	if !c.limiter.Allow() {
		logging.Debug().Str("component", "ingestion").Msg("OpenSky request skipped by min interval")
		metrics.RecordOpenSkyRequest(ReasonRateLimited, 0)
		return Failed(ReasonRateLimited)
	}

	start := time.Now()
	result, err := c.cb.Execute(func() (*states, error) {
		return c.fetch(ctx)
	})
	duration := time.Since(start)

	if err != nil {
		reason := c.reasonFor(err)
		metrics.RecordOpenSkyRequest(reason, duration)
		logging.Info().Str("component", "ingestion").Str("reason", reason).Err(err).Msg("OpenSky unavailable, falling back to simulation")
		return Failed(reason)
	}

	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(0)

	if result.noContent {
		metrics.RecordOpenSkyRequest(ReasonNoContent, duration)
		logging.Info().Str("component", "ingestion").Msg("OpenSky returned 204 No Content")
		return Failed(ReasonNoContent)
	}

	metrics.RecordOpenSkyRequest("ok", duration)
	logging.Debug().Str("component", "ingestion").Int("states", len(result.items)).Dur("duration", duration).Msg("OpenSky fetch succeeded")
	return FetchResult{Items: result.items, OK: true}
}

func (c *Client) reasonFor(err error) string {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
		return ReasonCircuitOpen
	}

	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
	counts := c.cb.Counts()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(float64(counts.ConsecutiveFailures))

	var fe *fetchError
	if errors.As(err, &fe) {
		return fe.reason
	}
	return ReasonRequestError
}

func (c *Client) fetch(ctx context.Context) (*states, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &fetchError{reason: ReasonRequestError, err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.username != "" && c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &fetchError{reason: ReasonTimeout, err: err}
		}
		return nil, &fetchError{reason: ReasonRequestError, err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &fetchError{reason: ReasonTooManyRequests}
	case resp.StatusCode == http.StatusNoContent:
		return &states{noContent: true}, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &fetchError{reason: httpStatusReason(resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if isTimeout(err) {
			return nil, &fetchError{reason: ReasonTimeout, err: err}
		}
		return nil, &fetchError{reason: ReasonRequestError, err: err}
	}

	items, err := decodeStates(body)
	if err != nil {
		return nil, err
	}
	return &states{items: items}, nil
}

// decodeStates extracts the states list. Elements that are not lists are
// kept as nil so the normalizer rejects and counts them.
func decodeStates(body []byte) ([][]any, error) {
	var payload statesPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &fetchError{reason: ReasonJSONError, err: err}
	}

	raw := bytes.TrimSpace(payload.States)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, &fetchError{reason: ReasonBadFormat, err: errors.New("states missing or null")}
	}

	var list []any
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, &fetchError{reason: ReasonBadFormat, err: err}
	}

	items := make([][]any, len(list))
	for i, v := range list {
		if vec, ok := v.([]any); ok {
			items[i] = vec
		}
	}
	return items, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
