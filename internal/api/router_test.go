// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	_ "github.com/tomtom215/skywatch/docs"
	"github.com/tomtom215/skywatch/internal/config"
	"github.com/tomtom215/skywatch/internal/middleware"
	"github.com/tomtom215/skywatch/internal/models"
	ws "github.com/tomtom215/skywatch/internal/websocket"
)

func setupRouter(t *testing.T, deps HandlerDeps, mw *ChiMiddleware) http.Handler {
	t.Helper()
	if deps.Config == nil {
		deps.Config = testConfig()
	}
	if deps.Processor == nil {
		deps.Processor = newProcessor(nil)
	}
	if mw == nil {
		mw = NewChiMiddlewareFromSecurity(deps.Config.Security)
	}
	return NewRouter(NewHandler(deps), mw).SetupChi()
}

func TestRouter_Routes(t *testing.T) {
	router := setupRouter(t, HandlerDeps{}, nil)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/restricted-zones", http.StatusOK},
		{http.MethodGet, "/fetch-drones-live", http.StatusOK},
		{http.MethodGet, "/fetch-drones-manual", http.StatusOK},
		{http.MethodPost, "/fetch-drones-manual", http.StatusOK},
		{http.MethodPost, "/force-drone?latitude=1&longitude=1", http.StatusOK},
		{http.MethodGet, "/drone-logs", http.StatusServiceUnavailable},
		{http.MethodGet, "/violations", http.StatusServiceUnavailable},
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/health/live", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/swagger/doc.json", http.StatusOK},
		{http.MethodGet, "/ws", http.StatusServiceUnavailable},
		{http.MethodGet, "/force-drone", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := serve(router, tt.method, tt.path)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestRouter_ErrorEnvelope(t *testing.T) {
	router := setupRouter(t, HandlerDeps{}, nil)
	w := serve(router, http.MethodGet, "/nope")

	var resp models.APIResponse
	decode(t, w, &resp)
	if resp.Status != "error" || resp.Error == nil || resp.Error.Code != CodeNotFound {
		t.Errorf("response = %+v", resp)
	}
}

func TestRouter_RequestIDEchoed(t *testing.T) {
	router := setupRouter(t, HandlerDeps{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get(middleware.RequestIDHeader); got != "req-123" {
		t.Errorf("X-Request-ID = %q, want req-123", got)
	}
}

func TestRouter_SecurityHeaders(t *testing.T) {
	router := setupRouter(t, HandlerDeps{}, nil)
	w := serve(router, http.MethodGet, "/restricted-zones")
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing X-Content-Type-Options")
	}
	if w.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS sent over plain HTTP")
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := setupRouter(t, HandlerDeps{}, nil)

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"http://localhost:3000", true},
		{"http://evil.example", false},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/force-drone", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			got := w.Header().Get("Access-Control-Allow-Origin")
			if tt.allowed && got != tt.origin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.origin)
			}
			if !tt.allowed && got != "" {
				t.Errorf("Allow-Origin = %q for disallowed origin", got)
			}
			if tt.allowed && w.Header().Get("Access-Control-Allow-Credentials") != "true" {
				t.Error("credentials not allowed")
			}
		})
	}
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	router := setupRouter(t, HandlerDeps{}, NewChiMiddleware(cfg))

	for i := 0; i < 2; i++ {
		if w := serve(router, http.MethodGet, "/restricted-zones"); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, w.Code)
		}
	}
	w := serve(router, http.MethodGet, "/restricted-zones")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	var resp models.APIResponse
	decode(t, w, &resp)
	if resp.Error == nil || resp.Error.Code != CodeRateLimitExceeded {
		t.Errorf("error = %+v", resp.Error)
	}

	// Health is outside the limited group.
	if w := serve(router, http.MethodGet, "/health"); w.Code != http.StatusOK {
		t.Errorf("health status = %d under rate limit", w.Code)
	}
}

func TestRouter_Compression(t *testing.T) {
	router := setupRouter(t, HandlerDeps{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/restricted-zones", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("Content-Encoding"); got != "gzip" {
		t.Errorf("Content-Encoding = %q, want gzip", got)
	}
}

func TestRouter_WebSocketStream(t *testing.T) {
	hub := ws.NewHub(config.StreamConfig{Interval: time.Hour, SendTimeout: time.Second})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = hub.RunWithContext(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	proc := newProcessor(nil)
	hub.Publish(proc.Cycle(context.Background()))

	server := httptest.NewServer(setupRouter(t, HandlerDeps{Processor: proc, Hub: hub}, nil))
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	defer func() { _ = conn.Close() }()

	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatal(err)
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got models.CycleResult
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if got.Validation.Total != len(got.Drones) || !got.Validation.CountsConsistent {
		t.Errorf("frame validation = %+v", got.Validation)
	}
}

func TestRouter_WebSocketRejectsForeignOrigin(t *testing.T) {
	hub := ws.NewHub(config.StreamConfig{})
	server := httptest.NewServer(setupRouter(t, HandlerDeps{Hub: hub}, nil))
	t.Cleanup(server.Close)

	header := http.Header{}
	header.Set("Origin", "http://evil.example")
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err == nil {
		_ = conn.Close()
		t.Fatal("dial succeeded for foreign origin")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("response = %v, want 403", resp)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
}
