// Skywatch - Restricted Airspace Drone Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skywatch

package websocket

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/skywatch/internal/config"
	"github.com/tomtom215/skywatch/internal/logging"
	"github.com/tomtom215/skywatch/internal/metrics"
	"github.com/tomtom215/skywatch/internal/models"
)

// ShutdownReason identifies why the hub is shutting down.
type ShutdownReason string

const (
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

const (
	// DefaultSendTimeout bounds a single frame write.
	DefaultSendTimeout = 10 * time.Second
	// DefaultInterval is the longest a client waits between frames.
	DefaultInterval = 60 * time.Second

	broadcastBuffer = 16
)

// ErrHubUnavailable is returned when the hub loop does not accept a client
// within the send timeout.
var ErrHubUnavailable = errors.New("websocket hub not accepting clients")

// snapshot is an encoded cycle result.
type snapshot struct {
	data []byte
}

// Hub holds the connected clients and the most recent cycle result. Each
// cycle result is encoded once and fanned out to every client queue.
//
// A client whose queue is full is dropped; other clients are unaffected.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex

	latest      atomic.Pointer[snapshot]
	lastSent    atomic.Int64
	interval    time.Duration
	sendTimeout time.Duration
}

// NewHub creates a hub. Zero config values fall back to the defaults.
func NewHub(cfg config.StreamConfig) *Hub {
	h := &Hub{
		broadcast:   make(chan []byte, broadcastBuffer),
		Register:    make(chan *Client),
		Unregister:  make(chan *Client),
		clients:     make(map[*Client]bool),
		interval:    cfg.Interval,
		sendTimeout: cfg.SendTimeout,
	}
	if h.interval <= 0 {
		h.interval = DefaultInterval
	}
	if h.sendTimeout <= 0 {
		h.sendTimeout = DefaultSendTimeout
	}
	return h
}

// SendTimeout returns the per-frame write deadline.
func (h *Hub) SendTimeout() time.Duration { return h.sendTimeout }

// Publish encodes result, stores it as the latest snapshot and queues it
// for broadcast. It never blocks the caller.
func (h *Hub) Publish(result *models.CycleResult) {
	if result == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		logging.Error().Err(err).Str("cycle_id", result.ID).Msg("failed to encode cycle result")
		return
	}
	h.latest.Store(&snapshot{data: data})

	select {
	case h.broadcast <- data:
	default:
		// The hub loop is behind; the stale-resend tick delivers the latest.
		logging.Warn().Str("cycle_id", result.ID).Msg("websocket broadcast queue full, frame deferred")
	}
}

// RegisterClient hands client to the hub loop. It gives up when ctx is done
// or the loop has not taken the client within the send timeout.
func (h *Hub) RegisterClient(ctx context.Context, client *Client) error {
	timer := time.NewTimer(h.sendTimeout)
	defer timer.Stop()

	select {
	case h.Register <- client:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrHubUnavailable
	}
}

// Latest returns the most recent encoded cycle result, or nil.
func (h *Hub) Latest() []byte {
	if s := h.latest.Load(); s != nil {
		return s.data
	}
	return nil
}

// RunWithContext runs the hub loop until ctx is cancelled, then closes all
// clients.
//
// Client lifecycle events are drained before broadcasts so a client
// registered before a broadcast always receives it. When no frame has been
// broadcast for a full interval the latest snapshot is resent.
func (h *Hub) RunWithContext(ctx context.Context) error {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case client := <-h.Register:
			h.addClient(client)
			continue
		case client := <-h.Unregister:
			h.removeClient(client)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		case client := <-h.Register:
			h.addClient(client)
		case client := <-h.Unregister:
			h.removeClient(client)
		case data := <-h.broadcast:
			h.broadcastToClients(data)
		case now := <-ticker.C:
			h.resendIfStale(now)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Set(float64(total))
	logging.Info().Uint64("client_id", client.id).Int("total_clients", total).Msg("websocket client connected")

	if data := h.Latest(); data != nil {
		select {
		case client.send <- data:
		default:
		}
	}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.release()
	}
	total := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Set(float64(total))
	logging.Info().Uint64("client_id", client.id).Int("total_clients", total).Msg("websocket client disconnected")
}

func (h *Hub) resendIfStale(now time.Time) {
	s := h.latest.Load()
	if s == nil {
		return
	}
	if now.Sub(time.Unix(0, h.lastSent.Load())) < h.interval {
		return
	}
	h.broadcastToClients(s.data)
}

func (h *Hub) logGracefulShutdown(ctx context.Context) {
	clientCount := h.GetClientCount()
	h.closeAllClients()

	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(getShutdownReason(ctx))).
		Int("clients_closed", clientCount).
		Msg("websocket hub stopped")
}

func getShutdownReason(ctx context.Context) ShutdownReason {
	if ctx.Err() == context.DeadlineExceeded {
		return ShutdownReasonContextDeadline
	}
	return ShutdownReasonContextCanceled
}

// broadcastToClients queues data for every client in id order. Clients
// whose queue is full are removed.
func (h *Hub) broadcastToClients(data []byte) {
	h.lastSent.Store(time.Now().UnixNano())

	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})

	var toRemove []*Client
	for _, client := range clients {
		select {
		case client.send <- data:
		default:
			toRemove = append(toRemove, client)
		}
	}

	for _, client := range toRemove {
		client.release()
		delete(h.clients, client)
		metrics.WSErrors.WithLabelValues("slow_client").Inc()
		logging.Warn().Uint64("client_id", client.id).Msg("websocket client dropped: send queue full")
	}
	if len(toRemove) > 0 {
		metrics.WSConnections.Set(float64(len(h.clients)))
	}
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.release()
		delete(h.clients, client)
	}
	metrics.WSConnections.Set(0)
}

// GetClientCount returns the number of connected clients.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
