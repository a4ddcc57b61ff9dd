// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package websocket

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/tomtom215/covidash/internal/logging"
	"github.com/tomtom215/covidash/internal/metrics"
)

// Hub is the registry of open dashboard sessions. Sessions join and leave
// through the Run loop; ClientCount may be read from any goroutine.
type Hub struct {
	bootID string
	join   chan *Client
	leave  chan *Client

	mu      sync.RWMutex
	clients map[uint64]*Client
}

// NewHub creates a hub that greets each session with bootID.
func NewHub(bootID string) *Hub {
	return &Hub{
		bootID:  bootID,
		join:    make(chan *Client),
		leave:   make(chan *Client),
		clients: make(map[uint64]*Client),
	}
}

// Add hands client to the Run loop. It fails with ctx.Err() if the hub is
// not running or ctx ends first.
func (h *Hub) Add(ctx context.Context, client *Client) error {
	select {
	case h.join <- client:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Remove takes client out of the registry and closes its send queue.
// Removing an unknown or already removed client is a no-op.
func (h *Hub) Remove(ctx context.Context, client *Client) error {
	select {
	case h.leave <- client:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ClientCount returns the number of open sessions.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RunWithContext serves joins and leaves until ctx ends, then closes every
// session and returns ctx.Err(). Once ctx is done no further join is
// received, so Add on a stopped hub waits for its own ctx.
func (h *Hub) RunWithContext(ctx context.Context) error {
	for ctx.Err() == nil {
		select {
		case <-ctx.Done():
		case c := <-h.join:
			h.register(c)
		case c := <-h.leave:
			h.unregister(c)
		}
	}

	closed := h.closeAll()
	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", stopReason(ctx)).
		Int("clients_closed", closed).
		Msg("websocket hub stopped")
	return ctx.Err()
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c.id] = c
	n := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Set(float64(n))
	c.trySend(Message{Type: MessageTypeHello, Data: HelloData{BootID: h.bootID}})
	logging.Debug().Uint64("client_id", c.id).Int("total_clients", n).Msg("websocket client connected")
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	_, known := h.clients[c.id]
	delete(h.clients, c.id)
	n := len(h.clients)
	h.mu.Unlock()

	if !known {
		return
	}
	c.closeSend()
	metrics.WSConnections.Set(float64(n))
	logging.Debug().Uint64("client_id", c.id).Int("total_clients", n).Msg("websocket client disconnected")
}

// closeAll cancels every session in ID order and empties the registry.
func (h *Hub) closeAll() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	ids := slices.Sorted(maps.Keys(h.clients))
	for _, id := range ids {
		c := h.clients[id]
		c.cancel()
		c.closeSend()
	}
	clear(h.clients)
	metrics.WSConnections.Set(0)
	return len(ids)
}

// stopReason labels the shutdown log line. A deadline usually means the
// tree gave up waiting on something hung.
func stopReason(ctx context.Context) string {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "context_deadline"
	}
	return "context_canceled"
}
