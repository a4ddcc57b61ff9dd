// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/covidash/internal/config"
	"github.com/tomtom215/covidash/internal/dashboard"
	"github.com/tomtom215/covidash/internal/logging"
	ws "github.com/tomtom215/covidash/internal/websocket"
)

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, WebSocket upgrade
//   - handlers_dashboard.go: page, layout, update, chart snapshots
//   - handlers_health.go: health probes
type Handler struct {
	config    *config.Config
	layout    *dashboard.Layout
	figures   *FigureService
	wsHub     *ws.Hub
	bootID    string
	startTime time.Time
}

// NewHandler creates a handler serving layout and figures. wsHub may be nil,
// in which case /ws answers 503 and the page falls back to HTTP updates.
func NewHandler(cfg *config.Config, layout *dashboard.Layout, figures *FigureService, wsHub *ws.Hub, bootID string) *Handler {
	return &Handler{
		config:    cfg,
		layout:    layout,
		figures:   figures,
		wsHub:     wsHub,
		bootID:    bootID,
		startTime: time.Now(),
	}
}

func (h *Handler) debug() bool {
	return h.config != nil && h.config.Server.Debug
}

// errorDetails returns err's text in debug mode only.
func (h *Handler) errorDetails(err error) interface{} {
	if err == nil || !h.debug() {
		return nil
	}
	return map[string]string{"error": err.Error()}
}

// getUpgrader creates a WebSocket upgrader with origin checking and timeouts.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  4096,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin accepts same-host origins and configured CORS
// origins. Browsers always send Origin on WebSocket handshakes, so a
// missing header is rejected.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	if origin == "http://"+r.Host || origin == "https://"+r.Host {
		return true
	}

	if h.config != nil {
		for _, allowed := range h.config.Security.CORSOrigins {
			if allowed == "*" || allowed == origin {
				return true
			}
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}

// WebSocket upgrades the connection and registers a session with the hub.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		WriteError(w, r, ErrCodeServiceUnavailable, "WebSocket service unavailable")
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logging.Ctx(r.Context()).Debug().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(r.Context(), h.wsHub, conn, h.figures)
	if err := h.wsHub.Add(r.Context(), client); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("WebSocket hub not accepting clients")
		_ = conn.Close()
		return
	}
	client.Start()
}

// sanitizeLogValue strips control characters and caps the length of
// client-supplied values before they reach the logs.
func sanitizeLogValue(s string) string {
	const maxLen = 200
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			continue
		}
		out = append(out, r)
		if len(out) == maxLen {
			break
		}
	}
	return string(out)
}
