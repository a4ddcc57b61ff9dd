// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package services

import "context"

// ContextHub is satisfied by *websocket.Hub.
type ContextHub interface {
	RunWithContext(ctx context.Context) error
}

// WebSocketHubService keeps the session registry running. When the tree
// stops, the hub closes every session with a going-away frame before Serve
// returns.
type WebSocketHubService struct {
	hub ContextHub
}

func NewWebSocketHubService(hub ContextHub) *WebSocketHubService {
	return &WebSocketHubService{hub: hub}
}

func (w *WebSocketHubService) Serve(ctx context.Context) error { return w.hub.RunWithContext(ctx) }

func (w *WebSocketHubService) String() string { return "websocket-hub" }
