// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package api

import (
	"net/http"
	"time"
)

// Version is reported by the health endpoint; set at build time with
// -ldflags "-X github.com/tomtom215/covidash/internal/api.Version=...".
var Version = "dev"

// HealthStatus is the body of GET /api/v1/health.
type HealthStatus struct {
	Status           string  `json:"status"`
	Version          string  `json:"version"`
	BootID           string  `json:"boot_id"`
	Rows             int     `json:"rows"`
	Locations        int     `json:"locations"`
	MinDate          string  `json:"min_date,omitempty"`
	MaxDate          string  `json:"max_date,omitempty"`
	WebSocketClients int     `json:"websocket_clients"`
	Uptime           float64 `json:"uptime_seconds"`
}

// Health reports dataset and session statistics.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	table := h.figures.Table()

	status := HealthStatus{
		Status:    "healthy",
		Version:   Version,
		BootID:    h.bootID,
		Rows:      table.Len(),
		Locations: len(table.Locations()),
		Uptime:    time.Since(h.startTime).Seconds(),
	}
	if !table.MinDate().IsZero() {
		status.MinDate = table.MinDate().Format("2006-01-02")
		status.MaxDate = table.MaxDate().Format("2006-01-02")
	}
	if h.wsHub != nil {
		status.WebSocketClients = h.wsHub.ClientCount()
	}
	if table.Len() == 0 {
		status.Status = "degraded"
	}

	WriteSuccess(w, r, status)
}

// HealthLive returns 200 while the process is alive.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady returns 200 once the dataset is loaded and the layout built,
// 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.layout == nil || h.figures == nil || h.figures.Table().Len() == 0 {
		WriteError(w, r, ErrCodeServiceUnavailable, "Dataset not loaded")
		return
	}
	WriteSuccess(w, r, map[string]interface{}{"ready": true})
}
