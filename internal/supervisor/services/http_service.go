// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/covidash/internal/logging"
)

const defaultDrainTimeout = 10 * time.Second

// HTTPServer is the part of *http.Server the service drives.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServerService runs the dashboard's HTTP server under a supervisor.
type HTTPServerService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
}

// NewHTTPServerService wraps server. shutdownTimeout bounds connection
// draining; zero or negative means 10s.
func NewHTTPServerService(server HTTPServer, shutdownTimeout time.Duration) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultDrainTimeout
	}
	return &HTTPServerService{server: server, shutdownTimeout: shutdownTimeout}
}

// Serve listens until ctx is canceled, then drains open connections and
// returns ctx.Err(). If the listener fails first, the error is returned and
// the supervisor restarts the service.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	var drainErr error
	drained := make(chan struct{})

	stopDrain := context.AfterFunc(ctx, func() {
		defer close(drained)
		dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.shutdownTimeout)
		defer cancel()

		logging.Info().Dur("timeout", h.shutdownTimeout).Msg("Draining HTTP connections")
		drainErr = h.server.Shutdown(dctx)
	})

	listenErr := h.server.ListenAndServe()

	if stopDrain() {
		// The listener returned on its own; ctx is still live.
		if listenErr == nil || errors.Is(listenErr, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http listener: %w", listenErr)
	}

	<-drained
	if drainErr != nil {
		return fmt.Errorf("drain http connections: %w", drainErr)
	}
	return ctx.Err()
}

func (h *HTTPServerService) String() string { return "http-server" }
