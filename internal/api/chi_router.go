// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/covidash/internal/config"
	"github.com/tomtom215/covidash/internal/middleware"
)

// Router wires handlers and middleware into a Chi mux.
type Router struct {
	handler *Handler
	config  *config.Config
}

// NewRouter creates a router. The security section of cfg drives CORS and
// rate limiting.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	return &Router{handler: handler, config: cfg}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(stampStart)
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(newCORS(router.config.Security)) // global so OPTIONS preflight is answered
	r.Use(chiMiddleware(middleware.AccessLog))

	r.Get("/", router.handler.Index)
	r.Get("/charts/{chart}", router.handler.Snapshot)
	// The upgrade hijacks the connection, so /ws stays outside the rate
	// limited group and its Cache-Control header.
	r.Get("/ws", router.handler.WebSocket)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(newRateLimit(router.config.Security))
		r.Use(APISecurityHeaders)
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Get("/layout", router.handler.Layout)
		r.Post("/update", router.handler.Update)
		r.Get("/figures", router.handler.Figures)

		r.Route("/health", func(r chi.Router) {
			r.Get("/", router.handler.Health)
			r.Get("/live", router.handler.HealthLive)
			r.Get("/ready", router.handler.HealthReady)
		})
	})

	if router.config.Metrics.Enabled {
		path := router.config.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, promhttp.Handler())
	}

	if router.config.Server.Debug {
		r.Mount("/debug", chimiddleware.Profiler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, ErrCodeNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, ErrCodeMethodNotAllowed, "Method not allowed")
	})

	return r
}
