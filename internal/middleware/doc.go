// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

/*
Package middleware provides HTTP middleware components for the dashboard API.

Key Components:

  - RequestID: UUID request tracking, echoed as X-Request-ID and stored in
    the logging context
  - PrometheusMetrics: request count, latency, and in-flight gauge labelled
    by chi route pattern
  - AccessLog: one zerolog line per request

All middleware uses the http.HandlerFunc signature; the api package adapts
them to chi with chiMiddleware.

Middleware Stack:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.AccessLog))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))
*/
package middleware
