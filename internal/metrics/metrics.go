// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "covidash"

// Dataset
var (
	DatasetLoadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "dataset",
		Name:      "load_duration_seconds",
		Help:      "Time to read and convert the observation table.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"format"})

	// error_type: not_found, schema, parse, other
	DatasetLoadErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dataset",
		Name:      "load_errors_total",
		Help:      "Failed dataset loads.",
	}, []string{"format", "error_type"})

	DatasetRows = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "dataset",
		Name:      "rows",
		Help:      "Observation rows in the loaded table.",
	})

	DatasetLocations = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "dataset",
		Name:      "locations",
		Help:      "Distinct locations in the loaded table.",
	})

	DatasetMaxDate = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "dataset",
		Name:      "max_date_timestamp_seconds",
		Help:      "Most recent observation date as a Unix timestamp.",
	})
)

// Figures
var (
	// transport: http, websocket
	FigureUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "figures",
		Name:      "updates_total",
		Help:      "Callback invocations, cache hits included.",
	}, []string{"transport"})

	FigureUpdateDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "figures",
		Name:      "update_duration_seconds",
		Help:      "Time to filter rows and build all three figures.",
		Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
	})

	FigureLinePoints = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "figures",
		Name:      "line_points",
		Help:      "Points per series in generated line charts.",
		Buckets:   []float64{0, 1, 10, 50, 100, 250, 500, 1000, 2000},
	})

	FigureRenderErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "figures",
		Name:      "render_errors_total",
		Help:      "Figures that failed to render.",
	}, []string{"figure"})
)

// HTTP API
var (
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "API requests by route pattern and status.",
	}, []string{"method", "endpoint", "status_code"})

	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "API request latency.",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "endpoint"})

	APIActiveRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "in_flight_requests",
		Help:      "API requests being served.",
	})

	APIRateLimitHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the rate limiter.",
	}, []string{"endpoint"})
)

// Caches, labelled by cache_type ("figures").
var (
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Cache lookups that found an entry.",
	}, []string{"cache_type"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Cache lookups that found nothing.",
	}, []string{"cache_type"})

	CacheSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "entries",
		Help:      "Entries currently held.",
	}, []string{"cache_type"})

	CacheEvictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "evictions_total",
		Help:      "Entries dropped to make room.",
	}, []string{"cache_type"})
)

// WebSocket sessions
var (
	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "websocket",
		Name:      "sessions",
		Help:      "Open dashboard sessions.",
	})

	WSMessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "websocket",
		Name:      "messages_sent_total",
		Help:      "Frames written to sessions.",
	})

	WSMessagesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "websocket",
		Name:      "messages_received_total",
		Help:      "Frames read from sessions.",
	})

	WSErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "websocket",
		Name:      "errors_total",
		Help:      "Session errors by kind.",
	}, []string{"error_type"})
)

// AppInfo is always 1; the labels carry the information.
var AppInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: namespace,
	Name:      "info",
	Help:      "Process information.",
}, []string{"boot_id", "debug"})

// RecordDatasetLoad observes one load; errorType is empty on success.
func RecordDatasetLoad(format, errorType string, took time.Duration) {
	DatasetLoadDuration.WithLabelValues(format).Observe(took.Seconds())
	if errorType == "" {
		return
	}
	DatasetLoadErrors.WithLabelValues(format, errorType).Inc()
}

func SetDatasetStats(rows, locations int, maxDate time.Time) {
	DatasetRows.Set(float64(rows))
	DatasetLocations.Set(float64(locations))
	if !maxDate.IsZero() {
		DatasetMaxDate.Set(float64(maxDate.Unix()))
	}
}

// RecordFigureUpdate records a computed (not cached) callback run.
func RecordFigureUpdate(transport string, took time.Duration, linePoints int) {
	FigureUpdates.WithLabelValues(transport).Inc()
	FigureUpdateDuration.Observe(took.Seconds())
	FigureLinePoints.Observe(float64(linePoints))
}

// RecordAPIRequest counts one finished request under its route pattern.
func RecordAPIRequest(method, endpoint, statusCode string, took time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(took.Seconds())
}

// TrackActiveRequest moves the in-flight gauge up or down.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
		return
	}
	APIActiveRequests.Dec()
}

func RecordCacheLookup(cacheType string, hit bool) {
	c := CacheMisses
	if hit {
		c = CacheHits
	}
	c.WithLabelValues(cacheType).Inc()
}

// SetAppInfo publishes the boot ID and debug flag.
func SetAppInfo(bootID string, debug bool) {
	AppInfo.WithLabelValues(bootID, strconv.FormatBool(debug)).Set(1)
}
