// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/covidash/internal/logging"
	"github.com/tomtom215/covidash/internal/metrics"
)

func TestPrometheusMetrics_StatusCodes(t *testing.T) {
	t.Parallel()

	codes := []int{
		http.StatusOK,
		http.StatusBadRequest,
		http.StatusNotFound,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
	}

	for _, code := range codes {
		t.Run(http.StatusText(code), func(t *testing.T) {
			t.Parallel()
			handler := PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(code)
			})

			rec := httptest.NewRecorder()
			handler(rec, httptest.NewRequest(http.MethodGet, "/status-test", nil))

			if rec.Code != code {
				t.Errorf("expected status %d, got %d", code, rec.Code)
			}
		})
	}
}

func TestPrometheusMetrics_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/v1/widgets/{id}", PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	counter := metrics.APIRequestsTotal.WithLabelValues("GET", "/api/v1/widgets/{id}", "204")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2", "3"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/widgets/"+id, nil))
	}

	if got := testutil.ToFloat64(counter) - before; got != 3 {
		t.Errorf("pattern counter increased by %v, want 3", got)
	}
}

func TestPrometheusMetrics_DefaultStatus(t *testing.T) {
	counter := metrics.APIRequestsTotal.WithLabelValues("GET", "/default-status", "200")
	before := testutil.ToFloat64(counter)

	handler := PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	})
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/default-status", nil))

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("200 counter increased by %v, want 1", got)
	}
}

func TestMetricsResponseWriter(t *testing.T) {
	t.Parallel()

	t.Run("first WriteHeader wins", func(t *testing.T) {
		t.Parallel()
		rw := &metricsResponseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}
		rw.WriteHeader(http.StatusCreated)
		rw.WriteHeader(http.StatusInternalServerError)
		if rw.statusCode != http.StatusCreated {
			t.Errorf("statusCode = %d, want 201", rw.statusCode)
		}
	})

	t.Run("hijack unsupported by recorder", func(t *testing.T) {
		t.Parallel()
		rw := &metricsResponseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}
		if _, _, err := rw.Hijack(); err == nil {
			t.Error("expected error when underlying writer cannot hijack")
		}
	})

	t.Run("unwrap", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		rw := &metricsResponseWriter{ResponseWriter: rec}
		if rw.Unwrap() != rec {
			t.Error("Unwrap() should return the underlying writer")
		}
	})

	t.Run("flush forwards", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		rw := &metricsResponseWriter{ResponseWriter: rec}
		rw.Flush()
		if !rec.Flushed {
			t.Error("expected recorder to be flushed")
		}
	})
}

func TestAccessLog(t *testing.T) {
	original := logging.Logger()
	originalLevel := zerolog.GlobalLevel()
	defer func() {
		logging.SetLogger(original)
		zerolog.SetGlobalLevel(originalLevel)
	}()

	var buf bytes.Buffer
	logging.SetLogger(logging.NewTestLogger(&buf))
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	handler := RequestID(AccessLog(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/update", nil)
	req.Header.Set(RequestIDHeader, "req-access-log")
	handler(httptest.NewRecorder(), req)

	output := buf.String()
	for _, want := range []string{
		`"level":"warn"`,
		`"status":400`,
		`"path":"/api/v1/update"`,
		`"request_id":"req-access-log"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in access log, got: %s", want, output)
		}
	}
}
