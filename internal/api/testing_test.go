// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/covidash/internal/config"
	"github.com/tomtom215/covidash/internal/dashboard"
	"github.com/tomtom215/covidash/internal/dataset"
	"github.com/tomtom215/covidash/internal/geo"
	"github.com/tomtom215/covidash/internal/logging"
	"github.com/tomtom215/covidash/internal/render"
	ws "github.com/tomtom215/covidash/internal/websocket"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "info",
		Format: "console",
		Output: io.Discard,
	})
}

func day(d int) time.Time {
	return time.Date(2021, 1, d, 0, 0, 0, 0, time.UTC)
}

func testTable() *dataset.Table {
	rows := []dataset.Observation{
		{Location: "United States", ISOCode: "USA", Continent: "North America", Date: day(1), TotalCases: 100, TotalDeaths: 1},
		{Location: "United States", ISOCode: "USA", Continent: "North America", Date: day(2), TotalCases: 150, TotalDeaths: 2},
		{Location: "United States", ISOCode: "USA", Continent: "North America", Date: day(3), TotalCases: 400, TotalDeaths: 4},
		{Location: "Germany", ISOCode: "DEU", Continent: "Europe", Date: day(1), TotalCases: 80},
		{Location: "Germany", ISOCode: "DEU", Continent: "Europe", Date: day(3), TotalCases: 100, TotalDeaths: 3},
		{Location: "World", ISOCode: "OWID_WRL", Continent: "0", Date: day(3), TotalCases: 500, TotalDeaths: 7},
	}
	return dataset.NewTable(rows, []string{"iso_code", "continent", "location", "date", "total_cases", "total_deaths"})
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 8050},
		Dashboard: config.DashboardConfig{
			DefaultCountry: "United States",
			CacheSize:      16,
		},
		Security: config.SecurityConfig{
			RateLimitReqs:   1000,
			RateLimitWindow: time.Minute,
		},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

type testEnv struct {
	cfg     *config.Config
	figures *FigureService
	hub     *ws.Hub
	handler *Handler
	router  http.Handler
}

// newTestEnv builds the full router over testTable. A hub is started when
// withHub is set and stopped when the test ends.
func newTestEnv(t *testing.T, cfg *config.Config, withHub bool) *testEnv {
	t.Helper()
	table := testTable()
	layout, err := dashboard.BuildLayout(table, dashboard.LayoutOptions{DefaultCountry: cfg.Dashboard.DefaultCountry})
	if err != nil {
		t.Fatalf("BuildLayout: %v", err)
	}

	env := &testEnv{
		cfg:     cfg,
		figures: NewFigureService(table, geo.MustDefault(), render.New(""), cfg.Dashboard.CacheSize),
	}
	if withHub {
		env.hub = ws.NewHub("boot-test")
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			_ = env.hub.RunWithContext(ctx)
			close(done)
		}()
		t.Cleanup(func() {
			cancel()
			<-done
		})
	}
	env.handler = NewHandler(cfg, layout, env.figures, env.hub, "boot-test")
	env.router = NewRouter(env.handler, cfg).SetupChi()
	return env
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// envelope decodes an APIResponse keeping data raw.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
	Meta *APIMeta `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return env
}
