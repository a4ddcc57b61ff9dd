// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/covidash/internal/api"
	"github.com/tomtom215/covidash/internal/config"
	"github.com/tomtom215/covidash/internal/dashboard"
	"github.com/tomtom215/covidash/internal/dataset"
	"github.com/tomtom215/covidash/internal/geo"
	"github.com/tomtom215/covidash/internal/logging"
	"github.com/tomtom215/covidash/internal/metrics"
	"github.com/tomtom215/covidash/internal/render"
	"github.com/tomtom215/covidash/internal/supervisor"
	"github.com/tomtom215/covidash/internal/supervisor/services"
	ws "github.com/tomtom215/covidash/internal/websocket"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	// A new boot ID per process lets debug-mode pages notice a restart.
	bootID := uuid.New().String()
	metrics.SetAppInfo(bootID, cfg.Server.Debug)

	logging.Info().Str("boot_id", bootID).Str("config", cfg.String()).Msg("Starting Covidash")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	table, err := dataset.Load(ctx, cfg.Dataset.Path, cfg.Dataset.Format)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Dataset.Path).Msg("Failed to load dataset")
	}

	centroids, err := geo.Default()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load country centroids")
	}

	layout, err := dashboard.BuildLayout(table, dashboard.LayoutOptions{
		Title:          cfg.Dashboard.Title,
		DefaultCountry: cfg.Dashboard.DefaultCountry,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build layout")
	}

	figures := api.NewFigureService(table, centroids, render.New(cfg.Dashboard.AssetsHost), cfg.Dashboard.CacheSize)
	wsHub := ws.NewHub(bootID)
	handler := api.NewHandler(cfg, layout, figures, wsHub, bootID)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * time.Minute,
	}

	if cfg.Server.Debug {
		watchLogLevel()
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  shutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddSessionService(services.NewWebSocketHubService(wsHub))
	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().
		Str("addr", server.Addr).
		Bool("debug", cfg.Server.Debug).
		Int("locations", len(table.Locations())).
		Msg("Dashboard listening")

	if err := <-tree.ServeBackground(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Covidash stopped")
}

// watchLogLevel re-applies logging.level whenever the config file changes.
// Other settings need a restart.
func watchLogLevel() {
	path := config.FindConfigFile()
	if path == "" {
		logging.Debug().Msg("No config file to watch")
		return
	}

	err := config.WatchConfigFile(path, func() {
		level, err := config.LoadLogLevel(path)
		if err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("Ignoring config change")
			return
		}
		logging.SetLevelString(level)
		logging.Info().Str("level", level).Msg("Log level reloaded")
	})
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Config watch disabled")
		return
	}
	logging.Info().Str("path", path).Msg("Watching config file for log level changes")
}
