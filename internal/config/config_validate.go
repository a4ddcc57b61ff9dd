// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"
)

// Validate checks each section in order and reports the first problem,
// named by the environment variable that sets it.
func (c *Config) Validate() error {
	for _, check := range []func() error{
		c.validateServer,
		c.validateDataset,
		c.validateDashboard,
		c.validateCORS,
		c.validateRateLimits,
		c.validateMetrics,
		c.validateLogging,
	} {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Host == "" {
		return fmt.Errorf("HTTP_HOST is required")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	// The debug server exposes the profiler and verbose error details.
	if c.Server.Debug && c.IsProduction() {
		return fmt.Errorf("DEBUG=true is not allowed with ENVIRONMENT=production")
	}
	return nil
}

var validDatasetFormats = map[string]bool{
	"auto":    true,
	"csv":     true,
	"parquet": true,
}

func (c *Config) validateDataset() error {
	if strings.TrimSpace(c.Dataset.Path) == "" {
		return fmt.Errorf("DATASET_PATH is required")
	}
	if !validDatasetFormats[c.Dataset.Format] {
		return fmt.Errorf("DATASET_FORMAT must be one of: auto, csv, parquet")
	}
	return nil
}

const maxFigureCacheSize = 100000

func (c *Config) validateDashboard() error {
	if c.Dashboard.CacheSize < 0 || c.Dashboard.CacheSize > maxFigureCacheSize {
		return fmt.Errorf("FIGURE_CACHE_SIZE must be between 0 and %d", maxFigureCacheSize)
	}
	u, err := url.Parse(c.Dashboard.AssetsHost)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("ASSETS_HOST must be an absolute URL")
	}
	if !strings.HasSuffix(c.Dashboard.AssetsHost, "/") {
		return fmt.Errorf("ASSETS_HOST must end with '/'")
	}
	return nil
}

// validateCORS rejects wildcard origins in production.
func (c *Config) validateCORS() error {
	if c.IsProduction() && slices.Contains(c.Security.CORSOrigins, "*") {
		return fmt.Errorf("CORS_ORIGINS=* is not allowed in production; list the embedding origins instead")
	}
	return nil
}

const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateRateLimits() error {
	sec := c.Security
	switch {
	case sec.RateLimitDisabled:
		return nil
	case sec.RateLimitReqs < minRateLimitRequests || sec.RateLimitReqs > maxRateLimitRequests:
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	case sec.RateLimitWindow < minRateLimitWindow || sec.RateLimitWindow > maxRateLimitWindow:
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

func (c *Config) validateMetrics() error {
	if !c.Metrics.Enabled {
		return nil
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("METRICS_PATH must start with '/'")
	}
	if c.Metrics.Path == "/" || c.Metrics.Path == "/ws" {
		return fmt.Errorf("METRICS_PATH %q collides with a dashboard route", c.Metrics.Path)
	}
	for _, prefix := range []string{"/api", "/debug"} {
		if c.Metrics.Path == prefix || strings.HasPrefix(c.Metrics.Path, prefix+"/") {
			return fmt.Errorf("METRICS_PATH %q collides with a dashboard route", c.Metrics.Path)
		}
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
