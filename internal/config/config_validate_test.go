// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"empty host", func(c *Config) { c.Server.Host = "" }, "HTTP_HOST"},
		{"zero timeout", func(c *Config) { c.Server.Timeout = 0 }, "HTTP_TIMEOUT"},
		{"unknown environment", func(c *Config) { c.Server.Environment = "qa" }, "ENVIRONMENT"},
		{"debug in production", func(c *Config) { c.Server.Environment = "production" }, "DEBUG"},
		{"production without debug", func(c *Config) {
			c.Server.Environment = "production"
			c.Server.Debug = false
		}, ""},
		{"empty dataset path", func(c *Config) { c.Dataset.Path = "  " }, "DATASET_PATH"},
		{"bad dataset format", func(c *Config) { c.Dataset.Format = "json" }, "DATASET_FORMAT"},
		{"parquet format", func(c *Config) { c.Dataset.Format = "parquet" }, ""},
		{"negative cache", func(c *Config) { c.Dashboard.CacheSize = -1 }, "FIGURE_CACHE_SIZE"},
		{"cache disabled", func(c *Config) { c.Dashboard.CacheSize = 0 }, ""},
		{"relative assets host", func(c *Config) { c.Dashboard.AssetsHost = "assets/" }, "ASSETS_HOST"},
		{"assets host without slash", func(c *Config) { c.Dashboard.AssetsHost = "https://cdn.example.com/assets" }, "ASSETS_HOST"},
		{"wildcard cors in production", func(c *Config) {
			c.Server.Environment = "production"
			c.Server.Debug = false
			c.Security.CORSOrigins = []string{"*"}
		}, "CORS_ORIGINS"},
		{"wildcard cors in development", func(c *Config) { c.Security.CORSOrigins = []string{"*"} }, ""},
		{"rate limit too low", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQUESTS"},
		{"rate window too short", func(c *Config) { c.Security.RateLimitWindow = time.Millisecond }, "RATE_LIMIT_WINDOW"},
		{"rate limit disabled skips bounds", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"metrics path relative", func(c *Config) { c.Metrics.Path = "metrics" }, "METRICS_PATH"},
		{"metrics path on api", func(c *Config) { c.Metrics.Path = "/api/metrics" }, "METRICS_PATH"},
		{"metrics path on root", func(c *Config) { c.Metrics.Path = "/" }, "METRICS_PATH"},
		{"metrics disabled ignores path", func(c *Config) {
			c.Metrics.Enabled = false
			c.Metrics.Path = ""
		}, ""},
		{"invalid log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"invalid log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestServerConfigAddr(t *testing.T) {
	t.Parallel()

	s := ServerConfig{Host: "127.0.0.1", Port: 8050}
	if got := s.Addr(); got != "127.0.0.1:8050" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8050", got)
	}
	s = ServerConfig{Host: "::1", Port: 8050}
	if got := s.Addr(); got != "[::1]:8050" {
		t.Errorf("Addr() = %q, want [::1]:8050", got)
	}
}
