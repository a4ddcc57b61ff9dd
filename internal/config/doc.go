// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

/*
Package config provides centralized configuration management for Covidash.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file, then environment variables. The result is validated section by
section before the server starts.

# Config File

The first file found is used:
  - $CONFIG_PATH
  - config.yaml / config.yml (working directory)
  - /etc/covidash/config.yaml / config.yml

Example:

	server:
	  host: 0.0.0.0
	  port: 8050
	  debug: false
	  environment: production
	dataset:
	  path: /data/owid-covid-data.parquet
	  format: auto
	dashboard:
	  default_country: Germany
	security:
	  cors_origins: [https://dash.example.com]

# Environment Variables

Server:
  - HTTP_HOST: Bind address (default: 127.0.0.1)
  - HTTP_PORT: Listen port (default: 8050)
  - HTTP_TIMEOUT: Request timeout (default: 30s)
  - DEBUG: Debug mode with profiler, verbose errors, and live reload (default: true)
  - ENVIRONMENT: development, staging, production (default: development)

Dataset:
  - DATASET_PATH: Observation table location (default: data/data.csv)
  - DATASET_FORMAT: auto, csv, parquet (default: auto, by file extension)

Dashboard:
  - DASHBOARD_TITLE: Page heading (default: COVID-19 Dashboard)
  - DEFAULT_COUNTRY: Initial dropdown value (default: United States)
  - FIGURE_CACHE_SIZE: Memoized selections, 0 disables (default: 256)
  - ASSETS_HOST: Base URL for echarts.min.js and maps/world.js

Security:
  - CORS_ORIGINS: Comma-separated allowed origins
  - RATE_LIMIT_REQUESTS: Requests per window per IP (default: 100)
  - RATE_LIMIT_WINDOW: Window length (default: 1m)
  - DISABLE_RATE_LIMIT: Turn rate limiting off (default: false)

Observability:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: Include file:line (default: false)
  - METRICS_ENABLED: Expose Prometheus metrics (default: true)
  - METRICS_PATH: Exposition path (default: /metrics)
*/
package config
