// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

/*
Package main is the entry point for the Covidash server.

Covidash serves a single-page COVID-19 dashboard: a country dropdown and a
date range drive a cases/deaths line chart, while a continent bar chart and
a world bubble map show the latest day of the dataset.

# Startup

 1. Configuration: Koanf v2 (defaults, optional YAML file, environment)
 2. Logging: zerolog, JSON or console
 3. Dataset: CSV or Parquet loaded once into an immutable table; any
    failure is fatal
 4. Layout: component tree built from the table
 5. Runtime: figure service, WebSocket hub, Chi router
 6. Supervisor tree: suture v4 running the hub and the HTTP server

	root ("covidash")
	├── session-layer
	│   └── websocket-hub
	└── api-layer
	    └── http-server

# Configuration

Common environment variables:

	DATASET_PATH      data/data.csv
	DATASET_FORMAT    auto | csv | parquet
	HTTP_HOST         127.0.0.1
	HTTP_PORT         8050
	DEBUG             true enables error details, /debug, and page auto-reload
	DEFAULT_COUNTRY   United States
	LOG_LEVEL         trace | debug | info | warn | error

# Signals

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains for
up to 10s and the hub sends every session a going-away close frame.

# Example

	DATASET_PATH=./owid-covid-data.csv DEBUG=true ./covidash
*/
package main
