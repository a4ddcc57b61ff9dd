// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

/*
Package metrics defines the Prometheus collectors of the dashboard server.

Collectors register with the default registry through promauto. The router
exposes them at the configured metrics path (default /metrics). Every name
carries the covidash_ prefix:

	covidash_dataset_load_duration_seconds{format}
	covidash_dataset_load_errors_total{format,error_type}
	covidash_dataset_rows
	covidash_dataset_locations
	covidash_dataset_max_date_timestamp_seconds

	covidash_figures_updates_total{transport}
	covidash_figures_update_duration_seconds
	covidash_figures_line_points
	covidash_figures_render_errors_total{figure}

	covidash_api_requests_total{method,endpoint,status_code}
	covidash_api_request_duration_seconds{method,endpoint}
	covidash_api_in_flight_requests
	covidash_api_rate_limited_total{endpoint}

	covidash_cache_{hits_total,misses_total,entries,evictions_total}{cache_type}

	covidash_websocket_sessions
	covidash_websocket_messages_{sent,received}_total
	covidash_websocket_errors_total{error_type}

	covidash_info{boot_id,debug}
*/
package metrics
