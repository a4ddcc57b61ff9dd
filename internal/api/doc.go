// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

/*
Package api exposes the dashboard over HTTP using the Chi router.

Routes:

	GET  /                     dashboard page (layout rendered to HTML)
	GET  /charts/{chart}       standalone snapshot of one chart
	GET  /ws                   WebSocket session for live updates
	GET  /api/v1/layout        component tree and callback binding
	POST /api/v1/update        run the callback for a selection
	GET  /api/v1/figures       unrendered figure data
	GET  /api/v1/health        dataset and session statistics
	GET  /api/v1/health/live   liveness probe
	GET  /api/v1/health/ready  readiness probe

JSON endpoints answer with the APIResponse envelope:

	{"success":true,"data":{...},"meta":{"request_id":"...","timestamp":"..."}}
	{"success":false,"error":{"code":"VALIDATION_ERROR","message":"...","details":{...}}}

POST /api/v1/update and WebSocket "update" messages share one request
shape ({"country","start_date","end_date"}) and one code path through
FigureService, which memoizes rendered options per selection.

Middleware order: request ID, real IP, panic recovery, CORS, access log
globally; rate limiting, security headers, and Prometheus metrics on the
/api/v1 group.
*/
package api
