// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

/*
Package supervisor runs the dashboard's long-lived services under a suture v4
tree.

	root ("covidash")
	├── session-layer
	│   └── websocket-hub
	└── api-layer
	    └── http-server

The session layer restarts independently of the API layer, so a crashed hub
is rebuilt while the HTTP fallback keeps answering updates. Supervisor events
are logged through sutureslog into the zerolog-backed slog handler from
internal/logging.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddSessionService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err = tree.Serve(ctx)

See services for the wrappers.
*/
package supervisor
