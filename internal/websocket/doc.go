// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

/*
Package websocket carries dashboard interactions over WebSocket sessions.

Every browser tab opens one session on /ws. The page sends the current
widget values whenever one of them changes and receives the three chart
options in a single reply, so a tab never shows a mix of old and new
figures.

Key Components:

  - Hub: registry of connected clients, run as a supervised service
  - Client: one connection with a read goroutine and a write goroutine
  - Dispatcher: answers update requests; implemented by the API layer

Message Types:

	client -> server
	  {"type":"update","id":"7","data":{"country":"...","start_date":"...","end_date":"..."}}
	  {"type":"ping"}

	server -> client
	  {"type":"hello","data":{"boot_id":"..."}}          on connect
	  {"type":"figures","id":"7","data":{"line-chart":...}}
	  {"type":"error","id":"7","data":{"code":"VALIDATION_ERROR","message":"..."}}
	  {"type":"pong"}

Updates from one client are handled in arrival order. The reply echoes the
request id so the page can discard stale answers.

The hello message carries the server boot ID. In debug mode the page
reloads itself when it reconnects to a server with a different boot ID.

Usage:

	hub := websocket.NewHub(bootID)
	go hub.RunWithContext(ctx)

	conn, _ := upgrader.Upgrade(w, r, nil)
	client := websocket.NewClient(r.Context(), hub, conn, dispatcher)
	if err := hub.Add(r.Context(), client); err != nil {
		conn.Close()
		return
	}
	client.Start()
*/
package websocket
