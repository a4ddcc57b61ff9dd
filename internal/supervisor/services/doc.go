// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

// Package services adapts the HTTP server and the WebSocket hub to
// suture.Service. Each wrapper blocks in Serve until its context is canceled
// and implements fmt.Stringer so supervisor events name the service.
package services
