// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

// Package logging provides centralized zerolog-based structured logging for Covidash.
//
// A single global logger is configured once from main() and used by every
// package through the level helpers:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Int("rows", n).Msg("Dataset loaded")
//	logging.Error().Err(err).Msg("Render failed")
//
// # Output Formats
//
//   - json: one JSON object per line (default, production)
//   - console: colourised human-readable lines (development, debug mode)
//
// # Request Context
//
// HTTP middleware stores a request ID and a short correlation ID in the request
// context. Ctx(ctx) returns a logger that carries both fields:
//
//	logging.Ctx(r.Context()).Warn().Str("country", sel.Country).Msg("Empty selection")
//
// # Supervisor Integration
//
// suture's event hook expects a *slog.Logger. NewSlogLogger returns one backed
// by the zerolog global logger so supervisor events share the same output.
//
// # Configuration
//
// Environment variables (read by internal/config):
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller file:line (default: false)
//
// Always terminate event chains with Msg() or Send(); an unterminated chain
// is never written.
package logging
