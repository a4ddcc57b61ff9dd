// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type idKey int

const (
	requestIDKey idKey = iota
	correlationIDKey
)

// Field names written by Ctx.
const (
	RequestIDField     = "request_id"
	CorrelationIDField = "correlation_id"
)

// GenerateRequestID returns a random UUID.
func GenerateRequestID() string {
	return uuid.New().String()
}

// GenerateCorrelationID returns an 8 character ID. It only has to be unique
// among the requests of one process, and is easy to scan in console output.
func GenerateCorrelationID() string {
	return uuid.New().String()[:8]
}

func withID(ctx context.Context, key idKey, id string) context.Context {
	return context.WithValue(ctx, key, id)
}

func idFrom(ctx context.Context, key idKey) string {
	id, _ := ctx.Value(key).(string)
	return id
}

// ContextWithRequestID stores the HTTP request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return withID(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request ID or "".
func RequestIDFromContext(ctx context.Context) string { return idFrom(ctx, requestIDKey) }

// ContextWithCorrelationID stores a correlation ID.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return withID(ctx, correlationIDKey, id)
}

// ContextWithNewCorrelationID stores a freshly generated correlation ID.
func ContextWithNewCorrelationID(ctx context.Context) context.Context {
	return ContextWithCorrelationID(ctx, GenerateCorrelationID())
}

// CorrelationIDFromContext returns the correlation ID or "".
func CorrelationIDFromContext(ctx context.Context) string { return idFrom(ctx, correlationIDKey) }

// Ctx returns the global logger with the IDs found in ctx attached.
// WebSocket sessions keep the IDs of the upgrade request for their lifetime.
//
//	logging.Ctx(r.Context()).Info().Msg("Figures rendered")
//	// {"level":"info","request_id":"...","correlation_id":"ab12cd34","message":"Figures rendered"}
func Ctx(ctx context.Context) *zerolog.Logger {
	lc := With()
	for _, f := range []struct {
		name string
		key  idKey
	}{
		{CorrelationIDField, correlationIDKey},
		{RequestIDField, requestIDKey},
	} {
		if id := idFrom(ctx, f.key); id != "" {
			lc = lc.Str(f.name, id)
		}
	}
	l := lc.Logger()
	return &l
}
