// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/covidash/internal/logging"
)

// APIResponse is the envelope of every /api/v1 response. Exactly one of
// Data and Error is set.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *APIMeta    `json:"meta,omitempty"`
}

// APIError is the error half of the envelope. Code is one of the ErrCode
// constants; Details carries validation failures, or the underlying error
// text in debug mode.
type APIError struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// APIMeta is filled in by the writer; handlers only set Cached.
type APIMeta struct {
	RequestID  string    `json:"request_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	DurationMs int64     `json:"duration_ms"`
	Cached     bool      `json:"cached,omitempty"`
}

const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

var statusByCode = map[string]int{
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeMethodNotAllowed:   http.StatusMethodNotAllowed,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeInternalError:      http.StatusInternalServerError,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
}

// statusFor maps an error code to its HTTP status; unknown codes are 500.
func statusFor(code string) int {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

type startKey struct{}

// stampStart records when the router first saw the request, so that
// duration_ms covers middleware and handler together.
func stampStart(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), startKey{}, time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newMeta(r *http.Request, meta *APIMeta) *APIMeta {
	if meta == nil {
		meta = &APIMeta{}
	}
	now := time.Now()
	meta.Timestamp = now
	meta.RequestID = logging.RequestIDFromContext(r.Context())
	if start, ok := r.Context().Value(startKey{}).(time.Time); ok {
		meta.DurationMs = now.Sub(start).Milliseconds()
	}
	return meta
}

// WriteSuccess writes data in a success envelope.
func WriteSuccess(w http.ResponseWriter, r *http.Request, data interface{}) {
	WriteSuccessMeta(w, r, data, nil)
}

// WriteSuccessMeta is WriteSuccess with handler-supplied metadata.
func WriteSuccessMeta(w http.ResponseWriter, r *http.Request, data interface{}, meta *APIMeta) {
	writeJSON(w, r, http.StatusOK, APIResponse{Success: true, Data: data, Meta: newMeta(r, meta)})
}

// WriteError writes an error envelope; the status follows from code.
func WriteError(w http.ResponseWriter, r *http.Request, code, message string) {
	WriteErrorDetails(w, r, code, message, nil)
}

// WriteErrorDetails is WriteError with details attached.
func WriteErrorDetails(w http.ResponseWriter, r *http.Request, code, message string, details interface{}) {
	meta := newMeta(r, nil)
	writeJSON(w, r, statusFor(code), APIResponse{
		Error: &APIError{
			Code:      code,
			Message:   message,
			Details:   details,
			RequestID: meta.RequestID,
		},
		Meta: meta,
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode JSON response")
	}
}
