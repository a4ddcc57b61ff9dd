// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/covidash/internal/dashboard"
	"github.com/tomtom215/covidash/internal/logging"
	"github.com/tomtom215/covidash/internal/render"
	"github.com/tomtom215/covidash/internal/validation"
)

// maxUpdateBody bounds POST /api/v1/update bodies.
const maxUpdateBody = 16 * 1024

// Index renders the dashboard page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := render.Page(&buf, render.PageData{
		Layout:     h.layout,
		AssetsHost: h.figures.Renderer().AssetsHost(),
		BootID:     h.bootID,
		Debug:      h.debug(),
	})
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to render page")
		WriteErrorDetails(w, r, ErrCodeInternalError, "Failed to render page", h.errorDetails(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(buf.Bytes())
}

// Layout returns the component tree and callback binding.
func (h *Handler) Layout(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, h.layout)
}

// Update runs the callback for the posted selection and returns the three
// chart options together.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxUpdateBody))
	if err := dec.Decode(&req); err != nil {
		WriteErrorDetails(w, r, ErrCodeBadRequest, "Request body must be a JSON object", h.errorDetails(err))
		return
	}

	sel, errs := req.Selection()
	if errs != nil {
		writeValidationError(w, r, errs)
		return
	}

	opts, cached, err := h.figures.Options(r.Context(), sel, TransportHTTP)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Stringer("selection", sel).Msg("Failed to compute figures")
		WriteErrorDetails(w, r, ErrCodeInternalError, "Failed to compute figures", h.errorDetails(err))
		return
	}
	WriteSuccessMeta(w, r, opts, &APIMeta{Cached: cached})
}

// Figures returns the unrendered figure data for a selection given as
// query parameters, defaulting to the page's initial selection.
func (h *Handler) Figures(w http.ResponseWriter, r *http.Request) {
	sel, ok := h.querySelection(w, r)
	if !ok {
		return
	}
	WriteSuccess(w, r, h.figures.Compute(sel))
}

// Snapshot renders one chart as a standalone HTML page.
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	sel, ok := h.querySelection(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	err := h.figures.Renderer().Snapshot(&buf, chi.URLParam(r, "chart"), h.figures.Compute(sel))
	if errors.Is(err, render.ErrUnknownChart) {
		WriteError(w, r, ErrCodeNotFound, "Unknown chart: "+sanitizeLogValue(chi.URLParam(r, "chart")))
		return
	}
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to render snapshot")
		WriteErrorDetails(w, r, ErrCodeInternalError, "Failed to render chart", h.errorDetails(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// querySelection reads country, start_date, and end_date from the query
// string. Missing values come from the layout's initial selection.
func (h *Handler) querySelection(w http.ResponseWriter, r *http.Request) (dashboard.Selection, bool) {
	initial := h.layout.InitialSelection()
	q := r.URL.Query()

	req := UpdateRequest{
		Country:   q.Get("country"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}
	if req.Country == "" {
		req.Country = initial.Country
	}
	if req.StartDate == "" {
		req.StartDate = initial.Start.Format(dashboard.DateFormat)
	}
	if req.EndDate == "" {
		req.EndDate = initial.End.Format(dashboard.DateFormat)
	}

	sel, errs := req.Selection()
	if errs != nil {
		writeValidationError(w, r, errs)
		return dashboard.Selection{}, false
	}
	return sel, true
}

// writeValidationError answers 400 VALIDATION_ERROR with every failed field
// under details.fields.
func writeValidationError(w http.ResponseWriter, r *http.Request, errs validation.Errors) {
	WriteErrorDetails(w, r, ErrCodeValidation, errs.Error(), map[string]interface{}{"fields": errs})
}
