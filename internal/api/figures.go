// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package api

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/covidash/internal/cache"
	"github.com/tomtom215/covidash/internal/dashboard"
	"github.com/tomtom215/covidash/internal/dataset"
	"github.com/tomtom215/covidash/internal/geo"
	"github.com/tomtom215/covidash/internal/logging"
	"github.com/tomtom215/covidash/internal/metrics"
	"github.com/tomtom215/covidash/internal/render"
	"github.com/tomtom215/covidash/internal/validation"
	ws "github.com/tomtom215/covidash/internal/websocket"
)

// Transports reported in metrics.
const (
	TransportHTTP      = "http"
	TransportWebSocket = "websocket"
)

const figureCacheType = "figures"

// FigureService runs the dashboard callback and renders its output. Results
// are memoized per selection; the table never changes, so entries never go
// stale.
type FigureService struct {
	table    *dataset.Table
	geo      *geo.Index
	renderer *render.Renderer
	cache    *cache.LRU[dashboard.Selection, render.Options]
}

// NewFigureService creates the service. cacheSize 0 disables memoization.
func NewFigureService(table *dataset.Table, idx *geo.Index, renderer *render.Renderer, cacheSize int) *FigureService {
	s := &FigureService{
		table:    table,
		geo:      idx,
		renderer: renderer,
	}
	if cacheSize > 0 {
		s.cache = cache.NewLRU[dashboard.Selection, render.Options](cacheSize,
			cache.WithEvictCallback(func(dashboard.Selection, render.Options) {
				metrics.CacheEvictions.WithLabelValues(figureCacheType).Inc()
			}),
		)
	}
	return s
}

// Table returns the dataset the service reads.
func (s *FigureService) Table() *dataset.Table { return s.table }

// Renderer returns the chart renderer.
func (s *FigureService) Renderer() *render.Renderer { return s.renderer }

// Compute runs the callback without rendering or caching.
func (s *FigureService) Compute(sel dashboard.Selection) dashboard.Figures {
	return dashboard.Update(s.table, sel, s.geo)
}

// Options returns the rendered chart options for sel. The boolean reports
// a cache hit.
func (s *FigureService) Options(ctx context.Context, sel dashboard.Selection, transport string) (render.Options, bool, error) {
	sel = sel.Normalize()

	if s.cache != nil {
		opts, ok := s.cache.Get(sel)
		metrics.RecordCacheLookup(figureCacheType, ok)
		if ok {
			metrics.FigureUpdates.WithLabelValues(transport).Inc()
			return opts, true, nil
		}
	}

	start := time.Now()
	figs := s.Compute(sel)
	opts, err := s.render(figs)
	if err != nil {
		return render.Options{}, false, err
	}
	metrics.RecordFigureUpdate(transport, time.Since(start), figs.Line.Points())

	logging.Ctx(ctx).Debug().
		Stringer("selection", sel).
		Int("line_points", figs.Line.Points()).
		Str("transport", transport).
		Dur("duration", time.Since(start)).
		Msg("Figures computed")

	if s.cache != nil {
		s.cache.Add(sel, opts)
		metrics.CacheSize.WithLabelValues(figureCacheType).Set(float64(s.cache.Len()))
	}
	return opts, false, nil
}

// render converts a panic inside the chart builder into an error so one
// bad figure cannot take the connection down.
func (s *FigureService) render(figs dashboard.Figures) (opts render.Options, err error) {
	defer func() {
		if r := recover(); r != nil {
			metrics.FigureRenderErrors.WithLabelValues("all").Inc()
			err = fmt.Errorf("render figures: %v", r)
		}
	}()
	return s.renderer.Options(figs), nil
}

// Dispatch implements websocket.Dispatcher.
func (s *FigureService) Dispatch(ctx context.Context, data json.RawMessage) (interface{}, error) {
	var req UpdateRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, &ws.DispatchError{Code: ErrCodeBadRequest, Message: "update data must be a JSON object"}
	}
	sel, errs := req.Selection()
	if errs != nil {
		return nil, &ws.DispatchError{Code: ErrCodeValidation, Message: errs.Error()}
	}
	opts, _, err := s.Options(ctx, sel, TransportWebSocket)
	if err != nil {
		return nil, err
	}
	return opts, nil
}

// UpdateRequest is the body of POST /api/v1/update and the data of a
// WebSocket update message.
type UpdateRequest struct {
	Country   string `json:"country" validate:"max=200"`
	StartDate string `json:"start_date" validate:"required,isodate"`
	EndDate   string `json:"end_date" validate:"required,isodate"`
}

// Selection validates the request and converts it. start_date after
// end_date is accepted and yields an empty line chart.
func (r UpdateRequest) Selection() (dashboard.Selection, validation.Errors) {
	if errs := validation.ValidateStruct(&r); errs != nil {
		return dashboard.Selection{}, errs
	}
	// Both dates passed isodate, so parsing cannot fail here.
	start, _ := validation.ParseDate(r.StartDate)
	end, _ := validation.ParseDate(r.EndDate)
	return dashboard.Selection{Country: r.Country, Start: start, End: end}.Normalize(), nil
}
