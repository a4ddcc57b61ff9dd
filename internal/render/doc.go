// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

/*
Package render turns dashboard figures into ECharts options and renders the
dashboard page.

Chart options are built with go-echarts. Each figure becomes a chart
(charts.Line, charts.Bar, charts.Geo), is validated, and is exported as
the JSON option object the browser passes to echarts.setOption:

	r := render.New(cfg.Dashboard.AssetsHost)
	options := r.Options(figs) // {"line-chart": {...}, "bar-chart": {...}, "map-chart": {...}}

Map points carry [longitude, latitude, total_cases, marker_size] as their
value. The page script sizes markers from the fourth element; points
without a known position are left out.

The page itself is an html/template rendering of the layout tree with a
small embedded script that keeps the three charts in sync with the
dropdown and date inputs, over WebSocket when available and over
POST /api/v1/update otherwise.

Snapshot writes a standalone HTML document for a single chart using the
go-echarts page renderer, which is handy for sharing a static view.
*/
package render
