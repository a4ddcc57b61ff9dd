// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/tomtom215/covidash/internal/dashboard"
)

// ErrUnknownChart is returned by Snapshot for an unknown chart ID.
var ErrUnknownChart = errors.New("render: unknown chart")

// Option is an ECharts option object.
type Option = map[string]interface{}

// Options holds the three chart options keyed like dashboard.Figures.
type Options struct {
	Line Option `json:"line-chart"`
	Bar  Option `json:"bar-chart"`
	Map  Option `json:"map-chart"`
}

// DefaultPalette colours bars by continent, cycling when exhausted.
var DefaultPalette = []string{
	"#636efa", "#ef553b", "#00cc96", "#ab63fa", "#ffa15a",
	"#19d3f3", "#ff6692", "#b6e880", "#ff97ff", "#fecb52",
}

const (
	chartWidth  = "100%"
	chartHeight = "450px"
)

// Renderer converts figures to go-echarts charts.
type Renderer struct {
	assetsHost string
	palette    []string
}

// New returns a renderer loading ECharts assets from assetsHost.
func New(assetsHost string) *Renderer {
	return &Renderer{
		assetsHost: assetsHost,
		palette:    DefaultPalette,
	}
}

// AssetsHost returns the base URL of echarts.min.js and maps/.
func (r *Renderer) AssetsHost() string { return r.assetsHost }

func (r *Renderer) initOpts(chartID, title string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle:  title,
		Width:      chartWidth,
		Height:     chartHeight,
		ChartID:    chartID,
		AssetsHost: r.assetsHost,
	})
}

// Line builds the cases and deaths line chart.
func (r *Renderer) Line(c dashboard.LineChart) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		r.initOpts(dashboard.LineChartID, c.Title),
		charts.WithTitleOpts(opts.Title{Title: c.Title, Left: "center"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: c.XLabel, Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: c.YLabel, Type: "value"}),
	)

	dates := make([]string, len(c.Dates))
	for i, d := range c.Dates {
		dates[i] = d.Format(dashboard.DateFormat)
	}
	line.SetXAxis(dates)

	for _, s := range c.Series {
		data := make([]opts.LineData, len(s.Values))
		for i, v := range s.Values {
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(s.Name, data)
	}
	return line
}

// Bar builds the continent bar chart with one colour per continent.
func (r *Renderer) Bar(c dashboard.BarChart) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		r.initOpts(dashboard.BarChartID, c.Title),
		charts.WithTitleOpts(opts.Title{Title: c.Title, Subtitle: c.Date, Left: "center"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: c.XLabel, Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: c.YLabel, Type: "value"}),
	)

	continents := make([]string, len(c.Bars))
	data := make([]opts.BarData, len(c.Bars))
	for i, b := range c.Bars {
		continents[i] = b.Continent
		data[i] = opts.BarData{
			Name:      b.Continent,
			Value:     b.TotalCases,
			ItemStyle: &opts.ItemStyle{Color: r.color(i)},
		}
	}
	bar.SetXAxis(continents)
	bar.AddSeries(c.YLabel, data)
	return bar
}

// Map builds the world scatter map. Unplaced points are skipped.
func (r *Renderer) Map(c dashboard.MapChart) *charts.Geo {
	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		r.initOpts(dashboard.MapChartID, c.Title),
		charts.WithTitleOpts(opts.Title{Title: c.Title, Subtitle: c.Date, Left: "center"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:       "world",
			ItemStyle: &opts.ItemStyle{Color: "#e5ecf6", BorderColor: "#ffffff"},
		}),
	)

	placed := c.Placed()
	markers := make([]mapMarker, len(placed))
	for i, p := range placed {
		markers[i] = mapMarker{
			Name:       p.Location,
			Value:      []float64{p.Position.Lon, p.Position.Lat, p.TotalCases, p.Size},
			SymbolSize: p.Size,
		}
	}
	geo.AddSeries("total_cases", types.ChartScatter, nil, withMarkers(markers))
	return geo
}

// mapMarker is a scatter item with its own symbolSize. opts.GeoData has no
// size field, and the size must travel with the option so snapshots and
// API clients draw the same map as the page.
type mapMarker struct {
	Name       string    `json:"name"`
	Value      []float64 `json:"value"`
	SymbolSize float64   `json:"symbolSize"`
}

func withMarkers(markers []mapMarker) charts.SeriesOpts {
	return func(s *charts.SingleSeries) {
		s.Data = markers
	}
}

// Options validates the three charts and exports their option objects.
func (r *Renderer) Options(figs dashboard.Figures) Options {
	line := r.Line(figs.Line)
	line.Validate()
	bar := r.Bar(figs.Bar)
	bar.Validate()
	geo := r.Map(figs.Map)
	geo.Validate()

	return Options{
		Line: line.JSON(),
		Bar:  bar.JSON(),
		Map:  geo.JSON(),
	}
}

// Snapshot writes a standalone HTML page for one chart.
func (r *Renderer) Snapshot(w io.Writer, chartID string, figs dashboard.Figures) error {
	var err error
	switch chartID {
	case dashboard.LineChartID:
		err = r.Line(figs.Line).Render(w)
	case dashboard.BarChartID:
		err = r.Bar(figs.Bar).Render(w)
	case dashboard.MapChartID:
		err = r.Map(figs.Map).Render(w)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownChart, chartID)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", chartID, err)
	}
	return nil
}

func (r *Renderer) color(i int) string {
	if len(r.palette) == 0 {
		return ""
	}
	return r.palette[i%len(r.palette)]
}
