// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package dashboard

import (
	"time"

	"github.com/tomtom215/covidash/internal/geo"
)

// Series names of the line chart, matching the dataset columns.
const (
	SeriesTotalCases  = "total_cases"
	SeriesTotalDeaths = "total_deaths"
)

// MapMaxMarkerSize is the marker size of the location with the most cases.
const MapMaxMarkerSize = 20.0

// MapProjection is the projection requested for the world map.
const MapProjection = "natural earth"

// Series is one named line of the line chart. Values align with
// LineChart.Dates.
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// LineChart is cases and deaths over time for one country.
type LineChart struct {
	Title       string      `json:"title"`
	XLabel      string      `json:"x_label"`
	YLabel      string      `json:"y_label"`
	LegendTitle string      `json:"legend_title"`
	Dates       []time.Time `json:"dates"`
	Series      []Series    `json:"series"`
}

// Points returns the number of dates plotted.
func (c LineChart) Points() int { return len(c.Dates) }

// Bar is one continent total.
type Bar struct {
	Continent  string  `json:"continent"`
	TotalCases float64 `json:"total_cases"`
}

// BarChart is total cases per continent on the latest date.
type BarChart struct {
	Title  string `json:"title"`
	XLabel string `json:"x_label"`
	YLabel string `json:"y_label"`
	Date   string `json:"date"`
	Bars   []Bar  `json:"bars"`
}

// Total returns the sum of all bars.
func (c BarChart) Total() float64 {
	var sum float64
	for _, b := range c.Bars {
		sum += b.TotalCases
	}
	return sum
}

// MapPoint is one location on the world map. Placed is false when the
// ISO code has no known position; such points carry no Position.
type MapPoint struct {
	Location   string    `json:"location"`
	ISOCode    string    `json:"iso_code"`
	TotalCases float64   `json:"total_cases"`
	Size       float64   `json:"size"`
	Position   geo.Point `json:"position"`
	Placed     bool      `json:"placed"`
}

// MapChart is total cases per location on the latest date.
type MapChart struct {
	Title      string     `json:"title"`
	Projection string     `json:"projection"`
	MaxSize    float64    `json:"max_size"`
	Date       string     `json:"date"`
	Points     []MapPoint `json:"points"`
}

// Placed returns the points that have a position.
func (c MapChart) Placed() []MapPoint {
	out := make([]MapPoint, 0, len(c.Points))
	for _, p := range c.Points {
		if p.Placed {
			out = append(out, p)
		}
	}
	return out
}

// Figures is the callback output. The three figures are always produced
// together.
type Figures struct {
	Line LineChart `json:"line-chart"`
	Bar  BarChart  `json:"bar-chart"`
	Map  MapChart  `json:"map-chart"`
}
