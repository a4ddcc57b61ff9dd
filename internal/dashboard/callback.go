// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package dashboard

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/covidash/internal/dataset"
	"github.com/tomtom215/covidash/internal/geo"
)

// Selection is the state of the input widgets. A normalized Selection is
// comparable and serves as a memoization key.
type Selection struct {
	Country string
	Start   time.Time
	End     time.Time
}

// Normalize truncates both dates to UTC midnight.
func (s Selection) Normalize() Selection {
	return Selection{
		Country: s.Country,
		Start:   midnight(s.Start),
		End:     midnight(s.End),
	}
}

// String implements fmt.Stringer for log fields.
func (s Selection) String() string {
	return fmt.Sprintf("%s [%s, %s]", s.Country, formatDate(s.Start), formatDate(s.End))
}

// Update computes the figures for sel. Map markers are placed with idx; a
// nil idx leaves every marker unplaced.
func Update(table *dataset.Table, sel Selection, idx *geo.Index) Figures {
	sel = sel.Normalize()
	return Figures{
		Line: lineChart(table, sel),
		Bar:  barChart(table),
		Map:  mapChart(table, idx),
	}
}

// lineChart keeps source row order; the dataset is expected to be sorted
// by date within a location.
func lineChart(table *dataset.Table, sel Selection) LineChart {
	chart := LineChart{
		Title:       "COVID-19 Cases and Deaths in " + sel.Country,
		XLabel:      "Date",
		YLabel:      "Count",
		LegendTitle: "Metric",
		Dates:       []time.Time{},
	}
	cases := []float64{}
	deaths := []float64{}

	for _, r := range table.Rows() {
		if r.Location != sel.Country {
			continue
		}
		if r.Date.Before(sel.Start) || r.Date.After(sel.End) {
			continue
		}
		chart.Dates = append(chart.Dates, r.Date)
		cases = append(cases, r.TotalCases)
		deaths = append(deaths, r.TotalDeaths)
	}

	chart.Series = []Series{
		{Name: SeriesTotalCases, Values: cases},
		{Name: SeriesTotalDeaths, Values: deaths},
	}
	return chart
}

func barChart(table *dataset.Table) BarChart {
	chart := BarChart{
		Title:  "Total COVID-19 Cases by Continent",
		XLabel: "Continent",
		YLabel: "Total Cases",
		Bars:   []Bar{},
	}
	if table.MaxDate().IsZero() {
		return chart
	}
	chart.Date = formatDate(table.MaxDate())

	totals := make(map[string]float64)
	for _, r := range table.Latest() {
		totals[r.Continent] += r.TotalCases
	}

	continents := make([]string, 0, len(totals))
	for c := range totals {
		continents = append(continents, c)
	}
	sort.Strings(continents)

	for _, c := range continents {
		chart.Bars = append(chart.Bars, Bar{Continent: c, TotalCases: totals[c]})
	}
	return chart
}

func mapChart(table *dataset.Table, idx *geo.Index) MapChart {
	chart := MapChart{
		Title:      "Global COVID-19 Cases",
		Projection: MapProjection,
		MaxSize:    MapMaxMarkerSize,
		Points:     []MapPoint{},
	}
	if table.MaxDate().IsZero() {
		return chart
	}
	chart.Date = formatDate(table.MaxDate())

	seen := make(map[string]struct{})
	var maxCases float64
	for _, r := range table.Latest() {
		if _, dup := seen[r.Location]; dup {
			continue
		}
		seen[r.Location] = struct{}{}

		p := MapPoint{
			Location:   r.Location,
			ISOCode:    strings.TrimSpace(r.ISOCode),
			TotalCases: r.TotalCases,
		}
		if idx != nil {
			p.Position, p.Placed = idx.Lookup(p.ISOCode)
		}
		if r.TotalCases > maxCases {
			maxCases = r.TotalCases
		}
		chart.Points = append(chart.Points, p)
	}

	for i := range chart.Points {
		chart.Points[i].Size = markerSize(chart.Points[i].TotalCases, maxCases)
	}
	return chart
}

// markerSize scales marker area with the value, so the diameter grows with
// the square root.
func markerSize(v, maxValue float64) float64 {
	if maxValue <= 0 || v <= 0 {
		return 0
	}
	return MapMaxMarkerSize * math.Sqrt(v/maxValue)
}

func midnight(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
