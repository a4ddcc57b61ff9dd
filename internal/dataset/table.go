// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package dataset

import "time"

// Observation is one (location, date) row of the dataset.
type Observation struct {
	Location    string    `json:"location"`
	ISOCode     string    `json:"iso_code"`
	Continent   string    `json:"continent"`
	Date        time.Time `json:"date"`
	TotalCases  float64   `json:"total_cases"`
	TotalDeaths float64   `json:"total_deaths"`
}

// Table is the in-memory observation table. It is built once by Load and
// never modified afterwards.
type Table struct {
	rows      []Observation
	columns   []string
	locations []string
	minDate   time.Time
	maxDate   time.Time
	latest    []Observation
}

// NewTable builds a table from already clean observations. Row order is kept.
// Zero dates take no part in the min/max date span.
func NewTable(rows []Observation, columns []string) *Table {
	t := &Table{
		rows:    rows,
		columns: columns,
	}

	seen := make(map[string]struct{})
	for _, r := range rows {
		if _, ok := seen[r.Location]; !ok {
			seen[r.Location] = struct{}{}
			t.locations = append(t.locations, r.Location)
		}
		if r.Date.IsZero() {
			continue
		}
		if t.minDate.IsZero() || r.Date.Before(t.minDate) {
			t.minDate = r.Date
		}
		if r.Date.After(t.maxDate) {
			t.maxDate = r.Date
		}
	}

	if !t.maxDate.IsZero() {
		for _, r := range rows {
			if r.Date.Equal(t.maxDate) {
				t.latest = append(t.latest, r)
			}
		}
	}
	return t
}

// Rows returns all observations in source order. Callers must not modify
// the returned slice.
func (t *Table) Rows() []Observation { return t.rows }

// Len returns the number of observations.
func (t *Table) Len() int { return len(t.rows) }

// Columns returns the header of the source, including ignored columns.
func (t *Table) Columns() []string { return t.columns }

// Locations returns distinct locations in encounter order.
func (t *Table) Locations() []string { return t.locations }

// MinDate returns the earliest non-zero observation date.
func (t *Table) MinDate() time.Time { return t.minDate }

// MaxDate returns the most recent observation date.
func (t *Table) MaxDate() time.Time { return t.maxDate }

// Latest returns the observations dated MaxDate, in source order.
func (t *Table) Latest() []Observation { return t.latest }

// HasLocation reports whether any row has the given location.
func (t *Table) HasLocation(location string) bool {
	for _, l := range t.locations {
		if l == location {
			return true
		}
	}
	return false
}
