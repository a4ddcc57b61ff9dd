// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// fillValue replaces every missing cell regardless of the column's meaning.
const fillValue = "0"

// DateLayouts are tried in order when parsing the date column.
var DateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// FillMissing returns a copy of df where every NaN cell in every column
// holds "0".
func FillMissing(df dataframe.DataFrame) dataframe.DataFrame {
	for _, name := range df.Names() {
		col := df.Col(name)
		nan := col.IsNaN()

		var filled []string
		for i, missing := range nan {
			if !missing {
				continue
			}
			if filled == nil {
				filled = col.Records()
			}
			filled[i] = fillValue
		}
		if filled == nil {
			continue
		}
		df = df.Mutate(series.New(filled, series.String, name))
	}
	return df
}

// BuildTable validates the header of df, fills missing values, and parses
// the required columns into observations.
func BuildTable(df dataframe.DataFrame) (*Table, error) {
	names := df.Names()
	if missing := missingColumns(names); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	if df.Nrow() == 0 {
		return nil, ErrEmptyDataset
	}

	df = FillMissing(df)

	locations := df.Col("location").Records()
	isoCodes := df.Col("iso_code").Records()
	continents := df.Col("continent").Records()
	dates := df.Col("date").Records()
	cases := df.Col("total_cases").Records()
	deaths := df.Col("total_deaths").Records()

	rows := make([]Observation, df.Nrow())
	for i := range rows {
		date, err := parseDateCell(dates[i])
		if err != nil {
			return nil, fmt.Errorf("row %d: column date: %w", i+1, err)
		}
		c, err := parseNumberCell(cases[i])
		if err != nil {
			return nil, fmt.Errorf("row %d: column total_cases: %w", i+1, err)
		}
		d, err := parseNumberCell(deaths[i])
		if err != nil {
			return nil, fmt.Errorf("row %d: column total_deaths: %w", i+1, err)
		}
		rows[i] = Observation{
			Location:    locations[i],
			ISOCode:     isoCodes[i],
			Continent:   continents[i],
			Date:        date,
			TotalCases:  c,
			TotalDeaths: d,
		}
	}

	return NewTable(rows, names), nil
}

func missingColumns(names []string) []string {
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}
	var missing []string
	for _, req := range RequiredColumns {
		if !present[req] {
			missing = append(missing, req)
		}
	}
	return missing
}

// parseDateCell maps the filled value "0" to the zero date.
func parseDateCell(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == fillValue {
		return time.Time{}, nil
	}
	return ParseDate(s)
}

// ParseDate parses s with DateLayouts and truncates to UTC midnight.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q is not a date", ErrMalformedValue, s)
}

func parseNumberCell(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrMalformedValue, s)
	}
	return v, nil
}
