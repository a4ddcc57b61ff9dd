// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

// Package geo maps ISO 3166-1 alpha-3 country codes to approximate
// geographic centroids for placing map markers.
//
// The table is embedded at build time. OWID aggregate codes (OWID_WRL,
// OWID_EUR, ...) have no position, except OWID_KOS which is Kosovo.
package geo

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

//go:embed centroids.csv
var centroidsCSV []byte

// Point is a geographic position in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Country is one entry of the centroid table.
type Country struct {
	ISOCode string
	Name    string
	Point
}

var (
	defaultIndex     *Index
	defaultIndexErr  error
	defaultIndexOnce sync.Once
)

// Index answers centroid lookups by ISO code.
type Index struct {
	byCode map[string]Country
}

// Default returns the index built from the embedded table.
// The table is parsed once; a parse error indicates a broken build.
func Default() (*Index, error) {
	defaultIndexOnce.Do(func() {
		defaultIndex, defaultIndexErr = Parse(centroidsCSV)
	})
	return defaultIndex, defaultIndexErr
}

// MustDefault is Default for callers that cannot proceed without the table.
func MustDefault() *Index {
	idx, err := Default()
	if err != nil {
		panic(fmt.Sprintf("geo: embedded centroid table: %v", err))
	}
	return idx
}

// Parse builds an index from CSV with header iso_code,name,latitude,longitude.
func Parse(data []byte) (*Index, error) {
	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.WithTypes(map[string]series.Type{
			"iso_code":  series.String,
			"name":      series.String,
			"latitude":  series.Float,
			"longitude": series.Float,
		}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("parse centroids: %w", df.Err)
	}

	codes := df.Col("iso_code")
	if codes.Err != nil {
		return nil, fmt.Errorf("parse centroids: %w", codes.Err)
	}
	names := df.Col("name").Records()
	lat := df.Col("latitude")
	lon := df.Col("longitude")
	latNaN, lonNaN := lat.IsNaN(), lon.IsNaN()
	lats, lons := lat.Float(), lon.Float()

	idx := &Index{byCode: make(map[string]Country, df.Nrow())}
	for i, code := range codes.Records() {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			return nil, fmt.Errorf("parse centroids: row %d: empty iso_code", i+1)
		}
		if latNaN[i] || lonNaN[i] {
			return nil, fmt.Errorf("parse centroids: row %d (%s): invalid coordinates", i+1, code)
		}
		if lats[i] < -90 || lats[i] > 90 || lons[i] < -180 || lons[i] > 180 {
			return nil, fmt.Errorf("parse centroids: row %d (%s): coordinates out of range", i+1, code)
		}
		if _, dup := idx.byCode[code]; dup {
			return nil, fmt.Errorf("parse centroids: duplicate iso_code %s", code)
		}
		idx.byCode[code] = Country{
			ISOCode: code,
			Name:    names[i],
			Point:   Point{Lat: lats[i], Lon: lons[i]},
		}
	}
	return idx, nil
}

// Lookup returns the centroid for an ISO alpha-3 code.
func (idx *Index) Lookup(isoCode string) (Point, bool) {
	c, ok := idx.byCode[strings.ToUpper(strings.TrimSpace(isoCode))]
	return c.Point, ok
}

// Len returns the number of known countries.
func (idx *Index) Len() int {
	return len(idx.byCode)
}
