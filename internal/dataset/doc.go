// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

/*
Package dataset loads the COVID-19 observation table.

A dataset is read once at startup from a CSV file (parsed into a go-gota
dataframe) or a Parquet file (scanned through an in-memory DuckDB). Both
sources produce the same all-string frame which is then cleaned:

  - every missing cell in every column is replaced with the text "0", so a
    missing continent becomes the continent "0" and a missing date becomes
    the zero time.Time
  - the date column is parsed into calendar dates (UTC midnight)
  - total_cases and total_deaths are parsed as float64

The resulting Table is immutable and safe for concurrent readers.

	table, err := dataset.Load(ctx, "data/data.csv", dataset.FormatAuto)
	if errors.Is(err, dataset.ErrMissingColumns) {
	    // header lacks location/date/continent/iso_code/total_cases/total_deaths
	}
*/
package dataset
