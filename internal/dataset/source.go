// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package dataset

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Dataset formats.
const (
	FormatAuto    = "auto"
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

var (
	// ErrMissingColumns is returned when a required column is absent.
	ErrMissingColumns = errors.New("missing required columns")

	// ErrUnsupportedFormat is returned for an unknown format name.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")

	// ErrEmptyDataset is returned when the source has a header but no rows.
	ErrEmptyDataset = errors.New("dataset has no rows")

	// ErrMalformedValue is returned when a present value cannot be parsed.
	ErrMalformedValue = errors.New("malformed value")
)

// RequiredColumns are the columns the dashboard reads. Others are ignored.
var RequiredColumns = []string{
	"location",
	"date",
	"continent",
	"iso_code",
	"total_cases",
	"total_deaths",
}

// MissingTokens are the cell values treated as missing. The list matches
// the pandas read_csv defaults so data exported by pandas round-trips.
var MissingTokens = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// Source produces the raw, all-string dataframe for a dataset.
type Source interface {
	Frame(ctx context.Context) (dataframe.DataFrame, error)
	Format() string
	Path() string
}

// NewSource returns the source for path. FormatAuto picks Parquet for
// .parquet and .pq files and CSV otherwise.
func NewSource(path, format string) (Source, error) {
	switch strings.ToLower(format) {
	case FormatAuto, "":
		switch strings.ToLower(filepath.Ext(path)) {
		case ".parquet", ".pq":
			return &ParquetSource{path: path}, nil
		default:
			return &CSVSource{path: path}, nil
		}
	case FormatCSV:
		return &CSVSource{path: path}, nil
	case FormatParquet:
		return &ParquetSource{path: path}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// isEmptyFrameErr matches the error gota returns for a header-only input.
func isEmptyFrameErr(err error) bool {
	return strings.Contains(err.Error(), "empty DataFrame")
}

// loadOptions keeps every column as text so cleaning sees the raw values.
func loadOptions() []dataframe.LoadOption {
	return []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(MissingTokens),
	}
}
