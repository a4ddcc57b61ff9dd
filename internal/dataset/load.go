// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tomtom215/covidash/internal/logging"
	"github.com/tomtom215/covidash/internal/metrics"
)

// Load reads the dataset at path once and returns the cleaned table.
// Loading the same file twice yields equal tables.
func Load(ctx context.Context, path, format string) (*Table, error) {
	src, err := NewSource(path, format)
	if err != nil {
		return nil, err
	}
	return LoadFrom(ctx, src)
}

// LoadFrom loads the table from an explicit source.
func LoadFrom(ctx context.Context, src Source) (*Table, error) {
	logger := logging.WithComponent("dataset")
	start := time.Now()

	table, err := loadFrom(ctx, src)
	duration := time.Since(start)
	metrics.RecordDatasetLoad(src.Format(), classifyError(err), duration)
	if err != nil {
		return nil, err
	}

	metrics.SetDatasetStats(table.Len(), len(table.Locations()), table.MaxDate())
	logger.Info().
		Str("path", src.Path()).
		Str("format", src.Format()).
		Int("rows", table.Len()).
		Int("locations", len(table.Locations())).
		Int("columns", len(table.Columns())).
		Time("min_date", table.MinDate()).
		Time("max_date", table.MaxDate()).
		Dur("duration", duration).
		Msg("Dataset loaded")
	return table, nil
}

func loadFrom(ctx context.Context, src Source) (*Table, error) {
	df, err := src.Frame(ctx)
	if err != nil {
		return nil, err
	}
	table, err := BuildTable(df)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", src.Path(), err)
	}
	return table, nil
}

// classifyError maps a load error to the metrics error_type label.
func classifyError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, os.ErrNotExist):
		return "not_found"
	case errors.Is(err, ErrMissingColumns), errors.Is(err, ErrEmptyDataset):
		return "schema"
	case errors.Is(err, ErrMalformedValue):
		return "parse"
	default:
		return "other"
	}
}
