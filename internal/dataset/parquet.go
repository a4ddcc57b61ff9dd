// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	// DuckDB driver - in-memory engine for read_parquet
	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/go-gota/gota/dataframe"
)

// ParquetSource reads a Parquet file through an in-memory DuckDB connection.
type ParquetSource struct {
	path string
}

// Format implements Source.
func (s *ParquetSource) Format() string { return FormatParquet }

// Path implements Source.
func (s *ParquetSource) Path() string { return s.path }

// Frame implements Source. Every value is rendered as text and SQL NULL
// becomes "NA", so cleaning treats Parquet and CSV input identically.
func (s *ParquetSource) Frame(ctx context.Context) (dataframe.DataFrame, error) {
	// DuckDB reports a missing file as an IO error; stat first so callers
	// can match os.ErrNotExist.
	if _, err := os.Stat(s.path); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open dataset: %w", err)
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open duckdb: %w", err)
	}
	defer db.Close() //nolint:errcheck // in-memory database

	query := fmt.Sprintf("SELECT * FROM read_parquet('%s')", escapeLiteral(s.path))
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("read parquet %s: %w", s.path, err)
	}
	defer rows.Close() //nolint:errcheck // error surfaced by rows.Err

	records, err := scanRecords(rows)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("read parquet %s: %w", s.path, err)
	}

	if len(records) < 2 {
		return dataframe.DataFrame{}, fmt.Errorf("read parquet %s: %w", s.path, ErrEmptyDataset)
	}

	df := dataframe.LoadRecords(records, loadOptions()...)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("load parquet records: %w", df.Err)
	}
	return df, nil
}

// scanRecords returns the header followed by one text record per row.
func scanRecords(rows *sql.Rows) ([][]string, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	records := [][]string{columns}
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(records), err)
		}
		record := make([]string, len(columns))
		for i, v := range values {
			record[i] = formatValue(v)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NA"
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int:
		return strconv.Itoa(x)
	case uint64:
		return strconv.FormatUint(x, 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

func escapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
