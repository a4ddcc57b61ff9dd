// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package dataset

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
)

// CSVSource reads a comma-separated file with a header row.
type CSVSource struct {
	path string
}

// Format implements Source.
func (s *CSVSource) Format() string { return FormatCSV }

// Path implements Source.
func (s *CSVSource) Path() string { return s.path }

// Frame implements Source.
func (s *CSVSource) Frame(ctx context.Context) (dataframe.DataFrame, error) {
	if err := ctx.Err(); err != nil {
		return dataframe.DataFrame{}, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	df := dataframe.ReadCSV(skipBOM(f), loadOptions()...)
	if df.Err != nil {
		if isEmptyFrameErr(df.Err) {
			return dataframe.DataFrame{}, fmt.Errorf("read csv %s: %w", s.path, ErrEmptyDataset)
		}
		return dataframe.DataFrame{}, fmt.Errorf("read csv %s: %w", s.path, df.Err)
	}
	return df, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM drops a leading UTF-8 byte order mark, which spreadsheet exports
// write and which would otherwise become part of the first column name.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}
