// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleCSV = `iso_code,continent,location,date,total_cases,new_cases,total_deaths
USA,North America,United States,2021-01-01,100,100,1
USA,North America,United States,2021-01-02,150,50,2
DEU,Europe,Germany,2021-01-01,80,80,
DEU,Europe,Germany,2021-01-02,90,10,3
OWID_WRL,,World,2021-01-02,240,60,5
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func day(d int) time.Time {
	return time.Date(2021, 1, d, 0, 0, 0, 0, time.UTC)
}
