// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package dataset

import (
	"testing"
	"time"
)

func TestNewTable(t *testing.T) {
	t.Parallel()

	rows := []Observation{
		{Location: "B", Date: day(3), TotalCases: 3},
		{Location: "A", Date: day(1), TotalCases: 1},
		{Location: "B", Date: time.Time{}, TotalCases: 0},
		{Location: "A", Date: day(3), TotalCases: 4},
		{Location: "C", Date: day(2), TotalCases: 2},
	}
	table := NewTable(rows, []string{"location"})

	if got := table.Locations(); len(got) != 3 || got[0] != "B" || got[1] != "A" || got[2] != "C" {
		t.Errorf("Locations() = %v, want encounter order [B A C]", got)
	}
	if !table.MinDate().Equal(day(1)) {
		t.Errorf("MinDate() = %v, want %v", table.MinDate(), day(1))
	}
	if !table.MaxDate().Equal(day(3)) {
		t.Errorf("MaxDate() = %v, want %v", table.MaxDate(), day(3))
	}
	latest := table.Latest()
	if len(latest) != 2 || latest[0].Location != "B" || latest[1].Location != "A" {
		t.Errorf("Latest() = %+v, want B then A at max date", latest)
	}
	if !table.HasLocation("C") || table.HasLocation("D") {
		t.Error("HasLocation() mismatch")
	}
}

func TestNewTable_NoDates(t *testing.T) {
	t.Parallel()

	table := NewTable([]Observation{{Location: "A"}}, nil)
	if !table.MaxDate().IsZero() || !table.MinDate().IsZero() {
		t.Error("table without dates should have zero span")
	}
	if len(table.Latest()) != 0 {
		t.Error("Latest() should be empty when no row has a date")
	}
}
