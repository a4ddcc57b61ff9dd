// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package dashboard

import (
	"time"

	"github.com/tomtom215/covidash/internal/dataset"
)

func day(d int) time.Time {
	return time.Date(2021, 1, d, 0, 0, 0, 0, time.UTC)
}

// sampleTable has three countries and one aggregate over three days. The
// latest day is 2021-01-03, where Germany appears twice.
func sampleTable() *dataset.Table {
	rows := []dataset.Observation{
		{Location: "United States", ISOCode: "USA", Continent: "North America", Date: day(1), TotalCases: 100, TotalDeaths: 1},
		{Location: "United States", ISOCode: "USA", Continent: "North America", Date: day(2), TotalCases: 150, TotalDeaths: 2},
		{Location: "United States", ISOCode: "USA", Continent: "North America", Date: day(3), TotalCases: 400, TotalDeaths: 4},
		{Location: "Germany", ISOCode: "DEU", Continent: "Europe", Date: day(1), TotalCases: 80},
		{Location: "Germany", ISOCode: "DEU", Continent: "Europe", Date: day(3), TotalCases: 100, TotalDeaths: 3},
		{Location: "Germany", ISOCode: "DEU", Continent: "Europe", Date: day(3), TotalCases: 999, TotalDeaths: 9},
		{Location: "France", ISOCode: "FRA", Continent: "Europe", Date: day(3), TotalCases: 25},
		{Location: "World", ISOCode: "OWID_WRL", Continent: "0", Date: day(3), TotalCases: 1600, TotalDeaths: 16},
	}
	return dataset.NewTable(rows, []string{"iso_code", "continent", "location", "date", "total_cases", "total_deaths"})
}
