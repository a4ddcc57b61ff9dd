// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

/*
Package dashboard builds the dashboard page description and the figures
shown on it.

There are two halves:

  - BuildLayout produces the static component tree once at startup: the
    title, the country dropdown, the date range picker, and three graph
    placeholders, plus the Binding that declares which widget properties
    feed the callback and which graph properties it fills.
  - Update is the callback. Given the immutable dataset.Table and a
    Selection it returns Figures: the line chart for the selected country
    and date range, and the continent bar chart and world map, which always
    describe the most recent date in the table.

Update performs no I/O and keeps no state. The same table and selection
always produce the same Figures, which is what allows the HTTP layer to
memoize results by Selection.

	layout, err := dashboard.BuildLayout(table, dashboard.LayoutOptions{
	    Title:          "COVID-19 Dashboard",
	    DefaultCountry: "United States",
	})

	sel := dashboard.Selection{Country: "United States", Start: start, End: end}.Normalize()
	figs := dashboard.Update(table, sel, geo.MustDefault())
*/
package dashboard
