// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package dashboard

import (
	"errors"
	"time"

	"github.com/tomtom215/covidash/internal/dataset"
	"github.com/tomtom215/covidash/internal/logging"
)

// Component IDs referenced by the callback binding and the page script.
const (
	CountryDropdownID = "country-dropdown"
	DatePickerID      = "date-picker"
	LineChartID       = "line-chart"
	BarChartID        = "bar-chart"
	MapChartID        = "map-chart"
)

// Component types.
const (
	TypeDiv             = "Div"
	TypeH1              = "H1"
	TypeLabel           = "Label"
	TypeDropdown        = "Dropdown"
	TypeDatePickerRange = "DatePickerRange"
	TypeGraph           = "Graph"
)

// DateFormat is the wire format for every date in the layout and in
// update requests.
const DateFormat = "2006-01-02"

// ErrEmptyTable is returned when the layout is built from a table with no
// locations or no dated rows.
var ErrEmptyTable = errors.New("dashboard: table has no locations or dates")

// Option is one dropdown entry.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DateRange holds the bounds and initial state of a date range picker.
type DateRange struct {
	MinDateAllowed      string `json:"min_date_allowed"`
	MaxDateAllowed      string `json:"max_date_allowed"`
	InitialVisibleMonth string `json:"initial_visible_month"`
	StartDate           string `json:"start_date"`
	EndDate             string `json:"end_date"`
}

// Component is a node of the declarative layout tree.
type Component struct {
	Type      string            `json:"type"`
	ID        string            `json:"id,omitempty"`
	Text      string            `json:"text,omitempty"`
	Style     map[string]string `json:"style,omitempty"`
	Options   []Option          `json:"options,omitempty"`
	Value     string            `json:"value,omitempty"`
	DateRange *DateRange        `json:"date_range,omitempty"`
	Children  []Component       `json:"children,omitempty"`
}

// Dependency names one property of one component.
type Dependency struct {
	ComponentID string `json:"component_id"`
	Property    string `json:"property"`
}

// Binding declares the callback's inputs and outputs. Any change of an
// input recomputes all outputs together.
type Binding struct {
	Inputs  []Dependency `json:"inputs"`
	Outputs []Dependency `json:"outputs"`
}

// Layout is the page description served to clients.
type Layout struct {
	Title   string    `json:"title"`
	Root    Component `json:"root"`
	Binding Binding   `json:"binding"`
}

// LayoutOptions configures BuildLayout.
type LayoutOptions struct {
	Title          string
	DefaultCountry string
}

// DefaultBinding is the dropdown and date picker driving all three graphs.
func DefaultBinding() Binding {
	return Binding{
		Inputs: []Dependency{
			{ComponentID: CountryDropdownID, Property: "value"},
			{ComponentID: DatePickerID, Property: "start_date"},
			{ComponentID: DatePickerID, Property: "end_date"},
		},
		Outputs: []Dependency{
			{ComponentID: LineChartID, Property: "figure"},
			{ComponentID: BarChartID, Property: "figure"},
			{ComponentID: MapChartID, Property: "figure"},
		},
	}
}

// BuildLayout returns the component tree for table. When the default
// country does not occur in the table the first location is selected
// instead.
func BuildLayout(table *dataset.Table, opts LayoutOptions) (*Layout, error) {
	locations := table.Locations()
	if len(locations) == 0 || table.MaxDate().IsZero() {
		return nil, ErrEmptyTable
	}

	title := opts.Title
	if title == "" {
		title = "COVID-19 Dashboard"
	}

	selected := opts.DefaultCountry
	if !table.HasLocation(selected) {
		logging.Warn().
			Str("default_country", selected).
			Str("fallback", locations[0]).
			Msg("Default country not in dataset, using first location")
		selected = locations[0]
	}

	options := make([]Option, len(locations))
	for i, loc := range locations {
		options[i] = Option{Label: loc, Value: loc}
	}

	minDate := formatDate(table.MinDate())
	maxDate := formatDate(table.MaxDate())

	root := Component{
		Type: TypeDiv,
		Children: []Component{
			{
				Type: TypeH1,
				Text: title,
				Style: map[string]string{
					"textAlign": "center",
					"color":     "#003087",
				},
			},
			{
				Type: TypeDiv,
				Children: []Component{
					{Type: TypeLabel, Text: "Select Country:"},
					{
						Type:    TypeDropdown,
						ID:      CountryDropdownID,
						Options: options,
						Value:   selected,
						Style: map[string]string{
							"width":  "50%",
							"margin": "10px auto",
						},
					},
				},
			},
			{
				Type: TypeDiv,
				Children: []Component{
					{Type: TypeLabel, Text: "Select Date Range:"},
					{
						Type: TypeDatePickerRange,
						ID:   DatePickerID,
						DateRange: &DateRange{
							MinDateAllowed:      minDate,
							MaxDateAllowed:      maxDate,
							InitialVisibleMonth: maxDate,
							StartDate:           minDate,
							EndDate:             maxDate,
						},
						Style: map[string]string{"margin": "10px"},
					},
				},
			},
			{Type: TypeGraph, ID: LineChartID},
			{Type: TypeGraph, ID: BarChartID},
			{Type: TypeGraph, ID: MapChartID},
		},
	}

	return &Layout{
		Title:   title,
		Root:    root,
		Binding: DefaultBinding(),
	}, nil
}

// Find returns the component with the given ID, searching depth first.
func (l *Layout) Find(id string) (Component, bool) {
	return find(l.Root, id)
}

// InitialSelection is the selection the page starts with.
func (l *Layout) InitialSelection() Selection {
	var sel Selection
	if dd, ok := l.Find(CountryDropdownID); ok {
		sel.Country = dd.Value
	}
	if dp, ok := l.Find(DatePickerID); ok && dp.DateRange != nil {
		sel.Start, _ = time.Parse(DateFormat, dp.DateRange.StartDate)
		sel.End, _ = time.Parse(DateFormat, dp.DateRange.EndDate)
	}
	return sel.Normalize()
}

func find(c Component, id string) (Component, bool) {
	if c.ID == id {
		return c, true
	}
	for _, child := range c.Children {
		if found, ok := find(child, id); ok {
			return found, true
		}
	}
	return Component{}, false
}

func formatDate(t time.Time) string {
	return t.UTC().Format(DateFormat)
}
