// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package render

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/tomtom215/covidash/internal/dashboard"
)

//go:embed page.html
var pageHTML string

//go:embed page.js
var pageJS string

// Endpoints the page script talks to.
const (
	UpdatePath    = "/api/v1/update"
	WebSocketPath = "/ws"
)

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"style":  styleAttr,
	"script": func() template.JS { return template.JS(pageJS) }, //nolint:gosec // embedded at build time
}).Parse(pageHTML))

// PageData is the input of the page template.
type PageData struct {
	Layout     *dashboard.Layout
	AssetsHost string
	BootID     string
	Debug      bool
}

// UpdatePath and WebSocketPath are exposed to the template.
func (PageData) UpdatePath() string    { return UpdatePath }
func (PageData) WebSocketPath() string { return WebSocketPath }

// Page renders the dashboard HTML document.
func Page(w io.Writer, data PageData) error {
	if data.Layout == nil {
		return fmt.Errorf("render page: nil layout")
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// styleAttr converts a React-style map (textAlign) into a CSS declaration
// list (text-align) with sorted properties.
func styleAttr(style map[string]string) template.CSS {
	if len(style) == 0 {
		return ""
	}
	keys := make([]string, 0, len(style))
	for k := range style {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(cssProperty(k))
		b.WriteString(": ")
		b.WriteString(style[k])
		b.WriteByte(';')
	}
	return template.CSS(b.String()) //nolint:gosec // values come from the layout builder
}

func cssProperty(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
