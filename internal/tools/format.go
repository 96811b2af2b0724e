// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// formatJSON renders v with two-space indentation and without HTML escaping.
func formatJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("%v", v)
	}
	return strings.TrimRight(buf.String(), "\n")
}

// ListValues returns the items of a list response, which wraps them in "values".
// A bare array is accepted as the list itself.
func ListValues(result any) []any {
	switch t := result.(type) {
	case map[string]any:
		items, _ := t["values"].([]any)
		return items
	case []any:
		return t
	}
	return nil
}

// field returns item[key] as display text, or def when the key is missing or null.
func field(item any, key, def string) string {
	m, ok := item.(map[string]any)
	if !ok {
		return def
	}
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	return cell(v)
}

// cell renders one scalar or nested value on a single line.
func cell(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}

func formatTables(result any) string {
	tables := ListValues(result)
	if len(tables) == 0 {
		return "No tables found in the project."
	}
	lines := make([]string, 0, len(tables))
	for _, t := range tables {
		lines = append(lines, fmt.Sprintf("- %s: %s (%s)",
			field(t, "name", "unknown"), field(t, "type", "unknown"), field(t, "availability", "unknown")))
	}
	return fmt.Sprintf("Tables in project (%d total):\n\n%s", len(tables), strings.Join(lines, "\n"))
}

func formatDashboards(result any) string {
	dashboards := ListValues(result)
	if len(dashboards) == 0 {
		return "No dashboards found in the project."
	}
	lines := make([]string, 0, len(dashboards))
	for _, d := range dashboards {
		lines = append(lines, fmt.Sprintf("- %s (ID: %s)", field(d, "title", "Untitled"), field(d, "id", "unknown")))
	}
	return fmt.Sprintf("Dashboards in project (%d total):\n\n%s", len(dashboards), strings.Join(lines, "\n"))
}

func formatDataCubes(result any) string {
	cubes := ListValues(result)
	if len(cubes) == 0 {
		return "No data cubes found in the project."
	}
	entries := make([]string, 0, len(cubes))
	for _, c := range cubes {
		entries = append(entries, fmt.Sprintf("- ID: %s\n  Title: %s\n  Source: %s",
			field(c, "id", "unknown"), field(c, "title", "No title"), field(c, "source", "unknown")))
	}
	return fmt.Sprintf("Data cubes in project (%d total):\n\n%s", len(cubes), strings.Join(entries, "\n"))
}

// dataCubeHeaderRows is the number of leading rows in a data cube result that are not
// data: the column names followed by two rows of type information.
const dataCubeHeaderRows = 3

// formatDataCubeRows renders a data cube result, showing at most maxRows data rows.
// A non-positive maxRows shows every row.
func formatDataCubeRows(result any, maxRows int) string {
	var data []any
	if m, ok := result.(map[string]any); ok {
		data, _ = m["data"].([]any)
	}
	if len(data) <= dataCubeHeaderRows {
		return "Query returned no results."
	}

	columns := rowCells(data[0])
	rows := data[dataCubeHeaderRows:]

	var b strings.Builder
	fmt.Fprintf(&b, "Query Results (%d rows):\n\n", len(rows))
	b.WriteString("Columns: " + strings.Join(columns, ", ") + "\n\n")

	shown := rows
	if maxRows > 0 && len(rows) > maxRows {
		shown = rows[:maxRows]
	}
	for _, r := range shown {
		b.WriteString(strings.Join(rowCells(r), " | ") + "\n")
	}
	if len(shown) < len(rows) {
		fmt.Fprintf(&b, "\n... and %d more rows", len(rows)-len(shown))
	}
	return b.String()
}

func rowCells(row any) []string {
	values, ok := row.([]any)
	if !ok {
		return []string{cell(row)}
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = cell(v)
	}
	return out
}
