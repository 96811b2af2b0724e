// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package tools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"druidmcp/server/internal/imply"
)

var testLimits = Limits{MaxQueryLength: 50, DefaultQueryTimeoutMS: 30000, MaxDisplayRows: 2}

func call(t *testing.T, r *Registry, name, args string) Result {
	t.Helper()
	return r.Call(context.Background(), name, json.RawMessage(args))
}

func TestRegistryToolSet(t *testing.T) {
	r := NewRegistry(newFakeAPI(), testLimits)

	var names []string
	for _, tl := range r.Tools() {
		names = append(names, tl.Name())
		assert.NotEmpty(t, tl.Description())
		assert.Equal(t, "object", tl.InputSchema()["type"])
	}
	assert.Equal(t, []string{
		"execute_sql_query", "execute_async_query", "get_query_results", "get_query_status", "cancel_query",
		"list_tables", "get_table_schema",
		"list_dashboards", "get_dashboard",
		"list_data_cubes", "get_data_cube", "query_data_cube",
	}, names)

	cancel, ok := r.Lookup("cancel_query")
	require.True(t, ok)
	assert.False(t, cancel.ReadOnly())
	list, _ := r.Lookup("list_tables")
	assert.True(t, list.ReadOnly())
}

func TestUnknownTool(t *testing.T) {
	r := NewRegistry(newFakeAPI(), testLimits)
	res := call(t, r, "drop_everything", `{}`)
	assert.True(t, res.IsError)
	assert.Equal(t, "Error: Unknown tool 'drop_everything'", res.Text)
}

func TestExecuteSQLQuery(t *testing.T) {
	api := newFakeAPI()
	api.responses["ExecuteSQL"] = []any{map[string]any{"n": json.Number("42")}}
	r := NewRegistry(api, testLimits)

	res := call(t, r, "execute_sql_query", `{"sql": "SELECT COUNT(*) AS n FROM wiki"}`)
	require.False(t, res.IsError, res.Text)
	assert.Equal(t, "Query executed successfully:\n\n[\n  {\n    \"n\": 42\n  }\n]", res.Text)

	got, _ := api.lastCall()
	assert.Equal(t, "SELECT COUNT(*) AS n FROM wiki", got.SQL)
	assert.Equal(t, 30000, got.Timeout)

	call(t, r, "execute_sql_query", `{"sql": "SELECT 1", "timeout_ms": 1500}`)
	got, _ = api.lastCall()
	assert.Equal(t, 1500, got.Timeout)
}

func TestAsyncQuery(t *testing.T) {
	api := newFakeAPI()
	api.responses["SubmitStatement"] = map[string]any{"queryId": "q-123", "state": "ACCEPTED"}
	r := NewRegistry(api, testLimits)

	res := call(t, r, "execute_async_query", `{"sql": "SELECT 1"}`)
	assert.Equal(t, "Async query started successfully.\n\nQuery ID: q-123\n\n"+
		"Use 'get_query_status' to check progress and 'get_query_results' to retrieve results.", res.Text)

	api.responses["SubmitStatement"] = map[string]any{}
	res = call(t, r, "execute_async_query", `{"sql": "SELECT 1"}`)
	assert.Contains(t, res.Text, "Query ID: unknown")
}

func TestStatementTools(t *testing.T) {
	api := newFakeAPI()
	api.responses["StatementStatus"] = map[string]any{"state": "RUNNING"}
	api.responses["StatementResults"] = map[string]any{"rows": []any{}}
	api.responses["CancelStatement"] = map[string]any{"status": "cancelled"}
	r := NewRegistry(api, testLimits)

	res := call(t, r, "get_query_status", `{"query_id": "q-1"}`)
	assert.Equal(t, "Query status:\n\n{\n  \"state\": \"RUNNING\"\n}", res.Text)

	res = call(t, r, "get_query_results", `{"query_id": "q-1"}`)
	assert.Equal(t, "Query results:\n\n{\n  \"rows\": []\n}", res.Text)

	res = call(t, r, "cancel_query", `{"query_id": "q-1"}`)
	assert.Equal(t, "Query cancelled successfully.\n\n{\n  \"status\": \"cancelled\"\n}", res.Text)
	got, _ := api.lastCall()
	assert.Equal(t, apiCall{Method: "CancelStatement", ID: "q-1"}, got)
}

func TestValidationNeverCallsAPI(t *testing.T) {
	tests := []struct {
		name string
		tool string
		args string
		want string
	}{
		{"missing sql", "execute_sql_query", `{}`, "Error: SQL query is required"},
		{"blank sql", "execute_async_query", `{"sql": "   "}`, "Error: SQL query is required"},
		{"sql too long", "execute_sql_query", `{"sql": "` + strings.Repeat("x", 51) + `"}`, "Error: Query too long. Maximum length: 50"},
		{"sql wrong type", "execute_sql_query", `{"sql": 7}`, "Error: Invalid sql: must be a string"},
		{"zero timeout", "execute_sql_query", `{"sql": "SELECT 1", "timeout_ms": 0}`, "Error: Invalid timeout_ms: must be a positive integer"},
		{"fractional timeout", "execute_sql_query", `{"sql": "SELECT 1", "timeout_ms": 1.5}`, "Error: Invalid timeout_ms: must be a positive integer"},
		{"missing query id", "get_query_status", `{}`, "Error: query_id is required"},
		{"traversal query id", "get_query_results", `{"query_id": "../tables"}`, "Error: Invalid query_id: must be a single path segment"},
		{"missing table", "get_table_schema", `{"table_name": ""}`, "Error: table_name is required"},
		{"slash in table", "get_table_schema", `{"table_name": "a/b"}`, "Error: Invalid table_name: must be a single path segment"},
		{"missing dashboard", "get_dashboard", `{}`, "Error: dashboard_id is required"},
		{"query in cube id", "get_data_cube", `{"cube_id": "c?x=1"}`, "Error: Invalid cube_id: must be a single path segment"},
		{"missing cube query", "query_data_cube", `{}`, "Error: query_string is required"},
		{"exact not bool", "query_data_cube", `{"query_string": "SELECT 1", "exact_results_only": "yes"}`, "Error: Invalid exact_results_only: must be a boolean"},
		{"args not object", "list_tables", `[1,2]`, "Error: Invalid arguments: expected a JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI()
			r := NewRegistry(api, testLimits)
			res := call(t, r, tt.tool, tt.args)
			assert.True(t, res.IsError)
			assert.Equal(t, tt.want, res.Text)
			assert.Zero(t, api.callCount())
		})
	}
}

func TestUpstreamErrorsAreSanitized(t *testing.T) {
	api := newFakeAPI()
	api.err = errors.Wrap(&imply.StatusError{
		StatusCode: 403, Method: "GET", Path: "/v1/projects/p/tables",
		Body: `{"message":"key pok_secret has no access"}`,
	}, "listing tables")
	r := NewRegistry(api, testLimits)

	res := call(t, r, "list_tables", ``)
	assert.True(t, res.IsError)
	assert.Equal(t, "Error: Permission denied. You don't have access to this resource.", res.Text)
	assert.NotContains(t, res.Text, "pok_secret")
	require.Error(t, res.Err)

	api.err = errors.New("decoding Imply API response: unexpected EOF")
	res = call(t, r, "get_dashboard", `{"dashboard_id": "d1"}`)
	assert.Equal(t, "Error: An unexpected error occurred while processing the request.", res.Text)
}

func TestListTools(t *testing.T) {
	api := newFakeAPI()
	api.responses["ListTables"] = map[string]any{"values": []any{
		map[string]any{"name": "wikipedia", "type": "detail", "availability": "available"},
		map[string]any{"name": "koalas"},
	}}
	api.responses["ListDashboards"] = map[string]any{"values": []any{
		map[string]any{"id": "d1", "title": "Traffic"},
		map[string]any{"id": "d2"},
	}}
	api.responses["ListDataCubes"] = map[string]any{"values": []any{
		map[string]any{"id": "c1", "title": "Wiki", "source": "wikipedia"},
		map[string]any{"id": "c2"},
	}}
	r := NewRegistry(api, testLimits)

	assert.Equal(t, "Tables in project (2 total):\n\n- wikipedia: detail (available)\n- koalas: unknown (unknown)",
		call(t, r, "list_tables", `{}`).Text)
	assert.Equal(t, "Dashboards in project (2 total):\n\n- Traffic (ID: d1)\n- Untitled (ID: d2)",
		call(t, r, "list_dashboards", `{}`).Text)
	assert.Equal(t, "Data cubes in project (2 total):\n\n"+
		"- ID: c1\n  Title: Wiki\n  Source: wikipedia\n"+
		"- ID: c2\n  Title: No title\n  Source: unknown",
		call(t, r, "list_data_cubes", `{}`).Text)
}

func TestListValues(t *testing.T) {
	tables := []any{map[string]any{"name": "a"}, map[string]any{"name": "b"}}
	assert.Len(t, ListValues(map[string]any{"values": tables}), 2)
	assert.Len(t, ListValues(tables), 2)
	assert.Empty(t, ListValues(map[string]any{"total": json.Number("2")}))
	assert.Empty(t, ListValues("unexpected"))

	api := newFakeAPI()
	api.responses["ListTables"] = tables
	r := NewRegistry(api, testLimits)
	assert.Equal(t, "Tables in project (2 total):\n\n- a: unknown (unknown)\n- b: unknown (unknown)",
		call(t, r, "list_tables", `{}`).Text)
}

func TestEmptyLists(t *testing.T) {
	api := newFakeAPI()
	api.responses["ListTables"] = map[string]any{"values": []any{}}
	r := NewRegistry(api, testLimits)

	assert.Equal(t, "No tables found in the project.", call(t, r, "list_tables", `{}`).Text)
	assert.Equal(t, "No dashboards found in the project.", call(t, r, "list_dashboards", `{}`).Text)
	assert.Equal(t, "No data cubes found in the project.", call(t, r, "list_data_cubes", `{}`).Text)
}

func TestDetailTools(t *testing.T) {
	api := newFakeAPI()
	api.responses["GetTable"] = map[string]any{"name": "web traffic"}
	api.responses["GetDashboard"] = map[string]any{"id": "d1"}
	api.responses["GetDataCube"] = map[string]any{"id": "c1"}
	r := NewRegistry(api, testLimits)

	assert.Equal(t, "Table schema for 'web traffic':\n\n{\n  \"name\": \"web traffic\"\n}",
		call(t, r, "get_table_schema", `{"table_name": "web traffic"}`).Text)
	assert.Equal(t, "Dashboard details for 'd1':\n\n{\n  \"id\": \"d1\"\n}",
		call(t, r, "get_dashboard", `{"dashboard_id": "d1"}`).Text)
	assert.Equal(t, "Data cube details for 'c1':\n\n{\n  \"id\": \"c1\"\n}",
		call(t, r, "get_data_cube", `{"cube_id": "c1"}`).Text)
}

func TestQueryDataCube(t *testing.T) {
	api := newFakeAPI()
	api.responses["QueryDataCube"] = map[string]any{"data": []any{
		[]any{"page", "count"},
		[]any{"STRING", "LONG"},
		[]any{"dimension", "measure"},
		[]any{"Main_Page", json.Number("10")},
		[]any{"Talk", json.Number("7")},
		[]any{nil, json.Number("1")},
	}}
	r := NewRegistry(api, testLimits)

	res := call(t, r, "query_data_cube", `{"query_string": "SELECT 1", "exact_results_only": true}`)
	require.False(t, res.IsError, res.Text)
	assert.Equal(t, "Query Results (3 rows):\n\n"+
		"Columns: page, count\n\n"+
		"Main_Page | 10\n"+
		"Talk | 7\n"+
		"\n... and 1 more rows", res.Text)

	got, _ := api.lastCall()
	assert.True(t, got.Exact)

	api.responses["QueryDataCube"] = map[string]any{"data": []any{[]any{"a"}, []any{"T"}, []any{"x"}}}
	assert.Equal(t, "Query returned no results.", call(t, r, "query_data_cube", `{"query_string": "SELECT 1"}`).Text)
	got, _ = api.lastCall()
	assert.False(t, got.Exact)
}
