// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package manifest

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCoversEveryOperation(t *testing.T) {
	d := Default()
	require.Len(t, d, len(Operations))
	for _, op := range Operations {
		ep, err := d.Lookup(op)
		require.NoError(t, err, op)
		assert.NoError(t, checkEndpoint(op, ep), op)
	}
}

func TestExpand(t *testing.T) {
	d := Default()
	tests := []struct {
		name    string
		op      Operation
		id      string
		want    string
		wantErr bool
	}{
		{name: "collection", op: ListTables, want: "/v1/projects/proj-1/tables"},
		{name: "statement results", op: StatementResult, id: "q-42", want: "/v1/projects/proj-1/query/sql/statements/q-42/results"},
		{name: "table with space", op: GetTable, id: "web traffic", want: "/v1/projects/proj-1/tables/web%20traffic"},
		{name: "traversal rejected", op: GetDashboard, id: "../admin", wantErr: true},
		{name: "missing id rejected", op: GetDataCube, id: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d[tt.op].Expand("proj-1", tt.id)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandRejectsBadProject(t *testing.T) {
	_, err := Default()[ListTables].Expand("a/b", "")
	require.Error(t, err)
}

func TestMerge(t *testing.T) {
	d := Default()
	merged, err := d.Merge(map[string]Endpoint{
		"query_data_cube": {Path: "/v1/projects/{project}/data-cube-queries"},
		"cancel_query":    {Method: "post"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1/projects/{project}/data-cube-queries", merged[QueryDataCube].Path)
	assert.Equal(t, http.MethodPost, merged[QueryDataCube].Method)
	assert.Equal(t, http.MethodPost, merged[CancelStatement].Method)
	assert.Equal(t, d[CancelStatement].Path, merged[CancelStatement].Path)

	// the receiver is left untouched
	assert.Equal(t, http.MethodDelete, d[CancelStatement].Method)
}

func TestMergeRejectsInvalidOverrides(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]Endpoint
	}{
		{name: "unknown operation", overrides: map[string]Endpoint{"drop_table": {Path: "/x/{project}"}}},
		{name: "relative path", overrides: map[string]Endpoint{"list_tables": {Path: "v1/projects/{project}/tables"}}},
		{name: "missing project", overrides: map[string]Endpoint{"list_tables": {Path: "/v1/tables"}}},
		{name: "missing id", overrides: map[string]Endpoint{"get_table_schema": {Path: "/v1/projects/{project}/tables"}}},
		{name: "unexpected id", overrides: map[string]Endpoint{"list_tables": {Path: "/v1/projects/{project}/tables/{id}"}}},
		{name: "bad method", overrides: map[string]Endpoint{"list_tables": {Method: "TRACE"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Default().Merge(tt.overrides)
			require.Error(t, err)
		})
	}
}
