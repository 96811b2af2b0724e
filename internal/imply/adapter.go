// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package imply is the client for the Imply cloud REST API of one project.
// It builds authenticated requests from the endpoint table, refuses to follow
// redirects so credentials never leave the configured host, and decodes responses
// as generic JSON values that callers relay unchanged.
package imply

import "context"

// API defines the remote operations the tools depend on.
// Results are decoded JSON values: map[string]any, []any, json.Number, string, bool or nil.
type API interface {
	// ExecuteSQL runs a synchronous SQL query. A non-positive timeoutMS omits the timeout.
	ExecuteSQL(ctx context.Context, sql string, timeoutMS int) (any, error)
	// SubmitStatement starts an asynchronous SQL statement.
	SubmitStatement(ctx context.Context, sql string, timeoutMS int) (any, error)
	StatementStatus(ctx context.Context, queryID string) (any, error)
	StatementResults(ctx context.Context, queryID string) (any, error)
	// CancelStatement cancels a running statement. An empty response body yields
	// {"status": "cancelled"}.
	CancelStatement(ctx context.Context, queryID string) (any, error)

	ListTables(ctx context.Context) (any, error)
	GetTable(ctx context.Context, name string) (any, error)

	ListDashboards(ctx context.Context) (any, error)
	GetDashboard(ctx context.Context, id string) (any, error)

	ListDataCubes(ctx context.Context) (any, error)
	GetDataCube(ctx context.Context, id string) (any, error)
	// QueryDataCube runs a data cube SQL query through Pivot.
	QueryDataCube(ctx context.Context, query string, exactResultsOnly bool) (any, error)
}
