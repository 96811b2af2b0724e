// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package manifest holds the table that maps every Imply API operation to an HTTP
// method and a path template. The built-in table can be partially overridden from
// the config file, for example when an organization is served behind a gateway
// that rewrites paths.
package manifest

// Operation names one remote call. Operation names match the tool names that use them.
type Operation string

const (
	ExecuteSQL      Operation = "execute_sql_query"
	SubmitStatement Operation = "execute_async_query"
	StatementStatus Operation = "get_query_status"
	StatementResult Operation = "get_query_results"
	CancelStatement Operation = "cancel_query"
	ListTables      Operation = "list_tables"
	GetTable        Operation = "get_table_schema"
	ListDashboards  Operation = "list_dashboards"
	GetDashboard    Operation = "get_dashboard"
	ListDataCubes   Operation = "list_data_cubes"
	GetDataCube     Operation = "get_data_cube"
	QueryDataCube   Operation = "query_data_cube"
)

// Placeholders recognized in path templates.
const (
	ProjectPlaceholder = "{project}"
	IDPlaceholder      = "{id}"
)

// Endpoint is an HTTP method plus a path template relative to the API base URL.
type Endpoint struct {
	Method string `yaml:"method" json:"method"`
	Path   string `yaml:"path" json:"path"`
}

// Endpoints maps every operation to its endpoint.
type Endpoints map[Operation]Endpoint

// Operations lists every operation in a stable order.
var Operations = []Operation{
	ExecuteSQL,
	SubmitStatement,
	StatementStatus,
	StatementResult,
	CancelStatement,
	ListTables,
	GetTable,
	ListDashboards,
	GetDashboard,
	ListDataCubes,
	GetDataCube,
	QueryDataCube,
}

// needsID reports whether the operation addresses a single resource.
func needsID(op Operation) bool {
	switch op {
	case StatementStatus, StatementResult, CancelStatement, GetTable, GetDashboard, GetDataCube:
		return true
	}
	return false
}
