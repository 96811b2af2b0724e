// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package tools

import (
	"context"
	"fmt"

	"druidmcp/server/internal/imply"
)

const (
	descSQL     = "SQL query to execute"
	descTimeout = "Query timeout in milliseconds (optional)"
)

func queryTools(api imply.API, limits Limits) []Tool {
	sqlSchema := objectSchema([]string{"sql"},
		stringProp("sql", descSQL),
		integerProp("timeout_ms", descTimeout),
	)

	// sqlArgs reads the arguments shared by both submission tools.
	sqlArgs := func(args Args) (string, int, error) {
		sql, err := args.SQL("sql", limits.MaxQueryLength)
		if err != nil {
			return "", 0, err
		}
		timeout, err := args.PositiveInt("timeout_ms", limits.DefaultQueryTimeoutMS)
		if err != nil {
			return "", 0, err
		}
		return sql, timeout, nil
	}

	return []Tool{
		&tool{
			name:        "execute_sql_query",
			description: "Execute a SQL query against Druid and return results. Use this for synchronous queries on small datasets.",
			schema:      sqlSchema,
			readOnly:    true,
			run: func(ctx context.Context, args Args) (string, error) {
				sql, timeout, err := sqlArgs(args)
				if err != nil {
					return "", err
				}
				result, err := api.ExecuteSQL(ctx, sql, timeout)
				if err != nil {
					return "", err
				}
				return "Query executed successfully:\n\n" + formatJSON(result), nil
			},
		},
		&tool{
			name:        "execute_async_query",
			description: "Execute an asynchronous SQL query for large datasets or long-running queries. Returns a query ID.",
			schema:      sqlSchema,
			readOnly:    true,
			run: func(ctx context.Context, args Args) (string, error) {
				sql, timeout, err := sqlArgs(args)
				if err != nil {
					return "", err
				}
				result, err := api.SubmitStatement(ctx, sql, timeout)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Async query started successfully.\n\nQuery ID: %s\n\n"+
					"Use 'get_query_status' to check progress and 'get_query_results' to retrieve results.",
					field(result, "queryId", "unknown")), nil
			},
		},
		&tool{
			name:        "get_query_results",
			description: "Get results from an asynchronous query using its query ID.",
			schema:      objectSchema([]string{"query_id"}, stringProp("query_id", "Query ID from execute_async_query")),
			readOnly:    true,
			run: func(ctx context.Context, args Args) (string, error) {
				id, err := args.Segment("query_id")
				if err != nil {
					return "", err
				}
				result, err := api.StatementResults(ctx, id)
				if err != nil {
					return "", err
				}
				return "Query results:\n\n" + formatJSON(result), nil
			},
		},
		&tool{
			name:        "get_query_status",
			description: "Check the status of an asynchronous query.",
			schema:      objectSchema([]string{"query_id"}, stringProp("query_id", "Query ID to check")),
			readOnly:    true,
			run: func(ctx context.Context, args Args) (string, error) {
				id, err := args.Segment("query_id")
				if err != nil {
					return "", err
				}
				result, err := api.StatementStatus(ctx, id)
				if err != nil {
					return "", err
				}
				return "Query status:\n\n" + formatJSON(result), nil
			},
		},
		&tool{
			name:        "cancel_query",
			description: "Cancel a running query.",
			schema:      objectSchema([]string{"query_id"}, stringProp("query_id", "Query ID to cancel")),
			run: func(ctx context.Context, args Args) (string, error) {
				id, err := args.Segment("query_id")
				if err != nil {
					return "", err
				}
				result, err := api.CancelStatement(ctx, id)
				if err != nil {
					return "", err
				}
				return "Query cancelled successfully.\n\n" + formatJSON(result), nil
			},
		},
	}
}
