// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package tools

import (
	"context"
	"fmt"

	"druidmcp/server/internal/imply"
)

func dashboardTools(api imply.API) []Tool {
	return []Tool{
		&tool{
			name:        "list_dashboards",
			description: "List all dashboards in the Imply project with their metadata.",
			schema:      objectSchema(nil),
			readOnly:    true,
			run: func(ctx context.Context, _ Args) (string, error) {
				result, err := api.ListDashboards(ctx)
				if err != nil {
					return "", err
				}
				return formatDashboards(result), nil
			},
		},
		&tool{
			name:        "get_dashboard",
			description: "Get detailed information about a specific dashboard including its configuration.",
			schema:      objectSchema([]string{"dashboard_id"}, stringProp("dashboard_id", "ID of the dashboard")),
			readOnly:    true,
			run: func(ctx context.Context, args Args) (string, error) {
				id, err := args.Segment("dashboard_id")
				if err != nil {
					return "", err
				}
				result, err := api.GetDashboard(ctx, id)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Dashboard details for '%s':\n\n%s", id, formatJSON(result)), nil
			},
		},
	}
}

func dataCubeTools(api imply.API, limits Limits) []Tool {
	return []Tool{
		&tool{
			name:        "list_data_cubes",
			description: "List all data cubes in the Imply project with their metadata.",
			schema:      objectSchema(nil),
			readOnly:    true,
			run: func(ctx context.Context, _ Args) (string, error) {
				result, err := api.ListDataCubes(ctx)
				if err != nil {
					return "", err
				}
				return formatDataCubes(result), nil
			},
		},
		&tool{
			name:        "get_data_cube",
			description: "Get detailed information about a specific data cube including dimensions and measures.",
			schema:      objectSchema([]string{"cube_id"}, stringProp("cube_id", "ID of the data cube (from list_data_cubes)")),
			readOnly:    true,
			run: func(ctx context.Context, args Args) (string, error) {
				id, err := args.Segment("cube_id")
				if err != nil {
					return "", err
				}
				result, err := api.GetDataCube(ctx, id)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Data cube details for '%s':\n\n%s", id, formatJSON(result)), nil
			},
		},
		&tool{
			name: "query_data_cube",
			description: "Execute SQL query against a data cube (Pivot). Use 'source' from list_data_cubes. " +
				`Syntax: FROM "datacube"."SOURCE", "DIM:dimension_name", MEASURE_BY_ID('measure_id')`,
			schema: objectSchema([]string{"query_string"},
				stringProp("query_string", "SQL query with data cube syntax"),
				booleanProp("exact_results_only", "Use exact results for TopN/COUNT DISTINCT (default: false)", false),
			),
			readOnly: true,
			run: func(ctx context.Context, args Args) (string, error) {
				query, err := args.SQL("query_string", limits.MaxQueryLength)
				if err != nil {
					return "", err
				}
				exact, err := args.Bool("exact_results_only", false)
				if err != nil {
					return "", err
				}
				result, err := api.QueryDataCube(ctx, query, exact)
				if err != nil {
					return "", err
				}
				return formatDataCubeRows(result, limits.MaxDisplayRows), nil
			},
		},
	}
}
