// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package tools

import (
	"context"
	"fmt"

	"druidmcp/server/internal/imply"
)

func tableTools(api imply.API) []Tool {
	return []Tool{
		&tool{
			name:        "list_tables",
			description: "List all tables in the Druid project with their metadata.",
			schema:      objectSchema(nil),
			readOnly:    true,
			run: func(ctx context.Context, _ Args) (string, error) {
				result, err := api.ListTables(ctx)
				if err != nil {
					return "", err
				}
				return formatTables(result), nil
			},
		},
		&tool{
			name:        "get_table_schema",
			description: "Get detailed schema information for a specific table.",
			schema:      objectSchema([]string{"table_name"}, stringProp("table_name", "Name of the table")),
			readOnly:    true,
			run: func(ctx context.Context, args Args) (string, error) {
				name, err := args.Segment("table_name")
				if err != nil {
					return "", err
				}
				result, err := api.GetTable(ctx, name)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Table schema for '%s':\n\n%s", name, formatJSON(result)), nil
			},
		},
	}
}
