// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package imply

import (
	"context"

	"druidmcp/server/internal/manifest"
)

// ListTables calls GET /v1/projects/{project}/tables.
func (h *HTTP) ListTables(ctx context.Context) (any, error) {
	return h.do(ctx, call{op: manifest.ListTables})
}

// GetTable calls GET /v1/projects/{project}/tables/{name}.
func (h *HTTP) GetTable(ctx context.Context, name string) (any, error) {
	return h.do(ctx, call{op: manifest.GetTable, id: name})
}
