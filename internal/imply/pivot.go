// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package imply

import (
	"context"

	"druidmcp/server/internal/manifest"
)

// ListDashboards calls GET /v1/projects/{project}/dashboards.
func (h *HTTP) ListDashboards(ctx context.Context) (any, error) {
	return h.do(ctx, call{op: manifest.ListDashboards})
}

// GetDashboard calls GET /v1/projects/{project}/dashboards/{id}.
func (h *HTTP) GetDashboard(ctx context.Context, id string) (any, error) {
	return h.do(ctx, call{op: manifest.GetDashboard, id: id})
}

// ListDataCubes calls GET /v1/projects/{project}/data-cubes.
func (h *HTTP) ListDataCubes(ctx context.Context) (any, error) {
	return h.do(ctx, call{op: manifest.ListDataCubes})
}

// GetDataCube calls GET /v1/projects/{project}/data-cubes/{id}.
func (h *HTTP) GetDataCube(ctx context.Context, id string) (any, error) {
	return h.do(ctx, call{op: manifest.GetDataCube, id: id})
}

type dataCubeQuery struct {
	QueryString      string `json:"queryString"`
	ExactResultsOnly bool   `json:"exactResultsOnly"`
}

// QueryDataCube posts a data cube SQL query. The response's "data" field holds the
// column names, two rows of type information and then the result rows.
func (h *HTTP) QueryDataCube(ctx context.Context, query string, exactResultsOnly bool) (any, error) {
	return h.do(ctx, call{
		op:   manifest.QueryDataCube,
		body: dataCubeQuery{QueryString: query, ExactResultsOnly: exactResultsOnly},
	})
}
