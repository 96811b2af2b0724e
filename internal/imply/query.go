// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package imply

import (
	"context"

	"druidmcp/server/internal/manifest"
)

// sqlRequest is the body of a SQL submission.
type sqlRequest struct {
	Query   string `json:"query"`
	Timeout int    `json:"timeout,omitempty"`
}

func newSQLRequest(sql string, timeoutMS int) sqlRequest {
	r := sqlRequest{Query: sql}
	if timeoutMS > 0 {
		r.Timeout = timeoutMS
	}
	return r
}

// ExecuteSQL calls POST /v1/projects/{project}/query/sql.
func (h *HTTP) ExecuteSQL(ctx context.Context, sql string, timeoutMS int) (any, error) {
	return h.do(ctx, call{
		op:      manifest.ExecuteSQL,
		body:    newSQLRequest(sql, timeoutMS),
		timeout: queryTimeout(timeoutMS),
	})
}

// SubmitStatement calls POST /v1/projects/{project}/query/sql/statements.
// The response carries the queryId used by the other statement calls.
func (h *HTTP) SubmitStatement(ctx context.Context, sql string, timeoutMS int) (any, error) {
	return h.do(ctx, call{
		op:   manifest.SubmitStatement,
		body: newSQLRequest(sql, timeoutMS),
	})
}

// StatementStatus calls GET .../query/sql/statements/{id}.
func (h *HTTP) StatementStatus(ctx context.Context, queryID string) (any, error) {
	return h.do(ctx, call{op: manifest.StatementStatus, id: queryID})
}

// StatementResults calls GET .../query/sql/statements/{id}/results.
func (h *HTTP) StatementResults(ctx context.Context, queryID string) (any, error) {
	return h.do(ctx, call{op: manifest.StatementResult, id: queryID})
}

// CancelStatement calls DELETE .../query/sql/statements/{id}.
func (h *HTTP) CancelStatement(ctx context.Context, queryID string) (any, error) {
	out, err := h.do(ctx, call{op: manifest.CancelStatement, id: queryID})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return map[string]any{"status": "cancelled"}, nil
	}
	return out, nil
}
