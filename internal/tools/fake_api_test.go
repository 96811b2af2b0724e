// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package tools

import (
	"context"
	"sync"
)

// apiCall records one method invocation on fakeAPI.
type apiCall struct {
	Method  string
	ID      string
	SQL     string
	Timeout int
	Exact   bool
}

// fakeAPI returns canned responses keyed by method name.
type fakeAPI struct {
	mu        sync.Mutex
	calls     []apiCall
	responses map[string]any
	err       error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{responses: map[string]any{}}
}

func (f *fakeAPI) record(c apiCall) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	if f.err != nil {
		return nil, f.err
	}
	return f.responses[c.Method], nil
}

func (f *fakeAPI) lastCall() (apiCall, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return apiCall{}, false
	}
	return f.calls[len(f.calls)-1], true
}

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeAPI) ExecuteSQL(_ context.Context, sql string, timeoutMS int) (any, error) {
	return f.record(apiCall{Method: "ExecuteSQL", SQL: sql, Timeout: timeoutMS})
}

func (f *fakeAPI) SubmitStatement(_ context.Context, sql string, timeoutMS int) (any, error) {
	return f.record(apiCall{Method: "SubmitStatement", SQL: sql, Timeout: timeoutMS})
}

func (f *fakeAPI) StatementStatus(_ context.Context, id string) (any, error) {
	return f.record(apiCall{Method: "StatementStatus", ID: id})
}

func (f *fakeAPI) StatementResults(_ context.Context, id string) (any, error) {
	return f.record(apiCall{Method: "StatementResults", ID: id})
}

func (f *fakeAPI) CancelStatement(_ context.Context, id string) (any, error) {
	return f.record(apiCall{Method: "CancelStatement", ID: id})
}

func (f *fakeAPI) ListTables(context.Context) (any, error) {
	return f.record(apiCall{Method: "ListTables"})
}

func (f *fakeAPI) GetTable(_ context.Context, name string) (any, error) {
	return f.record(apiCall{Method: "GetTable", ID: name})
}

func (f *fakeAPI) ListDashboards(context.Context) (any, error) {
	return f.record(apiCall{Method: "ListDashboards"})
}

func (f *fakeAPI) GetDashboard(_ context.Context, id string) (any, error) {
	return f.record(apiCall{Method: "GetDashboard", ID: id})
}

func (f *fakeAPI) ListDataCubes(context.Context) (any, error) {
	return f.record(apiCall{Method: "ListDataCubes"})
}

func (f *fakeAPI) GetDataCube(_ context.Context, id string) (any, error) {
	return f.record(apiCall{Method: "GetDataCube", ID: id})
}

func (f *fakeAPI) QueryDataCube(_ context.Context, query string, exact bool) (any, error) {
	return f.record(apiCall{Method: "QueryDataCube", SQL: query, Exact: exact})
}
