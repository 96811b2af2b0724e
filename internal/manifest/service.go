// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package manifest

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"

	"druidmcp/server/internal/validation"
)

const projectRoot = "/v1/projects/" + ProjectPlaceholder

// Default returns the built-in endpoint table.
func Default() Endpoints {
	return Endpoints{
		ExecuteSQL:      {Method: http.MethodPost, Path: projectRoot + "/query/sql"},
		SubmitStatement: {Method: http.MethodPost, Path: projectRoot + "/query/sql/statements"},
		StatementStatus: {Method: http.MethodGet, Path: projectRoot + "/query/sql/statements/" + IDPlaceholder},
		StatementResult: {Method: http.MethodGet, Path: projectRoot + "/query/sql/statements/" + IDPlaceholder + "/results"},
		CancelStatement: {Method: http.MethodDelete, Path: projectRoot + "/query/sql/statements/" + IDPlaceholder},
		ListTables:      {Method: http.MethodGet, Path: projectRoot + "/tables"},
		GetTable:        {Method: http.MethodGet, Path: projectRoot + "/tables/" + IDPlaceholder},
		ListDashboards:  {Method: http.MethodGet, Path: projectRoot + "/dashboards"},
		GetDashboard:    {Method: http.MethodGet, Path: projectRoot + "/dashboards/" + IDPlaceholder},
		ListDataCubes:   {Method: http.MethodGet, Path: projectRoot + "/data-cubes"},
		GetDataCube:     {Method: http.MethodGet, Path: projectRoot + "/data-cubes/" + IDPlaceholder},
		QueryDataCube:   {Method: http.MethodPost, Path: projectRoot + "/pivot/sql"},
	}
}

// Merge returns a copy of e with the overrides applied. Override keys are operation
// names; an override may change the method, the path or both.
func (e Endpoints) Merge(overrides map[string]Endpoint) (Endpoints, error) {
	out := make(Endpoints, len(e))
	for op, ep := range e {
		out[op] = ep
	}
	for name, o := range overrides {
		op := Operation(name)
		base, ok := out[op]
		if !ok {
			return nil, errors.Newf("unknown endpoint override %q", name)
		}
		if o.Method != "" {
			base.Method = strings.ToUpper(o.Method)
		}
		if o.Path != "" {
			base.Path = o.Path
		}
		if err := checkEndpoint(op, base); err != nil {
			return nil, err
		}
		out[op] = base
	}
	return out, nil
}

func checkEndpoint(op Operation, ep Endpoint) error {
	switch ep.Method {
	case http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodPut, http.MethodPatch:
	default:
		return errors.Newf("endpoint %s: unsupported method %q", op, ep.Method)
	}
	if !strings.HasPrefix(ep.Path, "/") {
		return errors.Newf("endpoint %s: path must start with /", op)
	}
	if !strings.Contains(ep.Path, ProjectPlaceholder) {
		return errors.Newf("endpoint %s: path must contain %s", op, ProjectPlaceholder)
	}
	if needsID(op) != strings.Contains(ep.Path, IDPlaceholder) {
		if needsID(op) {
			return errors.Newf("endpoint %s: path must contain %s", op, IDPlaceholder)
		}
		return errors.Newf("endpoint %s: path must not contain %s", op, IDPlaceholder)
	}
	return nil
}

// Lookup returns the endpoint for op.
func (e Endpoints) Lookup(op Operation) (Endpoint, error) {
	ep, ok := e[op]
	if !ok {
		return Endpoint{}, errors.Newf("no endpoint configured for %s", op)
	}
	return ep, nil
}

// Expand substitutes the project and resource IDs into the endpoint path. Both values
// must be single path segments; they are escaped before substitution.
func (ep Endpoint) Expand(project, id string) (string, error) {
	if !validation.SafeSegment(project) {
		return "", errors.New("project ID is not a valid path segment")
	}
	p := strings.ReplaceAll(ep.Path, ProjectPlaceholder, url.PathEscape(project))
	if strings.Contains(p, IDPlaceholder) {
		if !validation.SafeSegment(id) {
			return "", errors.New("resource ID is not a valid path segment")
		}
		p = strings.ReplaceAll(p, IDPlaceholder, url.PathEscape(id))
	}
	return p, nil
}
