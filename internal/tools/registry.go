// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"druidmcp/server/internal/config"
	apperrors "druidmcp/server/internal/errors"
	"druidmcp/server/internal/httperrors"
	"druidmcp/server/internal/imply"
)

// Limits are the configured bounds applied to tool input and output.
type Limits struct {
	MaxQueryLength        int
	DefaultQueryTimeoutMS int
	MaxDisplayRows        int
}

// LimitsFromConfig copies the limits out of cfg.
func LimitsFromConfig(cfg *config.Config) Limits {
	return Limits{
		MaxQueryLength:        cfg.MaxQueryLength,
		DefaultQueryTimeoutMS: cfg.DefaultQueryTimeoutMS,
		MaxDisplayRows:        cfg.MaxDisplayRows,
	}
}

// Registry holds every tool in registration order.
type Registry struct {
	tools  []Tool
	byName map[string]Tool
}

// NewRegistry builds the full tool set on top of api.
func NewRegistry(api imply.API, limits Limits) *Registry {
	r := &Registry{byName: make(map[string]Tool)}
	groups := [][]Tool{
		queryTools(api, limits),
		tableTools(api),
		dashboardTools(api),
		dataCubeTools(api, limits),
	}
	for _, g := range groups {
		for _, t := range g {
			r.add(t)
		}
	}
	return r
}

func (r *Registry) add(t Tool) {
	if _, dup := r.byName[t.Name()]; dup {
		panic(fmt.Sprintf("tools: duplicate tool %q", t.Name()))
	}
	r.tools = append(r.tools, t)
	r.byName[t.Name()] = t
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Result is the outcome of one tool call.
type Result struct {
	Text    string
	IsError bool
	// Err is the underlying failure, for logs only. It may contain detail that must
	// not reach the caller.
	Err error
}

// Call runs the named tool with raw JSON arguments. Failures become an error result
// whose text is safe to return to the caller.
func (r *Registry) Call(ctx context.Context, name string, raw json.RawMessage) Result {
	t, ok := r.byName[name]
	if !ok {
		return Result{
			Text:    fmt.Sprintf("Error: Unknown tool '%s'", name),
			IsError: true,
			Err:     apperrors.New(apperrors.UnknownTool, "unknown tool "+name),
		}
	}
	args, err := ParseArgs(raw)
	if err != nil {
		return errorResult(err)
	}
	text, err := t.Execute(ctx, args)
	if err != nil {
		return errorResult(err)
	}
	return Result{Text: text}
}

func errorResult(err error) Result {
	return Result{Text: "Error: " + httperrors.Describe(err), IsError: true, Err: err}
}
