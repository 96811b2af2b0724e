// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package tools defines the MCP tools exposed by the server. Each tool validates its
// arguments, performs one Imply API call and renders the response as text.
package tools

import (
	"context"
)

// Tool is one named operation callable over MCP.
type Tool interface {
	// Name returns the unique identifier for this tool
	Name() string

	// Description returns a human-readable description of what this tool does
	Description() string

	// InputSchema returns the JSON Schema for the tool's input parameters
	InputSchema() map[string]any

	// ReadOnly reports whether the tool leaves remote state unchanged
	ReadOnly() bool

	// Execute validates args, runs the tool and returns the result text
	Execute(ctx context.Context, args Args) (string, error)
}

// handlerFunc is the body of a tool.
type handlerFunc func(ctx context.Context, args Args) (string, error)

type tool struct {
	name        string
	description string
	schema      map[string]any
	readOnly    bool
	run         handlerFunc
}

func (t *tool) Name() string                { return t.name }
func (t *tool) Description() string         { return t.description }
func (t *tool) InputSchema() map[string]any { return t.schema }
func (t *tool) ReadOnly() bool              { return t.readOnly }

func (t *tool) Execute(ctx context.Context, args Args) (string, error) {
	return t.run(ctx, args)
}

// property is one entry of an input schema.
type property struct {
	name string
	def  map[string]any
}

func stringProp(name, description string) property {
	return property{name: name, def: map[string]any{"type": "string", "description": description}}
}

func integerProp(name, description string) property {
	return property{name: name, def: map[string]any{"type": "integer", "description": description}}
}

func booleanProp(name, description string, def bool) property {
	return property{name: name, def: map[string]any{"type": "boolean", "description": description, "default": def}}
}

// objectSchema builds an object schema. Names listed in required must be among props.
func objectSchema(required []string, props ...property) map[string]any {
	properties := make(map[string]any, len(props))
	for _, p := range props {
		properties[p.name] = p.def
	}
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
