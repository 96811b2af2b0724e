// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package tools

import (
	"bytes"
	"encoding/json"
	"math"

	apperrors "druidmcp/server/internal/errors"
	"druidmcp/server/internal/validation"
)

// Args holds the decoded arguments of one tool call.
type Args map[string]any

// ParseArgs decodes raw JSON arguments. Empty input and null decode to no arguments.
func ParseArgs(raw json.RawMessage) (Args, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Args{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, apperrors.Validationf("Invalid arguments: expected a JSON object")
	}
	if out == nil {
		return Args{}, nil
	}
	return Args(out), nil
}

// optionalString returns the named string argument, or "" when it is absent or null.
func (a Args) optionalString(name string) (string, error) {
	v, ok := a[name]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", apperrors.Validationf("Invalid %s: must be a string", name)
	}
	return s, nil
}

// SQL returns the named SQL text, checked for presence and length.
func (a Args) SQL(name string, maxLen int) (string, error) {
	s, err := a.optionalString(name)
	if err != nil {
		return "", err
	}
	if err := validation.SQL(name, s, maxLen); err != nil {
		return "", err
	}
	return s, nil
}

// Segment returns the named identifier, which must be usable as one URL path segment.
func (a Args) Segment(name string) (string, error) {
	s, err := a.optionalString(name)
	if err != nil {
		return "", err
	}
	if err := validation.PathSegment(name, s); err != nil {
		return "", err
	}
	return s, nil
}

// PositiveInt returns the named integer, or def when it is absent or null.
func (a Args) PositiveInt(name string, def int) (int, error) {
	v, ok := a[name]
	if !ok || v == nil {
		return def, nil
	}
	bad := apperrors.Validationf("Invalid %s: must be a positive integer", name)

	var n float64
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, bad
		}
		n = f
	case float64:
		n = t
	case int:
		n = float64(t)
	case int64:
		n = float64(t)
	default:
		return 0, bad
	}
	if n <= 0 || n != math.Trunc(n) || n > math.MaxInt32 {
		return 0, bad
	}
	return int(n), nil
}

// Bool returns the named boolean, or def when it is absent or null.
func (a Args) Bool(name string, def bool) (bool, error) {
	v, ok := a[name]
	if !ok || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, apperrors.Validationf("Invalid %s: must be a boolean", name)
	}
	return b, nil
}
