// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// It provides a structured approach to error handling with machine-readable error kinds
// and human-friendly messages, so tool handlers can decide which text is safe to show
// to an MCP client and which details must stay in the server log.
//
// The package supports wrapping underlying errors while maintaining error kind information.
package errors

import (
	"fmt"

	cerrors "github.com/cockroachdb/errors"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// Validation indicates bad tool input. Its message is shown to the caller verbatim.
	Validation Kind = "validation"
	// Config indicates missing or inconsistent configuration.
	Config Kind = "config"
	// Upstream indicates the Imply API answered with a non-success status.
	Upstream Kind = "upstream"
	// Network indicates the Imply API could not be reached.
	Network Kind = "network"
	// UnknownTool indicates a call to a tool name that is not registered.
	UnknownTool Kind = "unknown_tool"
	// Credentials indicates the credential store could not be used.
	Credentials Kind = "credentials"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause.
func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// Validationf builds a validation error whose message is safe to return to a caller.
func Validationf(format string, args ...any) *E {
	return &E{Kind: Validation, Message: fmt.Sprintf(format, args...)}
}

// As returns the first *E in err's chain.
func As(err error) (*E, bool) {
	var e *E
	if cerrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of the first *E in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return ""
}

// IsValidation reports whether err carries a validation error.
func IsValidation(err error) bool { return KindOf(err) == Validation }
