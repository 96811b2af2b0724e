// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package validation checks tool input before it is turned into an HTTP request.
// Every failure is an errors.Validation error whose message is safe to show to the caller.
package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	apperrors "druidmcp/server/internal/errors"
)

// MaxSegmentLength bounds identifiers that end up in a URL path.
const MaxSegmentLength = 1024

// SQL checks that a query is present and at most maxLen characters long. Text made
// only of whitespace counts as absent.
// Length is counted in characters, not bytes. A non-positive maxLen disables the limit.
func SQL(field, sql string, maxLen int) error {
	if strings.TrimSpace(sql) == "" {
		if field == "sql" || field == "" {
			return apperrors.Validationf("SQL query is required")
		}
		return apperrors.Validationf("%s is required", field)
	}
	if maxLen > 0 && utf8.RuneCountInString(sql) > maxLen {
		return apperrors.Validationf("Query too long. Maximum length: %d", maxLen)
	}
	return nil
}

// PathSegment checks that value can be used as exactly one URL path segment.
// It rejects traversal names, separators, characters with URL meaning and control characters.
func PathSegment(field, value string) error {
	if value == "" {
		return apperrors.Validationf("%s is required", field)
	}
	if !SafeSegment(value) {
		return apperrors.Validationf("Invalid %s: must be a single path segment", field)
	}
	return nil
}

// SafeSegment reports whether value is a non-empty single path segment.
func SafeSegment(value string) bool {
	if value == "" || len(value) > MaxSegmentLength {
		return false
	}
	if value == "." || value == ".." || strings.TrimSpace(value) == "" {
		return false
	}
	if !utf8.ValidString(value) {
		return false
	}
	for _, r := range value {
		switch r {
		case '/', '\\', '%', '?', '#':
			return false
		}
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}
