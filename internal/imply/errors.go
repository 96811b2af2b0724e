// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package imply

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// maxErrorBody bounds the response excerpt kept on a StatusError.
const maxErrorBody = 512

// StatusError is returned when the API answers with a non-2xx status, including
// redirects, which are never followed.
type StatusError struct {
	StatusCode int
	Method     string
	Path       string
	// Body is a truncated excerpt of the response, for debug logs only.
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("imply api: %s %s returned status %d", e.Method, e.Path, e.StatusCode)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
