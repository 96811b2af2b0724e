// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
)

// Log output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ParseLevel maps a LOG_LEVEL value to a pterm log level. Matching is case-insensitive;
// WARNING and CRITICAL are accepted as aliases of WARN and FATAL.
func ParseLevel(s string) (pterm.LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return pterm.LogLevelTrace, nil
	case "DEBUG":
		return pterm.LogLevelDebug, nil
	case "", "INFO":
		return pterm.LogLevelInfo, nil
	case "WARN", "WARNING":
		return pterm.LogLevelWarn, nil
	case "ERROR":
		return pterm.LogLevelError, nil
	case "CRITICAL", "FATAL":
		return pterm.LogLevelFatal, nil
	case "OFF", "NONE", "DISABLED":
		return pterm.LogLevelDisabled, nil
	}
	return pterm.LogLevelInfo, errors.Newf("unknown log level %q", s)
}

// NewLogger builds a structured logger. Logs never go to stdout because the stdio
// transport owns it; a nil writer selects stderr.
func NewLogger(w io.Writer, level, format string) (*pterm.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := pterm.DefaultLogger.WithWriter(w).WithLevel(lvl)
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		logger = logger.WithFormatter(pterm.LogFormatterColorful)
	case FormatJSON:
		logger = logger.WithFormatter(pterm.LogFormatterJSON)
	default:
		return nil, errors.Newf("unknown log format %q (use text or json)", format)
	}
	return logger, nil
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *pterm.Logger {
	return pterm.DefaultLogger.WithWriter(io.Discard).WithLevel(pterm.LogLevelDisabled)
}
