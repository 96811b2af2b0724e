// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors turns Imply API and network failures into short messages that are
// safe to show to a tool caller or a terminal user.
package httperrors

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"

	apperrors "druidmcp/server/internal/errors"
	"druidmcp/server/internal/imply"
)

// Fallback is returned for anything that is not a recognised status or network failure.
const Fallback = "An unexpected error occurred while processing the request."

const (
	msgTimeout    = "The request to the Imply API timed out. Please try again later."
	msgDNS        = "Cannot resolve the Imply API host. Check the organization, region and cloud provider settings."
	msgRefused    = "Connection to the Imply API was refused. Please try again later."
	msgTLS        = "A secure connection to the Imply API could not be established."
	msgConnection = "Cannot connect to the Imply API. Please check your network connection."
)

// Describe returns the user-facing message for err. Validation errors carry their own
// message; response bodies and wrapped causes are never included.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := apperrors.As(err); ok {
		switch e.Kind {
		case apperrors.Validation, apperrors.UnknownTool, apperrors.Credentials, apperrors.Config:
			return e.Message
		}
	}
	if code := imply.StatusCode(err); code != 0 {
		return StatusMessage(code)
	}
	if msg, ok := networkMessage(err); ok {
		return msg
	}
	return Fallback
}

// StatusMessage maps an HTTP status from the Imply API to a fixed message.
func StatusMessage(code int) string {
	switch {
	case code == 401:
		return "Authentication failed. Please check your API key or access token."
	case code == 403:
		return "Permission denied. You don't have access to this resource."
	case code == 404:
		return "Resource not found."
	case code == 429:
		return "Rate limit exceeded. Please try again later."
	case code >= 500:
		return fmt.Sprintf("Server error (%d). Please try again later.", code)
	default:
		return fmt.Sprintf("Request failed with status %d.", code)
	}
}

func networkMessage(err error) (string, bool) {
	switch {
	case isTimeoutError(err):
		return msgTimeout, true
	case isDNSError(err):
		return msgDNS, true
	case isConnectionRefusedError(err):
		return msgRefused, true
	case isSSLError(err):
		return msgTLS, true
	case apperrors.KindOf(err) == apperrors.Network:
		return msgConnection, true
	}
	return "", false
}

func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline exceeded")
}

func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func isConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

func isSSLError(err error) bool {
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "tls") ||
		strings.Contains(lower, "x509") ||
		strings.Contains(lower, "certificate") ||
		strings.Contains(lower, "handshake")
}

// Show prints a boxed explanation of err for CLI commands, with hints for the
// common failure classes.
func Show(action string, err error) {
	if err == nil {
		return
	}
	var hints []string
	switch code := imply.StatusCode(err); {
	case code == 401 || code == 403:
		hints = []string{
			"Run 'imply-druid-mcp login' to store a new credential",
			"Check that the key belongs to this organization and project",
		}
	case code == 404:
		hints = []string{"Verify IMPLY_PROJECT_ID and the organization name"}
	case code == 0 && isDNSError(err):
		hints = []string{"Verify IMPLY_ORGANIZATION, IMPLY_REGION and IMPLY_CLOUD_PROVIDER"}
	case code == 0 && isSSLError(err):
		hints = []string{"Check your system clock and proxy settings"}
	}

	body := Describe(err)
	if len(hints) > 0 {
		body += "\n\n" + strings.Join(hints, "\n")
	}
	pterm.DefaultBox.
		WithTitle(pterm.Red("Failed while " + action)).
		WithPadding(1).
		Println(body)
}

// ExtractHost returns the host of rawURL for messages, or "server" when it cannot be parsed.
func ExtractHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
