// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package httperrors

import (
	"context"
	"net"
	"net/url"
	"os"
	"syscall"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"

	apperrors "druidmcp/server/internal/errors"
	"druidmcp/server/internal/imply"
)

func statusErr(code int) error {
	return &imply.StatusError{
		StatusCode: code,
		Method:     "GET",
		Path:       "/v1/projects/p/tables",
		Body:       `{"error":"secret detail pok_abcdef"}`,
	}
}

func TestStatusMessages(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{401, "Authentication failed. Please check your API key or access token."},
		{403, "Permission denied. You don't have access to this resource."},
		{404, "Resource not found."},
		{429, "Rate limit exceeded. Please try again later."},
		{500, "Server error (500). Please try again later."},
		{503, "Server error (503). Please try again later."},
		{400, "Request failed with status 400."},
		{302, "Request failed with status 302."},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := Describe(errors.Wrap(statusErr(tt.code), "listing tables"))
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "secret detail")
		})
	}
}

func TestDescribeValidationKeepsMessage(t *testing.T) {
	err := apperrors.Validationf("Query too long. Maximum length: %d", 10)
	assert.Equal(t, "Query too long. Maximum length: 10", Describe(err))
}

func TestDescribeNetworkFailures(t *testing.T) {
	wrap := func(err error) error {
		return apperrors.Wrap(apperrors.Network, "request to Imply API failed",
			&url.Error{Op: "Get", URL: "https://acme.us-east-1.aws.api.imply.io", Err: err})
	}

	assert.Equal(t, msgTimeout, Describe(wrap(context.DeadlineExceeded)))
	assert.Equal(t, msgDNS, Describe(wrap(&net.DNSError{Err: "no such host", Name: "acme.invalid"})))
	assert.Equal(t, msgRefused, Describe(wrap(&net.OpError{
		Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED),
	})))
	assert.Equal(t, msgTLS, Describe(wrap(errors.New("x509: certificate signed by unknown authority"))))
	assert.Equal(t, msgConnection, Describe(wrap(errors.New("EOF"))))
}

func TestDescribeFallback(t *testing.T) {
	assert.Equal(t, Fallback, Describe(errors.New("decoding Imply API response: invalid character")))
	assert.Empty(t, Describe(nil))
}

func TestExtractHost(t *testing.T) {
	assert.Equal(t, "acme.us-east-1.aws.api.imply.io", ExtractHost("https://acme.us-east-1.aws.api.imply.io/v1"))
	assert.Equal(t, "server", ExtractHost("::not a url"))
}
