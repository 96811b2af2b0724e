// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package imply

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"golang.org/x/time/rate"

	apperrors "druidmcp/server/internal/errors"
	"druidmcp/server/internal/logging"
	"druidmcp/server/internal/manifest"
	"druidmcp/server/internal/metrics"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 64 << 20

// queryGrace is added to a query timeout so the server can report its own timeout
// before the client gives up.
const queryGrace = 5 * time.Second

// HTTP implements API over the Imply REST endpoints.
type HTTP struct {
	// baseURL is the API root (e.g., "https://acme.us-east-1.aws.api.imply.io")
	baseURL string
	// project is the project ID substituted into every path
	project string
	// endpoints maps operations to method and path template
	endpoints manifest.Endpoints
	// authHeader is the full Authorization header value
	authHeader string
	// timeout caps every request deadline
	timeout time.Duration

	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
	logger    *pterm.Logger
}

var _ API = (*HTTP)(nil)

// noRedirect stops the client at the first redirect so the Authorization header is
// never replayed to another location.
func noRedirect(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}

// newHTTP creates a client with redirects disabled. Deadlines are set per request
// from the context, so the http.Client itself carries no timeout.
func newHTTP(baseURL, project, authHeader string, endpoints manifest.Endpoints, timeout time.Duration) *HTTP {
	return &HTTP{
		baseURL:    strings.TrimRight(baseURL, "/"),
		project:    project,
		endpoints:  endpoints,
		authHeader: authHeader,
		timeout:    timeout,
		userAgent:  "imply-druid-mcp",
		client:     &http.Client{CheckRedirect: noRedirect},
		logger:     logging.Discard(),
	}
}

// call describes one request.
type call struct {
	op      manifest.Operation
	id      string
	body    any
	timeout time.Duration
}

// do issues the request for c and decodes the JSON response. An empty 2xx body
// decodes to nil.
func (h *HTTP) do(ctx context.Context, c call) (any, error) {
	ep, err := h.endpoints.Lookup(c.op)
	if err != nil {
		return nil, err
	}
	path, err := ep.Expand(h.project, c.id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Validation, "invalid request path", err)
	}

	if timeout := requestTimeout(h.timeout, c.timeout); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if h.limiter != nil {
		if err := h.limiter.Wait(ctx); err != nil {
			return nil, apperrors.Wrap(apperrors.Network, "waiting for rate limiter", err)
		}
	}

	var body io.Reader
	if c.body != nil {
		b, err := json.Marshal(c.body)
		if err != nil {
			return nil, errors.Wrap(err, "encoding request body")
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, ep.Method, h.baseURL+path, body)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	h.setStandardHeaders(req)

	start := time.Now()
	resp, err := h.client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordUpstream(string(c.op), ep.Method, 0, elapsed)
		h.logger.Debug("imply request failed", h.logger.Args(
			"operation", string(c.op), "method", ep.Method, "path", path,
			"duration", elapsed.String(), "error", logging.Mask(err.Error())))
		return nil, apperrors.Wrap(apperrors.Network, "request to Imply API failed", err)
	}
	defer resp.Body.Close()
	metrics.RecordUpstream(string(c.op), ep.Method, resp.StatusCode, elapsed)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Network, "reading Imply API response", err)
	}
	h.logger.Debug("imply request", h.logger.Args(
		"operation", string(c.op), "method", ep.Method, "path", path,
		"status", resp.StatusCode, "duration", elapsed.String(), "bytes", len(data)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.Wrap(apperrors.Upstream, "Imply API rejected the request", &StatusError{
			StatusCode: resp.StatusCode,
			Method:     ep.Method,
			Path:       path,
			Body:       logging.Mask(truncate(data, maxErrorBody)),
		})
	}
	if len(data) > maxResponseBytes {
		return nil, errors.Newf("response exceeds %d bytes", maxResponseBytes)
	}
	return decode(data)
}

// decode parses a JSON document, keeping numbers exact.
func decode(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, errors.Wrap(err, "decoding Imply API response")
	}
	return out, nil
}

// setStandardHeaders sets headers shared by every request.
func (h *HTTP) setStandardHeaders(req *http.Request) {
	req.Header.Set("Authorization", h.authHeader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
}

// requestTimeout returns the deadline for one request. A per-call deadline may
// shorten the client cap but never extend it; zero means unset.
func requestTimeout(clientCap, perCall time.Duration) time.Duration {
	if perCall > 0 && (clientCap <= 0 || perCall < clientCap) {
		return perCall
	}
	return clientCap
}

// queryTimeout is the request deadline for a query that the server should stop after ms.
func queryTimeout(ms int) time.Duration {
	if ms <= 0 {
		return 0
	}
	return time.Duration(ms)*time.Millisecond + queryGrace
}
