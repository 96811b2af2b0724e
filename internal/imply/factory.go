// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package imply

import (
	"net/http"
	"time"

	"github.com/pterm/pterm"
	"golang.org/x/time/rate"

	"druidmcp/server/internal/config"
)

// Option customizes the client built by New.
type Option func(*HTTP)

// WithHTTPClient replaces the underlying transport client. Redirects stay disabled.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTP) {
		clone := *c
		clone.CheckRedirect = noRedirect
		h.client = &clone
	}
}

// WithLogger sets the logger used for per-request debug lines.
func WithLogger(l *pterm.Logger) Option {
	return func(h *HTTP) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithUserAgent sets the User-Agent header, e.g. "imply-druid-mcp/1.2.0".
func WithUserAgent(ua string) Option {
	return func(h *HTTP) {
		if ua != "" {
			h.userAgent = ua
		}
	}
}

// New creates an Imply API client for the configured project.
func New(cfg *config.Config, opts ...Option) (*HTTP, error) {
	endpoints, err := cfg.EndpointTable()
	if err != nil {
		return nil, err
	}
	h := newHTTP(cfg.BaseURL(), cfg.ProjectID, cfg.AuthHeader(), endpoints,
		time.Duration(cfg.HTTPTimeoutSeconds)*time.Second)
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		h.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}
