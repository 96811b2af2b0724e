// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package server exposes the tool registry over the Model Context Protocol, on stdio
// or on a streamable HTTP endpoint.
package server

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pterm/pterm"

	"druidmcp/server/internal/config"
	apperrors "druidmcp/server/internal/errors"
	"druidmcp/server/internal/logging"
	"druidmcp/server/internal/metrics"
	"druidmcp/server/internal/tools"
)

// Server wires the tool registry into an MCP server.
type Server struct {
	mcp      *mcp.Server
	registry *tools.Registry
	logger   *pterm.Logger
	secrets  []string
}

// New builds the MCP server and registers every tool in registry.
func New(cfg *config.Config, version string, registry *tools.Registry, logger *pterm.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{
		mcp:      mcp.NewServer(&mcp.Implementation{Name: cfg.ServerName, Version: version}, nil),
		registry: registry,
		logger:   logger,
		secrets:  cfg.Secrets(),
	}
	for _, t := range registry.Tools() {
		s.mcp.AddTool(&mcp.Tool{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: t.InputSchema(),
			Annotations: annotations(t),
		}, s.handler(t.Name()))
	}
	logger.Debug("registered tools", logger.Args("count", len(registry.Tools())))
	return s
}

// MCP returns the underlying protocol server.
func (s *Server) MCP() *mcp.Server { return s.mcp }

func annotations(t tools.Tool) *mcp.ToolAnnotations {
	destructive := !t.ReadOnly()
	openWorld := true
	return &mcp.ToolAnnotations{
		ReadOnlyHint:    t.ReadOnly(),
		DestructiveHint: &destructive,
		OpenWorldHint:   &openWorld,
	}
}

// handler runs one tool call with a correlation ID, a duration metric and an outcome.
func (s *Server) handler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		callID := uuid.NewString()
		start := time.Now()
		s.logger.Info("tool call", s.logger.Args("call_id", callID, "tool", name))

		var raw json.RawMessage
		if req != nil && req.Params != nil {
			raw = req.Params.Arguments
		}
		res := s.registry.Call(ctx, name, raw)

		elapsed := time.Since(start)
		outcome := outcomeOf(res)
		metrics.RecordToolCall(name, outcome, elapsed)
		if res.Err != nil {
			s.logger.Error("tool call failed", s.logger.Args(
				"call_id", callID, "tool", name, "outcome", outcome,
				"duration", elapsed.String(), "error", logging.MaskValues(res.Err.Error(), s.secrets...)))
		} else {
			s.logger.Debug("tool call finished", s.logger.Args(
				"call_id", callID, "tool", name, "duration", elapsed.String()))
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: res.Text}},
			IsError: res.IsError,
		}, nil
	}
}

func outcomeOf(res tools.Result) string {
	if res.Err == nil {
		return metrics.OutcomeOK
	}
	switch apperrors.KindOf(res.Err) {
	case apperrors.Validation:
		return metrics.OutcomeInvalid
	case apperrors.UnknownTool:
		return metrics.OutcomeUnknownTool
	case apperrors.Upstream:
		return metrics.OutcomeUpstream
	}
	return metrics.OutcomeError
}

// RunStdio serves MCP over stdin and stdout until ctx is done or the client disconnects.
func (s *Server) RunStdio(ctx context.Context) error {
	s.logger.Info("serving MCP on stdio", s.logger.Args("tools", len(s.registry.Tools())))
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}
