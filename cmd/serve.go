// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"druidmcp/server/internal/config"
	"druidmcp/server/internal/imply"
	"druidmcp/server/internal/logging"
	"druidmcp/server/internal/server"
	"druidmcp/server/internal/tools"
)

var serveHTTPAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server (stdio by default)",
	Long: `The serve command runs the MCP server. By default it speaks JSON-RPC on stdin and
stdout, which is what MCP clients expect when they launch the binary. With --http it
serves the streamable HTTP transport on /mcp, plus /healthz and /metrics.

Logs always go to stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), serveHTTPAddr)
	},
}

// buildRuntime loads configuration and wires the client and the tool registry.
func buildRuntime() (*config.Config, *pterm.Logger, *tools.Registry, error) {
	cfg, err := config.Load(configOptions(true))
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := logging.NewLogger(nil, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, nil, err
	}
	client, err := imply.New(cfg, imply.WithLogger(logger), imply.WithUserAgent(userAgent()))
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, tools.NewRegistry(client, tools.LimitsFromConfig(cfg)), nil
}

func runServe(ctx context.Context, httpAddr string) error {
	cfg, logger, registry, err := buildRuntime()
	if err != nil {
		return err
	}
	logger.Info("loaded configuration", logger.Args(
		"organization", cfg.Organization,
		"project", cfg.ProjectID,
		"base_url", cfg.BaseURL(),
		"auth", cfg.AuthMethod(),
		"credential_source", cfg.CredentialSource,
	))

	srv := server.New(cfg, Version, registry, logger)
	if httpAddr != "" {
		err = srv.RunHTTP(ctx, httpAddr)
	} else {
		err = srv.RunStdio(ctx)
	}
	if ctx.Err() != nil {
		logger.Info("server stopped")
		return nil
	}
	return err
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHTTPAddr, "http", "", "Serve streamable HTTP on this address (e.g. :8080) instead of stdio")
}
