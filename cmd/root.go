// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for imply-druid-mcp.
// Without a subcommand the binary runs the MCP server on stdio; the other commands
// manage credentials and configuration and let a user try tools from a terminal.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"druidmcp/server/internal/logging"
)

var (
	showVersion bool

	flagEnvFile    string
	flagConfigFile string
	flagLogLevel   string
	flagLogFormat  string
)

// rootCmd serves MCP on stdio when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "imply-druid-mcp",
	Short: "MCP server for Imply Polaris and Druid",
	Long: `imply-druid-mcp exposes the Imply cloud API of one project as Model Context Protocol
tools: SQL queries, async query lifecycle, tables, dashboards and data cubes.

Run it without arguments from an MCP client to serve on stdio. Configuration comes from
IMPLY_* environment variables, a .env file, the config file and the OS keychain.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			printVersion()
			return nil
		}
		return runServe(cmd.Context(), "")
	},
}

// Execute runs the CLI application. SIGINT and SIGTERM cancel the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, logging.Mask(err.Error()))
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "Read settings from this dotenv file (default .env when present)")
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "Config file path (default $XDG_CONFIG_HOME/imply-druid-mcp/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: DEBUG, INFO, WARNING, ERROR")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format: text or json")
}
