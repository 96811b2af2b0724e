// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"druidmcp/server/internal/config"
	"druidmcp/server/internal/httperrors"
	"druidmcp/server/internal/imply"
	"druidmcp/server/internal/logging"
	"druidmcp/server/internal/tools"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify configuration and connectivity to the Imply API",
	Long: `The check command validates the configuration, then lists the project's tables to
confirm that the API host is reachable and the credential is accepted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configOptions(true))
		if err != nil {
			pterm.Error.Println(logging.PresentError("Configuration is incomplete", err))
			return errors.New("configuration check failed")
		}
		client, err := imply.New(cfg, imply.WithUserAgent(userAgent()))
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(cfg.HTTPTimeoutSeconds)*time.Second)
		defer cancel()

		stop := startSpinner("Connecting to " + httperrors.ExtractHost(cfg.BaseURL()))
		result, err := client.ListTables(ctx)
		stop()
		if err != nil {
			httperrors.Show("checking the connection", err)
			return errors.New("connection check failed")
		}

		pterm.Success.Printfln("Connected to %s", cfg.BaseURL())
		pterm.Printfln("  Project:  %s", cfg.ProjectID)
		pterm.Printfln("  Auth:     %s (%s)", cfg.AuthMethod(), cfg.CredentialSource)
		pterm.Printfln("  Tables:   %d", len(tools.ListValues(result)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
