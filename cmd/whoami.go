// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"druidmcp/server/internal/auth"
	"druidmcp/server/internal/config"
	"druidmcp/server/internal/keychain"
	"druidmcp/server/internal/logging"
)

// whoamiCmd shows which organization and project the server would use, and how it
// authenticates. Secrets are shown redacted.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the configured organization, project and credential",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Resolve(configOptions(true))
		if err != nil {
			return err
		}

		secret := cfg.APIKey
		if secret == "" {
			secret = cfg.AccessToken
		}
		method := cfg.AuthMethod()
		if method == "" {
			method = "none"
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Organization: %s\n", orUnset(cfg.Organization))
		fmt.Fprintf(&b, "Project:      %s\n", orUnset(cfg.ProjectID))
		fmt.Fprintf(&b, "Region:       %s (%s)\n", cfg.Region, cfg.CloudProvider)
		fmt.Fprintf(&b, "API:          %s\n", cfg.BaseURL())
		fmt.Fprintf(&b, "Auth:         %s %s", method, logging.Redact(secret))
		if cfg.CredentialSource != "" {
			fmt.Fprintf(&b, " from %s", cfg.CredentialSource)
		}

		if km, err := keychain.GetManager(); err == nil {
			if st, err := auth.NewService(km, nil).Status(); err == nil && st.LoggedIn() {
				fmt.Fprintf(&b, "\n\nLogged in %s for %s/%s", st.SavedAt.Local().Format("2006-01-02 15:04"), st.Organization, st.Project)
			}
		}

		printBox("Imply Druid MCP", b.String())
		if err := cfg.Validate(); err != nil {
			fmt.Println()
			fmt.Println("⚠️  " + logging.PresentError("Configuration is incomplete", err, cfg.Secrets()...))
		}
		return nil
	},
}

func orUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
