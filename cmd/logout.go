// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"druidmcp/server/internal/auth"
	"druidmcp/server/internal/keychain"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored credential from the OS keychain",
	Long: `The logout command removes the API key or access token stored by login, together
with the saved login details. Credentials set in the environment are not affected.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		km, err := keychain.GetManager()
		if err != nil {
			return err
		}
		if err := auth.NewService(km, nil).Logout(); err != nil {
			return err
		}
		fmt.Println("✅ Stored credentials have been removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
