// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"druidmcp/server/internal/auth"
	"druidmcp/server/internal/config"
	"druidmcp/server/internal/httperrors"
	"druidmcp/server/internal/imply"
	"druidmcp/server/internal/keychain"
	"druidmcp/server/internal/terminal"
)

var loginAccessToken bool

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store an Imply API key in the OS keychain",
	Long: `The login command prompts for an Imply API key (or, with --access-token, an OAuth
access token), verifies it by listing the project's tables and stores it in the OS
keychain. The server uses the stored credential whenever IMPLY_API_KEY and
IMPLY_ACCESS_TOKEN are not set.

Organization and project must already be configured, for example with
'imply-druid-mcp config set project_url <url>'. The input is not echoed; it can also
be piped in on stdin.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Resolve(configOptions(false))
		if err != nil {
			return err
		}

		method, prompt := config.AuthAPIKey, "Imply API key: "
		if loginAccessToken {
			method, prompt = config.AuthAccessToken, "Imply access token: "
		}
		secret, err := terminal.ReadSecret(prompt)
		if err != nil {
			return err
		}
		if terminal.IsInteractive() {
			terminal.ClearPreviousLines(len(prompt))
		}

		km, err := keychain.GetManager()
		if err != nil {
			fmt.Println("❌ Secure storage is not available on this system.")
			fmt.Println("   Set IMPLY_API_KEY in the environment instead.")
			return err
		}
		svc := auth.NewService(km, func(c *config.Config) (imply.API, error) {
			return imply.New(c, imply.WithUserAgent(userAgent()))
		})

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(cfg.HTTPTimeoutSeconds)*time.Second)
		defer cancel()

		stop := startSpinner("Verifying credential")
		st, err := svc.Login(ctx, cfg, method, secret)
		stop()
		if err != nil {
			if imply.StatusCode(err) != 0 || errors.Is(err, context.DeadlineExceeded) {
				httperrors.Show("verifying the credential", err)
				return errors.New("login failed")
			}
			return err
		}

		printBox("Logged in", fmt.Sprintf("Organization: %s\nProject:      %s\nMethod:       %s\n\nThe credential is stored in the OS keychain.",
			st.Organization, st.Project, st.Method))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().BoolVar(&loginAccessToken, "access-token", false, "Store an OAuth access token instead of an API key")
}
