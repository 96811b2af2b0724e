// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"druidmcp/server/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or edit the config file",
	Long: `The config command shows the effective settings and edits the YAML config file.
Credentials are never written to the file; use login to store them in the OS keychain.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings (secrets redacted)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Resolve(configOptions(true))
		if err != nil {
			return err
		}
		data := pterm.TableData{{"Key", "Environment", "Value"}}
		for _, s := range cfg.Settings() {
			data = append(data, []string{s.Key, s.Env, s.Value})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one key in the config file",
	Long:  "Set one key in the config file. Keys: " + strings.Join(config.Keys(), ", "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		if err := config.SetFileValue(path, args[0], args[1]); err != nil {
			return err
		}
		pterm.Success.Printfln("Saved %s to %s", args[0], path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configPathCmd, configSetCmd)
}
