// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"druidmcp/server/internal/tools"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the MCP tools this server provides",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := tools.NewRegistry(nil, tools.Limits{})
		data := pterm.TableData{{"Tool", "Access", "Description"}}
		for _, t := range registry.Tools() {
			access := "read-only"
			if !t.ReadOnly() {
				access = "modifies"
			}
			data = append(data, []string{t.Name(), access, t.Description()})
		}
		return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render()
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
