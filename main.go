// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package main starts the Imply Druid MCP server and its command-line tools.
package main

import (
	"druidmcp/server/cmd"
)

func main() {
	cmd.Execute()
}
