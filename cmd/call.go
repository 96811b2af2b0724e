// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"druidmcp/server/internal/logging"
)

var callJSON string

var callCmd = &cobra.Command{
	Use:   "call <tool> [key=value ...]",
	Short: "Invoke one tool and print its result",
	Long: `The call command runs a single tool against the configured project, exactly as an
MCP client would, and prints the text result.

Arguments are key=value pairs. A value that parses as JSON is used as such, so
timeout_ms=5000 is a number and exact_results_only=true a boolean; anything else
is a string. Use --json to pass the whole argument object instead.

Examples:
  imply-druid-mcp call list_tables
  imply-druid-mcp call execute_sql_query sql='SELECT COUNT(*) FROM wikipedia' timeout_ms=5000
  imply-druid-mcp call get_table_schema --json '{"table_name":"wikipedia"}'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := callArguments(args[1:], callJSON)
		if err != nil {
			return err
		}
		cfg, logger, registry, err := buildRuntime()
		if err != nil {
			return err
		}

		res := registry.Call(cmd.Context(), args[0], raw)
		if res.Err != nil {
			logger.Debug("tool call failed", logger.Args(
				"tool", args[0], "error", logging.MaskValues(res.Err.Error(), cfg.Secrets()...)))
		}
		if res.IsError {
			fmt.Fprintln(os.Stderr, res.Text)
			return errors.Newf("tool %s failed", args[0])
		}
		fmt.Println(res.Text)
		return nil
	},
}

// callArguments builds the JSON argument object from key=value pairs or from jsonArg.
func callArguments(pairs []string, jsonArg string) (json.RawMessage, error) {
	if jsonArg != "" {
		if len(pairs) > 0 {
			return nil, errors.New("use either key=value arguments or --json, not both")
		}
		if !json.Valid([]byte(jsonArg)) {
			return nil, errors.New("--json is not valid JSON")
		}
		return json.RawMessage(jsonArg), nil
	}

	args := make(map[string]any, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.Newf("argument %q is not key=value", p)
		}
		args[key] = argumentValue(value)
	}
	return json.Marshal(args)
}

// argumentValue decodes v as a JSON scalar when it is one and keeps it as text otherwise.
func argumentValue(v string) any {
	dec := json.NewDecoder(bytes.NewReader([]byte(v)))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil || dec.More() {
		return v
	}
	switch out.(type) {
	case json.Number, bool, string, nil:
		return out
	}
	return v
}

func init() {
	rootCmd.AddCommand(callCmd)
	callCmd.Flags().StringVar(&callJSON, "json", "", "Tool arguments as a JSON object")
}
