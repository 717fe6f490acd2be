// Shared output helpers for wardrobe CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

var (
	warnColor = color.New(color.FgYellow)
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
)

// printResult renders an operation transcript. In --json mode the whole
// Result is emitted as one JSON object; otherwise lines are printed in
// order with warnings in yellow and a final colored status line.
func printResult(cmd *cobra.Command, res *types.Result) error {
	if flagJSON {
		return printJSON(cmd, res)
	}

	out := cmd.OutOrStdout()
	for _, line := range res.Log {
		if strings.HasPrefix(line, types.WarningPrefix) {
			warnColor.Fprintln(out, line)
			continue
		}
		fmt.Fprintln(out, line)
	}

	if res.Success {
		okColor.Fprintln(out, "done")
	} else {
		failColor.Fprintln(out, "failed")
	}
	return nil
}

// printJSON writes v to the command's stdout as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
