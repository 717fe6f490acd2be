// The paths command prints the resolved store locations without touching
// anything, so an operator can inspect the effective environment first.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Print the resolved store locations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagJSON {
			return printJSON(cmd, cfg)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "app name:        %s\n", cfg.AppName)
		fmt.Fprintf(out, "storage.json:    %s\n", cfg.StorageJSON)
		fmt.Fprintf(out, "state db:        %s\n", cfg.StateDB)
		fmt.Fprintf(out, "machine id file: %s\n", cfg.MachineIDFile)
		fmt.Fprintf(out, "accounts file:   %s\n", cfg.AccountsFile)
		fmt.Fprintln(out, "wipe locations:")
		for _, loc := range cfg.WipeLocations {
			fmt.Fprintf(out, "  %s\n", loc)
		}
		return nil
	},
}
