package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var accountDeleteCmd = &cobra.Command{
	Use:   "delete <account-id>",
	Short: "Delete a saved account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountDelete,
}

func runAccountDelete(cmd *cobra.Command, args []string) error {
	if err := accountStore().Delete(args[0]); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
	return nil
}
