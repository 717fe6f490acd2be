package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var accountImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import accounts from a JSON array file",
	Long: `Parse the given file as a JSON array of accounts and fold it into the
account list. Records with a known id replace the existing record; the rest
are appended.`,
	Args: cobra.ExactArgs(1),
	RunE: runAccountImport,
}

func runAccountImport(cmd *cobra.Command, args []string) error {
	store := accountStore()

	imported, err := store.ImportFrom(args[0])
	if err != nil {
		return fmt.Errorf("import accounts: %w", err)
	}
	if err := store.Merge(imported); err != nil {
		return fmt.Errorf("import accounts: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d accounts\n", len(imported))
	return nil
}
