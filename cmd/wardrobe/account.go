// Parent command for account operations.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/wardrobe/internal/account"
)

// flagAccountsFile overrides the account list file for a single invocation.
var flagAccountsFile string

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage saved accounts",
	Long: `Create, list, delete, activate and import saved accounts. Activation
applies an account's credentials and identifiers to the live identity store.`,
}

func init() {
	accountCmd.PersistentFlags().StringVar(&flagAccountsFile, "file", "", "account list file (default: accounts.json in the config directory)")

	accountCmd.AddCommand(accountCreateCmd)
	accountCmd.AddCommand(accountListCmd)
	accountCmd.AddCommand(accountDeleteCmd)
	accountCmd.AddCommand(accountActivateCmd)
	accountCmd.AddCommand(accountImportCmd)
}

// accountStore builds the account store, honoring the --file override.
func accountStore() *account.Store {
	c := cfg
	if flagAccountsFile != "" {
		c.AccountsFile = flagAccountsFile
	}
	return account.New(c)
}
