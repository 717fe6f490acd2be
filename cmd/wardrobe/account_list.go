package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved accounts",
	RunE:  runAccountList,
}

func runAccountList(cmd *cobra.Command, args []string) error {
	accounts, err := accountStore().List()
	if err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}

	if flagJSON {
		return printJSON(cmd, accounts)
	}

	out := cmd.OutOrStdout()
	if len(accounts) == 0 {
		fmt.Fprintln(out, "no saved accounts")
		return nil
	}
	for _, a := range accounts {
		fmt.Fprintf(out, "%s  %s <%s>  created %s\n",
			a.ID, a.Name, a.Email, a.CreatedAt.Format("2006-01-02"))
	}
	return nil
}
