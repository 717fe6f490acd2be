package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagCreateName         string
	flagCreateEmail        string
	flagCreateAccessToken  string
	flagCreateRefreshToken string
)

var accountCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new account with a fresh identity pair",
	RunE:  runAccountCreate,
}

func init() {
	accountCreateCmd.Flags().StringVar(&flagCreateName, "name", "", "account display name")
	accountCreateCmd.Flags().StringVar(&flagCreateEmail, "email", "", "account email")
	accountCreateCmd.Flags().StringVar(&flagCreateAccessToken, "access-token", "", "access token")
	accountCreateCmd.Flags().StringVar(&flagCreateRefreshToken, "refresh-token", "", "refresh token (optional)")
	accountCreateCmd.MarkFlagRequired("name")
	accountCreateCmd.MarkFlagRequired("email")
	accountCreateCmd.MarkFlagRequired("access-token")
}

func runAccountCreate(cmd *cobra.Command, args []string) error {
	acct, err := accountStore().Create(flagCreateName, flagCreateEmail,
		flagCreateAccessToken, flagCreateRefreshToken)
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}

	if flagJSON {
		return printJSON(cmd, acct)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created account %s (%s)\n", acct.Name, acct.ID)
	return nil
}
