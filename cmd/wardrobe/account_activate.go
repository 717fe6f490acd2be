package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

var accountActivateCmd = &cobra.Command{
	Use:   "activate <account-id>",
	Short: "Apply an account to the live identity store",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountActivate,
}

func runAccountActivate(cmd *cobra.Command, args []string) error {
	res := &types.Result{}
	if err := accountStore().Activate(args[0], res); err != nil {
		res.Warnf("%v", err)
		if perr := printResult(cmd, res); perr != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), perr)
		}
		return fmt.Errorf("activate account: %w", err)
	}
	return printResult(cmd, res)
}
