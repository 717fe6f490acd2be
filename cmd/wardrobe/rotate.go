// The rotate command generates a fresh identifier set and writes it into
// every store of the target installation.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/wardrobe/internal/reset"
	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

var rotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Rotate the installation's machine identifiers",
	Long: `Generate a fresh set of machine identifiers and merge it into the
JSON store, the ItemTable, and the machineid file. Each store is backed up
before it is touched.`,
	RunE: runRotate,
}

func runRotate(cmd *cobra.Command, args []string) error {
	orch := reset.New(cfg)
	set, res, err := orch.RotateIdentifiers()
	if err != nil {
		res.Warnf("%v", err)
		if perr := printResult(cmd, res); perr != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), perr)
		}
		return err
	}

	if flagJSON {
		return printJSON(cmd, struct {
			*types.Result
			Identity *types.IdentitySet `json:"identity"`
		}{res, set})
	}
	return printResult(cmd, res)
}
