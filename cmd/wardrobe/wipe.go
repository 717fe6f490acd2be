// The wipe command removes the target installation's data locations and
// provisions a fresh identity store.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/wardrobe/internal/reset"
)

var flagWipeYes bool

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Wipe the installation's data and provision a fresh identity",
	Long: `Remove every configured data location of the target application,
then write a new identity store containing only a freshly generated
identifier set. Removal failures are reported as warnings.`,
	RunE: runWipe,
}

func init() {
	wipeCmd.Flags().BoolVar(&flagWipeYes, "yes", false, "confirm the wipe")
}

func runWipe(cmd *cobra.Command, args []string) error {
	if !flagWipeYes {
		return fmt.Errorf("wipe removes %d locations under the %s installation; re-run with --yes to confirm",
			len(cfg.WipeLocations), cfg.AppName)
	}

	orch := reset.New(cfg)
	res, err := orch.FullWipe()
	if err != nil {
		res.Warnf("%v", err)
		if perr := printResult(cmd, res); perr != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), perr)
		}
		return err
	}
	return printResult(cmd, res)
}
