// Root command for the wardrobe CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/wardrobe/internal/paths"
	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagAppName   string
	flagJSON      bool
)

// cfg holds the resolved store locations for the current invocation.
// Set by PersistentPreRunE so all subcommands can use it.
var cfg types.Config

var rootCmd = &cobra.Command{
	Use:   "wardrobe",
	Short: "Wardrobe manages a desktop IDE's local identity and auth state",
	Long: `Wardrobe keeps the identity stores of a desktop IDE installation in
sync: the storage.json key/value file, the ItemTable inside state.vscdb, and
the flat machineid file. It can rotate the machine identifiers, switch
between saved accounts, and wipe the installation's data.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadGlobalConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagAppName, "app-name", "", "target application name (default: "+paths.DefaultAppName+")")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(rotateCmd)
	rootCmd.AddCommand(wipeCmd)
	rootCmd.AddCommand(pathsCmd)
	rootCmd.AddCommand(accountCmd)
}

// loadGlobalConfig resolves the config directory, loads config.yaml, and
// builds the effective store locations. Precedence for every path:
// explicit config.yaml value > platform default for the resolved app name.
func loadGlobalConfig(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(flagConfigDir)
	if err != nil {
		return err
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return err
	}

	appName := paths.ResolveAppName(flagAppName, v.GetString(cfgKeyAppName))
	cfg, err = paths.Locations(appName, configDir)
	if err != nil {
		return err
	}

	// Explicit config.yaml overrides win over the platform defaults.
	if s := v.GetString(cfgKeyStorageJSON); s != "" {
		cfg.StorageJSON = s
	}
	if s := v.GetString(cfgKeyStateDB); s != "" {
		cfg.StateDB = s
	}
	if s := v.GetString(cfgKeyMachineIDFile); s != "" {
		cfg.MachineIDFile = s
	}
	if s := v.GetString(cfgKeyAccountsFile); s != "" {
		cfg.AccountsFile = s
	}
	if locs := v.GetStringSlice(cfgKeyWipeLocations); len(locs) > 0 {
		cfg.WipeLocations = locs
	}

	return cfg.Validate()
}
