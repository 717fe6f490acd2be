package types

import "errors"

// Config holds the resolved absolute locations of every file Wardrobe
// touches. It is built once from flags, config.yaml, and platform defaults,
// then passed to the stores and the orchestrator.
type Config struct {
	// AppName is the display name of the target IDE installation. It selects
	// the platform data directory the stores live under.
	AppName string `json:"app_name" yaml:"app_name"`

	// StorageJSON is the JSON key/value identity store file.
	StorageJSON string `json:"storage_json" yaml:"storage_json"`

	// StateDB is the embedded database file holding the ItemTable.
	StateDB string `json:"state_db" yaml:"state_db"`

	// MachineIDFile is the flat machine-identifier file.
	MachineIDFile string `json:"machine_id_file" yaml:"machine_id_file"`

	// AccountsFile is Wardrobe's own account list file.
	AccountsFile string `json:"accounts_file" yaml:"accounts_file"`

	// WipeLocations lists the directories and files removed by a full wipe.
	WipeLocations []string `json:"wipe_locations" yaml:"wipe_locations"`
}

// Config validation errors.
var (
	ErrAppNameEmpty     = errors.New("app name must not be empty")
	ErrStorePathEmpty   = errors.New("store paths must not be empty")
	ErrAccountPathEmpty = errors.New("accounts file path must not be empty")
)

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.AppName == "" {
		return ErrAppNameEmpty
	}
	if c.StorageJSON == "" || c.StateDB == "" || c.MachineIDFile == "" {
		return ErrStorePathEmpty
	}
	if c.AccountsFile == "" {
		return ErrAccountPathEmpty
	}
	return nil
}
