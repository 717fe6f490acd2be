// Config loading for the wardrobe CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/wardrobe/internal/paths"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys recognized in config.yaml.
	cfgKeyAppName       = "app_name"
	cfgKeyStorageJSON   = "storage_json"
	cfgKeyStateDB       = "state_db"
	cfgKeyMachineIDFile = "machine_id_file"
	cfgKeyAccountsFile  = "accounts_file"
	cfgKeyWipeLocations = "wipe_locations"
)

// defaultConfigHeader precedes the marshaled defaults in config.yaml.
const defaultConfigHeader = `# Wardrobe configuration

# Target application name (selects the platform data directory)
`

// defaultConfigFooter documents the optional override keys.
const defaultConfigFooter = `
# Store location overrides (optional; defaults follow the platform layout)
# storage_json:
# state_db:
# machine_id_file:
# accounts_file:

# Extra locations removed by "wardrobe wipe" (optional)
# wipe_locations:
`

// defaultConfigYAML renders the content written to config.yaml on first run.
func defaultConfigYAML() ([]byte, error) {
	defaults, err := yaml.Marshal(map[string]string{
		cfgKeyAppName: paths.DefaultAppName,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal default config: %w", err)
	}

	out := []byte(defaultConfigHeader)
	out = append(out, defaults...)
	return append(out, defaultConfigFooter...), nil
}

// loadConfig reads config.yaml from the resolved config directory using
// Viper. It creates the config directory and a default config.yaml on first
// run. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	content, err := defaultConfigYAML()
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, 0o644)
}
