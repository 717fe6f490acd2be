// Package paths resolves Wardrobe's own configuration directory and the
// platform-specific install locations of the target application.
package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "WARDROBE_CONFIG_DIR"
	EnvAppName   = "WARDROBE_APP_NAME"
)

// DefaultAppName is the target application when none is configured.
const DefaultAppName = "Cursor"

// platformDir holds platform-detection functions that can be overridden in
// tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration
// directory for Wardrobe itself.
//
// Linux:   $XDG_CONFIG_HOME/wardrobe (fallback ~/.config/wardrobe)
// macOS:   ~/Library/Application Support/wardrobe
// Windows: %APPDATA%/wardrobe
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "wardrobe"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "wardrobe"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "wardrobe"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > WARDROBE_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveAppName returns the target application name following the
// precedence chain: flag > config.yaml value > WARDROBE_APP_NAME env >
// DefaultAppName.
func ResolveAppName(flag, configValue string) string {
	if flag != "" {
		return flag
	}
	if configValue != "" {
		return configValue
	}
	if env := os.Getenv(EnvAppName); env != "" {
		return env
	}
	return DefaultAppName
}

// AppDataDir returns the target application's data directory for the
// current platform. This is where storage.json, state.vscdb and the
// machineid file live.
func AppDataDir(appName string) (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appName), nil
	}
}

// Locations builds the default store configuration for the given target
// application name and Wardrobe config directory.
func Locations(appName, configDir string) (types.Config, error) {
	base, err := AppDataDir(appName)
	if err != nil {
		return types.Config{}, err
	}

	globalStorage := filepath.Join(base, "User", "globalStorage")
	return types.Config{
		AppName:       appName,
		StorageJSON:   filepath.Join(globalStorage, "storage.json"),
		StateDB:       filepath.Join(globalStorage, "state.vscdb"),
		MachineIDFile: filepath.Join(base, "machineid"),
		AccountsFile:  filepath.Join(configDir, "accounts.json"),
		WipeLocations: []string{
			globalStorage,
			filepath.Join(base, "User", "workspaceStorage"),
			filepath.Join(base, "User", "History"),
			filepath.Join(base, "Cache"),
			filepath.Join(base, "CachedData"),
			filepath.Join(base, "CachedProfilesData"),
			filepath.Join(base, "Code Cache"),
			filepath.Join(base, "GPUCache"),
			filepath.Join(base, "Session Storage"),
			filepath.Join(base, "Local Storage"),
			filepath.Join(base, "machineid"),
		},
	}, nil
}
