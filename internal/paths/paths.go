// Package paths resolves the configuration directory and the database file
// location of clientbook.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppDirName is the per-application directory created under the platform
// config and data roots.
const AppDirName = "clientbook"

// DBFileName is the database file name inside the data directory.
const DBFileName = "clients.db"

// Environment variable names for overrides.
const (
	EnvConfigDir = "CLIENTBOOK_CONFIG_DIR"
	EnvDBPath    = "CLIENTBOOK_DB_PATH"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/clientbook (fallback ~/.config/clientbook)
// macOS:   ~/Library/Application Support/clientbook
// Windows: %APPDATA%/clientbook
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, AppDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", AppDirName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppDirName), nil
	}
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/clientbook (fallback ~/.local/share/clientbook)
// macOS:   ~/Library/Application Support/clientbook
// Windows: %APPDATA%/clientbook
func DefaultDataDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, AppDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share", AppDirName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppDirName), nil
	}
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > CLIENTBOOK_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDBPath returns the database file path following the precedence chain:
// flag > configValue (db_path in config.yaml) > CLIENTBOOK_DB_PATH env >
// DefaultDataDir()/clients.db. The special path ":memory:" is returned as is.
func ResolveDBPath(flag, configValue string) (string, error) {
	for _, p := range []string{flag, configValue, os.Getenv(EnvDBPath)} {
		if p == "" {
			continue
		}
		if p == ":memory:" {
			return p, nil
		}
		return filepath.Abs(p)
	}
	dir, err := DefaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DBFileName), nil
}
