package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/clientbook/internal/logging"
	"github.com/mesh-intelligence/clientbook/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// envPrefix namespaces the environment overrides, e.g. CLIENTBOOK_LOG_LEVEL.
	envPrefix = "CLIENTBOOK"

	// dotEnvFile is loaded from the working directory when present.
	dotEnvFile = ".env"

	cfgKeyBackend   = "backend"
	cfgKeyDBPath    = "db_path"
	cfgKeyLogLevel  = "log_level"
	cfgKeyLogFormat = "log_format"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# clientbook configuration

# Storage backend
backend: sqlite

# Database file (optional; overridable by --db or CLIENTBOOK_DB_PATH)
# db_path:

# Logging: debug, info, warn, error / console, json
log_level: warn
log_format: console
`

// loadConfig reads config.yaml from configDir using Viper. It creates the
// directory and a default config.yaml on first run, loads an optional .env
// file, and binds the CLIENTBOOK_ environment overrides.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := loadDotEnv(dotEnvFile); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyLogLevel, logging.DefaultLevel)
	v.SetDefault(cfgKeyLogFormat, logging.FormatConsole)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	// db_path is not bound here: its env override ranks below config.yaml
	// and is applied by paths.ResolveDBPath.
	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeyBackend, cfgKeyLogLevel, cfgKeyLogFormat} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// loadDotEnv exports the variables of path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
