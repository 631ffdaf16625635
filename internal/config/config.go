package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/extkit-labs/extkit/internal/branding"
	"github.com/extkit-labs/extkit/internal/editor"
	"github.com/extkit-labs/extkit/internal/logging"
	"github.com/extkit-labs/extkit/internal/server"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Configuration keys, also used as env var suffixes (EXTKIT_EXTENSIONS_DIR).
const (
	KeyExtensionsDir = "extensions_dir"
	KeySettingsDir   = "settings_dir"
	KeyAssetsDir     = "assets_dir"
	KeyEditor        = "editor"
	KeyLogLevel      = "log_level"
	KeyLogFormat     = "log_format"
	KeyServeAddr     = "serve_addr"
)

// Data directory names looked up under the home directory or next to the
// binary.
const (
	ExtensionsDirName = "extensions"
	SettingsDirName   = "language-settings"
	AssetsDirName     = "assets"
)

// Config is the resolved configuration for one invocation.
type Config struct {
	ExtensionsDir string
	SettingsDir   string
	AssetsDir     string
	Editor        string
	LogLevel      string
	LogFormat     string
	ServeAddr     string
}

// Logging returns the logging section of the config.
func (c *Config) Logging() logging.Config {
	return logging.Config{Level: c.LogLevel, Format: c.LogFormat}
}

// Dir returns the path to the config directory (~/.extkit/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.extkit/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// Keys returns every known configuration key, sorted.
func Keys() []string {
	keys := []string{KeyExtensionsDir, KeySettingsDir, KeyAssetsDir, KeyEditor, KeyLogLevel, KeyLogFormat, KeyServeAddr}
	sort.Strings(keys)
	return keys
}

// IsKey reports whether key is a known configuration key.
func IsKey(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// New returns a Viper instance reading path (FilePath when empty) and
// EXTKIT_* environment variables, with defaults applied.
func New(path string) *viper.Viper {
	if path == "" {
		path = FilePath()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	v.SetDefault(KeyExtensionsDir, DefaultDataDir(ExtensionsDirName))
	v.SetDefault(KeySettingsDir, DefaultDataDir(SettingsDirName))
	v.SetDefault(KeyAssetsDir, DefaultDataDir(AssetsDirName))
	v.SetDefault(KeyEditor, editor.DefaultBinary)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, logging.FormatConsole)
	v.SetDefault(KeyServeAddr, server.DefaultAddr)
	return v
}

// Read loads the config file into v. A missing file is not an error.
func Read(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", v.ConfigFileUsed(), err)
	}
	return nil
}

// Load reads the config file and returns the resolved Config.
func Load(v *viper.Viper) (*Config, error) {
	if err := Read(v); err != nil {
		return nil, err
	}

	cfg := &Config{
		ExtensionsDir: v.GetString(KeyExtensionsDir),
		SettingsDir:   v.GetString(KeySettingsDir),
		AssetsDir:     v.GetString(KeyAssetsDir),
		Editor:        v.GetString(KeyEditor),
		LogLevel:      v.GetString(KeyLogLevel),
		LogFormat:     v.GetString(KeyLogFormat),
		ServeAddr:     v.GetString(KeyServeAddr),
	}
	if err := cfg.Logging().Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Set writes a config key-value pair and saves the config file.
func Set(v *viper.Viper, key, value string) error {
	if !IsKey(key) {
		return fmt.Errorf("unknown config key %q (known keys: %v)", key, Keys())
	}
	if err := Read(v); err != nil {
		return err
	}

	configFile := v.ConfigFileUsed()
	if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", filepath.Dir(configFile), err)
	}

	v.Set(key, value)

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// DefaultDataDir locates a data directory by name.
//
// Resolution order:
//  1. $EXTKIT_HOME/<name>
//  2. <binary dir>/../<name>, when it exists
//  3. ./<name>
func DefaultDataDir(name string) string {
	if home := os.Getenv(branding.EnvVar("HOME")); home != "" {
		return filepath.Join(home, name)
	}

	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), "..", name)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return filepath.Clean(candidate)
		}
	}

	return name
}
