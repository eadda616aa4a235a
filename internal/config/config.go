// Package config handles configuration loading, validation, and hot-reloading
// for softkey.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// Version is the current configuration schema version.
const Version = 1

// Config holds the complete configuration.
type Config struct {
	// Version is the configuration schema version.
	Version int `toml:"version" json:"version" yaml:"version"`

	// Logging configuration.
	Logging LoggingConfig `toml:"logging" json:"logging" yaml:"logging"`

	// Keyboard holds the settings every input transaction is built with.
	Keyboard KeyboardConfig `toml:"keyboard" json:"keyboard" yaml:"keyboard"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `toml:"level" json:"level" yaml:"level"`

	// Format is the log output format (text, json).
	Format string `toml:"format" json:"format" yaml:"format"`

	// Output is where logs go: stdout, stderr, file, or both.
	Output string `toml:"output" json:"output" yaml:"output"`

	// FilePath is the log file used when Output is file or both.
	FilePath string `toml:"file_path" json:"file_path" yaml:"file_path"`

	// MaxSizeMB is the size at which the log file is rotated.
	MaxSizeMB int `toml:"max_size_mb" json:"max_size_mb" yaml:"max_size_mb"`

	// MaxBackups is the number of rotated files to keep.
	MaxBackups int `toml:"max_backups" json:"max_backups" yaml:"max_backups"`

	// AddSource adds file:line to each record.
	AddSource bool `toml:"add_source" json:"add_source" yaml:"add_source"`
}

// KeyboardConfig holds user-facing keyboard settings.
type KeyboardConfig struct {
	// Locale is the BCP 47 tag of the active input language.
	Locale string `toml:"locale" json:"locale" yaml:"locale"`

	// AutoCapitalize capitalizes the first letter of each sentence.
	AutoCapitalize bool `toml:"auto_capitalize" json:"auto_capitalize" yaml:"auto_capitalize"`

	// DoubleSpacePeriod turns a double space into ". ".
	DoubleSpacePeriod bool `toml:"double_space_period" json:"double_space_period" yaml:"double_space_period"`

	// PhantomSpaceAfterPicking owes a space after a suggestion is picked.
	PhantomSpaceAfterPicking bool `toml:"phantom_space_after_picking" json:"phantom_space_after_picking" yaml:"phantom_space_after_picking"`

	// KeyPreviewPopup shows the pressed key above the finger.
	KeyPreviewPopup bool `toml:"key_preview_popup" json:"key_preview_popup" yaml:"key_preview_popup"`

	// LongPressTimeoutMs is the delay before a press counts as long.
	LongPressTimeoutMs int `toml:"long_press_timeout_ms" json:"long_press_timeout_ms" yaml:"long_press_timeout_ms"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: Version,
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Output:     "stderr",
			FilePath:   filepath.Join(PlatformLogDir(), "softkey.log"),
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Keyboard: KeyboardConfig{
			Locale:                   "en-US",
			AutoCapitalize:           true,
			DoubleSpacePeriod:        true,
			PhantomSpaceAfterPicking: true,
			KeyPreviewPopup:          true,
			LongPressTimeoutMs:       300,
		},
	}
}

// ConfigPath returns the default configuration file path.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// ConfigDir returns the configuration directory, honouring
// SOFTKEY_CONFIG_DIR.
func ConfigDir() string {
	if dir := os.Getenv("SOFTKEY_CONFIG_DIR"); dir != "" {
		return dir
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "softkey")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".softkey")
}

// PlatformLogDir returns the platform-specific log directory.
//
// Platform paths:
//   - macOS:   ~/Library/Logs/softkey/
//   - Linux:   $XDG_STATE_HOME/softkey/ (~/.local/state/softkey/)
//   - Windows: %LOCALAPPDATA%\softkey\logs\
func PlatformLogDir() string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Logs", "softkey")
	case "windows":
		appData := os.Getenv("LOCALAPPDATA")
		if appData == "" {
			appData = os.Getenv("APPDATA")
		}
		return filepath.Join(appData, "softkey", "logs")
	default:
		state := os.Getenv("XDG_STATE_HOME")
		if state == "" {
			state = filepath.Join(home, ".local", "state")
		}
		return filepath.Join(state, "softkey")
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	return ValidateConfig(c)
}

// ApplyEnvOverrides applies environment variable overrides.
// Variables are prefixed with SOFTKEY_.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("SOFTKEY_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SOFTKEY_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("SOFTKEY_LOG_PATH"); v != "" {
		c.Logging.FilePath = v
	}
	if v := os.Getenv("SOFTKEY_LOCALE"); v != "" {
		c.Keyboard.Locale = v
	}
	if v := os.Getenv("SOFTKEY_AUTO_CAPITALIZE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Keyboard.AutoCapitalize = b
		}
	}
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// Load reads configuration from path. A missing file yields defaults.
// TOML, JSON and YAML are supported, chosen by file extension.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}
	cfg, err := loadConfigFromFile(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return cfg, nil
}
