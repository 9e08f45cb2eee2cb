// Package config handles the XDG configuration directory, the optional
// config.toml file and credentials read from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the optional TOML settings filename.
	ConfigFile = "config.toml"

	// DefaultModel is the generation model used for task expansion.
	DefaultModel = "gemini-2.5-flash"

	// DefaultSnapshotKey is the key under which the task snapshot is stored.
	DefaultSnapshotKey = "todo-app-data"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `toml:"-"`

	// Debug enables debug logging.
	Debug bool `toml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `toml:"-"`

	// Model is the generation model identifier.
	Model string `toml:"model"`

	// Endpoint overrides the generation service base URL. Empty uses the default.
	Endpoint string `toml:"endpoint"`

	// SnapshotKey names the key-value entry holding the task snapshot.
	SnapshotKey string `toml:"snapshot_key"`

	// APIKey is the generation service API key. Only read from the environment.
	APIKey string `toml:"-"`

	// AccessToken is an OAuth2 bearer token for the generation service.
	// Only read from the environment.
	AccessToken string `toml:"-"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
// Settings are layered: defaults, then config.toml, then the environment.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{
		Dir:         dir,
		Model:       DefaultModel,
		SnapshotKey: DefaultSnapshotKey,
	}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	cfg.loadEnv()

	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to the optional config.toml file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasCredential reports whether a generation service credential is configured.
// Without one, task expansion degrades to the literal goal.
func (c *Config) HasCredential() bool {
	return c.APIKey != "" || c.AccessToken != ""
}

// loadFile decodes config.toml over the defaults. A missing file is not an error.
func (c *Config) loadFile() error {
	path := c.ConfigPath()
	if _, err := toml.DecodeFile(path, c); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading config file %s: %w", path, err)
	}

	// Empty values in the file keep the defaults.
	if strings.TrimSpace(c.Model) == "" {
		c.Model = DefaultModel
	}
	if strings.TrimSpace(c.SnapshotKey) == "" {
		c.SnapshotKey = DefaultSnapshotKey
	}
	return nil
}

// loadEnv overrides config from environment variables.
func (c *Config) loadEnv() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.APIKey = v
	} else if v := os.Getenv("API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("GEMINI_ACCESS_TOKEN"); v != "" {
		c.AccessToken = v
	}
	if v := os.Getenv("TODO_MODEL"); v != "" {
		c.Model = v
	}
}
