// Package config handles the XDG configuration directory, the optional
// config.yaml file, and per-invocation settings.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"ltask/internal/persist"
	"ltask/internal/task"
)

const (
	// AppName is the application directory name.
	AppName = "ltask"

	// ConfigFile is the optional settings filename.
	ConfigFile = "config.yaml"

	// DatabaseFile is the SQLite database filename.
	DatabaseFile = "ltask.db"

	// DefaultKey is the storage key used when none is configured.
	DefaultKey = "tasks"
)

// Backend names accepted in config.yaml.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// File is the on-disk shape of config.yaml.
type File struct {
	Backend string `yaml:"backend"`
	Key     string `yaml:"key"`
	Filter  string `yaml:"filter"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Backend selects the storage backend ("json" or "sqlite").
	Backend string

	// Key is the storage key the task list is saved under.
	Key string

	// Filter is the default list filter.
	Filter task.Filter

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Logger receives diagnostics. Never nil after New.
	Logger *slog.Logger
}

// New creates a Config with the default or specified config directory and
// applies config.yaml from that directory when present.
// If configDir is empty, uses XDG_CONFIG_HOME/ltask or $HOME/.config/ltask.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	cfg := &Config{
		Dir:     dir,
		Backend: BackendJSON,
		Key:     DefaultKey,
		Filter:  task.All,
		Logger:  slog.Default(),
	}
	if err := cfg.load(); err != nil {
		return nil, err
	}
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

// ConfigPath returns the path to config.yaml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// DatabasePath returns the path to the SQLite database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Dir, DatabaseFile)
}

// DataDir returns the directory the JSON backend writes to.
func (c *Config) DataDir() string {
	return c.Dir
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// load applies config.yaml over the defaults. A missing file is not an error.
func (c *Config) load() error {
	data, err := os.ReadFile(c.ConfigPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", ConfigFile, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	return c.apply(f)
}

func (c *Config) apply(f File) error {
	if b := strings.ToLower(strings.TrimSpace(f.Backend)); b != "" {
		if b != BackendJSON && b != BackendSQLite {
			return fmt.Errorf("invalid %s: unknown backend: %s", ConfigFile, f.Backend)
		}
		c.Backend = b
	}

	if k := strings.TrimSpace(f.Key); k != "" {
		if err := persist.ValidKey(k); err != nil {
			return fmt.Errorf("invalid %s: %w", ConfigFile, err)
		}
		c.Key = k
	}

	if f.Filter != "" {
		filter, err := task.ParseFilter(f.Filter)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", ConfigFile, err)
		}
		c.Filter = filter
	}
	return nil
}

// Save writes the non-runtime settings to config.yaml.
func (c *Config) Save() error {
	if err := c.EnsureDir(); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(File{
		Backend: c.Backend,
		Key:     c.Key,
		Filter:  c.Filter.String(),
	})
	if err != nil {
		return fmt.Errorf("encode %s: %w", ConfigFile, err)
	}
	return os.WriteFile(c.ConfigPath(), data, 0600)
}
