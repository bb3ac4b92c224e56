// Package config handles the configuration directory, the optional
// config.toml file and derived paths.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"todo/internal/task"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the optional TOML settings filename.
	ConfigFile = "config.toml"

	// TasksFile is the default task file name inside the config directory.
	TasksFile = "tasks.txt"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// EnvFile overrides the task file path.
	EnvFile = "TODO_FILE"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `toml:"-"`

	// File is the task file path. Empty means Dir/tasks.txt.
	File string `toml:"file"`

	// LegacyFormat drops a final stanza without a trailing blank line on load.
	LegacyFormat bool `toml:"legacy_format"`

	// Labels are the user-facing strings for rendering tasks.
	Labels Labels `toml:"labels"`

	// Debug enables debug logging.
	Debug bool `toml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `toml:"-"`
}

// Labels holds display strings. Empty fields fall back to defaults.
type Labels struct {
	Done    string `toml:"done"`
	Pending string `toml:"pending"`
	Due     string `toml:"due"`
	Title   string `toml:"title"`
}

// DefaultTitle is the heading of the interactive list view.
const DefaultTitle = "Task planner"

// New creates a Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
// No files are read.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir}, nil
}

// Load builds a Config from, in increasing priority: defaults, config.toml
// in the config directory, the TODO_FILE environment variable and the
// file argument (the --file flag).
func Load(configDir, file string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	if _, err := toml.DecodeFile(cfg.Path(), cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading config file %s: %w", cfg.Path(), err)
	}

	if v := os.Getenv(EnvFile); v != "" {
		cfg.File = v
	}
	if file != "" {
		cfg.File = file
	}

	cfg.File = expandPath(cfg.File)
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

// Path returns the path of config.toml.
func (c *Config) Path() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// TasksPath returns the task file path.
func (c *Config) TasksPath() string {
	if c.File != "" {
		return c.File
	}
	return filepath.Join(c.Dir, TasksFile)
}

// TaskLabels returns the glyphs and due prefix for task.Task.Label.
func (c *Config) TaskLabels() task.Labels {
	l := task.DefaultLabels()
	if c.Labels.Done != "" {
		l.Done = c.Labels.Done
	}
	if c.Labels.Pending != "" {
		l.Pending = c.Labels.Pending
	}
	if c.Labels.Due != "" {
		l.Due = c.Labels.Due
	}
	return l
}

// Title returns the heading of the interactive list view.
func (c *Config) Title() string {
	if c.Labels.Title != "" {
		return c.Labels.Title
	}
	return DefaultTitle
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
