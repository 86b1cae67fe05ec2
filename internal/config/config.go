// Package config provides layered YAML configuration for the keymenu command.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/johnconnor-sec/keymenu/internal/errors"
	"github.com/johnconnor-sec/keymenu/internal/menu"
	"github.com/johnconnor-sec/keymenu/internal/output"
)

// DebugEnv forces debug logging when set to any non-empty value.
const DebugEnv = "KEYMENU_DEBUG"

// PathEnv names a configuration file read after the default locations.
const PathEnv = "KEYMENU_CONFIG"

// UIMode selects the surface the menu is shown on.
type UIMode string

const (
	UIAuto   UIMode = "auto"
	UILine   UIMode = "line"
	UITerm   UIMode = "term"
	UIScreen UIMode = "screen"
)

// Config represents the complete keymenu configuration.
type Config struct {
	// Menu holds the menu options; its field names are the documented
	// user-facing option names.
	Menu menu.Config `yaml:"menu" json:"menu"`

	Log LogConfig `yaml:"log" json:"log"`

	// UI is one of auto, line, term or screen.
	UI UIMode `yaml:"ui" json:"ui"`

	// Sources lists the files that were merged into this configuration.
	Sources []string `yaml:"-" json:"-"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	// File enables a size-rotated log file; empty logs to stderr.
	File       string `yaml:"file" json:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" json:"max_age_days"`
}

// Default returns a configuration with the built-in defaults.
func Default() *Config {
	return &Config{
		Menu: menu.DefaultConfig(),
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		UI: UIAuto,
	}
}

// Dir returns the keymenu directory under $XDG_CONFIG_HOME, falling back
// to ~/.config.
func Dir() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, errors.ConfigNotFound, "Unable to determine home directory")
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "keymenu"), nil
}

// DefaultPaths lists the files Load reads when none are given, lowest
// priority first:
//  1. $XDG_CONFIG_HOME/keymenu/config.yaml
//  2. ./.keymenu.yaml
//  3. $KEYMENU_CONFIG
func DefaultPaths() []string {
	var paths []string
	if dir, err := Dir(); err == nil {
		paths = append(paths, filepath.Join(dir, "config.yaml"))
	}
	paths = append(paths, ".keymenu.yaml")
	if path := os.Getenv(PathEnv); path != "" {
		paths = append(paths, path)
	}
	return paths
}

// Validate checks the menu invariants, the log settings and the UI mode.
func (c *Config) Validate() error {
	if err := c.Menu.Validate(); err != nil {
		return err
	}
	if _, err := output.ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	if _, err := output.ParseLogFormat(c.Log.Format); err != nil {
		return err
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return errors.ValidationError("log", fmt.Sprintf("%d/%d/%d", c.Log.MaxSizeMB, c.Log.MaxBackups, c.Log.MaxAgeDays),
			"rotation limits cannot be negative")
	}
	switch c.UI {
	case UIAuto, UILine, UITerm, UIScreen:
	default:
		return errors.ValidationError("ui", string(c.UI), "expected one of auto, line, term, screen")
	}
	return nil
}

// MenuConfig returns a copy of the menu options.
func (c *Config) MenuConfig() menu.Config {
	return c.Menu
}

// NewLogger builds the logger described by the log section. The returned
// closer must be closed when logging to a file and is a no-op otherwise.
// Setting KEYMENU_DEBUG raises the level to debug.
func (c LogConfig) NewLogger(stderr io.Writer) (*output.Logger, io.Closer, error) {
	level, err := output.ParseLogLevel(c.Level)
	if err != nil {
		return nil, nil, err
	}
	if os.Getenv(DebugEnv) != "" && level > output.LogLevelDebug {
		level = output.LogLevelDebug
	}
	format, err := output.ParseLogFormat(c.Format)
	if err != nil {
		return nil, nil, err
	}

	if strings.TrimSpace(c.File) == "" {
		logger := output.NewLogger().SetLevel(level).SetFormat(format).SetOutputs(stderr)
		return logger, io.NopCloser(nil), nil
	}

	return output.CreateFileLogger(expandHome(c.File), level, format, output.FileOptions{
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
	})
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
