// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/tidemark/internal/logger"
)

// Config holds the engine's combined configuration.
type Config struct {
	Logger logger.Config     `toml:"logger"` // [logger] table
	Editor EditorConfig      `toml:"editor"`
	Keymap map[string]string `toml:"keymap"` // chord -> command name, e.g. "ctrl+h" = "h1"
}

// EditorConfig holds editing session settings.
type EditorConfig struct {
	MaxHistory      int    `toml:"max_history"`
	CoalesceTyping  bool   `toml:"coalesce_typing"`
	TriggerKey      string `toml:"trigger_key"` // "space", "tab", "enter" or a single character
	Shortcuts       bool   `toml:"shortcuts"`   // Markdown-like shortcut recognition
	SystemClipboard bool   `toml:"system_clipboard"`
	StylesFile      string `toml:"styles_file"` // Relative to the config file; empty means styles.toml beside it, if present
	Placeholder     string `toml:"placeholder"`
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			MaxHistory:      DefaultMaxHistory,
			CoalesceTyping:  CoalesceTyping,
			TriggerKey:      DefaultTriggerKey,
			Shortcuts:       ShortcutsEnabled,
			SystemClipboard: SystemClipboard,
		},
	}
}

// DefaultPath returns <user config dir>/tidemark/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not find user config dir: %w", err)
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName), nil
}

// Load reads the TOML file at filePath over the defaults. An empty path
// means DefaultPath. A missing file is not an error.
func Load(filePath string) (*Config, error) {
	cfg := NewDefaultConfig()

	if filePath == "" {
		p, err := DefaultPath()
		if err != nil {
			logger.Warnf("Config: %v, using defaults", err)
			return cfg, nil
		}
		filePath = p
	}

	if _, err := os.Stat(filePath); errors.Is(err, os.ErrNotExist) {
		logger.Debugf("Config file not found: %s", filePath)
		cfg.resolveStylesFile(filepath.Dir(filePath))
		return cfg, nil
	} else if err != nil {
		return nil, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, metadata.Undecoded())
	}

	cfg.resolveStylesFile(filepath.Dir(filePath))
	cfg.validate()
	logger.Infof("Loaded configuration from: %s", filePath)
	return cfg, nil
}

// resolveStylesFile makes a relative styles_file relative to dir. An unset
// one picks up dir/styles.toml when that file exists.
func (c *Config) resolveStylesFile(dir string) {
	if c.Editor.StylesFile == "" {
		p := filepath.Join(dir, DefaultStylesFileName)
		if _, err := os.Stat(p); err == nil {
			logger.Debugf("Config: using styles file %s", p)
			c.Editor.StylesFile = p
		}
		return
	}
	if !filepath.IsAbs(c.Editor.StylesFile) {
		c.Editor.StylesFile = filepath.Join(dir, c.Editor.StylesFile)
	}
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.MaxHistory <= 0 {
		logger.Warnf("Config: max_history must be positive, got %d", c.Editor.MaxHistory)
		c.Editor.MaxHistory = defaults.Editor.MaxHistory
	}
	if _, err := ParseTriggerKey(c.Editor.TriggerKey); err != nil {
		logger.Warnf("Config: %v, using %q", err, defaults.Editor.TriggerKey)
		c.Editor.TriggerKey = defaults.Editor.TriggerKey
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// Trigger returns the configured trigger key as a rune.
func (c *Config) Trigger() rune {
	r, err := ParseTriggerKey(c.Editor.TriggerKey)
	if err != nil {
		r, _ = ParseTriggerKey(DefaultTriggerKey)
	}
	return r
}

var namedTriggers = map[string]rune{
	"space": ' ',
	"tab":   '\t',
	"enter": '\n',
}

// ParseTriggerKey maps a trigger name or single character to a rune.
func ParseTriggerKey(name string) (rune, error) {
	if r, ok := namedTriggers[strings.ToLower(name)]; ok {
		return r, nil
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return r, nil
	}
	return 0, fmt.Errorf("invalid trigger_key %q", name)
}
