// Package logger wraps log/slog with tag, package and file filters.
package logger

import (
	"log/slog"
	"strings"
)

// Config holds all settings for the logger.
type Config struct {
	// LogLevel specifies the minimum level to log (e.g., "debug", "info", "warn", "error").
	LogLevel string `toml:"log_level"`

	// LogFilePath is the path to the output log file. Use empty or "-" for stderr.
	LogFilePath string `toml:"log_file"`

	// EnabledTags only logs messages with these tags (if non-empty).
	EnabledTags []string `toml:"enabled_tags"`
	// DisabledTags prevents logging messages with these tags. Overrides EnabledTags.
	DisabledTags []string `toml:"disabled_tags"`

	// EnabledPackages only logs messages originating from these packages (if non-empty).
	// Package name is the immediate directory name (e.g., "dispatcher", "history").
	EnabledPackages []string `toml:"enabled_packages"`
	// DisabledPackages prevents logging from these packages. Overrides EnabledPackages.
	DisabledPackages []string `toml:"disabled_packages"`

	// EnabledFiles only logs messages originating from these filenames (if non-empty).
	EnabledFiles []string `toml:"enabled_files"`
	// DisabledFiles prevents logging from these filenames. Overrides EnabledFiles.
	DisabledFiles []string `toml:"disabled_files"`

	level    slog.Level
	tags     filter
	packages filter
	files    filter
}

// filter is an allow list and a deny list of lower-cased names. The deny
// list wins; an empty allow list lets everything through.
type filter struct {
	allow map[string]struct{}
	deny  map[string]struct{}
}

func newFilter(allow, deny []string) filter {
	return filter{allow: toSet(allow), deny: toSet(deny)}
}

func (f filter) active() bool { return f.allow != nil }

func (f filter) allows(name string) bool {
	if _, denied := f.deny[name]; denied {
		return false
	}
	if f.allow == nil {
		return true
	}
	_, ok := f.allow[name]
	return ok
}

func toSet(items []string) map[string]struct{} {
	var set map[string]struct{}
	for _, item := range items {
		if item == "" {
			continue
		}
		if set == nil {
			set = make(map[string]struct{}, len(items))
		}
		set[strings.ToLower(item)] = struct{}{}
	}
	return set
}

// NewConfig returns the logger defaults: info level to stderr, no filters.
func NewConfig() Config {
	return Config{LogLevel: "info"}
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) process() {
	c.level = ParseLevel(c.LogLevel)
	c.tags = newFilter(c.EnabledTags, c.DisabledTags)
	c.packages = newFilter(c.EnabledPackages, c.DisabledPackages)
	c.files = newFilter(c.EnabledFiles, c.DisabledFiles)
}
