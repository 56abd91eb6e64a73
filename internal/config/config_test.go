package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, NewDefaultConfig(), cfg)
	assert.Equal(t, ' ', cfg.Trigger())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[logger]
log_level = "debug"
enabled_tags = ["history"]

[editor]
max_history = 5
coalesce_typing = false
trigger_key = "tab"
shortcuts = false
styles_file = "light.toml"
placeholder = "Tell a story..."

[keymap]
"ctrl+h" = "h1"
"alt+r" = "redText"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.LogLevel)
	assert.Equal(t, []string{"history"}, cfg.Logger.EnabledTags)
	assert.Equal(t, 5, cfg.Editor.MaxHistory)
	assert.False(t, cfg.Editor.CoalesceTyping)
	assert.False(t, cfg.Editor.Shortcuts)
	assert.True(t, cfg.Editor.SystemClipboard, "unset keys keep their default")
	assert.Equal(t, '\t', cfg.Trigger())
	assert.Equal(t, filepath.Join(filepath.Dir(path), "light.toml"), cfg.Editor.StylesFile)
	assert.Equal(t, "Tell a story...", cfg.Editor.Placeholder)
	assert.Equal(t, map[string]string{"ctrl+h": "h1", "alt+r": "redText"}, cfg.Keymap)
}

func TestLoadFindsStylesBesideConfig(t *testing.T) {
	path := writeConfig(t, "[editor]\nmax_history = 7\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Editor.StylesFile, "no styles.toml yet")

	styles := filepath.Join(filepath.Dir(path), DefaultStylesFileName)
	require.NoError(t, os.WriteFile(styles, []byte(`name = "light"`), 0o644))

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, styles, cfg.Editor.StylesFile)

	// Also without a config file in that directory.
	require.NoError(t, os.Remove(path))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, styles, cfg.Editor.StylesFile)
}

func TestLoadResetsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
[editor]
max_history = -3
trigger_key = "spacebar"
unknown_key = 1
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxHistory, cfg.Editor.MaxHistory)
	assert.Equal(t, DefaultTriggerKey, cfg.Editor.TriggerKey)
}

func TestLoadParseError(t *testing.T) {
	_, err := Load(writeConfig(t, "[editor\nmax_history = 1"))
	assert.Error(t, err)
}

func TestParseTriggerKey(t *testing.T) {
	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{"space", ' ', false},
		{"SPACE", ' ', false},
		{"enter", '\n', false},
		{";", ';', false},
		{"é", 'é', false},
		{"", 0, true},
		{"ab", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseTriggerKey(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
