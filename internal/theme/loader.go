// internal/theme/loader.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tidemark/internal/document"
	"github.com/bethropolis/tidemark/internal/logger"
)

// TomlStyleDef represents a single style definition in the TOML file
type TomlStyleDef struct {
	Fg            *string `toml:"fg"` // Pointers detect missing values
	Bg            *string `toml:"bg"`
	Bold          *bool   `toml:"bold"`
	Italic        *bool   `toml:"italic"`
	Underline     *bool   `toml:"underline"`
	Strikethrough *bool   `toml:"strikethrough"`
	Reverse       *bool   `toml:"reverse"`
}

// TomlTheme represents the structure of a styles file
type TomlTheme struct {
	Name    string                  `toml:"name"`
	Default *TomlStyleDef           `toml:"default"`
	Styles  map[string]TomlStyleDef `toml:"styles"`
	Blocks  map[string]TomlStyleDef `toml:"blocks"`
}

// LoadFromFile parses a TOML styles file. Entries it defines override the
// built-in defaults; the rest are inherited.
func LoadFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read styles file '%s': %w", filePath, err)
	}

	var tomlTheme TomlTheme
	metadata, err := toml.Decode(string(data), &tomlTheme)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML styles file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 {
		logger.Warnf("Theme '%s': Unrecognized keys in file '%s': %v", tomlTheme.Name, filePath, metadata.Undecoded())
	}

	if tomlTheme.Name == "" {
		tomlTheme.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}

	theme := &Theme{
		Name:    tomlTheme.Name,
		Default: Default.Default,
		Inline:  make(map[document.Style]Def, len(Default.Inline)),
		Blocks:  make(map[document.BlockType]Def, len(Default.Blocks)),
	}
	for k, v := range Default.Inline {
		theme.Inline[k] = v
	}
	for k, v := range Default.Blocks {
		theme.Blocks[k] = v
	}

	if tomlTheme.Default != nil {
		def, err := convertTomlStyle(*tomlTheme.Default)
		if err != nil {
			return nil, fmt.Errorf("styles file '%s': default: %w", filePath, err)
		}
		theme.Default = def.Apply(tcell.StyleDefault)
	}

	for name, tomlStyle := range tomlTheme.Styles {
		s, err := document.ParseStyle(name)
		if err != nil {
			logger.Warnf("Theme '%s': %v, skipping", theme.Name, err)
			continue
		}
		def, err := convertTomlStyle(tomlStyle)
		if err != nil {
			logger.Warnf("Theme '%s': Failed to parse style '%s', skipping: %v", theme.Name, name, err)
			continue
		}
		theme.Inline[s] = def
	}

	for name, tomlStyle := range tomlTheme.Blocks {
		typ, err := document.ParseBlockType(name)
		if err != nil {
			logger.Warnf("Theme '%s': %v, skipping", theme.Name, err)
			continue
		}
		def, err := convertTomlStyle(tomlStyle)
		if err != nil {
			logger.Warnf("Theme '%s': Failed to parse block style '%s', skipping: %v", theme.Name, name, err)
			continue
		}
		theme.Blocks[typ] = def
	}

	logger.Debugf("Successfully loaded styles '%s' from '%s'", theme.Name, filePath)
	return theme, nil
}

func convertTomlStyle(t TomlStyleDef) (Def, error) {
	def := Def{
		Bold:          t.Bold,
		Italic:        t.Italic,
		Underline:     t.Underline,
		Strikethrough: t.Strikethrough,
		Reverse:       t.Reverse,
	}
	if t.Fg != nil {
		c, err := parseColorString(*t.Fg)
		if err != nil {
			return def, fmt.Errorf("invalid foreground color '%s': %w", *t.Fg, err)
		}
		def.Fg = &c
	}
	if t.Bg != nil {
		c, err := parseColorString(*t.Bg)
		if err != nil {
			return def, fmt.Errorf("invalid background color '%s': %w", *t.Bg, err)
		}
		def.Bg = &c
	}
	return def, nil
}

// parseColorString accepts #RRGGBB, "reset", "default" or a tcell color name.
func parseColorString(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "#") {
		if len(s) != 7 {
			return tcell.ColorDefault, fmt.Errorf("invalid hex color format '%s', must be #RRGGBB", s)
		}
		val, err := strconv.ParseInt(s[1:], 16, 32)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("invalid hex value '%s': %w", s, err)
		}
		return tcell.NewHexColor(int32(val)), nil
	}
	switch s {
	case "reset":
		return tcell.ColorReset, nil
	case "default":
		return tcell.ColorDefault, nil
	}
	if c, ok := tcell.ColorNames[s]; ok {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("unknown color format or name '%s'", s)
}
