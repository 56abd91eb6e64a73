// internal/theme/theme.go
package theme

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tidemark/internal/document"
	"github.com/bethropolis/tidemark/internal/logger"
)

// Def is a partial style: unset fields inherit from whatever it is applied on.
type Def struct {
	Fg            *tcell.Color
	Bg            *tcell.Color
	Bold          *bool
	Italic        *bool
	Underline     *bool
	Strikethrough *bool
	Reverse       *bool
}

// Apply layers d over base.
func (d Def) Apply(base tcell.Style) tcell.Style {
	style := base
	if d.Fg != nil {
		style = style.Foreground(*d.Fg)
	}
	if d.Bg != nil {
		style = style.Background(*d.Bg)
	}
	if d.Bold != nil {
		style = style.Bold(*d.Bold)
	}
	if d.Italic != nil {
		style = style.Italic(*d.Italic)
	}
	if d.Underline != nil {
		style = style.Underline(*d.Underline)
	}
	if d.Strikethrough != nil {
		style = style.StrikeThrough(*d.Strikethrough)
	}
	if d.Reverse != nil {
		style = style.Reverse(*d.Reverse)
	}
	return style
}

// Theme maps inline styles and block types to terminal presentation.
type Theme struct {
	Name    string
	Default tcell.Style
	Inline  map[document.Style]Def
	Blocks  map[document.BlockType]Def
}

// Resolve returns the presentation for text of the given block type carrying styles.
// Inline styles are layered in set order over the block style.
func (t *Theme) Resolve(typ document.BlockType, styles document.StyleSet) tcell.Style {
	style := t.Default
	if def, ok := t.Blocks[typ]; ok {
		style = def.Apply(style)
	}
	for _, s := range styles {
		def, ok := t.Inline[s]
		if !ok {
			logger.Debugf("Theme '%s': no definition for style '%s'", t.Name, s)
			continue
		}
		style = def.Apply(style)
	}
	return style
}

func color(c tcell.Color) *tcell.Color { return &c }
func flag(b bool) *bool               { return &b }

// Default is the built-in light theme.
var Default Theme

func init() {
	Default = Theme{
		Name:    "default",
		Default: tcell.StyleDefault.Background(tcell.ColorReset),
		Inline: map[document.Style]Def{
			document.Bold:          {Bold: flag(true)},
			document.Italic:        {Italic: flag(true)},
			document.Underline:     {Underline: flag(true)},
			document.Strikethrough: {Strikethrough: flag(true)},
			document.Code:          {Bg: color(tcell.NewHexColor(0xf2f2f2)), Fg: color(tcell.ColorBlack)},
			document.Red:           {Fg: color(tcell.NewRGBColor(255, 0, 0))},
		},
		Blocks: map[document.BlockType]Def{
			document.HeaderOne:   {Bold: flag(true), Underline: flag(true)},
			document.HeaderTwo:   {Bold: flag(true)},
			document.HeaderThree: {Bold: flag(true)},
			document.HeaderFour:  {Bold: flag(true)},
			document.HeaderFive:  {Bold: flag(true)},
			document.HeaderSix:   {Bold: flag(true)},
			document.Blockquote:  {Italic: flag(true)},
			document.CodeBlock:   {Bg: color(tcell.NewHexColor(0xf2f2f2)), Fg: color(tcell.ColorBlack)},
		},
	}
}
