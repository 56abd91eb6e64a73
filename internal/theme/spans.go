package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/tidemark/internal/document"
)

// Span is a run of block text sharing one set of inline styles.
type Span struct {
	Offset int // Rune offset within the block
	Text   string
	Styles document.StyleSet
	Style  tcell.Style
	Width  int // Terminal cells
}

// Spans splits b into maximal runs of equal inline styles, resolved against t.
func (t *Theme) Spans(b document.Block) []Span {
	var spans []Span
	var buf strings.Builder
	var cur document.StyleSet
	start := 0

	flush := func(end int) {
		if end == start {
			return
		}
		text := buf.String()
		spans = append(spans, Span{
			Offset: start,
			Text:   text,
			Styles: cur,
			Style:  t.Resolve(b.Type(), cur),
			Width:  uniseg.StringWidth(text),
		})
		buf.Reset()
		start = end
	}

	i := 0
	for _, r := range b.Text() {
		set, _ := b.StylesAt(i)
		if i > start && !set.Equal(cur) {
			flush(i)
		}
		if i == start {
			cur = set
		}
		buf.WriteRune(r)
		i++
	}
	flush(i)
	return spans
}
