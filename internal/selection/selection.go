// Package selection addresses a span inside a single block.
package selection

import (
	"fmt"

	"github.com/bethropolis/tidemark/internal/document"
)

// Selection is an anchor/focus pair within one block. The anchor is where the
// selection started, the focus follows the caret.
type Selection struct {
	BlockKey string
	Anchor   int
	Focus    int
}

// Caret returns a collapsed selection at offset.
func Caret(blockKey string, offset int) Selection {
	return Selection{BlockKey: blockKey, Anchor: offset, Focus: offset}
}

// Span returns a selection from start to end.
func Span(blockKey string, start, end int) Selection {
	return Selection{BlockKey: blockKey, Anchor: start, Focus: end}
}

// IsCollapsed reports whether the selection is a caret.
func (s Selection) IsCollapsed() bool {
	return s.Anchor == s.Focus
}

// IsBackward reports whether the focus precedes the anchor.
func (s Selection) IsBackward() bool {
	return s.Focus < s.Anchor
}

// Start returns the smaller offset.
func (s Selection) Start() int {
	return min(s.Anchor, s.Focus)
}

// End returns the larger offset.
func (s Selection) End() int {
	return max(s.Anchor, s.Focus)
}

// Collapse returns a caret at offset in the same block.
func (s Selection) Collapse(offset int) Selection {
	return Caret(s.BlockKey, offset)
}

// Validate checks that the block exists and both offsets are within its text.
func (s Selection) Validate(d document.Document) (document.Block, error) {
	b, err := d.Block(s.BlockKey)
	if err != nil {
		return document.Block{}, fmt.Errorf("selection: %w", err)
	}
	if err := b.CheckOffset(s.Anchor); err != nil {
		return document.Block{}, fmt.Errorf("selection anchor: %w", err)
	}
	if err := b.CheckOffset(s.Focus); err != nil {
		return document.Block{}, fmt.Errorf("selection focus: %w", err)
	}
	return b, nil
}

func (s Selection) String() string {
	return fmt.Sprintf("%s[%d:%d]", s.BlockKey, s.Anchor, s.Focus)
}
