package dispatcher

import (
	"github.com/bethropolis/tidemark/internal/core/cursor"
	"github.com/bethropolis/tidemark/internal/core/history"
	"github.com/bethropolis/tidemark/internal/document"
	"github.com/bethropolis/tidemark/internal/modifier"
	"github.com/bethropolis/tidemark/internal/selection"
)

// backspace removes the selection or the grapheme cluster before the caret.
// At the start of a block it first drops a non-default block type, then
// joins the block onto the previous one.
func (t *tx) backspace() (bool, error) {
	sel := t.st.Selection
	if !sel.IsCollapsed() {
		return true, t.removeSelection()
	}
	b, err := sel.Validate(t.st.Document)
	if err != nil {
		return false, err
	}

	caret := sel.Focus
	if caret > 0 {
		before, _ := b.Slice(0, caret)
		n := cursor.PrevClusterLen(before)
		return true, t.apply(history.RemoveRange, func(doc document.Document, s selection.Selection) (document.Document, selection.Selection, error) {
			return modifier.RemoveRange(doc, s, caret-n, caret)
		})
	}

	if b.Type() != document.Unstyled {
		return true, t.apply(history.ChangeBlockType, func(doc document.Document, s selection.Selection) (document.Document, selection.Selection, error) {
			return modifier.SetBlockType(doc, s, document.Unstyled)
		})
	}
	prev, ok := t.st.Document.Before(b.Key())
	if !ok {
		return false, nil
	}
	return true, t.apply(history.RemoveRange, func(doc document.Document, _ selection.Selection) (document.Document, selection.Selection, error) {
		return modifier.JoinBlocks(doc, prev.Key())
	})
}

// deleteForward removes the selection or the grapheme cluster after the
// caret, joining the next block when the caret is at the end.
func (t *tx) deleteForward() (bool, error) {
	sel := t.st.Selection
	if !sel.IsCollapsed() {
		return true, t.removeSelection()
	}
	b, err := sel.Validate(t.st.Document)
	if err != nil {
		return false, err
	}

	caret := sel.Focus
	if caret < b.Len() {
		after, _ := b.Slice(caret, b.Len())
		n := cursor.NextClusterLen(after)
		return true, t.apply(history.RemoveRange, func(doc document.Document, s selection.Selection) (document.Document, selection.Selection, error) {
			return modifier.RemoveRange(doc, s, caret, caret+n)
		})
	}

	if _, ok := t.st.Document.After(b.Key()); !ok {
		return false, nil
	}
	return true, t.apply(history.RemoveRange, func(doc document.Document, _ selection.Selection) (document.Document, selection.Selection, error) {
		return modifier.JoinBlocks(doc, b.Key())
	})
}

func (t *tx) removeSelection() error {
	return t.apply(history.RemoveRange, func(doc document.Document, s selection.Selection) (document.Document, selection.Selection, error) {
		return modifier.RemoveRange(doc, s, s.Start(), s.End())
	})
}
