package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tidemark/internal/document"
	"github.com/bethropolis/tidemark/internal/selection"
)

func snapshot(t *testing.T, kind ChangeKind, text string) Change {
	t.Helper()
	b, err := document.NewBlock("k", document.Unstyled, text, nil)
	require.NoError(t, err)
	d, err := document.New(b)
	require.NoError(t, err)
	return Change{Kind: kind, Document: d, Selection: selection.Caret("k", b.Len())}
}

func text(c Change) string {
	return c.Document.PlainText()
}

func TestUndoRedo(t *testing.T) {
	m := NewManager(snapshot(t, KindNone, ""), 10, false)
	assert.False(t, m.CanUndo())

	m.Push(snapshot(t, InsertText, "a"))
	m.Push(snapshot(t, InsertText, "ab"))
	m.Push(snapshot(t, InsertText, "abc"))
	assert.Equal(t, 3, m.Len())

	c, ok := m.Undo()
	require.True(t, ok)
	assert.Equal(t, "ab", text(c))
	assert.Equal(t, InsertText, c.Kind)

	c, ok = m.Undo()
	require.True(t, ok)
	assert.Equal(t, "a", text(c))

	c, ok = m.Redo()
	require.True(t, ok)
	assert.Equal(t, "ab", text(c))

	m.Undo()
	m.Undo()
	_, ok = m.Undo()
	assert.False(t, ok)

	m.Push(snapshot(t, InsertText, "z"))
	assert.False(t, m.CanRedo(), "push must drop the redo branch")
	assert.Equal(t, 1, m.Len())
}

func TestUnchangedSnapshotNotRecorded(t *testing.T) {
	m := NewManager(snapshot(t, KindNone, ""), 10, false)
	m.Push(snapshot(t, InsertText, "*"))
	m.Push(snapshot(t, RemoveRange, ""))
	m.Push(snapshot(t, ApplyStyle, ""))
	assert.Equal(t, 2, m.Len())

	c, ok := m.Undo()
	require.True(t, ok)
	assert.Equal(t, "*", text(c))

	// Nothing to record keeps the redo branch too.
	m.Push(snapshot(t, ApplyStyle, "*"))
	assert.True(t, m.CanRedo())
}

func TestCoalesceTyping(t *testing.T) {
	m := NewManager(snapshot(t, KindNone, ""), 10, true)
	m.Push(snapshot(t, InsertText, "h"))
	m.Push(snapshot(t, InsertText, "hi"))
	m.Push(snapshot(t, RemoveRange, "h"))
	m.Push(snapshot(t, InsertText, "ho"))
	assert.Equal(t, 3, m.Len())

	c, _ := m.Undo()
	assert.Equal(t, "h", text(c))
	c, _ = m.Undo()
	assert.Equal(t, "hi", text(c))
	c, _ = m.Undo()
	assert.Equal(t, "", text(c))
}

func TestMaxHistoryKeepsBaseline(t *testing.T) {
	m := NewManager(snapshot(t, KindNone, ""), 2, false)
	m.Push(snapshot(t, InsertText, "1"))
	m.Push(snapshot(t, InsertText, "12"))
	m.Push(snapshot(t, InsertText, "123"))
	assert.Equal(t, 2, m.Len())

	m.Undo()
	c, ok := m.Undo()
	require.True(t, ok)
	assert.Equal(t, "1", text(c))
	assert.Equal(t, KindNone, c.Kind)
	assert.False(t, m.CanUndo())
}

func TestClear(t *testing.T) {
	m := NewManager(snapshot(t, KindNone, ""), 0, false)
	m.PushAll([]Change{snapshot(t, InsertText, "x"), snapshot(t, SplitBlock, "x")})
	m.Clear(snapshot(t, InsertText, "loaded"))
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())
	assert.Equal(t, 0, m.Len())
}

func TestChangeKindString(t *testing.T) {
	assert.Equal(t, "insert-text", InsertText.String())
	assert.Equal(t, "remove-range", RemoveRange.String())
	assert.Equal(t, "apply-style", ApplyStyle.String())
	assert.Equal(t, "change-block-type", ChangeBlockType.String())
	assert.Equal(t, "split-block", SplitBlock.String())
}
