package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBlock(t *testing.T, key string, typ BlockType, text string, ranges ...StyleRange) Block {
	t.Helper()
	b, err := NewBlock(key, typ, text, ranges)
	require.NoError(t, err)
	return b
}

func TestNewBlockCoalescesRanges(t *testing.T) {
	b := mustBlock(t, "a", Unstyled, "hello world",
		StyleRange{Start: 6, End: 11, Style: Bold},
		StyleRange{Start: 0, End: 3, Style: Bold},
		StyleRange{Start: 3, End: 5, Style: Bold},
		StyleRange{Start: 2, End: 4, Style: Red},
	)

	assert.Equal(t, []StyleRange{
		{Start: 0, End: 5, Style: Bold},
		{Start: 2, End: 4, Style: Red},
		{Start: 6, End: 11, Style: Bold},
	}, b.StyleRanges())
}

func TestNewBlockRejectsBadInput(t *testing.T) {
	_, err := NewBlock("a", Unstyled, "abc", []StyleRange{{Start: 1, End: 4, Style: Bold}})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = NewBlock("a", Unstyled, "abc", []StyleRange{{Start: 2, End: 2, Style: Bold}})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = NewBlock("a", Unstyled, "abc", []StyleRange{{Start: 0, End: 1, Style: "SPARKLY"}})
	assert.ErrorIs(t, err, ErrUnknownStyle)

	_, err = NewBlock("a", "header-nine", "abc", nil)
	assert.ErrorIs(t, err, ErrUnknownBlockType)
}

func TestBlockCountsRunes(t *testing.T) {
	b := mustBlock(t, "a", Unstyled, "héllo")
	assert.Equal(t, 5, b.Len())

	s, err := b.Slice(1, 3)
	require.NoError(t, err)
	assert.Equal(t, "él", s)

	_, err = b.Slice(3, 1)
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = b.Slice(0, 6)
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = b.Slice(-1, 2)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestStylesAtAndHasStyle(t *testing.T) {
	b := mustBlock(t, "a", Unstyled, "abcdef",
		StyleRange{Start: 0, End: 4, Style: Bold},
		StyleRange{Start: 2, End: 6, Style: Italic},
	)

	set, err := b.StylesAt(3)
	require.NoError(t, err)
	assert.Equal(t, NewStyleSet(Bold, Italic), set)

	set, err = b.StylesAt(5)
	require.NoError(t, err)
	assert.Equal(t, NewStyleSet(Italic), set)

	_, err = b.StylesAt(6)
	assert.ErrorIs(t, err, ErrInvalidRange)

	assert.True(t, b.HasStyle(Bold, 0, 4))
	assert.False(t, b.HasStyle(Bold, 0, 5))
	assert.True(t, b.HasStyle(Italic, 3, 6))
	assert.False(t, b.HasStyle(Italic, 1, 3))
	assert.False(t, b.HasStyle(Bold, 2, 2))
}

func TestStyleSet(t *testing.T) {
	set := NewStyleSet(Red, Bold, Red)
	assert.Equal(t, StyleSet{Bold, Red}, set)
	assert.True(t, set.Has(Red))

	removed := set.Remove(Red)
	assert.Equal(t, StyleSet{Bold}, removed)
	assert.True(t, set.Has(Red), "Remove must not touch the receiver")

	assert.Equal(t, StyleSet{Bold, Italic, Red}, set.Toggle(Italic))
	assert.Equal(t, StyleSet{Red}, set.Toggle(Bold))
}

func TestDocumentQueries(t *testing.T) {
	d, err := New(
		mustBlock(t, "a", HeaderOne, "Title"),
		mustBlock(t, "b", Unstyled, "body"),
	)
	require.NoError(t, err)

	assert.Equal(t, 2, d.Len())
	assert.Equal(t, HeaderOne, d.FirstBlockType())
	assert.False(t, d.IsEmpty())
	assert.Equal(t, "Title\nbody", d.PlainText())

	text, err := d.Text("b")
	require.NoError(t, err)
	assert.Equal(t, "body", text)

	_, err = d.Block("zzz")
	assert.ErrorIs(t, err, ErrUnknownBlock)

	prev, ok := d.Before("b")
	require.True(t, ok)
	assert.Equal(t, "a", prev.Key())
	_, ok = d.After("b")
	assert.False(t, ok)

	s, err := d.Slice("a", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, "it", s)
	_, err = d.Slice("a", 0, 9)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestDocumentIsImmutable(t *testing.T) {
	orig, err := New(mustBlock(t, "a", Unstyled, "one"), mustBlock(t, "b", Unstyled, "two"))
	require.NoError(t, err)

	changed, err := orig.Replace(mustBlock(t, "a", HeaderTwo, "ONE"))
	require.NoError(t, err)
	grown, err := orig.InsertAfter("a", mustBlock(t, "c", Unstyled, "mid"))
	require.NoError(t, err)
	shrunk, err := orig.Remove("b")
	require.NoError(t, err)

	assert.Equal(t, "one\ntwo", orig.PlainText())
	assert.Equal(t, Unstyled, orig.FirstBlockType())
	assert.Equal(t, "ONE\ntwo", changed.PlainText())
	assert.Equal(t, "one\nmid\ntwo", grown.PlainText())
	assert.Equal(t, "one", shrunk.PlainText())

	_, err = shrunk.Remove("a")
	assert.ErrorIs(t, err, ErrEmptyDocument)
	_, err = orig.InsertAfter("a", mustBlock(t, "b", Unstyled, ""))
	assert.ErrorIs(t, err, ErrDuplicateBlock)
}

func TestEmptyDocument(t *testing.T) {
	d := Empty()
	assert.Equal(t, 1, d.Len())
	assert.True(t, d.IsEmpty())
	assert.Equal(t, Unstyled, d.FirstBlockType())
	assert.NotEmpty(t, d.First().Key())

	_, err := New()
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestZeroDocument(t *testing.T) {
	var d Document
	assert.Equal(t, 0, d.Len())
	assert.True(t, d.IsEmpty())
	assert.Equal(t, Unstyled, d.FirstBlockType())
	assert.Equal(t, "", d.First().Text())
	assert.Equal(t, Unstyled, d.Last().Type())
	assert.Equal(t, "", d.PlainText())

	_, err := d.Block("k")
	assert.ErrorIs(t, err, ErrUnknownBlock)
}

func TestSerializeRoundTrip(t *testing.T) {
	docs := []Document{
		Empty(),
	}
	d, err := New(
		mustBlock(t, "a", HeaderOne, "Title"),
		mustBlock(t, "b", Unstyled, "some bold, some red",
			StyleRange{Start: 5, End: 9, Style: Bold},
			StyleRange{Start: 11, End: 19, Style: Red},
			StyleRange{Start: 0, End: 19, Style: Underline},
		),
		mustBlock(t, "c", CodeBlock, "ünïcødé", StyleRange{Start: 1, End: 3, Style: Code}),
	)
	require.NoError(t, err)
	docs = append(docs, d)

	for _, doc := range docs {
		back, err := Deserialize(Serialize(doc))
		require.NoError(t, err)
		assert.True(t, doc.Equal(back))

		data, err := json.Marshal(doc)
		require.NoError(t, err)
		var decoded Document
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.True(t, doc.Equal(decoded))
	}
}

func TestSerializeShape(t *testing.T) {
	d, err := New(mustBlock(t, "k1", Unstyled, "hello", StyleRange{Start: 0, End: 5, Style: Bold}))
	require.NoError(t, err)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"blocks":[{"key":"k1","type":"unstyled","text":"hello","inlineStyleRanges":[{"offset":0,"length":5,"style":"BOLD"}]}]}`,
		string(data))
}

func TestDeserializeErrors(t *testing.T) {
	_, err := Deserialize(RawContent{})
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = Deserialize(RawContent{Blocks: []RawBlock{{Type: "paragraph", Text: "x"}}})
	assert.ErrorIs(t, err, ErrUnknownBlockType)

	_, err = Deserialize(RawContent{Blocks: []RawBlock{{Text: "x", InlineStyleRanges: []RawStyleRange{{Offset: 0, Length: 1, Style: "GLOW"}}}}})
	assert.ErrorIs(t, err, ErrUnknownStyle)

	_, err = Deserialize(RawContent{Blocks: []RawBlock{{Text: "x", InlineStyleRanges: []RawStyleRange{{Offset: 0, Length: 4, Style: "BOLD"}}}}})
	assert.ErrorIs(t, err, ErrInvalidRange)

	d, err := Deserialize(RawContent{Blocks: []RawBlock{{Text: "no key"}}})
	require.NoError(t, err)
	assert.NotEmpty(t, d.First().Key())
	assert.Equal(t, Unstyled, d.First().Type())
}
