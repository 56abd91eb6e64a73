package tidemark_test

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tidemark"
	"github.com/bethropolis/tidemark/internal/document"
	"github.com/bethropolis/tidemark/internal/selection"
)

func typed(t *testing.T, text string) tidemark.Result {
	t.Helper()
	d, s := tidemark.CreateEmptyDocument()
	r, err := tidemark.InsertText(d, s, text)
	require.NoError(t, err)
	require.True(t, r.Handled)
	return r
}

func TestCreateEmptyDocument(t *testing.T) {
	d, s := tidemark.CreateEmptyDocument()
	require.Equal(t, 1, d.Len())
	b := d.First()
	assert.Equal(t, document.Unstyled, b.Type())
	assert.Equal(t, "", b.Text())
	assert.Equal(t, selection.Caret(b.Key(), 0), s)
}

func TestShortcutPrecision(t *testing.T) {
	tests := []struct {
		typed     string
		command   tidemark.CommandName
		blockType tidemark.BlockType
		override  tidemark.StyleSet
	}{
		{"#", tidemark.CommandHeaderOne, document.HeaderOne, nil},
		{"*", tidemark.CommandBoldText, document.Unstyled, document.NewStyleSet(document.Bold)},
		{"**", tidemark.CommandRedText, document.Unstyled, document.NewStyleSet(document.Red)},
		{"***", tidemark.CommandRedText, document.Unstyled, document.NewStyleSet(document.Red)},
	}
	for _, tt := range tests {
		t.Run(tt.typed, func(t *testing.T) {
			r := typed(t, tt.typed)

			cmd, ok := tidemark.RecognizeShortcut(r.Document, r.Selection, tidemark.KeySpace)
			require.True(t, ok)
			assert.Equal(t, tt.command, cmd)

			res, err := tidemark.HandleKey(r.Document, r.Selection, tidemark.KeySpace)
			require.NoError(t, err)
			require.True(t, res.Handled)
			assert.Equal(t, tt.command, res.Command)

			b := res.Document.First()
			assert.Equal(t, tt.blockType, b.Type())
			assert.Equal(t, "", b.Text())
			assert.Empty(t, b.StyleRanges())
			assert.Equal(t, selection.Caret(b.Key(), 0), res.Selection)
			assert.Equal(t, tt.override != nil, res.HasOverride)
			assert.True(t, tt.override.Equal(res.Override), "override %v", res.Override)
		})
	}
}

func TestNonTriggerSafety(t *testing.T) {
	r := typed(t, "a#")

	_, ok := tidemark.RecognizeShortcut(r.Document, r.Selection, tidemark.KeySpace)
	assert.False(t, ok)

	res, err := tidemark.HandleKey(r.Document, r.Selection, tidemark.KeySpace)
	require.NoError(t, err)
	require.False(t, res.Handled)

	// The host falls back to literal insertion.
	res, err = tidemark.InsertText(res.Document, res.Selection, " ")
	require.NoError(t, err)
	b := res.Document.First()
	assert.Equal(t, "a# ", b.Text())
	assert.Equal(t, document.Unstyled, b.Type())
}

func TestRecognizeOnlyOnTrigger(t *testing.T) {
	r := typed(t, "#")
	_, ok := tidemark.RecognizeShortcut(r.Document, r.Selection, tidemark.KeyCode('x'))
	assert.False(t, ok)
}

func underlineFixture(t *testing.T, sel func(key string) tidemark.Selection) (tidemark.Document, tidemark.Selection) {
	t.Helper()
	b, err := document.NewBlock("k", document.Unstyled, "abcXYZ", []document.StyleRange{{Start: 0, End: 3, Style: document.Bold}})
	require.NoError(t, err)
	d, err := document.New(b)
	require.NoError(t, err)
	return d, sel("k")
}

func TestUnderlineCommandWithSelection(t *testing.T) {
	d, s := underlineFixture(t, func(k string) tidemark.Selection { return selection.Span(k, 0, 6) })

	name, ok := tidemark.ParseCommand("underline")
	require.True(t, ok)
	res, err := tidemark.HandleKeyCommand(d, s, name)
	require.NoError(t, err)
	require.True(t, res.Handled)

	b := res.Document.First()
	assert.Equal(t, "abc", b.Text())
	assert.Equal(t, []document.StyleRange{
		{Start: 0, End: 3, Style: document.Bold},
		{Start: 0, End: 3, Style: document.Underline},
	}, b.StyleRanges())
	assert.Equal(t, selection.Span("k", 0, 3), res.Selection)
}

func TestUnderlineCommandCollapsed(t *testing.T) {
	d, s := underlineFixture(t, func(k string) tidemark.Selection { return selection.Caret(k, 6) })

	res, err := tidemark.HandleKeyCommand(d, s, tidemark.CommandUnderline)
	require.NoError(t, err)
	require.True(t, res.Handled)

	b := res.Document.First()
	assert.Equal(t, "abc", b.Text())
	assert.Equal(t, selection.Caret("k", 3), res.Selection)
	assert.True(t, res.HasOverride)
	assert.True(t, document.NewStyleSet(document.Bold, document.Underline).Equal(res.Override))
}

func TestUnknownCommandNotHandled(t *testing.T) {
	d, s := tidemark.CreateEmptyDocument()

	_, ok := tidemark.ParseCommand("sparkle")
	assert.False(t, ok)

	res, err := tidemark.HandleKeyCommand(d, s, tidemark.CommandName(99))
	require.NoError(t, err)
	assert.False(t, res.Handled)
	assert.True(t, d.Equal(res.Document))
	assert.Equal(t, s, res.Selection)
}

func TestInvalidRangeLeavesInputs(t *testing.T) {
	r := typed(t, "ab")
	res, err := tidemark.HandleKeyCommand(r.Document, r.Selection, tidemark.CommandUnderline)
	assert.ErrorIs(t, err, tidemark.ErrInvalidRange)
	assert.False(t, res.Handled)
	assert.True(t, r.Document.Equal(res.Document))
	assert.Equal(t, r.Selection, res.Selection)
}

var allStyles = []document.Style{document.Bold, document.Italic, document.Underline, document.Code, document.Strikethrough, document.Red}
var allTypes = []document.BlockType{document.Unstyled, document.HeaderOne, document.Blockquote, document.CodeBlock, document.OrderedListItem}

func randomDocument(t *testing.T, rng *rand.Rand) tidemark.Document {
	t.Helper()
	alphabet := []rune("ab #*é漢🙂")
	n := 1 + rng.Intn(4)
	blocks := make([]document.Block, n)
	for i := range blocks {
		runes := make([]rune, rng.Intn(12))
		for j := range runes {
			runes[j] = alphabet[rng.Intn(len(alphabet))]
		}
		var ranges []document.StyleRange
		if len(runes) > 0 {
			for k := rng.Intn(4); k > 0; k-- {
				start := rng.Intn(len(runes))
				end := start + 1 + rng.Intn(len(runes)-start)
				ranges = append(ranges, document.StyleRange{Start: start, End: end, Style: allStyles[rng.Intn(len(allStyles))]})
			}
		}
		b, err := document.NewBlock(fmt.Sprintf("b%d", i), allTypes[rng.Intn(len(allTypes))], string(runes), ranges)
		require.NoError(t, err)
		blocks[i] = b
	}
	d, err := document.New(blocks...)
	require.NoError(t, err)
	return d
}

func TestSerializationRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		d := randomDocument(t, rng)

		back, err := tidemark.Deserialize(tidemark.Serialize(d))
		require.NoError(t, err)
		require.True(t, d.Equal(back), "iteration %d", i)

		data, err := json.Marshal(tidemark.Serialize(d))
		require.NoError(t, err)
		var raw tidemark.RawContent
		require.NoError(t, json.Unmarshal(data, &raw))
		back, err = tidemark.Deserialize(raw)
		require.NoError(t, err)
		require.True(t, d.Equal(back), "json iteration %d", i)
	}
}

func TestDeserializeShape(t *testing.T) {
	data := `{"blocks":[{"type":"header-one","text":"Title","inlineStyleRanges":[{"offset":0,"length":5,"style":"RED"}]}]}`
	var raw tidemark.RawContent
	require.NoError(t, json.Unmarshal([]byte(data), &raw))

	d, err := tidemark.Deserialize(raw)
	require.NoError(t, err)
	b := d.First()
	assert.Equal(t, document.HeaderOne, b.Type())
	assert.Equal(t, "Title", b.Text())
	assert.Equal(t, []document.StyleRange{{Start: 0, End: 5, Style: document.Red}}, b.StyleRanges())
	assert.NotEmpty(t, b.Key())

	raw.Blocks[0].InlineStyleRanges[0].Style = "SPARKLE"
	_, err = tidemark.Deserialize(raw)
	assert.ErrorIs(t, err, tidemark.ErrUnknownStyle)
}
