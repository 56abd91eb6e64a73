package tidemark_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tidemark"
	"github.com/bethropolis/tidemark/internal/document"
)

func newSession(t *testing.T, editorConfig string) (*tidemark.Session, string) {
	t.Helper()
	dir := t.TempDir()
	logPath := filepath.Join(dir, "tidemark.log")
	content := "[logger]\nlog_level = \"debug\"\nlog_file = \"" + filepath.ToSlash(logPath) + "\"\n\n[editor]\nsystem_clipboard = false\n" + editorConfig
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := tidemark.NewSession(path, tidemark.WithClipboard(&tidemark.MemoryClipboard{}))
	require.NoError(t, err)
	return s, logPath
}

func typeInto(t *testing.T, s *tidemark.Session, text string) {
	t.Helper()
	for _, r := range text {
		ok, err := s.HandleKeyEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
		require.NoError(t, err)
		require.True(t, ok, "rune %q", r)
	}
}

type commandCounter struct {
	api   tidemark.EditorAPI
	sub   tidemark.SubscriptionID
	count int
}

func (c *commandCounter) Name() string { return "command-counter" }

func (c *commandCounter) Initialize(api tidemark.EditorAPI) error {
	c.api = api
	c.sub = api.Subscribe(tidemark.EventCommandHandled, func(tidemark.Event) bool {
		c.count++
		return false
	})
	return nil
}

func (c *commandCounter) Shutdown() error {
	c.api.Unsubscribe(c.sub)
	return nil
}

func TestSessionEndToEnd(t *testing.T) {
	s, logPath := newSession(t, "placeholder = \"Write...\"\n")

	counter := &commandCounter{}
	require.NoError(t, s.Use(counter))
	assert.Error(t, s.Use(&commandCounter{}), "names are unique")

	_, show := s.Placeholder()
	assert.True(t, show)

	typeInto(t, s, "# Title")
	b := s.State().Document.First()
	assert.Equal(t, document.HeaderOne, b.Type())
	assert.Equal(t, "Title", b.Text())
	assert.Equal(t, 1, counter.count)
	assert.Equal(t, tidemark.WordStats{Blocks: 1, Words: 1, Characters: 5}, s.WordStats())

	ok, err := s.Move(tidemark.MoveLineStart, false)
	require.NoError(t, err)
	assert.True(t, ok)

	require.True(t, s.Undo())
	assert.Equal(t, "", s.State().Document.First().Text())
	assert.Equal(t, tidemark.WordStats{Blocks: 1}, s.WordStats())

	raw := s.Snapshot()
	require.Len(t, raw.Blocks, 1)
	assert.Equal(t, "header-one", raw.Blocks[0].Type)

	require.NoError(t, s.Close())
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Session started")
}

func TestSessionBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[editor\n"), 0o644))
	_, err := tidemark.NewSession(path)
	assert.Error(t, err)
}
