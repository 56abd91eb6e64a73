// internal/core/editor.go
package core

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tidemark/internal/command"
	"github.com/bethropolis/tidemark/internal/config"
	"github.com/bethropolis/tidemark/internal/core/clipboard"
	"github.com/bethropolis/tidemark/internal/core/cursor"
	"github.com/bethropolis/tidemark/internal/core/history"
	"github.com/bethropolis/tidemark/internal/dispatcher"
	"github.com/bethropolis/tidemark/internal/document"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/keybind"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/selection"
	"github.com/bethropolis/tidemark/internal/shortcut"
	"github.com/bethropolis/tidemark/internal/theme"
)

// Editor is one editing session: the current state plus the caller-side
// machinery around the pure engine (history, events, key bindings, clipboard).
type Editor struct {
	mu          sync.Mutex
	state       dispatcher.State
	history     *history.Manager
	events      *event.Manager
	dispatcher  *dispatcher.Dispatcher
	keys        *keybind.Processor
	clipboard   clipboard.Clipboard
	styles      *theme.Theme
	placeholder string
}

// Option configures an Editor.
type Option func(*Editor)

// WithClipboard replaces the clipboard chosen from config.
func WithClipboard(c clipboard.Clipboard) Option {
	return func(e *Editor) {
		if c != nil {
			e.clipboard = c
		}
	}
}

// WithEventManager shares an existing event bus.
func WithEventManager(m *event.Manager) Option {
	return func(e *Editor) {
		if m != nil {
			e.events = m
		}
	}
}

// WithTheme replaces the theme loaded from config.
func WithTheme(t *theme.Theme) Option {
	return func(e *Editor) {
		if t != nil {
			e.styles = t
		}
	}
}

// NewEditor creates a session on an empty document. A nil cfg means defaults.
func NewEditor(cfg *config.Config, opts ...Option) *Editor {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	trigger := cfg.Trigger()

	rec := shortcut.New(shortcut.KeyCode(trigger), shortcut.DefaultPatterns)
	keys := keybind.NewProcessor(trigger)
	if n := keys.Load(cfg.Keymap); n > 0 {
		logger.Debugf("Editor: applied %d key binding(s) from config", n)
	}

	st := dispatcher.NewState()
	e := &Editor{
		state:       st,
		history:     history.NewManager(history.Change{Document: st.Document, Selection: st.Selection}, cfg.Editor.MaxHistory, cfg.Editor.CoalesceTyping),
		events:      event.NewManager(),
		dispatcher:  dispatcher.New(dispatcher.WithRecognizer(rec), dispatcher.WithShortcuts(cfg.Editor.Shortcuts)),
		keys:        keys,
		placeholder: cfg.Editor.Placeholder,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.clipboard == nil {
		e.clipboard = clipboard.New(cfg.Editor.SystemClipboard)
	}
	if e.styles == nil {
		e.styles = &theme.Default
		if cfg.Editor.StylesFile != "" {
			t, err := theme.LoadFromFile(cfg.Editor.StylesFile)
			if err != nil {
				logger.Warnf("Editor: %v, using built-in styles", err)
			} else {
				e.styles = t
			}
		}
	}
	return e
}

// Events returns the session's event bus.
func (e *Editor) Events() *event.Manager {
	return e.events
}

// Subscribe registers handler on the session's event bus.
func (e *Editor) Subscribe(eventType event.Type, handler event.Handler) event.SubscriptionID {
	return e.events.Subscribe(eventType, handler)
}

// Unsubscribe removes a handler registered with Subscribe.
func (e *Editor) Unsubscribe(id event.SubscriptionID) {
	e.events.Unsubscribe(id)
}

// pending is an event queued while the lock is held and dispatched after it
// is released, so handlers may call back into the editor.
type pending struct {
	typ  event.Type
	data interface{}
}

func (e *Editor) emit(evs []pending) {
	for _, ev := range evs {
		e.events.Dispatch(ev.typ, ev.data)
	}
}

// commit installs a handled dispatcher result. Caller holds e.mu.
func (e *Editor) commit(res dispatcher.Result, viaShortcut bool) []pending {
	prev := e.state
	e.state = res.State
	e.history.PushAll(res.Changes)

	var out []pending
	if !prev.Document.Equal(res.State.Document) {
		kind := history.KindNone
		if n := len(res.Changes); n > 0 {
			kind = res.Changes[n-1].Kind
		}
		out = append(out, pending{event.TypeDocumentChanged, event.DocumentChangedData{
			Kind:      kind,
			Document:  res.State.Document,
			Selection: res.State.Selection,
		}})
	} else if prev.Selection != res.State.Selection {
		out = append(out, pending{event.TypeSelectionChanged, event.SelectionChangedData{Selection: res.State.Selection}})
	}
	if res.Command != command.None {
		out = append(out, pending{event.TypeCommandHandled, event.CommandHandledData{Command: res.Command, Shortcut: viaShortcut}})
	}
	return out
}

// HandleKeyEvent routes a terminal key event through the key bindings. It
// reports whether the event changed anything.
func (e *Editor) HandleKeyEvent(ev *tcell.EventKey) (bool, error) {
	e.events.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev})

	b := e.keys.ProcessEvent(ev)
	switch b.Kind {
	case keybind.KindCommand:
		return e.ExecCommand(b.Command)
	case keybind.KindTrigger:
		return e.trigger(b.Rune)
	case keybind.KindInsert:
		return e.InsertText(string(b.Rune))
	case keybind.KindUndo:
		return e.Undo(), nil
	case keybind.KindRedo:
		return e.Redo(), nil
	case keybind.KindPaste:
		return e.Paste()
	case keybind.KindCopy:
		return e.Copy()
	case keybind.KindCut:
		return e.Cut()
	case keybind.KindMove:
		return e.Move(b.Motion, b.Extend)
	}
	return false, nil
}

// ExecCommand runs a named command explicitly. Unknown commands report false
// with no error.
func (e *Editor) ExecCommand(name command.Name) (bool, error) {
	e.mu.Lock()
	res, err := e.dispatcher.HandleKeyCommand(e.state, name)
	if err != nil || !res.Handled {
		e.mu.Unlock()
		return false, err
	}
	evs := e.commit(res, false)
	e.mu.Unlock()

	e.emit(evs)
	return true, nil
}

// trigger gives the recognizer first refusal on r, then inserts it. An
// Enter trigger that matches nothing splits the block.
func (e *Editor) trigger(r rune) (bool, error) {
	e.mu.Lock()
	res, err := e.dispatcher.HandleKey(e.state, shortcut.KeyCode(r))
	if err != nil {
		e.mu.Unlock()
		return false, err
	}
	if !res.Handled {
		e.mu.Unlock()
		if r == '\n' {
			return e.ExecCommand(command.SplitBlock)
		}
		return e.InsertText(string(r))
	}
	evs := e.commit(res, true)
	e.mu.Unlock()

	e.emit(evs)
	return true, nil
}

// InsertText inserts literal text at the selection, replacing it.
func (e *Editor) InsertText(text string) (bool, error) {
	e.mu.Lock()
	res, err := e.dispatcher.InsertCharacters(e.state, text)
	if err != nil || !res.Handled {
		e.mu.Unlock()
		return false, err
	}
	evs := e.commit(res, false)
	e.mu.Unlock()

	e.emit(evs)
	return true, nil
}

// Move moves the caret, or extends the selection when extend is set.
func (e *Editor) Move(m cursor.Motion, extend bool) (bool, error) {
	e.mu.Lock()
	sel, err := cursor.Move(e.state.Document, e.state.Selection, m, extend)
	if err != nil {
		e.mu.Unlock()
		return false, fmt.Errorf("move %v: %w", m, err)
	}
	evs := e.setSelection(sel)
	e.mu.Unlock()

	e.emit(evs)
	return len(evs) > 0, nil
}

// SetSelection replaces the selection after validating it against the document.
func (e *Editor) SetSelection(sel selection.Selection) error {
	e.mu.Lock()
	if _, err := sel.Validate(e.state.Document); err != nil {
		e.mu.Unlock()
		return err
	}
	evs := e.setSelection(sel)
	e.mu.Unlock()

	e.emit(evs)
	return nil
}

// setSelection moves the selection and drops any pending style override.
// Caller holds e.mu.
func (e *Editor) setSelection(sel selection.Selection) []pending {
	if sel == e.state.Selection {
		return nil
	}
	e.state.Selection = sel
	e.state.Override, e.state.HasOverride = nil, false
	return []pending{{event.TypeSelectionChanged, event.SelectionChangedData{Selection: sel}}}
}

// Undo restores the previous snapshot. It reports false when there is none.
func (e *Editor) Undo() bool {
	return e.step(e.history.Undo)
}

// Redo reapplies the last undone change.
func (e *Editor) Redo() bool {
	return e.step(e.history.Redo)
}

func (e *Editor) step(fn func() (history.Change, bool)) bool {
	e.mu.Lock()
	c, ok := fn()
	if !ok {
		e.mu.Unlock()
		return false
	}
	e.state = dispatcher.State{Document: c.Document, Selection: c.Selection}
	evs := []pending{{event.TypeDocumentChanged, event.DocumentChangedData{
		Kind:      c.Kind,
		Document:  c.Document,
		Selection: c.Selection,
		Undo:      true,
	}}}
	e.mu.Unlock()

	e.emit(evs)
	return true
}

// CanUndo reports whether Undo would do anything.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether Redo would do anything.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// Load replaces the document with deserialized content, puts the caret at
// its start and resets history.
func (e *Editor) Load(raw document.RawContent) error {
	d, err := document.Deserialize(raw)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	e.mu.Lock()
	e.state = dispatcher.FromDocument(d)
	e.history.Clear(history.Change{Document: e.state.Document, Selection: e.state.Selection})
	evs := []pending{{event.TypeDocumentLoaded, event.DocumentLoadedData{Document: e.state.Document, Selection: e.state.Selection}}}
	e.mu.Unlock()

	logger.Infof("Editor: loaded document with %d block(s)", d.Len())
	e.emit(evs)
	return nil
}

// Snapshot serializes the current document.
func (e *Editor) Snapshot() document.RawContent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return document.Serialize(e.state.Document)
}

// State returns the current engine state.
func (e *Editor) State() dispatcher.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Placeholder returns the configured placeholder text and whether it should
// be shown: only while the document has no text and its first block is unstyled.
func (e *Editor) Placeholder() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	d := e.state.Document
	show := e.placeholder != "" && d.IsEmpty() && d.FirstBlockType() == document.Unstyled
	return e.placeholder, show
}

// Spans resolves a block into styled runs for a renderer.
func (e *Editor) Spans(blockKey string) ([]theme.Span, error) {
	e.mu.Lock()
	b, err := e.state.Document.Block(blockKey)
	e.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return e.styles.Spans(b), nil
}
