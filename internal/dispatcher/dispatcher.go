// Package dispatcher turns symbolic commands into atomic sequences of edit
// operations. Commands arrive either explicitly (a key chord the host bound
// to a command name) or implicitly, from the shortcut recognizer on the
// trigger key.
package dispatcher

import (
	"fmt"

	"github.com/bethropolis/tidemark/internal/command"
	"github.com/bethropolis/tidemark/internal/core/history"
	"github.com/bethropolis/tidemark/internal/document"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/modifier"
	"github.com/bethropolis/tidemark/internal/selection"
	"github.com/bethropolis/tidemark/internal/shortcut"
)

// stripCounts is how many literal characters an explicitly bound shortcut
// command removes before the caret.
var stripCounts = map[command.Name]int{
	command.MakeHeaderOne: 1,
	command.MakeBold:      1,
	command.MakeRed:       2,
	command.Underline:     3,
}

var toggles = map[command.Name]document.Style{
	command.ToggleBold:          document.Bold,
	command.ToggleItalic:        document.Italic,
	command.ToggleCode:          document.Code,
	command.ToggleStrikethrough: document.Strikethrough,
}

// Dispatcher is stateless; every call takes and returns a State.
type Dispatcher struct {
	recognizer *shortcut.Recognizer
	shortcuts  bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithRecognizer replaces the default shortcut recognizer.
func WithRecognizer(r *shortcut.Recognizer) Option {
	return func(d *Dispatcher) {
		if r != nil {
			d.recognizer = r
		}
	}
}

// WithShortcuts turns implicit shortcut recognition on or off.
func WithShortcuts(enabled bool) Option {
	return func(d *Dispatcher) {
		d.shortcuts = enabled
	}
}

// New creates a dispatcher using the default recognizer.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		recognizer: shortcut.Default(),
		shortcuts:  true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Recognizer returns the recognizer used for implicit commands.
func (d *Dispatcher) Recognizer() *shortcut.Recognizer {
	return d.recognizer
}

func notHandled(st State) Result {
	return Result{State: st}
}

// HandleKey is the implicit entry point: it asks the recognizer whether key
// completes a shortcut and runs the matching command. When nothing matches
// the result is not handled and the key should be inserted literally.
func (d *Dispatcher) HandleKey(st State, key shortcut.KeyCode) (Result, error) {
	if !d.shortcuts {
		return notHandled(st), nil
	}
	m, ok := d.recognizer.Recognize(st.Document, st.Selection, key)
	if !ok {
		return notHandled(st), nil
	}
	logger.DebugTagf("dispatcher", "Dispatcher: shortcut %v (%d chars) at %v", m.Command, m.Length, st.Selection)

	// The pattern was matched against the text before the selection start.
	t := &tx{st: st}
	caret := st.Selection.Start()
	if err := t.strip(caret, m.Length); err != nil {
		return notHandled(st), fmt.Errorf("%v: %w", m.Command, err)
	}
	if err := t.format(m.Command); err != nil {
		return notHandled(st), fmt.Errorf("%v: %w", m.Command, err)
	}
	r := t.result()
	r.Command = m.Command
	return r, nil
}

// HandleKeyCommand is the explicit entry point. Unknown commands are not an
// error: they come back not handled so the caller can fall back to its
// default key processing. Edit failures such as ErrInvalidRange are returned
// with the input state untouched.
func (d *Dispatcher) HandleKeyCommand(st State, name command.Name) (Result, error) {
	t := &tx{st: st}
	var (
		handled = true
		err     error
	)

	switch name {
	case command.MakeHeaderOne, command.MakeBold, command.MakeRed, command.Underline:
		err = t.strip(st.Selection.End(), stripCounts[name])
		if err == nil {
			err = t.format(name)
		}
	case command.ToggleBold, command.ToggleItalic, command.ToggleCode, command.ToggleStrikethrough:
		err = t.toggle(toggles[name])
	case command.Backspace:
		handled, err = t.backspace()
	case command.Delete:
		handled, err = t.deleteForward()
	case command.SplitBlock:
		err = t.apply(history.SplitBlock, modifier.SplitBlock)
	default:
		logger.DebugTagf("dispatcher", "Dispatcher: unknown command %v, not handled", name)
		return notHandled(st), nil
	}

	if err != nil {
		logger.WarnTagf("dispatcher", "Dispatcher: %v failed: %v", name, err)
		return notHandled(st), fmt.Errorf("%v: %w", name, err)
	}
	if !handled {
		return notHandled(st), nil
	}
	logger.DebugTagf("dispatcher", "Dispatcher: %v handled with %d change(s)", name, len(t.changes))
	r := t.result()
	r.Command = name
	return r, nil
}

// InsertCharacters is the default path for literal input. The inserted text
// takes the override styles if any, else the styles of the preceding character.
func (d *Dispatcher) InsertCharacters(st State, text string) (Result, error) {
	if text == "" {
		return notHandled(st), nil
	}
	styles := st.CurrentStyles()
	t := &tx{st: st}
	err := t.apply(history.InsertText, func(doc document.Document, sel selection.Selection) (document.Document, selection.Selection, error) {
		return modifier.InsertStyledText(doc, sel, text, styles)
	})
	if err != nil {
		return notHandled(st), fmt.Errorf("insert: %w", err)
	}
	return t.result(), nil
}

// strip removes the n characters before caret. A selection reaching back
// past the stripped span keeps its start; otherwise it collapses.
func (t *tx) strip(caret, n int) error {
	start := t.st.Selection.Start()
	from := caret - n
	err := t.apply(history.RemoveRange, func(doc document.Document, sel selection.Selection) (document.Document, selection.Selection, error) {
		return modifier.RemoveRange(doc, sel, from, caret)
	})
	if err != nil {
		return err
	}
	if start < from {
		t.st.Selection = selection.Span(t.st.Selection.BlockKey, start, from)
		t.changes[len(t.changes)-1].Selection = t.st.Selection
	}
	return nil
}

// format applies the structural or style half of a shortcut command.
func (t *tx) format(name command.Name) error {
	switch name {
	case command.MakeHeaderOne:
		return t.apply(history.ChangeBlockType, func(doc document.Document, sel selection.Selection) (document.Document, selection.Selection, error) {
			return modifier.SetBlockType(doc, sel, document.HeaderOne)
		})
	case command.MakeBold:
		return t.applyStyle(document.Bold)
	case command.MakeRed:
		return t.applyStyle(document.Red)
	case command.Underline:
		return t.applyStyle(document.Underline)
	}
	return fmt.Errorf("no format step for %v", name)
}

// applyStyle styles the selection, or adds style to the caret override.
func (t *tx) applyStyle(style document.Style) error {
	if t.st.Selection.IsCollapsed() {
		t.setOverride(t.st.CurrentStyles().Add(style))
		return nil
	}
	return t.apply(history.ApplyStyle, func(doc document.Document, sel selection.Selection) (document.Document, selection.Selection, error) {
		return modifier.ApplyInlineStyle(doc, sel, style)
	})
}

// toggle removes style when the whole selection already has it, else applies it.
func (t *tx) toggle(style document.Style) error {
	sel := t.st.Selection
	if sel.IsCollapsed() {
		t.setOverride(t.st.CurrentStyles().Toggle(style))
		return nil
	}
	b, err := t.st.Document.Block(sel.BlockKey)
	if err != nil {
		return err
	}
	op := modifier.ApplyInlineStyle
	if b.HasStyle(style, sel.Start(), sel.End()) {
		op = modifier.RemoveInlineStyle
	}
	return t.apply(history.ApplyStyle, func(doc document.Document, s selection.Selection) (document.Document, selection.Selection, error) {
		return op(doc, s, style)
	})
}
