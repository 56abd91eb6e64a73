package dispatcher

import (
	"github.com/bethropolis/tidemark/internal/command"
	"github.com/bethropolis/tidemark/internal/core/history"
	"github.com/bethropolis/tidemark/internal/document"
	"github.com/bethropolis/tidemark/internal/selection"
)

// State is the immutable snapshot the dispatcher threads between commands.
//
// Override holds the styles the next inserted text will carry when
// HasOverride is set. It is how a style applied to a bare caret survives
// until the user types.
type State struct {
	Document    document.Document
	Selection   selection.Selection
	Override    document.StyleSet
	HasOverride bool
}

// NewState returns an empty document with the caret at offset 0.
func NewState() State {
	d := document.Empty()
	return State{Document: d, Selection: selection.Caret(d.First().Key(), 0)}
}

// FromDocument returns a state with the caret at the start of d.
func FromDocument(d document.Document) State {
	return State{Document: d, Selection: selection.Caret(d.First().Key(), 0)}
}

// CurrentStyles returns the styles that text typed now would get: the
// override if set, else the styles of the character before the selection.
func (s State) CurrentStyles() document.StyleSet {
	if s.HasOverride {
		return s.Override
	}
	start := s.Selection.Start()
	if start == 0 {
		return nil
	}
	b, err := s.Document.Block(s.Selection.BlockKey)
	if err != nil {
		return nil
	}
	set, err := b.StylesAt(start - 1)
	if err != nil {
		return nil
	}
	return set
}

// Result is the outcome of dispatching one command. When Handled is false
// State is the input state and the caller should process the raw key.
type Result struct {
	Handled bool
	Command command.Name // The command that ran, None for literal input
	State   State
	Changes []history.Change
}

// tx accumulates the edits of one command so they apply all-or-nothing.
type tx struct {
	st      State
	changes []history.Change
}

type editFunc func(document.Document, selection.Selection) (document.Document, selection.Selection, error)

// apply runs an edit operation and records it. Any edit other than text
// insertion clears the style override.
func (t *tx) apply(kind history.ChangeKind, fn editFunc) error {
	d, s, err := fn(t.st.Document, t.st.Selection)
	if err != nil {
		return err
	}
	t.st.Document, t.st.Selection = d, s
	t.st.Override, t.st.HasOverride = nil, false
	t.record(kind)
	return nil
}

// setOverride records a style change that only affects the caret.
func (t *tx) setOverride(set document.StyleSet) {
	t.st.Override, t.st.HasOverride = set, true
	t.record(history.ApplyStyle)
}

func (t *tx) record(kind history.ChangeKind) {
	t.changes = append(t.changes, history.Change{Kind: kind, Document: t.st.Document, Selection: t.st.Selection})
}

func (t *tx) result() Result {
	return Result{Handled: true, State: t.st, Changes: t.changes}
}
