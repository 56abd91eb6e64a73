package core

import (
	"fmt"
	"strings"

	"github.com/bethropolis/tidemark/internal/command"
	"github.com/bethropolis/tidemark/internal/core/history"
	"github.com/bethropolis/tidemark/internal/dispatcher"
	"github.com/bethropolis/tidemark/internal/logger"
)

// Copy writes the selected text to the clipboard. It reports false when the
// selection is collapsed.
func (e *Editor) Copy() (bool, error) {
	e.mu.Lock()
	sel := e.state.Selection
	text, err := e.state.Document.Slice(sel.BlockKey, sel.Start(), sel.End())
	e.mu.Unlock()

	if err != nil {
		return false, fmt.Errorf("copy: %w", err)
	}
	if sel.IsCollapsed() {
		return false, nil
	}
	if err := e.clipboard.WriteAll(text); err != nil {
		return false, err
	}
	logger.Debugf("Editor: copied %d byte(s)", len(text))
	return true, nil
}

// Cut copies the selection and removes it.
func (e *Editor) Cut() (bool, error) {
	ok, err := e.Copy()
	if err != nil || !ok {
		return false, err
	}
	return e.ExecCommand(command.Backspace)
}

// Paste inserts plain text from the clipboard. Each line after the first
// starts a new block. The whole paste is one undo step.
func (e *Editor) Paste() (bool, error) {
	text, err := e.clipboard.ReadAll()
	if err != nil {
		return false, err
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if text == "" {
		return false, nil
	}

	e.mu.Lock()
	st, err := e.paste(e.state, strings.Split(text, "\n"))
	if err != nil {
		e.mu.Unlock()
		return false, fmt.Errorf("paste: %w", err)
	}
	evs := e.commit(dispatcher.Result{
		Handled: true,
		State:   st,
		Changes: []history.Change{{Kind: history.InsertFragment, Document: st.Document, Selection: st.Selection}},
	}, false)
	e.mu.Unlock()

	e.emit(evs)
	return true, nil
}

func (e *Editor) paste(st dispatcher.State, lines []string) (dispatcher.State, error) {
	if !st.Selection.IsCollapsed() {
		res, err := e.dispatcher.HandleKeyCommand(st, command.Backspace)
		if err != nil {
			return st, err
		}
		st = res.State
	}
	for i, line := range lines {
		if i > 0 {
			res, err := e.dispatcher.HandleKeyCommand(st, command.SplitBlock)
			if err != nil {
				return st, err
			}
			st = res.State
		}
		if line == "" {
			continue
		}
		res, err := e.dispatcher.InsertCharacters(st, line)
		if err != nil {
			return st, err
		}
		st = res.State
	}
	return st, nil
}
