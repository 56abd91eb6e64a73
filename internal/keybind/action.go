// internal/keybind/action.go
package keybind

import (
	"strings"

	"github.com/bethropolis/tidemark/internal/command"
	"github.com/bethropolis/tidemark/internal/core/cursor"
)

// Kind tells the host what to do with a decoded key event.
type Kind int

const (
	KindNone    Kind = iota // No binding; ignore the event
	KindCommand             // Dispatch Binding.Command explicitly
	KindInsert              // Insert Binding.Rune literally
	KindTrigger             // Ask the shortcut recognizer, insert Binding.Rune if nothing matches
	KindUndo
	KindRedo
	KindPaste
	KindCopy
	KindCut
	KindMove // Move the caret by Binding.Motion, extending the selection if Binding.Extend
)

// Binding is a decoded key event.
type Binding struct {
	Kind    Kind
	Command command.Name // Used for KindCommand
	Rune    rune         // Used for KindInsert and KindTrigger
	Motion  cursor.Motion
	Extend  bool
}

// Host actions that are not editing commands but can be bound from config.
var hostActions = map[string]Kind{
	"undo":  KindUndo,
	"redo":  KindRedo,
	"paste": KindPaste,
	"copy":  KindCopy,
	"cut":   KindCut,
}

func move(m cursor.Motion, extend bool) Binding {
	return Binding{Kind: KindMove, Motion: m, Extend: extend}
}

// parseAction resolves a config value: a command name, a host action, or a
// motion such as "left" or "select-line-end".
func parseAction(name string) (Binding, bool) {
	if k, ok := hostActions[name]; ok {
		return Binding{Kind: k}, true
	}
	if m, ok := cursor.ParseMotion(strings.TrimPrefix(name, "select-")); ok {
		return move(m, strings.HasPrefix(name, "select-")), true
	}
	if n, ok := command.Parse(name); ok {
		return Binding{Kind: KindCommand, Command: n}, true
	}
	return Binding{}, false
}
