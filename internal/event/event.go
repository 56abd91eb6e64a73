// internal/event/event.go
package event

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tidemark/internal/command"
	"github.com/bethropolis/tidemark/internal/core/history"
	"github.com/bethropolis/tidemark/internal/document"
	"github.com/bethropolis/tidemark/internal/selection"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	TypeDocumentChanged  // Document content or block types changed
	TypeDocumentLoaded   // A document was loaded from raw content
	TypeSelectionChanged // Selection moved without a content change
	TypeCommandHandled   // A named command was handled (explicitly or via shortcut)
	TypeKeyPressed       // Raw key event forwarded before dispatch
)

var typeNames = map[Type]string{
	TypeUnknown:          "unknown",
	TypeDocumentChanged:  "document-changed",
	TypeDocumentLoaded:   "document-loaded",
	TypeSelectionChanged: "selection-changed",
	TypeCommandHandled:   "command-handled",
	TypeKeyPressed:       "key-pressed",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// DocumentChangedData carries the new state and the kind of the last change.
type DocumentChangedData struct {
	Kind      history.ChangeKind
	Document  document.Document
	Selection selection.Selection
	Undo      bool // Set when the change came from undo or redo
}

// DocumentLoadedData carries the freshly loaded state.
type DocumentLoadedData struct {
	Document  document.Document
	Selection selection.Selection
}

// SelectionChangedData contains the new selection.
type SelectionChangedData struct {
	Selection selection.Selection
}

// CommandHandledData names the command and whether a shortcut produced it.
type CommandHandledData struct {
	Command  command.Name
	Shortcut bool
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}
