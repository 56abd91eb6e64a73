// Package tidemark is an embeddable rich-text editing engine. Documents are
// immutable lists of blocks carrying inline style ranges; edits return new
// snapshots. Markdown-like shortcuts typed at the start of a block ("#", "*",
// "**") are turned into formatting when the trigger key is pressed.
package tidemark

import (
	"github.com/bethropolis/tidemark/internal/command"
	"github.com/bethropolis/tidemark/internal/dispatcher"
	"github.com/bethropolis/tidemark/internal/document"
	"github.com/bethropolis/tidemark/internal/selection"
	"github.com/bethropolis/tidemark/internal/shortcut"
)

type (
	Document      = document.Document
	Block         = document.Block
	BlockType     = document.BlockType
	Style         = document.Style
	StyleSet      = document.StyleSet
	StyleRange    = document.StyleRange
	Selection     = selection.Selection
	RawContent    = document.RawContent
	RawBlock      = document.RawBlock
	RawStyleRange = document.RawStyleRange
	CommandName   = command.Name
	KeyCode       = shortcut.KeyCode
)

// Commands.
const (
	CommandNone                = command.None
	CommandHeaderOne           = command.MakeHeaderOne
	CommandBoldText            = command.MakeBold
	CommandRedText             = command.MakeRed
	CommandUnderline           = command.Underline
	CommandToggleBold          = command.ToggleBold
	CommandToggleItalic        = command.ToggleItalic
	CommandToggleCode          = command.ToggleCode
	CommandToggleStrikethrough = command.ToggleStrikethrough
	CommandBackspace           = command.Backspace
	CommandDelete              = command.Delete
	CommandSplitBlock          = command.SplitBlock
)

// KeySpace is the default shortcut trigger.
const KeySpace = shortcut.KeySpace

var (
	ErrInvalidRange     = document.ErrInvalidRange
	ErrUnknownBlockType = document.ErrUnknownBlockType
	ErrUnknownStyle     = document.ErrUnknownStyle
	ErrUnknownBlock     = document.ErrUnknownBlock
	ErrEmptyDocument    = document.ErrEmptyDocument
)

// Result is the outcome of a key command. When Handled is false Document and
// Selection are the inputs. HasOverride reports that a style was applied to
// a bare caret; Override holds the styles the next typed text should carry.
type Result struct {
	Handled     bool
	Command     CommandName
	Document    Document
	Selection   Selection
	Override    StyleSet
	HasOverride bool
}

var defaultDispatcher = dispatcher.New()

func toResult(r dispatcher.Result) Result {
	return Result{
		Handled:     r.Handled,
		Command:     r.Command,
		Document:    r.State.Document,
		Selection:   r.State.Selection,
		Override:    r.State.Override,
		HasOverride: r.State.HasOverride,
	}
}

// CreateEmptyDocument returns a document with one empty unstyled block and a
// caret at its start.
func CreateEmptyDocument() (Document, Selection) {
	st := dispatcher.NewState()
	return st.Document, st.Selection
}

// ParseCommand maps a command string such as "h1" or "underline" to its name.
func ParseCommand(s string) (CommandName, bool) {
	return command.Parse(s)
}

// HandleKeyCommand runs a named command explicitly. Unknown commands are not
// handled and return no error; edit failures leave the inputs untouched.
func HandleKeyCommand(d Document, s Selection, name CommandName) (Result, error) {
	r, err := defaultDispatcher.HandleKeyCommand(dispatcher.State{Document: d, Selection: s}, name)
	return toResult(r), err
}

// HandleKey runs the shortcut recognizer for key and, on a match, the
// matching command. An unhandled result means key should be inserted literally.
func HandleKey(d Document, s Selection, key KeyCode) (Result, error) {
	r, err := defaultDispatcher.HandleKey(dispatcher.State{Document: d, Selection: s}, key)
	return toResult(r), err
}

// InsertText inserts literal text at s, replacing a non-collapsed selection.
// The text takes the styles of the character before s.
func InsertText(d Document, s Selection, text string) (Result, error) {
	r, err := defaultDispatcher.InsertCharacters(dispatcher.State{Document: d, Selection: s}, text)
	return toResult(r), err
}

// RecognizeShortcut reports the command a trigger key would produce at s.
func RecognizeShortcut(d Document, s Selection, key KeyCode) (CommandName, bool) {
	m, ok := shortcut.Recognize(d, s, key)
	if !ok {
		return CommandNone, false
	}
	return m.Command, true
}

// Serialize converts d into its JSON-compatible raw tree.
func Serialize(d Document) RawContent {
	return document.Serialize(d)
}

// Deserialize rebuilds a document from its raw tree.
func Deserialize(raw RawContent) (Document, error) {
	return document.Deserialize(raw)
}
