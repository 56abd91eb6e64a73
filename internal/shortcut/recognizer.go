// Package shortcut recognizes markdown-like trigger patterns typed at the
// start of a block, such as "#" or "**" followed by a space.
package shortcut

import (
	"sort"
	"unicode/utf8"

	"github.com/bethropolis/tidemark/internal/command"
	"github.com/bethropolis/tidemark/internal/document"
	"github.com/bethropolis/tidemark/internal/selection"
)

// KeyCode is the code of the key that was pressed.
type KeyCode int

// KeySpace is the default trigger key.
const KeySpace KeyCode = ' '

// Pattern maps the text typed before the caret to a command.
type Pattern struct {
	Trigger string
	Command command.Name
}

// DefaultPatterns is the built-in table. "***" deliberately maps to the
// same red-text command as "**".
var DefaultPatterns = []Pattern{
	{Trigger: "***", Command: command.MakeRed},
	{Trigger: "**", Command: command.MakeRed},
	{Trigger: "*", Command: command.MakeBold},
	{Trigger: "#", Command: command.MakeHeaderOne},
}

// Match is a recognized shortcut. Length is the number of characters the
// pattern occupies before the caret.
type Match struct {
	Command command.Name
	Length  int
}

// Recognizer is stateless after construction and safe for concurrent use.
type Recognizer struct {
	trigger  KeyCode
	patterns []Pattern
}

// New builds a recognizer for trigger. Patterns are tried longest first,
// keeping table order among equal lengths.
func New(trigger KeyCode, patterns []Pattern) *Recognizer {
	ps := make([]Pattern, 0, len(patterns))
	for _, p := range patterns {
		if p.Trigger != "" && p.Command.Known() {
			ps = append(ps, p)
		}
	}
	sort.SliceStable(ps, func(i, j int) bool {
		return utf8.RuneCountInString(ps[i].Trigger) > utf8.RuneCountInString(ps[j].Trigger)
	})
	return &Recognizer{trigger: trigger, patterns: ps}
}

// Default returns a recognizer with the built-in table and space as trigger.
func Default() *Recognizer {
	return New(KeySpace, DefaultPatterns)
}

// Trigger returns the key that fires the recognizer.
func (r *Recognizer) Trigger() KeyCode {
	return r.trigger
}

// Recognize inspects the text of the selection's block before the caret.
// A pattern matches only when it is the entire text before the caret, so
// "a#" followed by space never becomes a header.
func (r *Recognizer) Recognize(d document.Document, s selection.Selection, key KeyCode) (Match, bool) {
	if key != r.trigger {
		return Match{}, false
	}
	b, err := d.Block(s.BlockKey)
	if err != nil {
		return Match{}, false
	}
	caret := s.Start()
	before, err := b.Slice(0, caret)
	if err != nil {
		return Match{}, false
	}
	for _, p := range r.patterns {
		if before == p.Trigger {
			return Match{Command: p.Command, Length: caret}, true
		}
	}
	return Match{}, false
}

var defaultRecognizer = Default()

// Recognize runs the default recognizer.
func Recognize(d document.Document, s selection.Selection, key KeyCode) (Match, bool) {
	return defaultRecognizer.Recognize(d, s, key)
}
