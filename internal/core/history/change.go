// Package history provides undo/redo functionality via a snapshot history stack.
package history

import (
	"github.com/bethropolis/tidemark/internal/document"
	"github.com/bethropolis/tidemark/internal/selection"
)

// ChangeKind tags a change for undo grouping.
type ChangeKind int

const (
	KindNone ChangeKind = iota
	InsertText
	RemoveRange
	ApplyStyle
	ChangeBlockType
	SplitBlock
	InsertFragment // Pasted content, possibly spanning blocks
)

func (k ChangeKind) String() string {
	switch k {
	case InsertText:
		return "insert-text"
	case RemoveRange:
		return "remove-range"
	case ApplyStyle:
		return "apply-style"
	case ChangeBlockType:
		return "change-block-type"
	case SplitBlock:
		return "split-block"
	case InsertFragment:
		return "insert-fragment"
	default:
		return "none"
	}
}

// Change is the record emitted for one logical edit: its kind plus the
// snapshot the edit produced.
type Change struct {
	Kind      ChangeKind
	Document  document.Document
	Selection selection.Selection
}
