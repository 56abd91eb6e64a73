// Package cursor moves the caret and extends selections through a document.
package cursor

import (
	"github.com/bethropolis/tidemark/internal/document"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/selection"
)

// Motion is a caret movement.
type Motion int

const (
	None Motion = iota
	Left
	Right
	Up
	Down
	LineStart
	LineEnd
	DocStart
	DocEnd
)

var motionNames = map[Motion]string{
	Left:      "left",
	Right:     "right",
	Up:        "up",
	Down:      "down",
	LineStart: "line-start",
	LineEnd:   "line-end",
	DocStart:  "doc-start",
	DocEnd:    "doc-end",
}

func (m Motion) String() string {
	if s, ok := motionNames[m]; ok {
		return s
	}
	return "none"
}

// ParseMotion converts a name such as "line-end" into a Motion.
func ParseMotion(s string) (Motion, bool) {
	for m, name := range motionNames {
		if name == s {
			return m, true
		}
	}
	return None, false
}

type position struct {
	key    string
	offset int
}

// Move returns the selection after applying m to the focus of s. Without
// extend the result is a caret; a non-collapsed selection moved left or
// right collapses to its start or end. With extend the anchor stays put
// and the focus is kept inside the anchor's block.
func Move(d document.Document, s selection.Selection, m Motion, extend bool) (selection.Selection, error) {
	b, err := s.Validate(d)
	if err != nil {
		return s, err
	}

	if !extend && !s.IsCollapsed() {
		switch m {
		case Left:
			return selection.Caret(s.BlockKey, s.Start()), nil
		case Right:
			return selection.Caret(s.BlockKey, s.End()), nil
		}
	}

	p := target(d, b, s.Focus, m)
	if !extend {
		return selection.Caret(p.key, p.offset), nil
	}

	if p.key != b.Key() {
		if d.IndexOf(p.key) < d.IndexOf(b.Key()) {
			p = position{b.Key(), 0}
		} else {
			p = position{b.Key(), b.Len()}
		}
	}
	logger.DebugTagf("cursor", "Cursor: extend %v to %d in %s", m, p.offset, b.Key())
	return selection.Selection{BlockKey: b.Key(), Anchor: s.Anchor, Focus: p.offset}, nil
}

func target(d document.Document, b document.Block, focus int, m Motion) position {
	here := position{b.Key(), focus}
	switch m {
	case Left:
		if focus > 0 {
			before, _ := b.Slice(0, focus)
			return position{b.Key(), focus - PrevClusterLen(before)}
		}
		if prev, ok := d.Before(b.Key()); ok {
			return position{prev.Key(), prev.Len()}
		}
	case Right:
		if focus < b.Len() {
			after, _ := b.Slice(focus, b.Len())
			return position{b.Key(), focus + NextClusterLen(after)}
		}
		if next, ok := d.After(b.Key()); ok {
			return position{next.Key(), 0}
		}
	case Up:
		if prev, ok := d.Before(b.Key()); ok {
			return position{prev.Key(), min(focus, prev.Len())}
		}
		return position{b.Key(), 0}
	case Down:
		if next, ok := d.After(b.Key()); ok {
			return position{next.Key(), min(focus, next.Len())}
		}
		return position{b.Key(), b.Len()}
	case LineStart:
		return position{b.Key(), 0}
	case LineEnd:
		return position{b.Key(), b.Len()}
	case DocStart:
		return position{d.First().Key(), 0}
	case DocEnd:
		last := d.Last()
		return position{last.Key(), last.Len()}
	}
	return here
}
