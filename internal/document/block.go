package document

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Block is one paragraph-level unit of text. Blocks are values: every
// With* method returns a new Block and leaves the receiver untouched.
type Block struct {
	key    string
	typ    BlockType
	text   string
	length int // rune count of text
	ranges []StyleRange
}

// NewKey returns a fresh block key.
func NewKey() string {
	return uuid.NewString()
}

// NewBlock validates its arguments and returns a block with coalesced style ranges.
// An empty key is replaced by a generated one.
func NewBlock(key string, typ BlockType, text string, ranges []StyleRange) (Block, error) {
	if !typ.Valid() {
		return Block{}, fmt.Errorf("%w: %q", ErrUnknownBlockType, typ)
	}
	if key == "" {
		key = NewKey()
	}
	length := utf8.RuneCountInString(text)
	for _, r := range ranges {
		if !r.Style.Valid() {
			return Block{}, fmt.Errorf("%w: %q", ErrUnknownStyle, r.Style)
		}
		if r.Start < 0 || r.Start >= r.End || r.End > length {
			return Block{}, fmt.Errorf("%w: style %s [%d,%d) in block of length %d", ErrInvalidRange, r.Style, r.Start, r.End, length)
		}
	}
	return Block{
		key:    key,
		typ:    typ,
		text:   text,
		length: length,
		ranges: Normalize(ranges),
	}, nil
}

// EmptyBlock returns an unstyled block with no text and a fresh key.
func EmptyBlock() Block {
	return Block{key: NewKey(), typ: Unstyled}
}

func (b Block) Key() string     { return b.key }
func (b Block) Type() BlockType { return b.typ }
func (b Block) Text() string    { return b.text }

// Len returns the length of the block text in runes.
func (b Block) Len() int { return b.length }

// StyleRanges returns a copy of the block's style ranges, sorted by start.
func (b Block) StyleRanges() []StyleRange {
	if len(b.ranges) == 0 {
		return nil
	}
	out := make([]StyleRange, len(b.ranges))
	copy(out, b.ranges)
	return out
}

// CheckOffset fails with ErrInvalidRange unless 0 <= offset <= Len().
func (b Block) CheckOffset(offset int) error {
	if offset < 0 || offset > b.length {
		return fmt.Errorf("%w: offset %d outside [0,%d] in block %s", ErrInvalidRange, offset, b.length, b.key)
	}
	return nil
}

// CheckRange fails with ErrInvalidRange unless 0 <= from <= to <= Len().
func (b Block) CheckRange(from, to int) error {
	if from > to {
		return fmt.Errorf("%w: from %d > to %d in block %s", ErrInvalidRange, from, to, b.key)
	}
	if err := b.CheckOffset(from); err != nil {
		return err
	}
	return b.CheckOffset(to)
}

// Slice returns the text in [from, to).
func (b Block) Slice(from, to int) (string, error) {
	if err := b.CheckRange(from, to); err != nil {
		return "", err
	}
	return string([]rune(b.text)[from:to]), nil
}

// StylesAt returns the styles applied to the character at offset.
func (b Block) StylesAt(offset int) (StyleSet, error) {
	if offset < 0 || offset >= b.length {
		return nil, fmt.Errorf("%w: no character at offset %d in block %s", ErrInvalidRange, offset, b.key)
	}
	var set StyleSet
	for _, r := range b.ranges {
		if r.Start > offset {
			break
		}
		if offset < r.End {
			set = set.Add(r.Style)
		}
	}
	return set, nil
}

// HasStyle reports whether every character in [from, to) carries style s.
// An empty span never has a style.
func (b Block) HasStyle(s Style, from, to int) bool {
	if from >= to {
		return false
	}
	pos := from
	for _, r := range b.ranges {
		if r.Style != s || r.End <= pos {
			continue
		}
		if r.Start > pos {
			return false
		}
		pos = r.End
		if pos >= to {
			return true
		}
	}
	return false
}

// WithType returns a copy of the block carrying typ.
func (b Block) WithType(typ BlockType) (Block, error) {
	if !typ.Valid() {
		return Block{}, fmt.Errorf("%w: %q", ErrUnknownBlockType, typ)
	}
	b.typ = typ
	b.ranges = b.StyleRanges()
	return b, nil
}

// WithContent returns a copy of the block with new text and ranges, keeping key and type.
func (b Block) WithContent(text string, ranges []StyleRange) (Block, error) {
	return NewBlock(b.key, b.typ, text, ranges)
}

// WithKey returns a copy of the block under a different key.
func (b Block) WithKey(key string) Block {
	b.key = key
	b.ranges = b.StyleRanges()
	return b
}

// Equal compares key, type, text and style ranges.
func (b Block) Equal(other Block) bool {
	if b.key != other.key || b.typ != other.typ || b.text != other.text || len(b.ranges) != len(other.ranges) {
		return false
	}
	for i := range b.ranges {
		if b.ranges[i] != other.ranges[i] {
			return false
		}
	}
	return true
}

// Normalize coalesces overlapping or adjacent ranges of the same style, drops
// empty ones and sorts the result by start, then style.
func Normalize(ranges []StyleRange) []StyleRange {
	byStyle := make(map[Style][]StyleRange)
	for _, r := range ranges {
		if r.Start < r.End {
			byStyle[r.Style] = append(byStyle[r.Style], r)
		}
	}
	var out []StyleRange
	for _, list := range byStyle {
		sort.Slice(list, func(i, j int) bool { return list[i].Start < list[j].Start })
		cur := list[0]
		for _, r := range list[1:] {
			if r.Start <= cur.End {
				if r.End > cur.End {
					cur.End = r.End
				}
				continue
			}
			out = append(out, cur)
			cur = r
		}
		out = append(out, cur)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].Style < out[j].Style
	})
	return out
}
