package document

import (
	"fmt"
	"sort"
)

// BlockType is the structural tag of a block. Exactly one per block.
type BlockType string

const (
	Unstyled          BlockType = "unstyled"
	HeaderOne         BlockType = "header-one"
	HeaderTwo         BlockType = "header-two"
	HeaderThree       BlockType = "header-three"
	HeaderFour        BlockType = "header-four"
	HeaderFive        BlockType = "header-five"
	HeaderSix         BlockType = "header-six"
	Blockquote        BlockType = "blockquote"
	CodeBlock         BlockType = "code-block"
	UnorderedListItem BlockType = "unordered-list-item"
	OrderedListItem   BlockType = "ordered-list-item"
)

var blockTypes = map[BlockType]struct{}{
	Unstyled: {}, HeaderOne: {}, HeaderTwo: {}, HeaderThree: {}, HeaderFour: {},
	HeaderFive: {}, HeaderSix: {}, Blockquote: {}, CodeBlock: {},
	UnorderedListItem: {}, OrderedListItem: {},
}

// Valid reports whether t is one of the supported block types.
func (t BlockType) Valid() bool {
	_, ok := blockTypes[t]
	return ok
}

// ParseBlockType converts a tag such as "header-one" into a BlockType.
func ParseBlockType(s string) (BlockType, error) {
	t := BlockType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownBlockType, s)
	}
	return t, nil
}

// Style is an inline presentation attribute attached to a character span.
type Style string

const (
	Bold          Style = "BOLD"
	Italic        Style = "ITALIC"
	Underline     Style = "UNDERLINE"
	Code          Style = "CODE"
	Strikethrough Style = "STRIKETHROUGH"
	Red           Style = "RED"
)

var styles = map[Style]struct{}{
	Bold: {}, Italic: {}, Underline: {}, Code: {}, Strikethrough: {}, Red: {},
}

// Valid reports whether s is one of the supported inline styles.
func (s Style) Valid() bool {
	_, ok := styles[s]
	return ok
}

// ParseStyle converts a name such as "BOLD" into a Style.
func ParseStyle(s string) (Style, error) {
	st := Style(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, s)
	}
	return st, nil
}

// StyleSet is a sorted, duplicate-free set of styles. The zero value is the empty set.
type StyleSet []Style

// NewStyleSet builds a set from arbitrary styles.
func NewStyleSet(list ...Style) StyleSet {
	var set StyleSet
	for _, s := range list {
		set = set.Add(s)
	}
	return set
}

// Has reports whether s is in the set.
func (set StyleSet) Has(s Style) bool {
	i := sort.Search(len(set), func(i int) bool { return set[i] >= s })
	return i < len(set) && set[i] == s
}

// Add returns a new set containing s.
func (set StyleSet) Add(s Style) StyleSet {
	if set.Has(s) {
		return set
	}
	out := make(StyleSet, 0, len(set)+1)
	out = append(out, set...)
	out = append(out, s)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Remove returns a new set without s.
func (set StyleSet) Remove(s Style) StyleSet {
	if !set.Has(s) {
		return set
	}
	out := make(StyleSet, 0, len(set)-1)
	for _, x := range set {
		if x != s {
			out = append(out, x)
		}
	}
	return out
}

// Toggle adds s if absent, removes it otherwise.
func (set StyleSet) Toggle(s Style) StyleSet {
	if set.Has(s) {
		return set.Remove(s)
	}
	return set.Add(s)
}

// Equal reports whether both sets hold the same styles.
func (set StyleSet) Equal(other StyleSet) bool {
	if len(set) != len(other) {
		return false
	}
	for i := range set {
		if set[i] != other[i] {
			return false
		}
	}
	return true
}

// StyleRange tags the half-open rune span [Start, End) with Style.
type StyleRange struct {
	Start int
	End   int
	Style Style
}

// Len returns the number of characters covered by the range.
func (r StyleRange) Len() int {
	return r.End - r.Start
}
