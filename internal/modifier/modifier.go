// Package modifier implements the edit operations. Every function is pure:
// it takes a document and a selection and returns a new pair, or an error
// with the inputs left as they were.
package modifier

import (
	"fmt"

	"github.com/bethropolis/tidemark/internal/document"
	"github.com/bethropolis/tidemark/internal/selection"
)

// InsertText replaces the selected range with text, or inserts it at the
// caret. The inserted characters carry no style. The caret ends up right
// after the inserted text.
func InsertText(d document.Document, s selection.Selection, text string) (document.Document, selection.Selection, error) {
	return InsertStyledText(d, s, text, nil)
}

// InsertStyledText is InsertText with the inserted characters tagged with
// exactly the given styles. Ranges spanning the insertion point are split
// around the new text.
func InsertStyledText(d document.Document, s selection.Selection, text string, styles document.StyleSet) (document.Document, selection.Selection, error) {
	for _, st := range styles {
		if !st.Valid() {
			return d, s, fmt.Errorf("%w: %q", document.ErrUnknownStyle, st)
		}
	}
	if _, err := s.Validate(d); err != nil {
		return d, s, err
	}

	next, sel := d, s
	if !s.IsCollapsed() {
		var err error
		next, sel, err = RemoveRange(d, s, s.Start(), s.End())
		if err != nil {
			return d, s, err
		}
	}
	if text == "" {
		return next, sel, nil
	}

	b, err := next.Block(sel.BlockKey)
	if err != nil {
		return d, s, err
	}
	at := sel.Start()
	inserted := []rune(text)
	n := len(inserted)
	runes := []rune(b.Text())

	out := make([]rune, 0, len(runes)+n)
	out = append(out, runes[:at]...)
	out = append(out, inserted...)
	out = append(out, runes[at:]...)

	var ranges []document.StyleRange
	for _, r := range b.StyleRanges() {
		switch {
		case r.End <= at:
			ranges = append(ranges, r)
		case r.Start >= at:
			ranges = append(ranges, document.StyleRange{Start: r.Start + n, End: r.End + n, Style: r.Style})
		default:
			ranges = append(ranges,
				document.StyleRange{Start: r.Start, End: at, Style: r.Style},
				document.StyleRange{Start: at + n, End: r.End + n, Style: r.Style},
			)
		}
	}
	for _, st := range styles {
		ranges = append(ranges, document.StyleRange{Start: at, End: at + n, Style: st})
	}

	nb, err := b.WithContent(string(out), ranges)
	if err != nil {
		return d, s, err
	}
	result, err := next.Replace(nb)
	if err != nil {
		return d, s, err
	}
	return result, selection.Caret(sel.BlockKey, at+n), nil
}

// RemoveRange deletes the characters in [from, to) of the block addressed by
// s. Style ranges inside the span are dropped, ranges crossing its edges are
// clipped and later ranges shift left. The caret collapses to from.
func RemoveRange(d document.Document, s selection.Selection, from, to int) (document.Document, selection.Selection, error) {
	b, err := d.Block(s.BlockKey)
	if err != nil {
		return d, s, err
	}
	if err := b.CheckRange(from, to); err != nil {
		return d, s, err
	}
	if from == to {
		return d, selection.Caret(s.BlockKey, from), nil
	}

	n := to - from
	shift := func(x int) int {
		switch {
		case x <= from:
			return x
		case x < to:
			return from
		default:
			return x - n
		}
	}
	var ranges []document.StyleRange
	for _, r := range b.StyleRanges() {
		nr := document.StyleRange{Start: shift(r.Start), End: shift(r.End), Style: r.Style}
		if nr.Start < nr.End {
			ranges = append(ranges, nr)
		}
	}

	runes := []rune(b.Text())
	text := string(runes[:from]) + string(runes[to:])
	nb, err := b.WithContent(text, ranges)
	if err != nil {
		return d, s, err
	}
	result, err := d.Replace(nb)
	if err != nil {
		return d, s, err
	}
	return result, selection.Caret(s.BlockKey, from), nil
}

// ApplyInlineStyle tags the selected span with style, coalescing it with
// touching ranges of the same style. A collapsed selection leaves the
// document as it is.
func ApplyInlineStyle(d document.Document, s selection.Selection, style document.Style) (document.Document, selection.Selection, error) {
	if !style.Valid() {
		return d, s, fmt.Errorf("%w: %q", document.ErrUnknownStyle, style)
	}
	b, err := s.Validate(d)
	if err != nil {
		return d, s, err
	}
	if s.IsCollapsed() {
		return d, s, nil
	}

	ranges := append(b.StyleRanges(), document.StyleRange{Start: s.Start(), End: s.End(), Style: style})
	nb, err := b.WithContent(b.Text(), ranges)
	if err != nil {
		return d, s, err
	}
	result, err := d.Replace(nb)
	if err != nil {
		return d, s, err
	}
	return result, s, nil
}

// RemoveInlineStyle strips style from the selected span.
func RemoveInlineStyle(d document.Document, s selection.Selection, style document.Style) (document.Document, selection.Selection, error) {
	if !style.Valid() {
		return d, s, fmt.Errorf("%w: %q", document.ErrUnknownStyle, style)
	}
	b, err := s.Validate(d)
	if err != nil {
		return d, s, err
	}
	if s.IsCollapsed() {
		return d, s, nil
	}

	from, to := s.Start(), s.End()
	var ranges []document.StyleRange
	for _, r := range b.StyleRanges() {
		if r.Style != style || r.End <= from || r.Start >= to {
			ranges = append(ranges, r)
			continue
		}
		if r.Start < from {
			ranges = append(ranges, document.StyleRange{Start: r.Start, End: from, Style: style})
		}
		if r.End > to {
			ranges = append(ranges, document.StyleRange{Start: to, End: r.End, Style: style})
		}
	}
	nb, err := b.WithContent(b.Text(), ranges)
	if err != nil {
		return d, s, err
	}
	result, err := d.Replace(nb)
	if err != nil {
		return d, s, err
	}
	return result, s, nil
}

// SetBlockType replaces the type tag of the addressed block.
func SetBlockType(d document.Document, s selection.Selection, typ document.BlockType) (document.Document, selection.Selection, error) {
	b, err := d.Block(s.BlockKey)
	if err != nil {
		return d, s, err
	}
	nb, err := b.WithType(typ)
	if err != nil {
		return d, s, err
	}
	result, err := d.Replace(nb)
	if err != nil {
		return d, s, err
	}
	return result, s, nil
}
