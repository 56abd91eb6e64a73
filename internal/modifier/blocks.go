package modifier

import (
	"fmt"

	"github.com/bethropolis/tidemark/internal/document"
	"github.com/bethropolis/tidemark/internal/selection"
)

// SplitBlock removes the selected span, then cuts the block at the caret.
// The tail moves into a new block of the same type placed right after it,
// and the caret lands at the start of the new block.
func SplitBlock(d document.Document, s selection.Selection) (document.Document, selection.Selection, error) {
	if _, err := s.Validate(d); err != nil {
		return d, s, err
	}
	next, sel, err := RemoveRange(d, s, s.Start(), s.End())
	if err != nil {
		return d, s, err
	}
	b, err := next.Block(sel.BlockKey)
	if err != nil {
		return d, s, err
	}

	at := sel.Start()
	runes := []rune(b.Text())
	var head, tail []document.StyleRange
	for _, r := range b.StyleRanges() {
		if r.Start < at {
			head = append(head, document.StyleRange{Start: r.Start, End: min(r.End, at), Style: r.Style})
		}
		if r.End > at {
			tail = append(tail, document.StyleRange{Start: max(r.Start, at) - at, End: r.End - at, Style: r.Style})
		}
	}

	first, err := b.WithContent(string(runes[:at]), head)
	if err != nil {
		return d, s, err
	}
	second, err := document.NewBlock("", b.Type(), string(runes[at:]), tail)
	if err != nil {
		return d, s, err
	}
	result, err := next.Replace(first)
	if err != nil {
		return d, s, err
	}
	result, err = result.InsertAfter(first.Key(), second)
	if err != nil {
		return d, s, err
	}
	return result, selection.Caret(second.Key(), 0), nil
}

// JoinBlocks appends the block following key to it and drops the follower.
// The joined block keeps its own key and type; the caret sits at the seam.
func JoinBlocks(d document.Document, key string) (document.Document, selection.Selection, error) {
	first, err := d.Block(key)
	if err != nil {
		return d, selection.Selection{}, err
	}
	second, ok := d.After(key)
	if !ok {
		return d, selection.Selection{}, fmt.Errorf("%w: no block after %s", document.ErrUnknownBlock, key)
	}

	seam := first.Len()
	ranges := first.StyleRanges()
	for _, r := range second.StyleRanges() {
		ranges = append(ranges, document.StyleRange{Start: r.Start + seam, End: r.End + seam, Style: r.Style})
	}
	joined, err := first.WithContent(first.Text()+second.Text(), ranges)
	if err != nil {
		return d, selection.Selection{}, err
	}
	result, err := d.Replace(joined)
	if err != nil {
		return d, selection.Selection{}, err
	}
	result, err = result.Remove(second.Key())
	if err != nil {
		return d, selection.Selection{}, err
	}
	return result, selection.Caret(key, seam), nil
}
