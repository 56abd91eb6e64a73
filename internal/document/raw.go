package document

import (
	"encoding/json"
	"fmt"
)

// RawContent is the JSON-compatible tree handed to persistence layers.
type RawContent struct {
	Blocks []RawBlock `json:"blocks"`
}

// RawBlock is the serialized form of a Block.
type RawBlock struct {
	Key               string          `json:"key,omitempty"`
	Type              string          `json:"type"`
	Text              string          `json:"text"`
	InlineStyleRanges []RawStyleRange `json:"inlineStyleRanges"`
}

// RawStyleRange is the serialized form of a StyleRange.
type RawStyleRange struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Style  string `json:"style"`
}

// Serialize converts a document into its raw tree.
func Serialize(d Document) RawContent {
	raw := RawContent{Blocks: make([]RawBlock, len(d.blocks))}
	for i, b := range d.blocks {
		ranges := make([]RawStyleRange, len(b.ranges))
		for j, r := range b.ranges {
			ranges[j] = RawStyleRange{Offset: r.Start, Length: r.Len(), Style: string(r.Style)}
		}
		raw.Blocks[i] = RawBlock{
			Key:               b.key,
			Type:              string(b.typ),
			Text:              b.text,
			InlineStyleRanges: ranges,
		}
	}
	return raw
}

// Deserialize rebuilds a document from a raw tree. Blocks without a key get a
// fresh one; an empty type means unstyled.
func Deserialize(raw RawContent) (Document, error) {
	if len(raw.Blocks) == 0 {
		return Document{}, ErrEmptyDocument
	}
	blocks := make([]Block, len(raw.Blocks))
	for i, rb := range raw.Blocks {
		typ := Unstyled
		if rb.Type != "" {
			t, err := ParseBlockType(rb.Type)
			if err != nil {
				return Document{}, fmt.Errorf("block %d: %w", i, err)
			}
			typ = t
		}
		ranges := make([]StyleRange, 0, len(rb.InlineStyleRanges))
		for _, rr := range rb.InlineStyleRanges {
			style, err := ParseStyle(rr.Style)
			if err != nil {
				return Document{}, fmt.Errorf("block %d: %w", i, err)
			}
			if rr.Length == 0 {
				continue
			}
			ranges = append(ranges, StyleRange{Start: rr.Offset, End: rr.Offset + rr.Length, Style: style})
		}
		b, err := NewBlock(rb.Key, typ, rb.Text, ranges)
		if err != nil {
			return Document{}, fmt.Errorf("block %d: %w", i, err)
		}
		blocks[i] = b
	}
	return New(blocks...)
}

// MarshalJSON encodes the document in its raw form.
func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(Serialize(d))
}

// UnmarshalJSON decodes a raw tree into d.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw RawContent
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	doc, err := Deserialize(raw)
	if err != nil {
		return err
	}
	*d = doc
	return nil
}
