// Package document holds the immutable rich-text model: an ordered list of
// blocks, each with a type tag, plain text and inline style ranges.
package document

import (
	"fmt"
	"strings"
)

// Document is an ordered, non-empty sequence of blocks. The zero value has
// no blocks; it answers queries but every edit on it fails. A Document is never
// modified in place; Replace, InsertAfter and Remove return new values that
// share untouched blocks with the original.
type Document struct {
	blocks []Block
	index  map[string]int
}

// New builds a document from blocks in display order.
func New(blocks ...Block) (Document, error) {
	if len(blocks) == 0 {
		return Document{}, ErrEmptyDocument
	}
	index := make(map[string]int, len(blocks))
	for i, b := range blocks {
		if _, dup := index[b.key]; dup {
			return Document{}, fmt.Errorf("%w: %s", ErrDuplicateBlock, b.key)
		}
		index[b.key] = i
	}
	own := make([]Block, len(blocks))
	copy(own, blocks)
	return Document{blocks: own, index: index}, nil
}

// Empty returns a document holding a single empty unstyled block.
func Empty() Document {
	d, _ := New(EmptyBlock())
	return d
}

// Len returns the number of blocks.
func (d Document) Len() int { return len(d.blocks) }

// Blocks returns the blocks in display order.
func (d Document) Blocks() []Block {
	out := make([]Block, len(d.blocks))
	copy(out, d.blocks)
	return out
}

// Block looks a block up by key.
func (d Document) Block(key string) (Block, error) {
	i, ok := d.index[key]
	if !ok {
		return Block{}, fmt.Errorf("%w: %s", ErrUnknownBlock, key)
	}
	return d.blocks[i], nil
}

// IndexOf returns the display position of the block with key, or -1.
func (d Document) IndexOf(key string) int {
	if i, ok := d.index[key]; ok {
		return i
	}
	return -1
}

// BlockAt returns the block at display position i.
func (d Document) BlockAt(i int) (Block, bool) {
	if i < 0 || i >= len(d.blocks) {
		return Block{}, false
	}
	return d.blocks[i], true
}

// Before returns the block preceding key, if any.
func (d Document) Before(key string) (Block, bool) {
	i, ok := d.index[key]
	if !ok {
		return Block{}, false
	}
	return d.BlockAt(i - 1)
}

// After returns the block following key, if any.
func (d Document) After(key string) (Block, bool) {
	i, ok := d.index[key]
	if !ok {
		return Block{}, false
	}
	return d.BlockAt(i + 1)
}

// First returns the first block. The zero Document has no blocks and
// yields an empty unstyled block without a key.
func (d Document) First() Block {
	if len(d.blocks) == 0 {
		return Block{typ: Unstyled}
	}
	return d.blocks[0]
}

// Last returns the last block, or an empty unstyled block like First.
func (d Document) Last() Block {
	if len(d.blocks) == 0 {
		return Block{typ: Unstyled}
	}
	return d.blocks[len(d.blocks)-1]
}

// FirstBlockType returns the type of the first block.
func (d Document) FirstBlockType() BlockType {
	return d.First().typ
}

// IsEmpty reports whether no block contains any text.
func (d Document) IsEmpty() bool {
	for _, b := range d.blocks {
		if b.length > 0 {
			return false
		}
	}
	return true
}

// Text returns the plain text of a single block.
func (d Document) Text(key string) (string, error) {
	b, err := d.Block(key)
	if err != nil {
		return "", err
	}
	return b.text, nil
}

// Slice returns the text in [from, to) of the block with key.
func (d Document) Slice(key string, from, to int) (string, error) {
	b, err := d.Block(key)
	if err != nil {
		return "", err
	}
	return b.Slice(from, to)
}

// PlainText joins the text of all blocks with newlines.
func (d Document) PlainText() string {
	parts := make([]string, len(d.blocks))
	for i, b := range d.blocks {
		parts[i] = b.text
	}
	return strings.Join(parts, "\n")
}

// Replace returns a document where the block with b's key is swapped for b.
func (d Document) Replace(b Block) (Document, error) {
	i, ok := d.index[b.key]
	if !ok {
		return Document{}, fmt.Errorf("%w: %s", ErrUnknownBlock, b.key)
	}
	blocks := make([]Block, len(d.blocks))
	copy(blocks, d.blocks)
	blocks[i] = b
	return Document{blocks: blocks, index: d.index}, nil
}

// InsertAfter returns a document with b placed right after the block with key.
func (d Document) InsertAfter(key string, b Block) (Document, error) {
	i, ok := d.index[key]
	if !ok {
		return Document{}, fmt.Errorf("%w: %s", ErrUnknownBlock, key)
	}
	blocks := make([]Block, 0, len(d.blocks)+1)
	blocks = append(blocks, d.blocks[:i+1]...)
	blocks = append(blocks, b)
	blocks = append(blocks, d.blocks[i+1:]...)
	return New(blocks...)
}

// Remove returns a document without the block with key. The last block can't be removed.
func (d Document) Remove(key string) (Document, error) {
	i, ok := d.index[key]
	if !ok {
		return Document{}, fmt.Errorf("%w: %s", ErrUnknownBlock, key)
	}
	if len(d.blocks) == 1 {
		return Document{}, ErrEmptyDocument
	}
	blocks := make([]Block, 0, len(d.blocks)-1)
	blocks = append(blocks, d.blocks[:i]...)
	blocks = append(blocks, d.blocks[i+1:]...)
	return New(blocks...)
}

// Equal compares two documents block by block.
func (d Document) Equal(other Document) bool {
	if len(d.blocks) != len(other.blocks) {
		return false
	}
	for i := range d.blocks {
		if !d.blocks[i].Equal(other.blocks[i]) {
			return false
		}
	}
	return true
}
