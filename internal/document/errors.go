package document

import "errors"

var (
	// ErrInvalidRange is returned for offsets outside [0, len] or from > to.
	// It signals a caret/selection desync in the caller and is never clamped.
	ErrInvalidRange = errors.New("invalid range")

	ErrUnknownBlockType = errors.New("unknown block type")
	ErrUnknownStyle     = errors.New("unknown style")
	ErrUnknownBlock     = errors.New("unknown block")
	ErrDuplicateBlock   = errors.New("duplicate block key")
	ErrEmptyDocument    = errors.New("document must contain at least one block")
)
