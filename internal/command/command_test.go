package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKnownNames(t *testing.T) {
	for _, n := range All() {
		got, ok := Parse(n.String())
		assert.True(t, ok, n.String())
		assert.Equal(t, n, got)
		assert.True(t, n.Known())
	}
}

func TestParseUnknown(t *testing.T) {
	n, ok := Parse("make-it-sparkle")
	assert.False(t, ok)
	assert.Equal(t, None, n)
	assert.False(t, None.Known())
	assert.Equal(t, "none", Name(99).String())
}
