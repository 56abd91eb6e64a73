package cursor

import "github.com/rivo/uniseg"

// PrevClusterLen returns the rune length of the last grapheme cluster in s.
func PrevClusterLen(s string) int {
	n := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		n = len(gr.Runes())
	}
	return n
}

// NextClusterLen returns the rune length of the first grapheme cluster in s.
func NextClusterLen(s string) int {
	gr := uniseg.NewGraphemes(s)
	if !gr.Next() {
		return 0
	}
	return len(gr.Runes())
}
