// Package command defines the closed set of symbolic editor commands.
package command

// Name identifies a command. The zero value is None.
type Name int

const (
	None Name = iota

	// Shortcut commands, produced by the recognizer or bound explicitly.
	MakeHeaderOne
	MakeBold
	MakeRed
	Underline

	// Default editing commands.
	ToggleBold
	ToggleItalic
	ToggleCode
	ToggleStrikethrough
	Backspace
	Delete
	SplitBlock
)

var names = map[Name]string{
	MakeHeaderOne:       "h1",
	MakeBold:            "boldText",
	MakeRed:             "redText",
	Underline:           "underline",
	ToggleBold:          "bold",
	ToggleItalic:        "italic",
	ToggleCode:          "code",
	ToggleStrikethrough: "strikethrough",
	Backspace:           "backspace",
	Delete:              "delete",
	SplitBlock:          "split-block",
}

var byString = func() map[string]Name {
	m := make(map[string]Name, len(names))
	for n, s := range names {
		m[s] = n
	}
	return m
}()

// Parse maps a command string (as used in key binding configuration) to a
// Name. Unknown strings yield None and false.
func Parse(s string) (Name, bool) {
	n, ok := byString[s]
	return n, ok
}

func (n Name) String() string {
	if s, ok := names[n]; ok {
		return s
	}
	return "none"
}

// Known reports whether n is one of the defined commands.
func (n Name) Known() bool {
	_, ok := names[n]
	return ok
}

// All returns every defined command in declaration order.
func All() []Name {
	out := make([]Name, 0, len(names))
	for n := MakeHeaderOne; n <= SplitBlock; n++ {
		out = append(out, n)
	}
	return out
}
