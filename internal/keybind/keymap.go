// internal/keybind/keymap.go
package keybind

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tidemark/internal/command"
	"github.com/bethropolis/tidemark/internal/core/cursor"
	"github.com/bethropolis/tidemark/internal/logger"
)

var (
	ErrBadChord      = errors.New("invalid key chord")
	ErrUnknownAction = errors.New("unknown command")
)

// Keymap maps special keys to bindings.
type Keymap map[tcell.Key]Binding

// ModKeymap maps modifier masks to keymaps (Ctrl, Alt combinations).
type ModKeymap map[tcell.ModMask]Keymap

// Processor translates tcell key events into Bindings.
type Processor struct {
	keymap    Keymap
	modKeymap ModKeymap
	altRunes  map[rune]Binding
	trigger   rune
}

// NewProcessor creates a processor with default keybindings. trigger is the
// rune handed to the shortcut recognizer.
func NewProcessor(trigger rune) *Processor {
	p := &Processor{
		keymap:    make(Keymap),
		modKeymap: make(ModKeymap),
		altRunes:  make(map[rune]Binding),
		trigger:   trigger,
	}
	p.loadDefaultBindings()
	return p
}

func cmd(n command.Name) Binding {
	return Binding{Kind: KindCommand, Command: n}
}

// loadDefaultBindings sets up the initial key mappings.
func (p *Processor) loadDefaultBindings() {
	p.keymap[tcell.KeyBackspace] = cmd(command.Backspace)
	p.keymap[tcell.KeyBackspace2] = cmd(command.Backspace)
	p.keymap[tcell.KeyDelete] = cmd(command.Delete)
	p.keymap[tcell.KeyEnter] = cmd(command.SplitBlock)

	motions := map[tcell.Key]cursor.Motion{
		tcell.KeyLeft:  cursor.Left,
		tcell.KeyRight: cursor.Right,
		tcell.KeyUp:    cursor.Up,
		tcell.KeyDown:  cursor.Down,
		tcell.KeyHome:  cursor.LineStart,
		tcell.KeyEnd:   cursor.LineEnd,
	}
	shiftMap := make(Keymap)
	for k, m := range motions {
		p.keymap[k] = move(m, false)
		shiftMap[k] = move(m, true)
	}
	p.modKeymap[tcell.ModShift] = shiftMap

	ctrlMap := make(Keymap)
	ctrlMap[tcell.KeyCtrlB] = cmd(command.ToggleBold)
	ctrlMap[tcell.KeyCtrlU] = cmd(command.Underline)
	ctrlMap[tcell.KeyCtrlZ] = Binding{Kind: KindUndo}
	ctrlMap[tcell.KeyCtrlY] = Binding{Kind: KindRedo}
	ctrlMap[tcell.KeyCtrlV] = Binding{Kind: KindPaste}
	ctrlMap[tcell.KeyCtrlC] = Binding{Kind: KindCopy}
	ctrlMap[tcell.KeyCtrlX] = Binding{Kind: KindCut}
	ctrlMap[tcell.KeyHome] = move(cursor.DocStart, false)
	ctrlMap[tcell.KeyEnd] = move(cursor.DocEnd, false)
	p.modKeymap[tcell.ModCtrl] = ctrlMap

	p.altRunes['i'] = cmd(command.ToggleItalic)
	p.altRunes['j'] = cmd(command.ToggleCode)
	p.altRunes['x'] = cmd(command.ToggleStrikethrough)
}

// keyRunes are the trigger runes tcell reports as special keys.
var keyRunes = map[tcell.Key]rune{
	tcell.KeyTab:   '\t',
	tcell.KeyEnter: '\n',
}

// Trigger returns the shortcut trigger rune.
func (p *Processor) Trigger() rune {
	return p.trigger
}

// ProcessEvent takes a tcell key event and returns the corresponding Binding.
func (p *Processor) ProcessEvent(ev *tcell.EventKey) Binding {
	key := ev.Key()
	mod := ev.Modifiers()

	// 0. Tab and Enter arrive as keys, not runes, but may be the trigger.
	if mod == tcell.ModNone {
		if r, ok := keyRunes[key]; ok && r == p.trigger {
			return Binding{Kind: KindTrigger, Rune: r}
		}
	}

	// 1. Modifier + key combinations
	if modKeyMap, ok := p.modKeymap[mod]; ok {
		if b, ok := modKeyMap[key]; ok {
			return b
		}
	}
	// Ctrl+letter keys already imply the modifier.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}

	// 2. Simple keys
	if mod == tcell.ModNone || mod == tcell.ModShift {
		if b, ok := p.keymap[key]; ok {
			return b
		}
	}

	// 3. Runes
	if key == tcell.KeyRune {
		r := ev.Rune()
		if mod&tcell.ModAlt != 0 {
			if b, ok := p.altRunes[r]; ok {
				return b
			}
			return Binding{Kind: KindNone}
		}
		if mod&tcell.ModCtrl != 0 {
			return Binding{Kind: KindNone}
		}
		if r == p.trigger {
			return Binding{Kind: KindTrigger, Rune: r}
		}
		return Binding{Kind: KindInsert, Rune: r}
	}

	return Binding{Kind: KindNone}
}

var namedKeys = map[string]tcell.Key{
	"enter":      tcell.KeyEnter,
	"backspace":  tcell.KeyBackspace2,
	"delete":     tcell.KeyDelete,
	"tab":        tcell.KeyTab,
	"esc":        tcell.KeyEscape,
	"escape":     tcell.KeyEscape,
	"up":         tcell.KeyUp,
	"down":       tcell.KeyDown,
	"left":       tcell.KeyLeft,
	"right":      tcell.KeyRight,
	"home":       tcell.KeyHome,
	"end":        tcell.KeyEnd,
	"insert":     tcell.KeyInsert,
	"pageup":     tcell.KeyPgUp,
	"pagedown":   tcell.KeyPgDn,
	"backspace1": tcell.KeyBackspace,
}

// Bind installs action (a command name or a host action such as "undo") under a
// chord such as "ctrl+b", "alt+i" or "enter".
func (p *Processor) Bind(chord, action string) error {
	b, ok := parseAction(action)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	parts := strings.Split(strings.ToLower(strings.TrimSpace(chord)), "+")
	keyName := parts[len(parts)-1]
	var mod tcell.ModMask
	for _, m := range parts[:len(parts)-1] {
		switch m {
		case "ctrl":
			mod |= tcell.ModCtrl
		case "alt":
			mod |= tcell.ModAlt
		case "shift":
			mod |= tcell.ModShift
		default:
			return fmt.Errorf("%w: unknown modifier %q in %q", ErrBadChord, m, chord)
		}
	}

	if k, ok := namedKeys[keyName]; ok {
		if mod == tcell.ModNone {
			p.keymap[k] = b
		} else {
			p.bindMod(mod, k, b)
		}
		return nil
	}

	r, size := utf8.DecodeRuneInString(keyName)
	if r == utf8.RuneError || size != len(keyName) {
		return fmt.Errorf("%w: %q", ErrBadChord, chord)
	}
	switch {
	case mod == tcell.ModCtrl && r >= 'a' && r <= 'z':
		p.bindMod(tcell.ModCtrl, tcell.KeyCtrlA+tcell.Key(r-'a'), b)
	case mod == tcell.ModAlt:
		p.altRunes[r] = b
	default:
		return fmt.Errorf("%w: %q", ErrBadChord, chord)
	}
	return nil
}

func (p *Processor) bindMod(mod tcell.ModMask, k tcell.Key, b Binding) {
	m, ok := p.modKeymap[mod]
	if !ok {
		m = make(Keymap)
		p.modKeymap[mod] = m
	}
	m[k] = b
}

// Load applies chord → action pairs, typically from the [keymap] config
// table. Invalid entries are skipped with a warning; the number applied is returned.
func (p *Processor) Load(bindings map[string]string) int {
	applied := 0
	for chord, action := range bindings {
		if err := p.Bind(chord, action); err != nil {
			logger.WarnTagf("keybind", "Keymap: skipping %q = %q: %v", chord, action, err)
			continue
		}
		applied++
	}
	return applied
}
