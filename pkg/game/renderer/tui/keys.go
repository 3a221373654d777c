package tui

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"tileworld/pkg/engine/input"
)

// keyTable maps tcell special keys to canonical key names
var keyTable = map[tcell.Key]input.Key{
	tcell.KeyEscape:     input.KeyEscape,
	tcell.KeyEnter:      input.KeyEnter,
	tcell.KeyTab:        input.KeyTab,
	tcell.KeyBackspace:  input.KeyBackspace,
	tcell.KeyBackspace2: input.KeyBackspace,
	tcell.KeyUp:         input.KeyArrowUp,
	tcell.KeyDown:       input.KeyArrowDown,
	tcell.KeyLeft:       input.KeyArrowLeft,
	tcell.KeyRight:      input.KeyArrowRight,
	tcell.KeyF1:         input.KeyF1,
	tcell.KeyF2:         input.KeyF2,
	tcell.KeyF3:         input.KeyF3,
	tcell.KeyF4:         input.KeyF4,
	tcell.KeyF5:         input.KeyF5,
	tcell.KeyF6:         input.KeyF6,
	tcell.KeyF7:         input.KeyF7,
	tcell.KeyF8:         input.KeyF8,
	tcell.KeyF9:         input.KeyF9,
	tcell.KeyF10:        input.KeyF10,
	tcell.KeyF11:        input.KeyF11,
	tcell.KeyF12:        input.KeyF12,
}

// mouseButtons pairs tcell buttons with input buttons
var mouseButtons = []struct {
	native tcell.ButtonMask
	button input.MouseButton
}{
	{tcell.Button1, input.ButtonPrimary},
	{tcell.Button2, input.ButtonSecondary},
	{tcell.Button3, input.ButtonMiddle},
}

// keyFor translates a tcell key and rune. Letters are case-folded.
func keyFor(k tcell.Key, r rune) (input.Key, bool) {
	if k != tcell.KeyRune {
		key, ok := keyTable[k]
		return key, ok
	}
	if r == ' ' {
		return input.KeySpace, true
	}
	r = unicode.ToLower(r)
	if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
		return input.Key(string(r)), true
	}
	return input.KeyNone, false
}
