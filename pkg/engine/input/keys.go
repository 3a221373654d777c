// Package input provides backend-neutral keyboard and pointer events.
package input

import (
	"strings"
)

// Key is a canonical key name such as "p", "escape" or "arrow_up".
// Backends translate their native codes to and from Key through static tables.
type Key string

// KeyNone is the zero Key; it never matches a binding
const KeyNone Key = ""

// Named keys outside the letter and digit ranges
const (
	KeySpace      Key = "space"
	KeyEscape     Key = "escape"
	KeyEnter      Key = "enter"
	KeyTab        Key = "tab"
	KeyBackspace  Key = "backspace"
	KeyArrowUp    Key = "arrow_up"
	KeyArrowDown  Key = "arrow_down"
	KeyArrowLeft  Key = "arrow_left"
	KeyArrowRight Key = "arrow_right"
	KeyF1         Key = "f1"
	KeyF2         Key = "f2"
	KeyF3         Key = "f3"
	KeyF4         Key = "f4"
	KeyF5         Key = "f5"
	KeyF6         Key = "f6"
	KeyF7         Key = "f7"
	KeyF8         Key = "f8"
	KeyF9         Key = "f9"
	KeyF10        Key = "f10"
	KeyF11        Key = "f11"
	KeyF12        Key = "f12"
)

// aliases maps alternative spellings found in configuration files to canonical names
var aliases = map[string]Key{
	"esc":    KeyEscape,
	"return": KeyEnter,
	"up":     KeyArrowUp,
	"down":   KeyArrowDown,
	"left":   KeyArrowLeft,
	"right":  KeyArrowRight,
}

// named is the set of non-alphanumeric keys every backend understands
var named = map[Key]bool{
	KeySpace: true, KeyEscape: true, KeyEnter: true, KeyTab: true, KeyBackspace: true,
	KeyArrowUp: true, KeyArrowDown: true, KeyArrowLeft: true, KeyArrowRight: true,
	KeyF1: true, KeyF2: true, KeyF3: true, KeyF4: true, KeyF5: true, KeyF6: true,
	KeyF7: true, KeyF8: true, KeyF9: true, KeyF10: true, KeyF11: true, KeyF12: true,
}

// ParseKey resolves a configuration key name to its canonical Key.
// Single letters and digits map to themselves; names are case-insensitive.
func ParseKey(name string) (Key, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		if name == " " {
			return KeySpace, true
		}
		return KeyNone, false
	}
	if k, ok := aliases[n]; ok {
		return k, true
	}
	if named[Key(n)] {
		return Key(n), true
	}
	if len(n) == 1 && (n[0] >= 'a' && n[0] <= 'z' || n[0] >= '0' && n[0] <= '9') {
		return Key(n), true
	}
	return KeyNone, false
}

// AllKeys returns every canonical key, letters and digits first
func AllKeys() []Key {
	keys := make([]Key, 0, 36+len(named))
	for c := 'a'; c <= 'z'; c++ {
		keys = append(keys, Key(string(c)))
	}
	for c := '0'; c <= '9'; c++ {
		keys = append(keys, Key(string(c)))
	}
	for _, k := range []Key{
		KeySpace, KeyEscape, KeyEnter, KeyTab, KeyBackspace,
		KeyArrowUp, KeyArrowDown, KeyArrowLeft, KeyArrowRight,
		KeyF1, KeyF2, KeyF3, KeyF4, KeyF5, KeyF6, KeyF7, KeyF8, KeyF9, KeyF10, KeyF11, KeyF12,
	} {
		keys = append(keys, k)
	}
	return keys
}
