package input

import (
	"log/slog"
	"sort"
	"strings"
)

// Keymap binds action names to keys. An action whose key name could not be
// resolved is present with KeyNone and never fires.
type Keymap struct {
	bindings map[string]Key
}

// ActionName normalizes an action name: "key_play", "Key_Play" and "play" are the same action
func ActionName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	return strings.TrimPrefix(n, "key_")
}

// NewKeymap resolves every action's key name. Unknown names are logged and
// leave the action unbound rather than failing.
func NewKeymap(actions map[string]string, log *slog.Logger) Keymap {
	if log == nil {
		log = slog.Default()
	}
	km := Keymap{bindings: make(map[string]Key, len(actions))}
	for action, keyName := range actions {
		k, ok := ParseKey(keyName)
		if !ok {
			log.Warn("unknown key name, action left unbound", "action", action, "key", keyName)
		}
		km.bindings[ActionName(action)] = k
	}
	return km
}

// Key returns the key bound to an action
func (km Keymap) Key(action string) (Key, bool) {
	k, ok := km.bindings[ActionName(action)]
	if !ok || k == KeyNone {
		return KeyNone, false
	}
	return k, true
}

// Matches reports whether pressing k triggers the action
func (km Keymap) Matches(action string, k Key) bool {
	bound, ok := km.Key(action)
	return ok && k != KeyNone && bound == k
}

// Has reports whether the action is declared, bound or not
func (km Keymap) Has(action string) bool {
	_, ok := km.bindings[ActionName(action)]
	return ok
}

// Actions returns the declared action names in sorted order
func (km Keymap) Actions() []string {
	names := make([]string, 0, len(km.bindings))
	for a := range km.bindings {
		names = append(names, a)
	}
	sort.Strings(names)
	return names
}
