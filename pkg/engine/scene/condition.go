// Package scene provides a data-driven finite state machine for screen flow.
// States come from a transition table; transitions fire on key presses,
// clicks inside named regions, or automatically on entry.
package scene

import (
	"fmt"
	"strings"
)

// ConditionKind tags the variant held by a Condition
type ConditionKind int

const (
	// CondAuto fires as soon as its source state becomes current
	CondAuto ConditionKind = iota
	// CondKey fires on the down-edge of the key bound to an action
	CondKey
	// CondRegion fires on a primary click inside a named screen rectangle
	CondRegion
)

// Condition is what makes a transition fire. Name is the action for CondKey
// and the region for CondRegion.
type Condition struct {
	Kind ConditionKind
	Name string
}

// Auto returns the unconditional condition
func Auto() Condition {
	return Condition{Kind: CondAuto}
}

// OnKey returns a condition matching the key bound to action
func OnKey(action string) Condition {
	return Condition{Kind: CondKey, Name: action}
}

// OnRegion returns a condition matching clicks inside the named region
func OnRegion(name string) Condition {
	return Condition{Kind: CondRegion, Name: name}
}

// String renders the condition in transition-table syntax
func (c Condition) String() string {
	switch c.Kind {
	case CondAuto:
		return "auto"
	case CondKey:
		return "key_" + c.Name
	case CondRegion:
		return "region_" + c.Name
	default:
		return fmt.Sprintf("condition(%d)", int(c.Kind))
	}
}

// ParseCondition parses one condition: "auto", "key_<action>", or
// "region_<name>". A space may replace the underscore ("region play").
func ParseCondition(s string) (Condition, error) {
	text := strings.TrimSpace(s)
	lower := strings.ToLower(text)

	if lower == "auto" {
		return Auto(), nil
	}
	for _, p := range []struct {
		prefix string
		kind   ConditionKind
	}{
		{"key", CondKey},
		{"region", CondRegion},
	} {
		if !strings.HasPrefix(lower, p.prefix) {
			continue
		}
		rest := text[len(p.prefix):]
		if rest == "" || (rest[0] != '_' && rest[0] != ' ') {
			continue
		}
		name := strings.TrimSpace(rest[1:])
		if name == "" {
			return Condition{}, fmt.Errorf("scene: condition %q: missing name: %w", s, ErrBadCondition)
		}
		if p.kind == CondKey {
			name = strings.ToLower(name)
		}
		return Condition{Kind: p.kind, Name: name}, nil
	}
	return Condition{}, fmt.Errorf("scene: condition %q: %w", s, ErrBadCondition)
}

// ParseConditions parses a "|"-separated list of alternative conditions
func ParseConditions(s string) ([]Condition, error) {
	parts := strings.Split(s, "|")
	conds := make([]Condition, 0, len(parts))
	for _, part := range parts {
		c, err := ParseCondition(part)
		if err != nil {
			return nil, err
		}
		conds = append(conds, c)
	}
	return conds, nil
}
