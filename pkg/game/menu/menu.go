// Package menu turns the clickable regions of the current scene into menu
// items and lets the keyboard drive them.
package menu

import (
	"github.com/leonelquinteros/gotext"

	"tileworld/pkg/engine/input"
	"tileworld/pkg/engine/scene"
)

// MenuItem represents a single item in a menu.
type MenuItem interface {
	// GetLabel returns the display label for this menu item.
	GetLabel() string
	// IsSelectable returns whether this item can be selected.
	IsSelectable() bool
	// GetHelpText returns optional help text for this item.
	GetHelpText() string
}

// RegionItem is a button backed by a named scene region
type RegionItem struct {
	Region scene.NamedRegion
}

// GetLabel returns the translated region name
func (r RegionItem) GetLabel() string {
	return translateName(r.Region.Name)
}

// translateName looks a config-supplied name up in the loaded catalogs.
// The name is never used as a format string.
func translateName(name string) string {
	for _, l := range gotext.GetLocales() {
		if tr, ok := l.GetTranslations()[name]; ok && tr.IsTranslated() {
			return tr.Get()
		}
	}
	return name
}

// IsSelectable reports whether the button has an area to click
func (r RegionItem) IsSelectable() bool {
	return r.Region.Rect.Width() > 0 && r.Region.Rect.Height() > 0
}

// GetHelpText names the state the button leads to
func (r RegionItem) GetHelpText() string {
	return gotext.Get("Go to %s", r.Region.Target)
}

// Center returns the middle of the button in screen pixels
func (r RegionItem) Center() (x, y int) {
	rect := r.Region.Rect
	return (rect.X1 + rect.X2) / 2, (rect.Y1 + rect.Y2) / 2
}

// Items returns one item per active region of the machine's current state
func Items(m *scene.Machine) []RegionItem {
	regions := m.ActiveRegions()
	items := make([]RegionItem, len(regions))
	for i, r := range regions {
		items[i] = RegionItem{Region: r}
	}
	return items
}

// Cursor is keyboard focus over a list of items. Tab and the down arrow move
// forward, the up arrow moves back, both wrapping past the ends. Enter
// activates the focused item.
type Cursor struct {
	selected int
}

// Selected returns the focused index, clamped to a list of n items
func (c *Cursor) Selected(n int) int {
	if n == 0 {
		return -1
	}
	if c.selected >= n || c.selected < 0 {
		c.selected = 0
	}
	return c.selected
}

// Reset moves focus back to the first item
func (c *Cursor) Reset() {
	c.selected = 0
}

// Handle applies a key to the cursor. When Enter activates a selectable item
// it returns a click at that item's centre for the machine to handle.
func (c *Cursor) Handle(items []RegionItem, k input.Key) (input.Event, bool) {
	n := len(items)
	if n == 0 {
		return input.Event{}, false
	}
	c.Selected(n)

	switch k {
	case input.KeyTab, input.KeyArrowDown:
		c.move(items, 1)
	case input.KeyArrowUp:
		c.move(items, -1)
	case input.KeyEnter:
		item := items[c.selected]
		if !item.IsSelectable() {
			return input.Event{}, false
		}
		x, y := item.Center()
		return input.Click(x, y), true
	}
	return input.Event{}, false
}

// move steps to the next selectable item in direction dir, wrapping around
func (c *Cursor) move(items []RegionItem, dir int) {
	n := len(items)
	for step := 1; step <= n; step++ {
		i := ((c.selected+dir*step)%n + n) % n
		if items[i].IsSelectable() {
			c.selected = i
			return
		}
	}
}
