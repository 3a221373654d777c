package renderer

import (
	"github.com/leonelquinteros/gotext"

	"tileworld/pkg/engine/world"
	"tileworld/pkg/game/state"
)

// Glyphs for text renderings of the world
const (
	GlyphLand    = '.'
	GlyphWater   = '~'
	GlyphUnknown = ' '
	GlyphEffect  = '*'
)

// Glyph returns the character and style used for a tile in text output
func Glyph(id world.TileID) (rune, TextStyle) {
	switch id.Family() {
	case world.FamilyLand:
		return GlyphLand, StyleLand
	case world.FamilyWater:
		if id == world.TileWaterV {
			return '|', StyleWater
		}
		if id == world.TileWaterH {
			return '-', StyleWater
		}
		return GlyphWater, StyleWater
	default:
		return GlyphUnknown, StyleUnknown
	}
}

// HUDLines are the status lines drawn over the scene: the current state,
// the tile under the pointer while playing, and recent messages.
func HUDLines(s *state.Session) []string {
	lines := []string{gotext.Get("State: %s", s.Machine.Current())}
	if s.Playing() {
		lines = append(lines, gotext.Get("Tile: %s", s.TileLabel(s.MouseX, s.MouseY)))
	}
	return append(lines, s.Messages...)
}
