package renderer

import (
	"testing"

	"tileworld/pkg/engine/input"
	"tileworld/pkg/engine/world"
	"tileworld/pkg/game/config"
	"tileworld/pkg/game/state"
)

func TestGlyph(t *testing.T) {
	tests := []struct {
		id    world.TileID
		glyph rune
		style TextStyle
	}{
		{world.TileGround, GlyphLand, StyleLand},
		{world.TileWaterMM, GlyphWater, StyleWater},
		{world.TileWaterV, '|', StyleWater},
		{world.TileWaterH, '-', StyleWater},
		{world.TileUnset, GlyphUnknown, StyleUnknown},
		{999, GlyphUnknown, StyleUnknown},
	}
	for _, tt := range tests {
		g, s := Glyph(tt.id)
		if g != tt.glyph || s != tt.style {
			t.Errorf("Glyph(%d) = (%q, %d), want (%q, %d)", tt.id, g, s, tt.glyph, tt.style)
		}
	}
}

func TestHUDLines(t *testing.T) {
	g, _ := world.NewGrid(128, 128, 32)
	g.Fill(world.TileGround)
	s, err := state.New(state.Options{Config: config.Default(), Grid: g})
	if err != nil {
		t.Fatalf("state.New error: %v", err)
	}

	lines := HUDLines(s)
	if lines[0] != "State: main_menu" {
		t.Errorf("first line = %q, want State: main_menu", lines[0])
	}

	_ = s.Tick(input.Frame{Events: []input.Event{input.KeyDown("p")}})
	lines = HUDLines(s)
	if lines[1] != "Tile: Land" {
		t.Errorf("second line in play = %q, want Tile: Land", lines[1])
	}
}
