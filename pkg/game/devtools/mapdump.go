// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"bufio"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"os"

	gcolor "github.com/gookit/color"

	"tileworld/pkg/engine/minimap"
	"tileworld/pkg/engine/world"
	"tileworld/pkg/game/renderer"
)

var (
	landStyle  = rgb(minimap.LandColor)
	waterStyle = rgb(minimap.WaterColor)
)

func rgb(c color.RGBA) gcolor.RGBColor {
	return gcolor.RGB(c.R, c.G, c.B)
}

// Step returns how many tiles one character covers so cols tiles fit in width characters
func Step(cols, width int) int {
	if width <= 0 || cols <= width {
		return 1
	}
	return (cols + width - 1) / width
}

// DumpMap writes a header line followed by the grid as glyphs, one
// character per step x step block of tiles. colored adds terminal colors.
func DumpMap(w io.Writer, g *world.Grid, width int, colored bool) error {
	bw := bufio.NewWriter(w)
	step := Step(g.Cols(), width)

	water := g.Count(world.TileID.IsWater)
	fmt.Fprintf(bw, "world: %dx%d tiles, tile_size: %d, water: %d, step: %d\n",
		g.Cols(), g.Rows(), g.TileSize(), water, step)

	for row := 0; row < g.Rows(); row += step {
		for col := 0; col < g.Cols(); col += step {
			id, err := g.TileAt(row, col)
			if err != nil {
				return fmt.Errorf("devtools: dump map: %w", err)
			}
			r, ts := renderer.Glyph(id)
			if !colored {
				bw.WriteRune(r)
				continue
			}
			switch ts {
			case renderer.StyleLand:
				bw.WriteString(landStyle.Sprint(string(r)))
			case renderer.StyleWater:
				bw.WriteString(waterStyle.Sprint(string(r)))
			default:
				bw.WriteRune(r)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteMinimapPNG saves the minimap overlay, viewport outline included, to path
func WriteMinimapPNG(path string, p *minimap.Projector, v *world.Viewport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("devtools: minimap png: %w", err)
	}
	if err := png.Encode(f, p.Compose(v)); err != nil {
		f.Close()
		return fmt.Errorf("devtools: minimap png: %w", err)
	}
	return f.Close()
}
