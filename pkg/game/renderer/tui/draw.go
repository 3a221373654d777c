package tui

import (
	"image/color"

	"github.com/gdamore/tcell/v2"

	"tileworld/pkg/engine/minimap"
	"tileworld/pkg/engine/sprite"
	"tileworld/pkg/game/menu"
	"tileworld/pkg/game/renderer"
	"tileworld/pkg/game/state"
)

// minimapCols is the widest the minimap panel gets, in cells
const minimapCols = 32

var (
	landColor  = rgb(minimap.LandColor)
	waterColor = rgb(minimap.WaterColor)
)

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// styleFor maps a shared text style to a terminal style
func styleFor(ts renderer.TextStyle) tcell.Style {
	base := tcell.StyleDefault.Background(tcell.ColorBlack)
	switch ts {
	case renderer.StyleLand:
		return base.Foreground(landColor)
	case renderer.StyleWater:
		return base.Foreground(waterColor)
	case renderer.StyleRegion:
		return base.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	case renderer.StyleFocus:
		return base.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack).Bold(true)
	case renderer.StyleSubtle:
		return base.Foreground(tcell.ColorGray)
	default:
		return base.Foreground(tcell.ColorWhite)
	}
}

// cellSize returns how many screen pixels one cell covers
func (b *Backend) cellSize() (w, h float64) {
	cols, rows := b.screen.Size()
	cols, rows = max(cols, 1), max(rows, 1)
	return float64(b.cfg.GameInfo.ScreenWidth) / float64(cols),
		float64(b.cfg.GameInfo.ScreenHeight) / float64(rows)
}

// toPixel returns the screen pixel at the centre of a cell
func (b *Backend) toPixel(cx, cy int) (px, py int) {
	w, h := b.cellSize()
	return int((float64(cx) + 0.5) * w), int((float64(cy) + 0.5) * h)
}

// toCell returns the cell containing a screen pixel
func (b *Backend) toCell(px, py float64) (cx, cy int) {
	w, h := b.cellSize()
	return int(px / w), int(py / h)
}

// draw renders the session into the screen buffer
func (b *Backend) draw(s *state.Session) {
	b.screen.Clear()
	if s.Playing() {
		b.drawWorld(s)
		b.drawEffects(s)
		if s.ShowMinimap {
			b.drawMinimap(s)
		}
	} else {
		b.drawRegions(s)
	}
	b.drawHUD(s)
}

// drawWorld samples the tile under the centre of every cell
func (b *Backend) drawWorld(s *state.Session) {
	cols, rows := b.screen.Size()
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			px, py := b.toPixel(cx, cy)
			row, col, ok := s.View.TileAtScreen(px, py)
			if !ok {
				continue
			}
			id, err := s.Grid.TileAt(row, col)
			if err != nil {
				continue
			}
			r, ts := renderer.Glyph(id)
			b.screen.SetContent(cx, cy, r, nil, styleFor(ts))
		}
	}
}

func (b *Backend) drawEffects(s *state.Session) {
	style := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorOrangeRed).Bold(true)
	s.Effects.Each(func(p *sprite.Player) {
		cx, cy := b.toCell(p.X, p.Y)
		b.screen.SetContent(cx, cy, renderer.GlyphEffect, nil, style)
	})
}

// drawMinimap draws a coarse overview in the top-right corner with the
// viewport highlighted
func (b *Backend) drawMinimap(s *state.Session) {
	cols, rows := b.screen.Size()
	w := min(minimapCols, cols/3)
	h := min(w/2, rows/2)
	if w < 4 || h < 2 {
		return
	}
	left := cols - w

	img := s.Projector.Image()
	vr := minimap.ViewportRect(s.View, minimap.MapSize)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			mx := (x*minimap.MapSize + minimap.MapSize/2) / w
			my := (y*minimap.MapSize + minimap.MapSize/2) / h
			c := img.RGBAAt(mx, my)

			r, ts := ' ', renderer.StyleNormal
			switch c {
			case minimap.LandColor:
				r, ts = renderer.GlyphLand, renderer.StyleLand
			case minimap.WaterColor:
				r, ts = renderer.GlyphWater, renderer.StyleWater
			}
			style := styleFor(ts)
			if float64(mx) >= vr.X && float64(mx) < vr.X+vr.W && float64(my) >= vr.Y && float64(my) < vr.Y+vr.H {
				style = style.Reverse(true)
			}
			b.screen.SetContent(left+x, y, r, nil, style)
		}
	}
}

// drawRegions draws the active regions as labelled buttons
func (b *Backend) drawRegions(s *state.Session) {
	items := menu.Items(s.Machine)
	focused := s.Menu.Selected(len(items))

	for i, item := range items {
		ts := renderer.StyleRegion
		if i == focused {
			ts = renderer.StyleFocus
		}
		style := styleFor(ts)

		r := item.Region.Rect
		x1, y1 := b.toCell(float64(r.X1), float64(r.Y1))
		x2, y2 := b.toCell(float64(r.X2), float64(r.Y2))
		for y := y1; y <= y2; y++ {
			for x := x1; x <= x2; x++ {
				b.screen.SetContent(x, y, ' ', nil, style)
			}
		}
		label := []rune(item.GetLabel())
		lx := x1 + (x2-x1+1-len(label))/2
		b.drawText(max(lx, x1), (y1+y2)/2, string(label), style)
	}

	if focused >= 0 {
		_, rows := b.screen.Size()
		b.drawText(0, rows-1, items[focused].GetHelpText(), styleFor(renderer.StyleSubtle))
	}
}

func (b *Backend) drawHUD(s *state.Session) {
	for i, line := range renderer.HUDLines(s) {
		ts := renderer.StyleNormal
		if i > 1 {
			ts = renderer.StyleSubtle
		}
		b.drawText(0, i, line, styleFor(ts))
	}
}

func (b *Backend) drawText(x, y int, str string, style tcell.Style) {
	for i, r := range []rune(str) {
		b.screen.SetContent(x+i, y, r, nil, style)
	}
}
