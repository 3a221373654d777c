package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leonelquinteros/gotext"

	"tileworld/pkg/engine/minimap"
	"tileworld/pkg/engine/sprite"
	"tileworld/pkg/engine/world"
	"tileworld/pkg/game/assets"
	"tileworld/pkg/game/menu"
	"tileworld/pkg/game/renderer"
)

// tileImage returns the sprite for a tile, or nil when none is registered
func (b *Backend) tileImage(id world.TileID) (*ebiten.Image, float64) {
	name, ok := assets.SpriteFor(id)
	if !ok {
		return nil, 0
	}
	spr, err := b.catalog.Lookup(name)
	if err != nil {
		return nil, 0
	}
	img, ok := spr.Image().(*ebiten.Image)
	if !ok {
		return nil, 0
	}
	return img, spr.Scale
}

// drawWorld draws the visible tiles. Tiles without a sprite are filled with
// their overview color.
func (b *Backend) drawWorld(screen *ebiten.Image) {
	s := b.session
	win := s.View.VisibleWindow()
	ts := float64(s.Grid.TileSize())

	for row := win.StartRow; row < win.EndRow; row++ {
		for col := win.StartCol; col < win.EndCol; col++ {
			id, err := s.Grid.TileAt(row, col)
			if err != nil {
				continue
			}
			x := win.OffsetX + float64(col-win.StartCol)*ts
			y := win.OffsetY + float64(row-win.StartRow)*ts

			img, scale := b.tileImage(id)
			if img == nil {
				if id == world.TileUnset {
					continue
				}
				vector.DrawFilledRect(screen, float32(x), float32(y), float32(ts), float32(ts), minimap.ColorFor(id), false)
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(scale, scale)
			op.GeoM.Translate(x, y)
			screen.DrawImage(img, op)
		}
	}
}

// drawEffects draws each active animation centred on its position
func (b *Backend) drawEffects(screen *ebiten.Image) {
	b.session.Effects.Each(func(p *sprite.Player) {
		img, ok := p.Frame().(*ebiten.Image)
		if !ok {
			return
		}
		w, h := p.Sprite.Size()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(p.Sprite.Scale, p.Sprite.Scale)
		if p.FlipH {
			op.GeoM.Scale(-1, 1)
			op.GeoM.Translate(w, 0)
		}
		op.GeoM.Translate(p.X-w/2, p.Y-h/2)
		screen.DrawImage(img, op)
	})
}

// drawMinimap composes the overlay on the CPU and uploads it
func (b *Backend) drawMinimap(screen *ebiten.Image) {
	s := b.session
	overlay := s.Projector.Compose(s.View)
	target := b.minimapTarget()
	target.WritePixels(overlay.Pix)

	layout := minimap.LayoutFor(b.cfg.GameInfo.ScreenWidth)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(layout.Panel.Min.X), float64(layout.Panel.Min.Y))
	screen.DrawImage(target, op)
}

// drawRegions draws the active regions as labelled buttons
func (b *Backend) drawRegions(screen *ebiten.Image) {
	items := menu.Items(b.session.Machine)
	focused := b.session.Menu.Selected(len(items))
	face := b.getRegionFontFace()

	for i, item := range items {
		r := item.Region.Rect
		x, y := float32(r.X1), float32(r.Y1)
		w, h := float32(r.Width()), float32(r.Height())
		vector.DrawFilledRect(screen, x, y, w, h, colorRegion, false)
		if i == focused {
			vector.StrokeRect(screen, x-2, y-2, w+4, h+4, 2, colorFocus, false)
		}
		cx, cy := item.Center()
		drawCenteredText(screen, item.GetLabel(), float64(cx), float64(cy), colorRegionText, face)
	}

	if focused >= 0 {
		hint := items[focused].GetHelpText()
		drawCenteredText(screen, hint, float64(b.cfg.GameInfo.ScreenWidth)/2,
			float64(b.cfg.GameInfo.ScreenHeight)-hudFontSize*2, colorSubtle, b.getHUDFontFace())
	}
}

// drawHUD draws the status lines in the top-left corner
func (b *Backend) drawHUD(screen *ebiten.Image) {
	face := b.getHUDFontFace()
	lines := renderer.HUDLines(b.session)
	lineHeight := hudFontSize + 4

	panelH := float32(len(lines))*float32(lineHeight) + 2*hudPadding
	vector.DrawFilledRect(screen, 0, 0, 260, panelH, colorHUDPanel, false)
	for i, line := range lines {
		col := colorText
		if i > 1 {
			col = colorSubtle
		}
		drawColoredText(screen, line, hudPadding, hudPadding+float64(i)*lineHeight, col, face)
	}
	if len(lines) == 0 {
		drawColoredText(screen, gotext.Get("No status"), hudPadding, hudPadding, colorSubtle, face)
	}
}
