// Package minimap projects a tile grid onto a small overview bitmap and
// locates the viewport inside it.
package minimap

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"tileworld/pkg/engine/world"
)

// Fixed colors and geometry of the overlay
var (
	LandColor       = color.RGBA{194, 178, 128, 255}
	WaterColor      = color.RGBA{173, 216, 230, 255}
	BackgroundColor = color.RGBA{0, 0, 0, 255}
	PanelColor      = color.RGBA{50, 50, 50, 255}
	ViewportColor   = color.RGBA{255, 0, 0, 255}
)

const (
	// MapSize is the edge of the scaled map in screen pixels
	MapSize = 128
	// Padding separates the map from the panel edge
	Padding = 5
	// PanelSize is the edge of the backing panel
	PanelSize = MapSize + 2*Padding
	// Top is the panel's distance from the top of the screen
	Top = 10
	// Alpha is the opacity applied to the map over the panel
	Alpha = 120
)

// ColorFor returns the overview color of a tile
func ColorFor(id world.TileID) color.RGBA {
	switch id.Family() {
	case world.FamilyLand:
		return LandColor
	case world.FamilyWater:
		return WaterColor
	default:
		return BackgroundColor
	}
}

// Bitmap renders the grid at one pixel per tile
func Bitmap(g *world.Grid) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Cols(), g.Rows()))
	g.ForEachTile(func(row, col int, id world.TileID) {
		img.SetRGBA(col, row, ColorFor(id))
	})
	return img
}

// Scale resizes src to a size x size square using nearest-neighbour sampling
func Scale(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// Layout is where the overlay sits on a screen of a given width
type Layout struct {
	Panel image.Rectangle
	Map   image.Rectangle
}

// LayoutFor places the panel in the top-right corner of a screenWidth-wide screen
func LayoutFor(screenWidth int) Layout {
	px := screenWidth - PanelSize
	panel := image.Rect(px, Top, px+PanelSize, Top+PanelSize)
	mx, my := px+Padding, Top+Padding
	return Layout{
		Panel: panel,
		Map:   image.Rect(mx, my, mx+MapSize, my+MapSize),
	}
}

// Rect is a rectangle in minimap pixel space
type Rect struct {
	X, Y, W, H float64
}

// ViewportRect projects the viewport into a map of mapPx pixels per side
func ViewportRect(v *world.Viewport, mapPx int) Rect {
	g := v.Grid()
	ts := float64(g.TileSize())
	cols := float64(g.Cols())
	rows := float64(g.Rows())
	px := float64(mapPx)
	return Rect{
		X: v.X / ts / cols * px,
		Y: v.Y / ts / rows * px,
		W: float64(v.Width()) / ts / cols * px,
		H: float64(v.Height()) / ts / rows * px,
	}
}

// Projector caches the scaled bitmap of a grid and rebuilds it when the grid changes
type Projector struct {
	grid     *world.Grid
	revision uint64
	scaled   *image.RGBA
}

// NewProjector creates a projector for g
func NewProjector(g *world.Grid) *Projector {
	return &Projector{grid: g}
}

// Image returns the MapSize x MapSize overview of the grid
func (p *Projector) Image() *image.RGBA {
	if p.scaled == nil || p.revision != p.grid.Revision() {
		p.scaled = Scale(Bitmap(p.grid), MapSize)
		p.revision = p.grid.Revision()
	}
	return p.scaled
}

// Stale reports whether the next Image call will rebuild the bitmap
func (p *Projector) Stale() bool {
	return p.scaled == nil || p.revision != p.grid.Revision()
}

// Compose draws the complete overlay (panel, translucent map and viewport
// outline) into a PanelSize x PanelSize image.
func (p *Projector) Compose(v *world.Viewport) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, PanelSize, PanelSize))
	draw.Draw(out, out.Bounds(), image.NewUniform(PanelColor), image.Point{}, draw.Src)

	mapRect := image.Rect(Padding, Padding, Padding+MapSize, Padding+MapSize)
	mask := image.NewUniform(color.Alpha{A: Alpha})
	draw.DrawMask(out, mapRect, p.Image(), image.Point{}, mask, image.Point{}, draw.Over)

	r := ViewportRect(v, MapSize)
	strokeRect(out, Padding+int(r.X), Padding+int(r.Y), int(r.W), int(r.H), ViewportColor, mapRect)
	return out
}

// strokeRect draws a 1px outline, clipped to clip
func strokeRect(img *image.RGBA, x, y, w, h int, c color.RGBA, clip image.Rectangle) {
	set := func(px, py int) {
		if image.Pt(px, py).In(clip) {
			img.SetRGBA(px, py, c)
		}
	}
	for i := x; i < x+w; i++ {
		set(i, y)
		set(i, y+h-1)
	}
	for j := y; j < y+h; j++ {
		set(x, j)
		set(x+w-1, j)
	}
}
