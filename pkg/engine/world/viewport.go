package world

import (
	"fmt"
	"math"
)

// Viewport is the screen-sized window onto the grid, positioned in world pixels
type Viewport struct {
	grid *Grid

	// X and Y are the world pixel coordinates of the top-left corner
	X float64
	Y float64

	width  int
	height int
}

// Window is the range of tiles intersecting the viewport.
// End bounds are exclusive.
type Window struct {
	StartRow, StartCol int
	EndRow, EndCol     int

	// OffsetX and OffsetY position the first tile so partial edge tiles line up
	OffsetX, OffsetY float64
}

// Rows returns the number of tile rows in the window
func (w Window) Rows() int {
	return w.EndRow - w.StartRow
}

// Cols returns the number of tile columns in the window
func (w Window) Cols() int {
	return w.EndCol - w.StartCol
}

// NewViewport creates a viewport of width x height pixels onto the grid, positioned at the origin
func NewViewport(grid *Grid, width, height int) (*Viewport, error) {
	if grid == nil {
		return nil, fmt.Errorf("world: new viewport: nil grid")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("world: new viewport %dx%d: %w", width, height, ErrBadDimensions)
	}
	return &Viewport{grid: grid, width: width, height: height}, nil
}

// Width returns the viewport width in pixels
func (v *Viewport) Width() int {
	return v.width
}

// Height returns the viewport height in pixels
func (v *Viewport) Height() int {
	return v.height
}

// Grid returns the grid the viewport looks at
func (v *Viewport) Grid() *Grid {
	return v.grid
}

// MaxX returns the largest valid X; zero when the grid is narrower than the viewport
func (v *Viewport) MaxX() float64 {
	return float64(max(0, v.grid.PixelWidth()-v.width))
}

// MaxY returns the largest valid Y; zero when the grid is shorter than the viewport
func (v *Viewport) MaxY() float64 {
	return float64(max(0, v.grid.PixelHeight()-v.height))
}

// SetView moves the top-left corner to (x, y), clamped to the grid.
// A NaN or infinite coordinate leaves that axis where it is.
func (v *Viewport) SetView(x, y float64) {
	if finite(x) {
		v.X = clamp(x, 0, v.MaxX())
	}
	if finite(y) {
		v.Y = clamp(y, 0, v.MaxY())
	}
}

// MoveView shifts the viewport by (dx, dy) pixels, clamped to the grid
func (v *Viewport) MoveView(dx, dy float64) {
	v.SetView(v.X+dx, v.Y+dy)
}

// VisibleWindow returns every tile that intersects the viewport
func (v *Viewport) VisibleWindow() Window {
	ts := float64(v.grid.TileSize())

	startCol := int(math.Floor(v.X / ts))
	startRow := int(math.Floor(v.Y / ts))
	endCol := int(math.Floor((v.X+float64(v.width))/ts)) + 1
	endRow := int(math.Floor((v.Y+float64(v.height))/ts)) + 1

	return Window{
		StartRow: clampInt(startRow, 0, v.grid.Rows()),
		StartCol: clampInt(startCol, 0, v.grid.Cols()),
		EndRow:   clampInt(endRow, 0, v.grid.Rows()),
		EndCol:   clampInt(endCol, 0, v.grid.Cols()),
		OffsetX:  -math.Mod(v.X, ts),
		OffsetY:  -math.Mod(v.Y, ts),
	}
}

// TileAtScreen converts a screen pixel inside the viewport to a tile position.
// ok is false when the point is off the grid.
func (v *Viewport) TileAtScreen(px, py int) (row, col int, ok bool) {
	ts := float64(v.grid.TileSize())
	col = int(math.Floor((v.X + float64(px)) / ts))
	row = int(math.Floor((v.Y + float64(py)) / ts))
	return row, col, v.grid.IsValidPosition(row, col)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
