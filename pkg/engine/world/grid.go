package world

import (
	"fmt"
)

// Grid is the tile map: a fixed-size, row-major array of tile IDs
type Grid struct {
	tiles    []TileID
	rows     int
	cols     int
	tileSize int

	// revision increments on every mutation so derived caches can detect staleness
	revision uint64
}

// NewGrid creates a grid of rows x cols tiles, each tileSize pixels square.
// All tiles start as TileUnset.
func NewGrid(rows, cols, tileSize int) (*Grid, error) {
	if rows <= 0 || cols <= 0 || tileSize <= 0 {
		return nil, fmt.Errorf("world: new grid %dx%d@%d: %w", rows, cols, tileSize, ErrBadDimensions)
	}
	return &Grid{
		tiles:    make([]TileID, rows*cols),
		rows:     rows,
		cols:     cols,
		tileSize: tileSize,
	}, nil
}

// Rows returns the number of rows in the grid
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns in the grid
func (g *Grid) Cols() int {
	return g.cols
}

// TileSize returns the edge length of a tile in pixels
func (g *Grid) TileSize() int {
	return g.tileSize
}

// PixelWidth returns the width of the whole grid in pixels
func (g *Grid) PixelWidth() int {
	return g.cols * g.tileSize
}

// PixelHeight returns the height of the whole grid in pixels
func (g *Grid) PixelHeight() int {
	return g.rows * g.tileSize
}

// Revision returns a counter that changes whenever the grid is mutated
func (g *Grid) Revision() uint64 {
	return g.revision
}

// IsValidPosition checks if a row/col position is within grid bounds
func (g *Grid) IsValidPosition(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// TileAt returns the tile at the given position
func (g *Grid) TileAt(row, col int) (TileID, error) {
	if !g.IsValidPosition(row, col) {
		return TileUnset, fmt.Errorf("world: tile at (%d,%d) in %dx%d grid: %w", row, col, g.rows, g.cols, ErrOutOfBounds)
	}
	return g.tiles[row*g.cols+col], nil
}

// Set writes a single tile
func (g *Grid) Set(row, col int, id TileID) error {
	if !g.IsValidPosition(row, col) {
		return fmt.Errorf("world: set (%d,%d) in %dx%d grid: %w", row, col, g.rows, g.cols, ErrOutOfBounds)
	}
	g.tiles[row*g.cols+col] = id
	g.revision++
	return nil
}

// set writes a tile without bounds checks; callers validate first
func (g *Grid) set(row, col int, id TileID) {
	g.tiles[row*g.cols+col] = id
}

// Fill sets every tile in the grid to id
func (g *Grid) Fill(id TileID) {
	for i := range g.tiles {
		g.tiles[i] = id
	}
	g.revision++
}

// PlaceRectangle overwrites the inclusive rectangle from topLeft to bottomRight with id
func (g *Grid) PlaceRectangle(id TileID, topLeft, bottomRight Point) error {
	if err := g.checkRect(topLeft, bottomRight); err != nil {
		return fmt.Errorf("world: place rectangle: %w", err)
	}
	g.fillRect(id, topLeft.Row, topLeft.Col, bottomRight.Row, bottomRight.Col)
	g.revision++
	return nil
}

// fillRect writes an inclusive rectangle. Empty ranges write nothing.
func (g *Grid) fillRect(id TileID, row1, col1, row2, col2 int) {
	for row := row1; row <= row2; row++ {
		for col := col1; col <= col2; col++ {
			g.set(row, col, id)
		}
	}
}

// checkRect validates that both corners are in bounds and ordered
func (g *Grid) checkRect(topLeft, bottomRight Point) error {
	if !g.IsValidPosition(topLeft.Row, topLeft.Col) {
		return fmt.Errorf("top-left (%d,%d): %w", topLeft.Row, topLeft.Col, ErrOutOfBounds)
	}
	if !g.IsValidPosition(bottomRight.Row, bottomRight.Col) {
		return fmt.Errorf("bottom-right (%d,%d): %w", bottomRight.Row, bottomRight.Col, ErrOutOfBounds)
	}
	if bottomRight.Row < topLeft.Row || bottomRight.Col < topLeft.Col {
		return fmt.Errorf("(%d,%d)-(%d,%d): %w", topLeft.Row, topLeft.Col, bottomRight.Row, bottomRight.Col, ErrInvertedRect)
	}
	return nil
}

// ForEachTile iterates over all tiles in row-major order
func (g *Grid) ForEachTile(fn func(row, col int, id TileID)) {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			fn(row, col, g.tiles[row*g.cols+col])
		}
	}
}

// Count returns how many tiles satisfy the predicate
func (g *Grid) Count(pred func(id TileID) bool) int {
	n := 0
	for _, id := range g.tiles {
		if pred(id) {
			n++
		}
	}
	return n
}
