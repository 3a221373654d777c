package world

import (
	"fmt"
	"math/rand"
)

// LakeTiles maps each of the nine lake roles to a tile ID
type LakeTiles struct {
	LeftTop, MiddleTop, RightTop          TileID
	LeftMiddle, Center, RightMiddle       TileID
	LeftBottom, MiddleBottom, RightBottom TileID
}

// DefaultLakeTiles is the water family layout used by the bundled tileset
var DefaultLakeTiles = LakeTiles{
	LeftTop:      TileWaterLT,
	MiddleTop:    TileWaterMT,
	RightTop:     TileWaterRT,
	LeftMiddle:   TileWaterLM,
	Center:       TileWaterMM,
	RightMiddle:  TileWaterRM,
	LeftBottom:   TileWaterLB,
	MiddleBottom: TileWaterMB,
	RightBottom:  TileWaterRB,
}

// Lake describes a rectangular body of water in tile coordinates (both corners inclusive)
type Lake struct {
	TopLeft     Point
	BottomRight Point
	Tiles       LakeTiles
}

// Cells returns the number of tiles the lake covers
func (l Lake) Cells() int {
	return (l.BottomRight.Row - l.TopLeft.Row + 1) * (l.BottomRight.Col - l.TopLeft.Col + 1)
}

// PlaceLake stamps a lake onto the grid.
// Corners are always written. Edges and centre need a gap between the corner
// columns and between the corner rows; a lake two tiles (or fewer) wide or tall
// is corners only.
func (g *Grid) PlaceLake(l Lake) error {
	if err := g.checkRect(l.TopLeft, l.BottomRight); err != nil {
		return fmt.Errorf("world: place lake: %w", err)
	}

	row1, col1 := l.TopLeft.Row, l.TopLeft.Col
	row2, col2 := l.BottomRight.Row, l.BottomRight.Col
	t := l.Tiles

	g.set(row1, col1, t.LeftTop)
	g.set(row1, col2, t.RightTop)
	g.set(row2, col1, t.LeftBottom)
	g.set(row2, col2, t.RightBottom)

	wide := col2 > col1+1
	tall := row2 > row1+1
	if !wide || !tall {
		g.revision++
		return nil
	}

	g.fillRect(t.MiddleTop, row1, col1+1, row1, col2-1)
	g.fillRect(t.MiddleBottom, row2, col1+1, row2, col2-1)
	g.fillRect(t.LeftMiddle, row1+1, col1, row2-1, col1)
	g.fillRect(t.RightMiddle, row1+1, col2, row2-1, col2)
	g.fillRect(t.Center, row1+1, col1+1, row2-1, col2-1)

	g.revision++
	return nil
}

// LakeSize bounds the random dimensions of a lake, in tiles (inclusive)
type LakeSize struct {
	MinRows, MaxRows int
	MinCols, MaxCols int
}

// RandomLake picks a lake of random size at a random in-bounds position.
// Sizes larger than the grid are clamped to fit.
func (g *Grid) RandomLake(rng *rand.Rand, size LakeSize, tiles LakeTiles) Lake {
	rows := randBetween(rng, size.MinRows, size.MaxRows)
	cols := randBetween(rng, size.MinCols, size.MaxCols)
	rows = min(max(rows, 1), g.rows)
	cols = min(max(cols, 1), g.cols)

	row := rng.Intn(g.rows - rows + 1)
	col := rng.Intn(g.cols - cols + 1)

	return Lake{
		TopLeft:     Point{Row: row, Col: col},
		BottomRight: Point{Row: row + rows - 1, Col: col + cols - 1},
		Tiles:       tiles,
	}
}

// randBetween returns a uniform integer in [lo, hi]; an inverted range yields lo
func randBetween(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
