// Package world provides generic 2D grid-based world primitives.
// These are engine-level constructs usable by any tile-based game.
package world

// TileID identifies the terrain stored in a grid cell
type TileID int

// Tile ID families. Water sub-IDs encode the role of the tile inside a lake.
const (
	TileUnset TileID = 0

	LandMin  TileID = 100
	LandMax  TileID = 200 // exclusive
	WaterMin TileID = 200
	WaterMax TileID = 300 // exclusive

	TileGround TileID = 100

	TileWaterLT TileID = 200 // left-top corner
	TileWaterLM TileID = 201 // left edge
	TileWaterLB TileID = 202 // left-bottom corner
	TileWaterMT TileID = 203 // top edge
	TileWaterMM TileID = 204 // centre
	TileWaterMB TileID = 205 // bottom edge
	TileWaterRT TileID = 206 // right-top corner
	TileWaterRM TileID = 207 // right edge
	TileWaterRB TileID = 208 // right-bottom corner
	TileWaterV  TileID = 209 // vertical channel
	TileWaterH  TileID = 210 // horizontal channel
)

// Family is the terrain class of a tile ID
type Family int

const (
	FamilyUnknown Family = iota
	FamilyLand
	FamilyWater
)

// String returns the catalogue key for a family
func (f Family) String() string {
	switch f {
	case FamilyLand:
		return "TILE_LAND"
	case FamilyWater:
		return "TILE_WATER"
	default:
		return "TILE_UNKNOWN"
	}
}

// Family returns the terrain class of the tile
func (id TileID) Family() Family {
	switch {
	case id >= LandMin && id < LandMax:
		return FamilyLand
	case id >= WaterMin && id < WaterMax:
		return FamilyWater
	default:
		return FamilyUnknown
	}
}

// IsLand reports whether the tile is in the land family
func (id TileID) IsLand() bool {
	return id.Family() == FamilyLand
}

// IsWater reports whether the tile is in the water family
func (id TileID) IsWater() bool {
	return id.Family() == FamilyWater
}

// Point is a tile coordinate
type Point struct {
	Row int
	Col int
}
