// Package assets describes the bundled sprite sheets and registers their
// sprites with a catalog.
package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"time"

	"tileworld/pkg/engine/sprite"
	"tileworld/pkg/engine/world"
	"tileworld/pkg/game/config"
)

// ExplosionSprite is the animation spawned by clicks during play
const ExplosionSprite = "explosion1"

// tileSpriteSize is the edge of one tile on the water sheet
const tileSpriteSize = 32

// region is a named cell on a sheet
type region struct {
	name string
	x, y int
}

// tileRegions are the 32x32 cells of the water sheet, in registration order
var tileRegions = []region{
	{"ground1", 0, 0},
	{"water_lt", 256, 32},
	{"water_lm", 224, 320},
	{"water_lb", 224, 96},
	{"water_mt", 288, 32},
	{"water_mm", 288, 64},
	{"water_mb", 256, 416},
	{"water_rt", 320, 32},
	{"water_rm", 544, 378},
	{"water_rb", 352, 96},
	{"water_v", 480, 160},
	{"water_h", 512, 224},
}

// explosionGrid is the frame layout of the explosion on the effects sheet
var explosionGrid = sprite.FrameGrid{FrameW: 63, FrameH: 64, Cols: 12, Rows: 4}

// tileSprites maps tile IDs to sprite names
var tileSprites = map[world.TileID]string{
	world.TileGround:  "ground1",
	world.TileWaterLT: "water_lt",
	world.TileWaterLM: "water_lm",
	world.TileWaterLB: "water_lb",
	world.TileWaterMT: "water_mt",
	world.TileWaterMM: "water_mm",
	world.TileWaterMB: "water_mb",
	world.TileWaterRT: "water_rt",
	world.TileWaterRM: "water_rm",
	world.TileWaterRB: "water_rb",
	world.TileWaterV:  "water_v",
	world.TileWaterH:  "water_h",
}

// SpriteFor returns the sprite drawn for a tile ID
func SpriteFor(id world.TileID) (string, bool) {
	name, ok := tileSprites[id]
	return name, ok
}

// Sheets are the decoded sprite sheets
type Sheets struct {
	Tiles   sprite.Sheet
	Effects sprite.Sheet
}

// Register adds every tile sprite and the explosion animation to c.
// Tiles are scaled to tileSize; fps sets the explosion frame rate.
func Register(c *sprite.Catalog, sheets Sheets, tileSize int, fps float64) error {
	scale := float64(tileSize) / tileSpriteSize
	for _, r := range tileRegions {
		if err := c.RegisterStatic(r.name, sheets.Tiles, r.x, r.y, tileSpriteSize, tileSpriteSize, scale); err != nil {
			return fmt.Errorf("assets: %w", err)
		}
	}
	if err := c.RegisterAnimation(ExplosionSprite, sheets.Effects, explosionGrid, 1, FrameDuration(fps)); err != nil {
		return fmt.Errorf("assets: %w", err)
	}
	return nil
}

// FrameDuration converts a frame rate to the time each frame is shown.
// Non-positive rates fall back to 10 frames per second.
func FrameDuration(fps float64) time.Duration {
	if fps <= 0 {
		fps = 10
	}
	return time.Duration(float64(time.Second) / fps)
}

// Decode reads and decodes an image file
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return img, nil
}

// ErrNotSheet is returned for decoded images that cannot be sub-sampled
var ErrNotSheet = errors.New("assets: image cannot be cut into sprites")

// AsSheet returns img as a sheet when its concrete type supports SubImage,
// which every standard library image type does.
func AsSheet(img image.Image) (sprite.Sheet, error) {
	sheet, ok := img.(sprite.Sheet)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotSheet, img)
	}
	return sheet, nil
}

// LoadSheets decodes the tile and effect sheets and hands each to convert.
// A nil convert keeps the decoded images.
func LoadSheets(a config.Assets, convert func(image.Image) (sprite.Sheet, error)) (Sheets, error) {
	if convert == nil {
		convert = AsSheet
	}
	var sheets Sheets
	for _, s := range []struct {
		path string
		dst  *sprite.Sheet
	}{
		{a.Tiles, &sheets.Tiles},
		{a.Effects, &sheets.Effects},
	} {
		img, err := Decode(s.path)
		if err != nil {
			return Sheets{}, err
		}
		sheet, err := convert(img)
		if err != nil {
			return Sheets{}, fmt.Errorf("assets: %s: %w", s.path, err)
		}
		*s.dst = sheet
	}
	return sheets, nil
}
