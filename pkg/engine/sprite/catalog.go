// Package sprite cuts named sprites and animations out of sheet images and
// advances animation frames over time.
package sprite

import (
	"fmt"
	"image"
	"time"
)

// Sheet is an image that can be sub-sampled. *ebiten.Image and the standard
// library's *image.RGBA both satisfy it.
type Sheet interface {
	Bounds() image.Rectangle
	SubImage(r image.Rectangle) image.Image
}

// Sprite is a registered static image or animation. Immutable after registration.
type Sprite struct {
	Name   string
	Frames []image.Image
	Rects  []image.Rectangle // source rectangle of each frame on the sheet
	Scale  float64

	// FrameDuration is zero for static sprites
	FrameDuration time.Duration
}

// Animated reports whether the sprite has more than one frame
func (s *Sprite) Animated() bool {
	return len(s.Frames) > 1
}

// Image returns the first frame
func (s *Sprite) Image() image.Image {
	return s.Frames[0]
}

// Size returns the on-screen size of one frame after scaling
func (s *Sprite) Size() (w, h float64) {
	r := s.Rects[0]
	return float64(r.Dx()) * s.Scale, float64(r.Dy()) * s.Scale
}

// FrameGrid lays out animation frames on a sheet starting at (X, Y)
type FrameGrid struct {
	X, Y           int
	FrameW, FrameH int
	Cols, Rows     int
}

// Frames returns the number of frames in the grid
func (g FrameGrid) Frames() int {
	return g.Cols * g.Rows
}

// Catalog maps names to sprites, remembering registration order
type Catalog struct {
	sprites map[string]*Sprite
	order   []string
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{sprites: make(map[string]*Sprite)}
}

// RegisterStatic cuts one w x h region at (x, y) out of sheet
func (c *Catalog) RegisterStatic(name string, sheet Sheet, x, y, w, h int, scale float64) error {
	if err := c.checkName(name); err != nil {
		return err
	}
	if w <= 0 || h <= 0 || scale <= 0 {
		return fmt.Errorf("sprite: register %q (%dx%d scale %v): %w", name, w, h, scale, ErrInvalidLayout)
	}
	r := image.Rect(x, y, x+w, y+h)
	if !r.In(sheet.Bounds()) {
		return fmt.Errorf("sprite: register %q %v on %v sheet: %w", name, r, sheet.Bounds(), ErrRegionOutsideSheet)
	}
	c.add(&Sprite{
		Name:   name,
		Frames: []image.Image{sheet.SubImage(r)},
		Rects:  []image.Rectangle{r},
		Scale:  scale,
	})
	return nil
}

// RegisterAnimation cuts grid.Cols*grid.Rows frames in row-major order
func (c *Catalog) RegisterAnimation(name string, sheet Sheet, grid FrameGrid, scale float64, frameDuration time.Duration) error {
	if err := c.checkName(name); err != nil {
		return err
	}
	if grid.FrameW <= 0 || grid.FrameH <= 0 || grid.Cols <= 0 || grid.Rows <= 0 || scale <= 0 || frameDuration <= 0 {
		return fmt.Errorf("sprite: register animation %q %+v: %w", name, grid, ErrInvalidLayout)
	}

	s := &Sprite{
		Name:          name,
		Frames:        make([]image.Image, 0, grid.Frames()),
		Rects:         make([]image.Rectangle, 0, grid.Frames()),
		Scale:         scale,
		FrameDuration: frameDuration,
	}
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			x := grid.X + col*grid.FrameW
			y := grid.Y + row*grid.FrameH
			r := image.Rect(x, y, x+grid.FrameW, y+grid.FrameH)
			if !r.In(sheet.Bounds()) {
				return fmt.Errorf("sprite: register animation %q frame %d %v on %v sheet: %w",
					name, len(s.Frames), r, sheet.Bounds(), ErrRegionOutsideSheet)
			}
			s.Frames = append(s.Frames, sheet.SubImage(r))
			s.Rects = append(s.Rects, r)
		}
	}
	c.add(s)
	return nil
}

// Lookup returns the sprite registered under name
func (c *Catalog) Lookup(name string) (*Sprite, error) {
	s, ok := c.sprites[name]
	if !ok {
		return nil, fmt.Errorf("sprite: lookup %q: %w", name, ErrSpriteNotFound)
	}
	return s, nil
}

// Names returns sprite names in registration order
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

// Len returns the number of registered sprites
func (c *Catalog) Len() int {
	return len(c.order)
}

func (c *Catalog) checkName(name string) error {
	if _, ok := c.sprites[name]; ok {
		return fmt.Errorf("sprite: register %q: %w", name, ErrDuplicateSprite)
	}
	return nil
}

func (c *Catalog) add(s *Sprite) {
	c.sprites[s.Name] = s
	c.order = append(c.order, s.Name)
}
