// Package renderer defines the display backends and the drawing decisions
// they share.
package renderer

import (
	"context"
	"image"

	"tileworld/pkg/engine/sprite"
	"tileworld/pkg/game/state"
)

// Backend is a display and input implementation. Implementations include
// the Ebiten window and the tcell terminal.
type Backend interface {
	// Name identifies the backend on the command line
	Name() string

	// Convert adapts a decoded image into a sheet the backend can draw from
	Convert(img image.Image) (sprite.Sheet, error)

	// Run drives the session until it is done, the context is cancelled or
	// a tick fails. Run registers its own teardown hooks on the session.
	Run(ctx context.Context, s *state.Session) error
}

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleLand
	StyleWater
	StyleUnknown
	StyleRegion
	StyleFocus
	StyleSubtle
)
