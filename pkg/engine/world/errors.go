package world

import "errors"

var (
	// ErrOutOfBounds is returned when a tile coordinate falls outside the grid
	ErrOutOfBounds = errors.New("world: coordinate out of bounds")

	// ErrInvertedRect is returned when a rectangle's bottom-right lies above or left of its top-left
	ErrInvertedRect = errors.New("world: inverted rectangle")

	// ErrBadWeights is returned when a populate distribution cannot be normalized
	ErrBadWeights = errors.New("world: invalid tile weights")

	// ErrBadDimensions is returned when a grid or viewport is created with non-positive sizes
	ErrBadDimensions = errors.New("world: dimensions must be positive")
)
