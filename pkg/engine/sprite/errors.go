package sprite

import "errors"

var (
	// ErrDuplicateSprite is returned when a sprite name is registered twice
	ErrDuplicateSprite = errors.New("sprite: duplicate name")

	// ErrSpriteNotFound is returned when looking up an unregistered name
	ErrSpriteNotFound = errors.New("sprite: not found")

	// ErrRegionOutsideSheet is returned when an extraction rectangle leaves the sheet
	ErrRegionOutsideSheet = errors.New("sprite: region outside sheet")

	// ErrInvalidLayout is returned for empty frames, zero grids or non-positive scale
	ErrInvalidLayout = errors.New("sprite: invalid layout")
)
