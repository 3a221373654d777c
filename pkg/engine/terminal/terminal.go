// Package terminal reports facts about the controlling terminal.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Size returns the width and height of the terminal attached to f,
// falling back to DefaultWidth x DefaultHeight when f is not a terminal.
func Size(f *os.File) (width, height int) {
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// GetSize returns the current size of stdout.
func GetSize() (width, height int) {
	return Size(os.Stdout)
}

// GetWidth returns the current terminal width.
func GetWidth() int {
	width, _ := GetSize()
	return width
}

// IsInteractive reports whether f is a terminal. Color output and the
// text backend are only enabled for interactive streams.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
