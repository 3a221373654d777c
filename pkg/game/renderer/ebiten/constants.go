package ebiten

import "image/color"

// Color palette
var (
	colorBackground = color.RGBA{0, 0, 0, 255}
	colorRegion     = color.RGBA{0, 128, 255, 255}  // menu buttons
	colorRegionText = color.RGBA{255, 255, 255, 255}
	colorFocus      = color.RGBA{255, 220, 100, 255} // keyboard focus outline
	colorText       = color.RGBA{200, 210, 245, 255}
	colorSubtle     = color.RGBA{120, 130, 180, 255}
	colorHUDPanel   = color.RGBA{30, 30, 50, 200}
)

const (
	regionFontSize = 24.0
	hudFontSize    = 14.0
	hudPadding     = 8
)
