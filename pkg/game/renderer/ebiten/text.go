package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// drawColoredText draws str with its top-left corner at (x, y)
func drawColoredText(screen *ebiten.Image, str string, x, y float64, col color.Color, face *text.GoTextFace) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, str, face, op)
}

// drawCenteredText draws str centred on (cx, cy)
func drawCenteredText(screen *ebiten.Image, str string, cx, cy float64, col color.Color, face *text.GoTextFace) {
	w, h := text.Measure(str, face, 0)
	drawColoredText(screen, str, cx-w/2, cy-h/2, col, face)
}
