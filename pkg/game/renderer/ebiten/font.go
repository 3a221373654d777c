package ebiten

import (
	"bytes"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// loadFonts parses the bundled Go Regular face
func (b *Backend) loadFonts() error {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return err
	}
	b.fontSource = src
	return nil
}

// getRegionFontFace returns a cached face for menu button labels
func (b *Backend) getRegionFontFace() *text.GoTextFace {
	if b.cachedRegionFace == nil {
		b.cachedRegionFace = &text.GoTextFace{Source: b.fontSource, Size: regionFontSize}
	}
	return b.cachedRegionFace
}

// getHUDFontFace returns a cached face for status lines
func (b *Backend) getHUDFontFace() *text.GoTextFace {
	if b.cachedHUDFace == nil {
		b.cachedHUDFace = &text.GoTextFace{Source: b.fontSource, Size: hudFontSize}
	}
	return b.cachedHUDFace
}
