// Package ebiten provides the Ebiten-based 2D graphical backend.
package ebiten

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"tileworld/pkg/engine/logger"
	"tileworld/pkg/engine/minimap"
	"tileworld/pkg/engine/sprite"
	"tileworld/pkg/game/config"
	"tileworld/pkg/game/state"
)

// Backend runs a session in an Ebiten window
type Backend struct {
	cfg config.Config
	log *slog.Logger

	session *state.Session
	ctx     context.Context
	tickErr error

	catalog *sprite.Catalog

	fontSource       *text.GoTextFaceSource
	cachedRegionFace *text.GoTextFace
	cachedHUDFace    *text.GoTextFace

	minimapImage *ebiten.Image
	windowLogged bool
}

// New creates the backend. catalog holds the sprites drawn for tiles and effects.
func New(cfg config.Config, catalog *sprite.Catalog) *Backend {
	return &Backend{
		cfg:     cfg,
		log:     logger.Component("ebiten"),
		catalog: catalog,
	}
}

// Name returns the backend name
func (b *Backend) Name() string {
	return "ebiten"
}

// Convert uploads a decoded sheet as an Ebiten image
func (b *Backend) Convert(img image.Image) (sprite.Sheet, error) {
	return ebiten.NewImageFromImage(img), nil
}

// Run opens the window and blocks until the session ends
func (b *Backend) Run(ctx context.Context, s *state.Session) error {
	if err := b.loadFonts(); err != nil {
		return fmt.Errorf("ebiten: fonts: %w", err)
	}
	b.session = s
	b.ctx = ctx

	gi := b.cfg.GameInfo
	ebiten.SetWindowSize(gi.ScreenWidth, gi.ScreenHeight)
	ebiten.SetWindowTitle(s.Caption())
	ebiten.SetTPS(gi.FPS)
	ebiten.SetWindowClosingHandled(true)

	if m, err := startMusic(b.cfg.Assets.Music, b.cfg.Assets.MusicVolume); err != nil {
		b.log.Warn("intro music unavailable", "path", b.cfg.Assets.Music, "error", err)
	} else {
		s.OnTeardown(m.Stop)
	}

	err := ebiten.RunGame(b)
	if b.tickErr != nil {
		return b.tickErr
	}
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("ebiten: %w", err)
	}
	return nil
}

// Update is the Ebiten tick
func (b *Backend) Update() error {
	if !b.windowLogged {
		b.windowLogged = true
		w, h := ebiten.WindowSize()
		b.log.Info("main window opened", "width", w, "height", h)
	}
	if b.ctx.Err() != nil {
		return ebiten.Termination
	}

	if err := b.session.Tick(b.collectFrame()); err != nil {
		b.tickErr = err
		return ebiten.Termination
	}
	if b.session.Done() {
		return ebiten.Termination
	}
	ebiten.SetWindowTitle(b.session.Caption())
	return nil
}

// Draw renders the current state
func (b *Backend) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	s := b.session
	if s.Playing() {
		b.drawWorld(screen)
		b.drawEffects(screen)
		if s.ShowMinimap {
			b.drawMinimap(screen)
		}
	} else {
		b.drawRegions(screen)
	}
	b.drawHUD(screen)
}

// Layout keeps the logical screen at the configured size
func (b *Backend) Layout(outsideWidth, outsideHeight int) (int, int) {
	return b.cfg.GameInfo.ScreenWidth, b.cfg.GameInfo.ScreenHeight
}

// minimapTarget returns the reusable overlay image
func (b *Backend) minimapTarget() *ebiten.Image {
	if b.minimapImage == nil {
		b.minimapImage = ebiten.NewImage(minimap.PanelSize, minimap.PanelSize)
	}
	return b.minimapImage
}
