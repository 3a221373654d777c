// Package tui provides the tcell-based terminal backend.
package tui

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"tileworld/pkg/engine/input"
	"tileworld/pkg/engine/logger"
	"tileworld/pkg/engine/sprite"
	"tileworld/pkg/game/assets"
	"tileworld/pkg/game/config"
	"tileworld/pkg/game/state"
)

// holdWindow is how long a key counts as held after its last press.
// Terminals report repeats, not releases.
const holdWindow = 100 * time.Millisecond

// Backend runs a session in the terminal
type Backend struct {
	cfg config.Config
	log *slog.Logger

	newScreen func() (tcell.Screen, error)
	screen    tcell.Screen

	held    map[input.Key]time.Time
	buttons tcell.ButtonMask
	mouseX  int
	mouseY  int
	now     func() time.Time
}

// New creates a backend on the controlling terminal
func New(cfg config.Config) *Backend {
	b := newBackend(cfg)
	b.newScreen = tcell.NewScreen
	return b
}

// NewWithScreen creates a backend drawing to an existing, uninitialised screen
func NewWithScreen(cfg config.Config, screen tcell.Screen) *Backend {
	b := newBackend(cfg)
	b.newScreen = func() (tcell.Screen, error) { return screen, nil }
	return b
}

func newBackend(cfg config.Config) *Backend {
	return &Backend{
		cfg:  cfg,
		log:  logger.Component("tui"),
		held: make(map[input.Key]time.Time),
		now:  time.Now,
	}
}

// Name returns the backend name
func (b *Backend) Name() string {
	return "tui"
}

// Convert keeps decoded sheets as they are
func (b *Backend) Convert(img image.Image) (sprite.Sheet, error) {
	return assets.AsSheet(img)
}

// Run takes over the terminal until the session ends or ctx is cancelled
func (b *Backend) Run(ctx context.Context, s *state.Session) error {
	screen, err := b.newScreen()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("tui: init screen: %w", err)
	}
	b.screen = screen
	defer screen.Fini()

	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.EnableMouse()
	screen.Clear()

	cols, rows := screen.Size()
	b.log.Info("terminal opened", "cols", cols, "rows", rows)

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 64)
	go pump(screen, events, done)

	fps := b.cfg.GameInfo.FPS
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	var pending []tcell.Event
	last := b.now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			pending = append(pending, ev)
		case <-ticker.C:
			now := b.now()
			frame := b.frame(pending, now.Sub(last))
			pending = pending[:0]
			last = now

			if err := s.Tick(frame); err != nil {
				return err
			}
			if s.Done() {
				return nil
			}
			b.draw(s)
			screen.Show()
		}
	}
}

// pump forwards screen events until the screen is finalised or done closes
func pump(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// frame converts the events gathered since the last tick
func (b *Backend) frame(pending []tcell.Event, dt time.Duration) input.Frame {
	var events []input.Event
	for _, ev := range pending {
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC {
				events = append(events, input.Quit())
				continue
			}
			if k, ok := keyFor(ev.Key(), ev.Rune()); ok {
				b.held[k] = b.now()
				events = append(events, input.KeyDown(k))
			}
		case *tcell.EventMouse:
			x, y := ev.Position()
			events = append(events, b.mouse(x, y, ev.Buttons())...)
		case *tcell.EventResize:
			b.screen.Sync()
		}
	}
	return input.Frame{
		Events: events,
		MouseX: b.mouseX,
		MouseY: b.mouseY,
		Held:   b.isHeld,
		DT:     dt,
	}
}

// isHeld reports whether k was pressed within the hold window
func (b *Backend) isHeld(k input.Key) bool {
	t, ok := b.held[k]
	return ok && b.now().Sub(t) < holdWindow
}

// mouse records the pointer and returns a click for each newly pressed button
func (b *Backend) mouse(cx, cy int, buttons tcell.ButtonMask) []input.Event {
	b.mouseX, b.mouseY = b.toPixel(cx, cy)

	var events []input.Event
	for _, mb := range mouseButtons {
		if buttons&mb.native != 0 && b.buttons&mb.native == 0 {
			events = append(events, input.Event{
				Kind:   input.EventMouseDown,
				Device: input.DeviceMouse,
				Button: mb.button,
				X:      b.mouseX,
				Y:      b.mouseY,
			})
		}
	}
	b.buttons = buttons
	return events
}
