// Package state holds the running tileworld session: the world, the camera,
// the scene machine and the effects on screen.
package state

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leonelquinteros/gotext"
	"go.opentelemetry.io/otel/attribute"

	"tileworld/pkg/engine/input"
	"tileworld/pkg/engine/minimap"
	"tileworld/pkg/engine/scene"
	"tileworld/pkg/engine/sprite"
	"tileworld/pkg/engine/world"
	"tileworld/pkg/game/config"
	"tileworld/pkg/game/menu"
	"tileworld/pkg/game/telemetry"
)

const maxMessages = 5

// MinimapKey toggles the minimap while playing
const MinimapKey input.Key = "m"

// scrollKeys binds held keys to scroll directions
var scrollKeys = map[world.Direction][]input.Key{
	world.North: {"w", input.KeyArrowUp},
	world.East:  {"d", input.KeyArrowRight},
	world.South: {"s", input.KeyArrowDown},
	world.West:  {"a", input.KeyArrowLeft},
}

// Options configures a new Session
type Options struct {
	Config  config.Config
	Grid    *world.Grid
	Catalog *sprite.Catalog
	Logger  *slog.Logger

	// Explosion is the animation spawned by clicks during play
	Explosion string
}

// Session is one run of the viewer
type Session struct {
	cfg config.Config
	log *slog.Logger

	Grid      *world.Grid
	View      *world.Viewport
	Machine   *scene.Machine
	Projector *minimap.Projector
	Effects   *sprite.Effects

	// Menu is keyboard focus over the region buttons of menu states
	Menu menu.Cursor

	ShowMinimap bool
	MouseX      int
	MouseY      int

	Messages []string

	explosion string
	flip      bool
	quit      bool

	reloads chan config.Config

	teardown []func()
	tornDown bool
}

// New builds a session over an already generated grid. The camera starts at
// the configured position and the machine has resolved its start cascade.
func New(opts Options) (*Session, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	cfg := opts.Config

	view, err := world.NewViewport(opts.Grid, cfg.GameInfo.ScreenWidth, cfg.GameInfo.ScreenHeight)
	if err != nil {
		return nil, fmt.Errorf("state: %w", err)
	}
	view.SetView(cfg.World.StartX, cfg.World.StartY)

	catalog := opts.Catalog
	if catalog == nil {
		catalog = sprite.NewCatalog()
	}

	s := &Session{
		cfg:         cfg,
		log:         log,
		Grid:        opts.Grid,
		View:        view,
		Projector:   minimap.NewProjector(opts.Grid),
		Effects:     sprite.NewEffects(catalog),
		ShowMinimap: true,
		explosion:   opts.Explosion,
		reloads:     make(chan config.Config, 1),
	}

	sceneOpts, err := cfg.SceneOptions(log)
	if err != nil {
		return nil, err
	}
	sceneOpts.OnTransition = s.onTransition
	m, err := scene.New(sceneOpts)
	if m == nil {
		return nil, fmt.Errorf("state: %w", err)
	}
	s.Machine = m
	if err != nil {
		return s, fmt.Errorf("state: %w", err)
	}
	return s, nil
}

// Config returns the configuration the session runs with
func (s *Session) Config() config.Config {
	return s.cfg
}

func (s *Session) onTransition(t scene.Transition) {
	_, span := telemetry.Tracer("state").Start(context.Background(), "transition")
	span.SetAttributes(
		attribute.String("from", t.From),
		attribute.String("to", t.To),
		attribute.String("cause", t.Cause.String()),
	)
	span.End()

	s.log.Info("state transition", "from", t.From, "to", t.To, "cause", t.Cause.String())
	s.AddMessage(gotext.Get("Entered %s", t.To))
	s.Menu.Reset()
}

// Playing reports whether the machine is in the play state
func (s *Session) Playing() bool {
	return s.Machine.Current() == s.cfg.PlayState
}

// Done reports whether the session should end: a terminal state was
// entered or the user closed the window.
func (s *Session) Done() bool {
	return s.quit || s.Machine.Terminated()
}

// Tick applies one frame: events first, then per-state updates. At most one
// event-driven transition (plus its automatic cascade) happens per tick;
// later events in the frame only reach the per-state handlers.
func (s *Session) Tick(frame input.Frame) error {
	s.MouseX, s.MouseY = frame.MouseX, frame.MouseY

	select {
	case cfg := <-s.reloads:
		if err := s.Reload(cfg); err != nil {
			s.log.Warn("configuration reload rejected", "error", err)
		}
	default:
	}

	transitioned := false
	for _, ev := range frame.Events {
		if ev.Kind == input.EventQuit {
			s.quit = true
			return nil
		}
		if !transitioned {
			fired, err := s.Machine.Handle(ev)
			if err != nil {
				return fmt.Errorf("state: tick: %w", err)
			}
			if s.Machine.Terminated() {
				return nil
			}
			if fired {
				transitioned = true
				continue
			}
		}
		if s.Playing() {
			s.handlePlayEvent(ev)
			continue
		}
		if transitioned {
			continue
		}
		fired, err := s.handleMenuEvent(ev)
		if err != nil {
			return err
		}
		if s.Machine.Terminated() {
			return nil
		}
		transitioned = fired
	}

	if s.Playing() {
		s.scroll(frame)
	}
	s.Effects.Update(frame.DT)
	return nil
}

func (s *Session) handlePlayEvent(ev input.Event) {
	switch {
	case ev.Kind == input.EventKeyDown && ev.Key == MinimapKey:
		s.ShowMinimap = !s.ShowMinimap
	case ev.IsPrimaryClick() && s.explosion != "":
		if _, err := s.Effects.Spawn(s.explosion, float64(ev.X), float64(ev.Y), s.flip); err != nil {
			s.log.Warn("explosion not spawned", "sprite", s.explosion, "error", err)
			return
		}
		s.flip = !s.flip
	}
}

// handleMenuEvent lets the keyboard focus and activate region buttons.
// It reports whether activating a button fired a transition.
func (s *Session) handleMenuEvent(ev input.Event) (bool, error) {
	if ev.Kind != input.EventKeyDown {
		return false, nil
	}
	click, ok := s.Menu.Handle(menu.Items(s.Machine), ev.Key)
	if !ok {
		return false, nil
	}
	fired, err := s.Machine.Handle(click)
	if err != nil {
		return false, fmt.Errorf("state: menu: %w", err)
	}
	return fired, nil
}

// scroll moves the camera by move_speed pixels per second for each held direction
func (s *Session) scroll(frame input.Frame) {
	step := s.cfg.World.MoveSpeed * frame.DT.Seconds()
	if step == 0 {
		return
	}
	var dx, dy float64
	for _, d := range world.AllDirections() {
		for _, k := range scrollKeys[d] {
			if frame.IsHeld(k) {
				vx, vy := d.Vector()
				dx += vx * step
				dy += vy * step
				break
			}
		}
	}
	if dx != 0 || dy != 0 {
		s.View.MoveView(dx, dy)
	}
}

// Caption is the window title: game info, camera position and pointer position
func (s *Session) Caption() string {
	gi := s.cfg.GameInfo
	return fmt.Sprintf("%s  v%s Date: %s [%d,%d] (%d,%d)",
		gi.Title, gi.Version, gi.DevDate, int(s.View.X), int(s.View.Y), s.MouseX, s.MouseY)
}

// TileLabel names the kind of tile under a screen point
func (s *Session) TileLabel(px, py int) string {
	row, col, ok := s.View.TileAtScreen(px, py)
	if !ok {
		return gotext.Get("Out of Bounds")
	}
	id, err := s.Grid.TileAt(row, col)
	if err != nil {
		return gotext.Get("Out of Bounds")
	}
	switch id.Family() {
	case world.FamilyLand:
		return gotext.Get("Land")
	case world.FamilyWater:
		return gotext.Get("Water")
	default:
		return gotext.Get("Unknown")
	}
}

// Reload swaps in the key, region and transition tables of cfg. The world
// and camera are left alone.
func (s *Session) Reload(cfg config.Config) error {
	opts, err := cfg.SceneOptions(s.log)
	if err != nil {
		return err
	}
	opts.OnTransition = s.onTransition
	if err := s.Machine.Reload(opts); err != nil {
		return fmt.Errorf("state: reload: %w", err)
	}
	s.cfg.Keys = cfg.Keys
	s.cfg.Regions = cfg.Regions
	s.cfg.Transitions = cfg.Transitions
	s.cfg.StartState = cfg.StartState
	s.cfg.PlayState = cfg.PlayState
	s.cfg.TerminalStates = cfg.TerminalStates
	s.log.Info("configuration reloaded", "state", s.Machine.Current())
	return nil
}

// QueueReload hands a new configuration to the next Tick. It is safe to call
// from another goroutine; a pending reload is replaced by the newer one.
func (s *Session) QueueReload(cfg config.Config) {
	for {
		select {
		case s.reloads <- cfg:
			return
		default:
		}
		select {
		case <-s.reloads:
		default:
		}
	}
}

// AddMessage appends to the HUD message log
func (s *Session) AddMessage(msg string) {
	s.Messages = append(s.Messages, msg)

	// Keep only the last maxMessages
	if len(s.Messages) > maxMessages {
		s.Messages = s.Messages[len(s.Messages)-maxMessages:]
	}
}

// OnTeardown registers fn to run when the session ends. Hooks run in
// reverse registration order.
func (s *Session) OnTeardown(fn func()) {
	s.teardown = append(s.teardown, fn)
}

// Teardown runs the registered hooks once
func (s *Session) Teardown() {
	if s.tornDown {
		return
	}
	s.tornDown = true
	for i := len(s.teardown) - 1; i >= 0; i-- {
		s.teardown[i]()
	}
	s.log.Info("session closed", "state", s.Machine.Current())
}
