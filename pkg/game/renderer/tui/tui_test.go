package tui

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"tileworld/pkg/engine/input"
	"tileworld/pkg/engine/world"
	"tileworld/pkg/game/config"
	"tileworld/pkg/game/renderer"
	"tileworld/pkg/game/state"
)

func newTestSession(t *testing.T, fill world.TileID) *state.Session {
	t.Helper()
	g, err := world.NewGrid(128, 128, 32)
	if err != nil {
		t.Fatalf("NewGrid error: %v", err)
	}
	g.Fill(fill)
	s, err := state.New(state.Options{Config: config.Default(), Grid: g})
	if err != nil {
		t.Fatalf("state.New error: %v", err)
	}
	return s
}

// newTestBackend returns a backend on an initialised 80x24 simulation screen
func newTestBackend(t *testing.T) (*Backend, tcell.SimulationScreen) {
	t.Helper()
	scr := tcell.NewSimulationScreen("UTF-8")
	if err := scr.Init(); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(scr.Fini)
	scr.SetSize(80, 24)

	b := NewWithScreen(config.Default(), scr)
	b.screen = scr
	return b, scr
}

func cellAt(scr tcell.Screen, x, y int) (rune, tcell.Style) {
	r, _, style, _ := scr.GetContent(x, y)
	return r, style
}

func TestKeyFor(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		r    rune
		want input.Key
		ok   bool
	}{
		{tcell.KeyRune, 'p', "p", true},
		{tcell.KeyRune, 'P', "p", true},
		{tcell.KeyRune, '7', "7", true},
		{tcell.KeyRune, ' ', input.KeySpace, true},
		{tcell.KeyRune, 'ß', input.KeyNone, false},
		{tcell.KeyEscape, 0, input.KeyEscape, true},
		{tcell.KeyEnter, 0, input.KeyEnter, true},
		{tcell.KeyUp, 0, input.KeyArrowUp, true},
		{tcell.KeyBackspace2, 0, input.KeyBackspace, true},
		{tcell.KeyF5, 0, input.KeyF5, true},
		{tcell.KeyCtrlX, 0, input.KeyNone, false},
	}
	for _, tt := range tests {
		got, ok := keyFor(tt.key, tt.r)
		if got != tt.want || ok != tt.ok {
			t.Errorf("keyFor(%v, %q) = (%q, %v), want (%q, %v)", tt.key, tt.r, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCellMapping(t *testing.T) {
	b, _ := newTestBackend(t)

	// 800x600 pixels over 80x24 cells is 10x25 per cell
	if x, y := b.toPixel(0, 0); x != 5 || y != 12 {
		t.Errorf("toPixel(0, 0) = (%d, %d), want (5, 12)", x, y)
	}
	if x, y := b.toPixel(40, 17); x != 405 || y != 437 {
		t.Errorf("toPixel(40, 17) = (%d, %d), want (405, 437)", x, y)
	}
	if cx, cy := b.toCell(405, 437); cx != 40 || cy != 17 {
		t.Errorf("toCell(405, 437) = (%d, %d), want (40, 17)", cx, cy)
	}
}

func TestMouse_ClickOnPressEdge(t *testing.T) {
	b, _ := newTestBackend(t)

	evs := b.mouse(40, 17, tcell.Button1)
	if len(evs) != 1 || !evs[0].IsPrimaryClick() {
		t.Fatalf("first press events = %+v, want one primary click", evs)
	}
	if evs[0].X != 405 || evs[0].Y != 437 {
		t.Errorf("click at (%d, %d), want (405, 437)", evs[0].X, evs[0].Y)
	}
	if evs := b.mouse(41, 17, tcell.Button1); len(evs) != 0 {
		t.Errorf("drag events = %+v, want none", evs)
	}
	if evs := b.mouse(41, 17, tcell.ButtonNone); len(evs) != 0 {
		t.Errorf("release events = %+v, want none", evs)
	}
	if b.mouseX != 415 {
		t.Errorf("mouseX = %d after move, want 415", b.mouseX)
	}
	if evs := b.mouse(41, 17, tcell.Button2); len(evs) != 1 || evs[0].Button != input.ButtonSecondary {
		t.Errorf("right press events = %+v, want one secondary click", evs)
	}
}

func TestFrame_HeldWindow(t *testing.T) {
	b, _ := newTestBackend(t)
	now := time.Unix(1000, 0)
	b.now = func() time.Time { return now }

	f := b.frame([]tcell.Event{tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone)}, 16*time.Millisecond)
	if len(f.Events) != 1 || f.Events[0].Key != "d" {
		t.Fatalf("frame events = %+v, want key-down d", f.Events)
	}
	if !f.IsHeld("d") {
		t.Error("IsHeld(d) = false right after the press")
	}
	now = now.Add(holdWindow)
	if f.IsHeld("d") {
		t.Error("IsHeld(d) = true once the hold window passed")
	}
	if f.IsHeld("a") {
		t.Error("IsHeld(a) = true for a key never pressed")
	}
}

func TestFrame_CtrlCQuits(t *testing.T) {
	b, _ := newTestBackend(t)
	f := b.frame([]tcell.Event{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)}, 0)
	if len(f.Events) != 1 || f.Events[0].Kind != input.EventQuit {
		t.Errorf("frame events = %+v, want quit", f.Events)
	}
}

func TestDraw_MainMenu(t *testing.T) {
	b, scr := newTestBackend(t)
	s := newTestSession(t, world.TileGround)

	b.draw(s)

	if r, _ := cellAt(scr, 0, 0); r != 'S' {
		t.Errorf("HUD first cell = %q, want 'S'", r)
	}
	// play button spans cells 30..50 x 8..10 and has focus
	if r, style := cellAt(scr, 40, 9); r != 'a' || style != styleFor(renderer.StyleFocus) {
		t.Errorf("play label cell = %q, focused = %v, want 'a' focused", r, style == styleFor(renderer.StyleFocus))
	}
	// setup button spans rows 10..12
	if _, style := cellAt(scr, 32, 11); style != styleFor(renderer.StyleRegion) {
		t.Error("setup button cell not drawn in the region style")
	}
}

func TestDraw_Play(t *testing.T) {
	tests := []struct {
		name string
		fill world.TileID
		want rune
	}{
		{"land", world.TileGround, renderer.GlyphLand},
		{"water", world.TileWaterMM, renderer.GlyphWater},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, scr := newTestBackend(t)
			s := newTestSession(t, tt.fill)
			if err := s.Tick(input.Frame{Events: []input.Event{input.KeyDown("p")}}); err != nil {
				t.Fatalf("Tick error: %v", err)
			}
			if !s.Playing() {
				t.Fatalf("state = %q, want play", s.Machine.Current())
			}

			b.draw(s)
			if r, _ := cellAt(scr, 40, 12); r != tt.want {
				t.Errorf("centre cell = %q, want %q", r, tt.want)
			}
			// minimap is 26 cells wide in the top-right corner
			if r, _ := cellAt(scr, 70, 5); r != tt.want {
				t.Errorf("minimap cell = %q, want %q", r, tt.want)
			}

			s.ShowMinimap = false
			b.draw(s)
			if r, style := cellAt(scr, 70, 5); r != tt.want || style.Reverse(false) != style {
				t.Errorf("hidden minimap cell = %q, want a plain world glyph", r)
			}
		})
	}
}

func TestRun_EndsOnExitKey(t *testing.T) {
	scr := tcell.NewSimulationScreen("UTF-8")
	b := NewWithScreen(config.Default(), scr)
	s := newTestSession(t, world.TileGround)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go func() {
		time.Sleep(100 * time.Millisecond)
		scr.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	}()

	if err := b.Run(ctx, s); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if ctx.Err() != nil {
		t.Fatal("Run returned only after the timeout")
	}
	if got := s.Machine.Current(); got != "exit" {
		t.Errorf("Current() = %q, want exit", got)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	scr := tcell.NewSimulationScreen("UTF-8")
	b := NewWithScreen(config.Default(), scr)
	s := newTestSession(t, world.TileGround)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	if err := b.Run(ctx, s); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if s.Done() {
		t.Error("Done() = true after cancellation")
	}
}
