package state

import (
	"image"
	"testing"
	"time"

	"tileworld/pkg/engine/input"
	"tileworld/pkg/engine/sprite"
	"tileworld/pkg/engine/world"
	"tileworld/pkg/game/config"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	g, err := world.NewGrid(128, 128, 32)
	if err != nil {
		t.Fatalf("NewGrid error: %v", err)
	}
	g.Fill(world.TileGround)

	catalog := sprite.NewCatalog()
	grid := sprite.FrameGrid{FrameW: 10, FrameH: 10, Cols: 4, Rows: 1}
	if err := catalog.RegisterAnimation("boom", image.NewRGBA(image.Rect(0, 0, 40, 10)), grid, 1, 100*time.Millisecond); err != nil {
		t.Fatalf("RegisterAnimation error: %v", err)
	}

	s, err := New(Options{Config: config.Default(), Grid: g, Catalog: catalog, Explosion: "boom"})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return s
}

func keyFrame(keys ...input.Key) input.Frame {
	f := input.Frame{}
	for _, k := range keys {
		f.Events = append(f.Events, input.KeyDown(k))
	}
	return f
}

func heldFrame(dt time.Duration, held ...input.Key) input.Frame {
	return input.Frame{
		DT: dt,
		Held: func(k input.Key) bool {
			for _, h := range held {
				if h == k {
					return true
				}
			}
			return false
		},
	}
}

func TestNew_StartsInMainMenu(t *testing.T) {
	s := newTestSession(t)
	if got := s.Machine.Current(); got != "main_menu" {
		t.Errorf("Current() = %q, want main_menu", got)
	}
	if s.View.X != 1648 || s.View.Y != 3396 {
		t.Errorf("view = (%v, %v), want (1648, 3396)", s.View.X, s.View.Y)
	}
	if len(s.Messages) != 1 {
		t.Errorf("Messages = %v, want the initial transition message", s.Messages)
	}
}

func TestTick_KeyTransitions(t *testing.T) {
	s := newTestSession(t)
	if err := s.Tick(keyFrame("p")); err != nil {
		t.Fatalf("Tick error: %v", err)
	}
	if !s.Playing() {
		t.Fatalf("Current() = %q after p, want play", s.Machine.Current())
	}
	if err := s.Tick(keyFrame(input.KeyEscape)); err != nil {
		t.Fatalf("Tick error: %v", err)
	}
	if got := s.Machine.Current(); got != "main_menu" {
		t.Errorf("Current() = %q after escape, want main_menu", got)
	}
}

func TestTick_OneTransitionPerTick(t *testing.T) {
	tests := []struct {
		name  string
		play  bool
		frame input.Frame
		want  string
	}{
		{"double escape from play", true, keyFrame(input.KeyEscape, input.KeyEscape), "main_menu"},
		{"play then escape then setup", false, keyFrame("p", input.KeyEscape, "s"), "play"},
		{"key then menu enter", false, keyFrame("s", input.KeyEnter), "setup"},
		{"escape then click on exit", true, input.Frame{Events: []input.Event{
			input.KeyDown(input.KeyEscape), input.Click(400, 430),
		}}, "main_menu"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t)
			if tt.play {
				if err := s.Tick(keyFrame("p")); err != nil {
					t.Fatalf("Tick error: %v", err)
				}
			}
			if err := s.Tick(tt.frame); err != nil {
				t.Fatalf("Tick error: %v", err)
			}
			if got := s.Machine.Current(); got != tt.want {
				t.Errorf("Current() = %q, want %q", got, tt.want)
			}
			if s.Done() {
				t.Error("Done() = true, want the session still running")
			}
		})
	}
}

func TestTick_ExitTerminates(t *testing.T) {
	s := newTestSession(t)
	if err := s.Tick(input.Frame{Events: []input.Event{input.Click(400, 430)}}); err != nil {
		t.Fatalf("Tick error: %v", err)
	}
	if !s.Done() || s.Machine.Current() != "exit" {
		t.Errorf("after clicking exit: Done() = %v, state = %q", s.Done(), s.Machine.Current())
	}
}

func TestTick_QuitEvent(t *testing.T) {
	s := newTestSession(t)
	if err := s.Tick(input.Frame{Events: []input.Event{input.Quit()}}); err != nil {
		t.Fatalf("Tick error: %v", err)
	}
	if !s.Done() {
		t.Error("Done() = false after a quit event")
	}
}

func TestTick_ScrollOnlyWhilePlaying(t *testing.T) {
	s := newTestSession(t)
	s.View.SetView(1000, 1000)

	if err := s.Tick(heldFrame(500*time.Millisecond, "d")); err != nil {
		t.Fatalf("Tick error: %v", err)
	}
	if s.View.X != 1000 {
		t.Errorf("view moved in the menu: X = %v", s.View.X)
	}

	_ = s.Tick(keyFrame("p"))
	if err := s.Tick(heldFrame(500*time.Millisecond, "d", input.KeyArrowUp)); err != nil {
		t.Fatalf("Tick error: %v", err)
	}
	// 400 px/s for half a second
	if s.View.X != 1200 || s.View.Y != 800 {
		t.Errorf("view = (%v, %v), want (1200, 800)", s.View.X, s.View.Y)
	}
}

func TestTick_MinimapToggle(t *testing.T) {
	s := newTestSession(t)
	_ = s.Tick(keyFrame("m"))
	if !s.ShowMinimap {
		t.Error("m toggled the minimap outside play")
	}
	_ = s.Tick(keyFrame("p", "m"))
	if s.ShowMinimap {
		t.Error("ShowMinimap = true after m in play")
	}
	_ = s.Tick(keyFrame("m"))
	if !s.ShowMinimap {
		t.Error("ShowMinimap = false after second m")
	}
}

func TestTick_ClickSpawnsAlternatingExplosions(t *testing.T) {
	s := newTestSession(t)
	_ = s.Tick(keyFrame("p"))

	clicks := input.Frame{Events: []input.Event{input.Click(10, 10), input.Click(50, 50)}}
	if err := s.Tick(clicks); err != nil {
		t.Fatalf("Tick error: %v", err)
	}
	if s.Effects.Len() != 2 {
		t.Fatalf("Effects.Len() = %d, want 2", s.Effects.Len())
	}
	var flips []bool
	s.Effects.Each(func(p *sprite.Player) {
		flips = append(flips, p.FlipH)
	})
	if flips[0] == flips[1] {
		t.Errorf("flips = %v, want alternating", flips)
	}

	_ = s.Tick(input.Frame{DT: time.Second})
	if s.Effects.Len() != 0 {
		t.Errorf("Effects.Len() = %d after the animation ended, want 0", s.Effects.Len())
	}
}

func TestCaption(t *testing.T) {
	s := newTestSession(t)
	s.MouseX, s.MouseY = 12, 34
	want := "Standard Program  v0.1 Date: November 2024 [1648,3396] (12,34)"
	if got := s.Caption(); got != want {
		t.Errorf("Caption() = %q, want %q", got, want)
	}
}

func TestTileLabel(t *testing.T) {
	s := newTestSession(t)
	s.View.SetView(0, 0)
	if err := s.Grid.Set(0, 1, world.TileWaterMM); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := s.Grid.Set(0, 2, world.TileUnset); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	tests := []struct {
		x, y int
		want string
	}{
		{5, 5, "Land"},
		{40, 5, "Water"},
		{70, 5, "Unknown"},
		{-1, 5, "Out of Bounds"},
	}
	for _, tt := range tests {
		if got := s.TileLabel(tt.x, tt.y); got != tt.want {
			t.Errorf("TileLabel(%d, %d) = %q, want %q", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestReload_KeepsStateAndRebinds(t *testing.T) {
	s := newTestSession(t)
	_ = s.Tick(keyFrame("p"))

	cfg := config.Default()
	cfg.Keys["key_menu"] = "q"
	if err := s.Reload(cfg); err != nil {
		t.Fatalf("Reload error: %v", err)
	}
	if !s.Playing() {
		t.Fatalf("Reload left play: %q", s.Machine.Current())
	}
	_ = s.Tick(keyFrame(input.KeyEscape))
	if !s.Playing() {
		t.Error("escape still leaves play after rebinding key_menu")
	}
	_ = s.Tick(keyFrame("q"))
	if s.Machine.Current() != "main_menu" {
		t.Errorf("Current() = %q after q, want main_menu", s.Machine.Current())
	}
}

func TestTeardown_RunsOnceInReverse(t *testing.T) {
	s := newTestSession(t)
	var order []int
	s.OnTeardown(func() { order = append(order, 1) })
	s.OnTeardown(func() { order = append(order, 2) })
	s.Teardown()
	s.Teardown()
	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Errorf("teardown order = %v, want [2 1]", order)
	}
}

func TestAddMessage_KeepsLast(t *testing.T) {
	s := newTestSession(t)
	for i := 0; i < 10; i++ {
		s.AddMessage("x")
	}
	if len(s.Messages) != maxMessages {
		t.Errorf("len(Messages) = %d, want %d", len(s.Messages), maxMessages)
	}
}

func TestTick_MenuKeyboardActivation(t *testing.T) {
	s := newTestSession(t)
	// focus starts on play; tab moves to setup
	if err := s.Tick(keyFrame(input.KeyTab, input.KeyEnter)); err != nil {
		t.Fatalf("Tick error: %v", err)
	}
	if got := s.Machine.Current(); got != "setup" {
		t.Errorf("Current() = %q, want setup", got)
	}
}

func TestQueueReload_AppliedOnTick(t *testing.T) {
	s := newTestSession(t)
	first := config.Default()
	first.Keys["key_play"] = "x"
	second := config.Default()
	second.Keys["key_play"] = "y"
	s.QueueReload(first)
	s.QueueReload(second)

	if err := s.Tick(keyFrame("y")); err != nil {
		t.Fatalf("Tick error: %v", err)
	}
	if !s.Playing() {
		t.Errorf("Current() = %q, want play via the newest binding", s.Machine.Current())
	}
}
