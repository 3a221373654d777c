package world

import (
	"errors"
	"math"
	"testing"
)

func newTestViewport(t *testing.T, rows, cols, tileSize, width, height int) *Viewport {
	t.Helper()
	g, err := NewGrid(rows, cols, tileSize)
	if err != nil {
		t.Fatalf("NewGrid error: %v", err)
	}
	v, err := NewViewport(g, width, height)
	if err != nil {
		t.Fatalf("NewViewport error: %v", err)
	}
	return v
}

func TestSetView_StartPosition(t *testing.T) {
	v := newTestViewport(t, 128, 128, 32, 800, 600)
	v.SetView(1648, 3396)

	if v.MaxX() != 3296 {
		t.Errorf("MaxX() = %v, want 3296", v.MaxX())
	}
	if v.X != 1648 {
		t.Errorf("X = %v, want 1648", v.X)
	}
	// 128*32-600 = 3496, so 3396 is also inside the range
	if v.Y != 3396 {
		t.Errorf("Y = %v, want 3396", v.Y)
	}
}

func TestSetView_Clamps(t *testing.T) {
	v := newTestViewport(t, 128, 128, 32, 800, 600)
	tests := []struct {
		x, y         float64
		wantX, wantY float64
	}{
		{-50, -1, 0, 0},
		{5000, 5000, 3296, 3496},
		{3296, 3496, 3296, 3496},
		{10.5, 20.25, 10.5, 20.25},
	}
	for _, tt := range tests {
		v.SetView(tt.x, tt.y)
		if v.X != tt.wantX || v.Y != tt.wantY {
			t.Errorf("SetView(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, v.X, v.Y, tt.wantX, tt.wantY)
		}
	}
}

func TestSetView_GridSmallerThanViewport(t *testing.T) {
	v := newTestViewport(t, 4, 5, 32, 800, 600)
	for _, p := range [][2]float64{{0, 0}, {100, 100}, {-10, 50}} {
		v.SetView(p[0], p[1])
		if v.X != 0 || v.Y != 0 {
			t.Errorf("SetView(%v, %v) = (%v, %v), want (0, 0)", p[0], p[1], v.X, v.Y)
		}
	}
	w := v.VisibleWindow()
	if w.StartRow != 0 || w.StartCol != 0 || w.EndRow != 4 || w.EndCol != 5 {
		t.Errorf("VisibleWindow() = %+v, want whole 4x5 grid", w)
	}
}

func TestMoveView(t *testing.T) {
	v := newTestViewport(t, 128, 128, 32, 800, 600)
	v.SetView(100, 100)
	v.MoveView(-40, 25)
	if v.X != 60 || v.Y != 125 {
		t.Errorf("MoveView(-40, 25) from (100,100) = (%v, %v), want (60, 125)", v.X, v.Y)
	}
	v.MoveView(-1000, 0)
	if v.X != 0 {
		t.Errorf("MoveView(-1000, 0) X = %v, want 0", v.X)
	}
}

func TestVisibleWindow(t *testing.T) {
	v := newTestViewport(t, 128, 128, 32, 800, 600)
	v.SetView(1648, 3396)
	w := v.VisibleWindow()

	// 1648/32 = 51.5, (1648+800)/32 = 76.5
	if w.StartCol != 51 || w.EndCol != 77 {
		t.Errorf("cols = [%d, %d), want [51, 77)", w.StartCol, w.EndCol)
	}
	// 3396/32 = 106.125, (3396+600)/32 = 124.875
	if w.StartRow != 106 || w.EndRow != 125 {
		t.Errorf("rows = [%d, %d), want [106, 125)", w.StartRow, w.EndRow)
	}
	if w.OffsetX != -16 || w.OffsetY != -4 {
		t.Errorf("offset = (%v, %v), want (-16, -4)", w.OffsetX, w.OffsetY)
	}
}

func TestVisibleWindow_BottomRightEdge(t *testing.T) {
	v := newTestViewport(t, 128, 128, 32, 800, 600)
	v.SetView(1e9, 1e9)
	w := v.VisibleWindow()
	if w.EndCol != 128 || w.EndRow != 128 {
		t.Errorf("end = (%d, %d), want clamped to (128, 128)", w.EndRow, w.EndCol)
	}
	if w.Cols()*32 < 800 || w.Rows()*32 < 600 {
		t.Errorf("window %dx%d tiles does not cover 800x600", w.Cols(), w.Rows())
	}
}

func TestTileAtScreen(t *testing.T) {
	v := newTestViewport(t, 10, 10, 32, 100, 100)
	v.SetView(40, 0)
	row, col, ok := v.TileAtScreen(0, 31)
	if !ok || row != 0 || col != 1 {
		t.Errorf("TileAtScreen(0, 31) = (%d, %d, %v), want (0, 1, true)", row, col, ok)
	}
	if _, _, ok := v.TileAtScreen(-100, 0); ok {
		t.Error("TileAtScreen(-100, 0) ok = true, want false")
	}
}

func TestNewViewport_Rejects(t *testing.T) {
	g, _ := NewGrid(2, 2, 32)
	if _, err := NewViewport(g, 0, 10); !errors.Is(err, ErrBadDimensions) {
		t.Errorf("NewViewport(g, 0, 10) error = %v, want ErrBadDimensions", err)
	}
	if _, err := NewViewport(nil, 10, 10); err == nil {
		t.Error("NewViewport(nil, ...) error = nil, want error")
	}
}

func TestSetView_NonFinite(t *testing.T) {
	v := newTestViewport(t, 128, 128, 32, 800, 600)
	v.SetView(1000, 2000)

	tests := []struct {
		name string
		x, y float64
	}{
		{"nan x", math.NaN(), 500},
		{"nan y", 500, math.NaN()},
		{"inf", math.Inf(1), math.Inf(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v.SetView(1000, 2000)
			v.SetView(tt.x, tt.y)
			if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
				t.Fatalf("SetView(%v, %v) = (%v, %v), want finite", tt.x, tt.y, v.X, v.Y)
			}
			if v.X < 0 || v.X > v.MaxX() || v.Y < 0 || v.Y > v.MaxY() {
				t.Errorf("SetView(%v, %v) = (%v, %v), want inside the grid", tt.x, tt.y, v.X, v.Y)
			}
		})
	}

	v.SetView(1000, 2000)
	v.MoveView(math.NaN(), 10)
	if v.X != 1000 || v.Y != 2010 {
		t.Errorf("MoveView(NaN, 10) = (%v, %v), want (1000, 2010)", v.X, v.Y)
	}
	if w := v.VisibleWindow(); w.StartCol != 31 {
		t.Errorf("VisibleWindow().StartCol = %d, want 31", w.StartCol)
	}
}
