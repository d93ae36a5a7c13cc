package famexplorer

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestColorToRGBA(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: 0, A: 0.5}
	got := c.toRGBA()
	if got.A != 127 {
		t.Errorf("A = %d, want 127", got.A)
	}
	if got.R != 127 {
		t.Errorf("R = %d, want 127 (premultiplied)", got.R)
	}
	if got.B != 0 {
		t.Errorf("B = %d, want 0", got.B)
	}
}

func TestColorToRGBA_Clamps(t *testing.T) {
	got := Color{R: 2, G: -1, B: 1, A: 1}.toRGBA()
	if got.R != 255 || got.G != 0 {
		t.Errorf("got %v, want R=255 G=0", got)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 20, true},
		{40, 60, true},
		{25, 40, true},
		{9.9, 40, false},
		{25, 60.1, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	if !a.Intersects(Rect{X: 10, Y: 0, Width: 5, Height: 5}) {
		t.Error("adjacent rects should intersect")
	}
	if a.Intersects(Rect{X: 11, Y: 0, Width: 5, Height: 5}) {
		t.Error("separated rects should not intersect")
	}
}

func TestRectCenter(t *testing.T) {
	c := Rect{X: 2, Y: 4, Width: 10, Height: 20}.Center()
	if c.X != 7 || c.Y != 14 {
		t.Errorf("Center = %v, want (7, 14)", c)
	}
}

func TestEventTypeString(t *testing.T) {
	tests := map[EventType]string{
		EventTooltipOpen:   "tooltip_open",
		EventTooltipClose:  "tooltip_close",
		EventNavigate:      "navigate",
		EventQueryChange:   "query_change",
		EventViewportReset: "viewport_reset",
		EventFullscreen:    "fullscreen",
		EventType(99):      "unknown",
	}
	for ev, want := range tests {
		if got := ev.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", ev, got, want)
		}
	}
}

func TestWhitePixel(t *testing.T) {
	if WhitePixel == nil {
		t.Fatal("WhitePixel is nil")
	}
	b := WhitePixel.Bounds()
	if b.Dx() != 1 || b.Dy() != 1 {
		t.Errorf("WhitePixel size = %dx%d, want 1x1", b.Dx(), b.Dy())
	}
}
