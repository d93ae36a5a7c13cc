package famexplorer

import (
	"math"
	"strings"
)

// Tile layout defaults. Atlas tiles are 96px and drawn at 12px.
const (
	DefaultSizeFactor     = 8.0
	DefaultSourceTileSize = 96
	DefaultTileSize       = DefaultSourceTileSize / DefaultSizeFactor
	DefaultTileMargin     = 2.0

	// SkeletonCount is the number of placeholder tiles shown while the
	// profile collection is loading.
	SkeletonCount = 1000
)

// TileLayout places tiles in a centred, wrapping grid (flex-wrap with
// justify-center) and maps handles to tile rectangles.
type TileLayout struct {
	TileSize float64
	Margin   float64

	width   float64
	count   int
	columns int
	slots   map[string]int // lower-cased handle -> slot
}

// NewTileLayout creates a layout for a canvas of the given width.
func NewTileLayout(width float64) *TileLayout {
	l := &TileLayout{TileSize: DefaultTileSize, Margin: DefaultTileMargin}
	l.SetWidth(width)
	return l
}

// Pitch is the distance between the origins of neighbouring tiles.
func (l *TileLayout) Pitch() float64 {
	return l.TileSize + 2*l.Margin
}

// SetWidth sets the canvas width and recomputes the column count.
func (l *TileLayout) SetWidth(width float64) {
	l.width = width
	l.columns = int(math.Floor(width / l.Pitch()))
	if l.columns < 1 {
		l.columns = 1
	}
}

// SetCount sets the number of slots without handles (placeholder tiles).
func (l *TileLayout) SetCount(n int) {
	l.count = n
	l.slots = nil
}

// SetHandles lays out one slot per handle, in order.
func (l *TileLayout) SetHandles(handles []string) {
	l.count = len(handles)
	l.slots = make(map[string]int, len(handles))
	for i, h := range handles {
		l.slots[strings.ToLower(h)] = i
	}
}

// Count returns the number of slots.
func (l *TileLayout) Count() int { return l.count }

// Columns returns the number of tiles per full row.
func (l *TileLayout) Columns() int { return l.columns }

// Rows returns the number of rows.
func (l *TileLayout) Rows() int {
	return (l.count + l.columns - 1) / l.columns
}

// Size returns the canvas size occupied by the tiles.
func (l *TileLayout) Size() Vec2 {
	return Vec2{X: l.width, Y: float64(l.Rows()) * l.Pitch()}
}

// rowOffset returns the x offset that centres the given row.
func (l *TileLayout) rowOffset(row int) float64 {
	n := l.columns
	if last := l.count - row*l.columns; last < n {
		n = last
	}
	return (l.width - float64(n)*l.Pitch()) / 2
}

// Bounds returns the canvas rectangle of slot i, excluding its margin.
func (l *TileLayout) Bounds(i int) Rect {
	row, col := i/l.columns, i%l.columns
	p := l.Pitch()
	return Rect{
		X:      l.rowOffset(row) + float64(col)*p + l.Margin,
		Y:      float64(row)*p + l.Margin,
		Width:  l.TileSize,
		Height: l.TileSize,
	}
}

// IndexAt returns the slot whose tile contains (wx, wy), or -1.
func (l *TileLayout) IndexAt(wx, wy float64) int {
	if l.count == 0 || wy < 0 {
		return -1
	}
	p := l.Pitch()
	row := int(wy / p)
	if row >= l.Rows() {
		return -1
	}
	col := int(math.Floor((wx - l.rowOffset(row)) / p))
	if col < 0 || col >= l.columns {
		return -1
	}
	i := row*l.columns + col
	if i >= l.count || !l.Bounds(i).Contains(wx, wy) {
		return -1
	}
	return i
}

// TileBounds implements TileLocator.
func (l *TileLayout) TileBounds(handle string) (Rect, bool) {
	i, ok := l.slots[strings.ToLower(handle)]
	if !ok {
		return Rect{}, false
	}
	return l.Bounds(i), true
}

// VisibleRange returns the half-open slot range [first, last) whose rows
// intersect the canvas rectangle r.
func (l *TileLayout) VisibleRange(r Rect) (first, last int) {
	p := l.Pitch()
	r0 := int(math.Floor(r.Y / p))
	r1 := int(math.Ceil((r.Y + r.Height) / p))
	if r0 < 0 {
		r0 = 0
	}
	first = r0 * l.columns
	last = r1 * l.columns
	if last > l.count {
		last = l.count
	}
	if first > last {
		first = last
	}
	return first, last
}
