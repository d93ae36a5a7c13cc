package famexplorer

import (
	"math"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// --- Constants ---

const (
	defaultDragDeadZone = 4.0 // pixels

	topBarHeight   = 44.0
	uiPadding      = 12.0
	submitWidth    = 160.0
	fieldHeight    = 28.0
	controlSize    = 32.0
	controlSpacing = 6.0

	panelWidth    = 260.0
	panelHeight   = 156.0
	panelGap      = 8.0
	panelCloseBox = 16.0
)

// --- Hit targets ---

type hitKind uint8

const (
	hitNone hitKind = iota
	hitCanvas
	hitTile
	hitPanel
	hitPanelClose
	hitSearch
	hitSubmit
	hitControl
)

// control identifies one of the viewport buttons.
type control uint8

const (
	controlZoomIn control = iota
	controlZoomOut
	controlReset
	controlFullscreen
	controlCount
)

func (c control) label() string {
	switch c {
	case controlZoomIn:
		return "+"
	case controlZoomOut:
		return "-"
	case controlReset:
		return "0"
	case controlFullscreen:
		return "F"
	default:
		return "?"
	}
}

// hitTarget is what lies under a screen point.
type hitTarget struct {
	kind    hitKind
	index   int // tile slot for hitTile
	control control
}

// onPanel reports whether the target is any part of the tooltip panel.
func (h hitTarget) onPanel() bool {
	return h.kind == hitPanel || h.kind == hitPanelClose
}

// --- Screen layout ---

// uiLayout holds the screen rectangles of the fixed interface elements.
type uiLayout struct {
	canvas   Rect
	search   Rect
	submit   Rect
	controls [controlCount]Rect
}

func computeUILayout(w, h float64) uiLayout {
	var ui uiLayout
	ui.canvas = Rect{X: 0, Y: topBarHeight, Width: w, Height: math.Max(0, h-topBarHeight)}
	fieldY := (topBarHeight - fieldHeight) / 2
	ui.submit = Rect{X: w - uiPadding - submitWidth, Y: fieldY, Width: submitWidth, Height: fieldHeight}
	ui.search = Rect{
		X:      uiPadding,
		Y:      fieldY,
		Width:  math.Max(0, ui.submit.X-2*uiPadding),
		Height: fieldHeight,
	}
	x := w - uiPadding - controlSize
	y := h - uiPadding - float64(controlCount)*(controlSize+controlSpacing) + controlSpacing
	for i := range ui.controls {
		ui.controls[i] = Rect{X: x, Y: y, Width: controlSize, Height: controlSize}
		y += controlSize + controlSpacing
	}
	return ui
}

// panelRect places the tooltip panel to the right of its anchor tile, or to
// the left when it would leave the screen. Without a locatable anchor the
// panel is centred in the canvas.
func (e *Explorer) panelRect() Rect {
	c := e.ui.canvas
	r := Rect{
		X:      c.X + (c.Width-panelWidth)/2,
		Y:      c.Y + (c.Height-panelHeight)/2,
		Width:  panelWidth,
		Height: panelHeight,
	}
	tile, ok := e.layout.TileBounds(e.tooltip.State().Anchor)
	if !ok {
		return r
	}
	left, top := e.viewport.WorldToScreen(tile.X, tile.Y)
	right, _ := e.viewport.WorldToScreen(tile.X+tile.Width, tile.Y)
	r.X = right + panelGap
	if r.X+r.Width > c.X+c.Width {
		r.X = left - panelGap - r.Width
	}
	r.Y = top
	r.X = math.Max(c.X, math.Min(r.X, c.X+c.Width-r.Width))
	r.Y = math.Max(c.Y, math.Min(r.Y, c.Y+c.Height-r.Height))
	return r
}

func panelCloseRect(panel Rect) Rect {
	return Rect{
		X:      panel.X + panel.Width - panelCloseBox - 4,
		Y:      panel.Y + 4,
		Width:  panelCloseBox,
		Height: panelCloseBox,
	}
}

// hitTest finds what lies under the screen point (sx, sy). The panel is
// above the canvas; fixed controls are above both.
func (e *Explorer) hitTest(sx, sy float64) hitTarget {
	if e.ui.search.Contains(sx, sy) {
		return hitTarget{kind: hitSearch}
	}
	if e.ui.submit.Contains(sx, sy) {
		return hitTarget{kind: hitSubmit}
	}
	for i, r := range e.ui.controls {
		if r.Contains(sx, sy) {
			return hitTarget{kind: hitControl, control: control(i)}
		}
	}
	if e.tooltip.State().Visible {
		panel := e.panelRect()
		if panelCloseRect(panel).Contains(sx, sy) {
			return hitTarget{kind: hitPanelClose}
		}
		if panel.Contains(sx, sy) {
			return hitTarget{kind: hitPanel}
		}
	}
	if !e.ui.canvas.Contains(sx, sy) {
		return hitTarget{kind: hitNone}
	}
	wx, wy := e.viewport.ScreenToWorld(sx, sy)
	if i := e.layout.IndexAt(wx, wy); i >= 0 {
		return hitTarget{kind: hitTile, index: i}
	}
	return hitTarget{kind: hitCanvas}
}

// --- Per-pointer state ---

type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	hit      hitTarget // target at press time
	hover    hitTarget // last target the pointer was hovering over (for enter/leave)
	dragging bool
}

// --- Input processing ---

// processInput is called from Explorer.Update to handle pointer and keyboard
// input. Injected events take priority; while any are queued real devices
// are not read.
func (e *Explorer) processInput() {
	if e.processInjectedInput() {
		return
	}
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	e.processPointer(float64(mx), float64(my), pressed)

	e.runeBuf = ebiten.AppendInputChars(e.runeBuf[:0])
	e.handleKeys(inpututil.AppendJustPressedKeys(nil), string(e.runeBuf))
}

// handleKeys applies one tick of keyboard input: the just-pressed keys, then
// the characters typed in the same tick. Text from the tick that focused the
// search box is dropped, so the "/" hotkey does not land in the query.
func (e *Explorer) handleKeys(keys []ebiten.Key, text string) {
	focused := e.searchFocus
	for _, k := range keys {
		e.handleKey(k)
	}
	if !focused && e.searchFocus {
		return
	}
	e.handleText(text)
}

// processPointer runs the pointer state machine for the mouse, in screen
// coordinates.
func (e *Explorer) processPointer(sx, sy float64, pressed bool) {
	ps := &e.pointer
	target := e.hitTest(sx, sy)

	if target != ps.hover {
		e.pointerLeave(ps.hover, target)
		e.pointerEnter(target, ps.hover)
		ps.hover = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.startX, ps.startY = sx, sy
		ps.lastX, ps.lastY = sx, sy
		ps.hit = target
		ps.dragging = false
	case !pressed && ps.down:
		if ps.dragging {
			e.viewport.Pan(sx-ps.lastX, sy-ps.lastY)
		} else if ps.hit == target {
			e.click(target)
		}
		ps.down = false
		ps.dragging = false
		ps.hit = hitTarget{}
	case pressed && ps.down:
		if sx != ps.lastX || sy != ps.lastY {
			if !ps.dragging && e.pannable(ps.hit) {
				dx, dy := sx-ps.startX, sy-ps.startY
				if math.Sqrt(dx*dx+dy*dy) > defaultDragDeadZone {
					ps.dragging = true
					e.viewport.Pan(sx-ps.startX, sy-ps.startY)
				}
			} else if ps.dragging {
				e.viewport.Pan(sx-ps.lastX, sy-ps.lastY)
			}
		}
	}
	ps.lastX, ps.lastY = sx, sy
}

func (e *Explorer) pannable(h hitTarget) bool {
	return h.kind == hitTile || h.kind == hitCanvas
}

// pointerEnter updates the tooltip latches when the hovered target changes.
// Only the anchor tile counts as the source once a panel is anchored.
func (e *Explorer) pointerEnter(to, from hitTarget) {
	switch {
	case to.onPanel() && !from.onPanel():
		e.tooltip.TooltipEnter()
	case to.kind == hitTile:
		if e.isSourceTile(to.index) {
			e.tooltip.SourceEnter()
		}
	}
}

func (e *Explorer) pointerLeave(from, to hitTarget) {
	switch {
	case from.onPanel() && !to.onPanel():
		e.tooltip.TooltipLeave()
	case from.kind == hitTile:
		if e.tooltip.OverSource() {
			e.tooltip.SourceLeave()
		}
	}
}

func (e *Explorer) isSourceTile(i int) bool {
	p := e.profileAt(i)
	if p == nil {
		return false
	}
	anchor := e.tooltip.State().Anchor
	return anchor == "" || anchor == p.Handle
}

// click dispatches a completed click. Anything that is neither a profile
// tile nor the panel counts as an outside click.
func (e *Explorer) click(target hitTarget) {
	switch target.kind {
	case hitTile:
		if p := e.profileAt(target.index); p != nil {
			e.searchFocus = false
			e.tooltip.SourceEnter()
			e.tooltip.Click(p, p.Handle)
			return
		}
	case hitPanel:
		return
	case hitPanelClose:
		e.tooltip.Dismiss()
		return
	}

	e.tooltip.OutsideClick()
	switch target.kind {
	case hitSearch:
		e.searchFocus = true
	case hitSubmit:
		e.Submit()
	case hitControl:
		e.pressControl(target.control)
	default:
		e.searchFocus = false
	}
}

func (e *Explorer) pressControl(c control) {
	switch c {
	case controlZoomIn:
		e.viewport.ZoomIn()
	case controlZoomOut:
		e.viewport.ZoomOut()
	case controlReset:
		e.viewport.Reset()
	case controlFullscreen:
		e.toggleFullscreen()
	}
}

// toggleFullscreen flips the window mode when running, or the recorded state
// when driven headless.
func (e *Explorer) toggleFullscreen() {
	next := !e.viewport.Fullscreen()
	if e.watchFull {
		ebiten.SetFullscreen(next)
	}
	e.SetFullscreen(next)
}

// --- Keyboard ---

// handleKey applies one just-pressed key. With the search box focused keys
// edit the query; otherwise they drive the viewport.
func (e *Explorer) handleKey(k ebiten.Key) {
	if e.searchFocus {
		switch k {
		case ebiten.KeyBackspace:
			q := e.index.Query()
			if q != "" {
				_, size := utf8.DecodeLastRuneInString(q)
				e.SetQuery(q[:len(q)-size])
			}
		case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
			e.Submit()
		case ebiten.KeyEscape:
			e.searchFocus = false
		}
		return
	}
	switch k {
	case ebiten.KeyEqual, ebiten.KeyNumpadAdd:
		e.viewport.ZoomIn()
	case ebiten.KeyMinus, ebiten.KeyNumpadSubtract:
		e.viewport.ZoomOut()
	case ebiten.KeyDigit0, ebiten.KeyNumpad0:
		e.viewport.Reset()
	case ebiten.KeyF:
		e.toggleFullscreen()
	case ebiten.KeyEscape:
		e.tooltip.Dismiss()
	case ebiten.KeySlash:
		e.searchFocus = true
	case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
		e.Submit()
	}
}

// handleText appends typed characters to the query while the search box has
// focus.
func (e *Explorer) handleText(s string) {
	if !e.searchFocus || s == "" {
		return
	}
	e.SetQuery(e.index.Query() + s)
}

// SearchFocused reports whether typed text goes to the search box.
func (e *Explorer) SearchFocused() bool { return e.searchFocus }
