package famexplorer

import "github.com/hajimehoshi/ebiten/v2"

type syntheticKind uint8

const (
	syntheticPointer syntheticKind = iota
	syntheticKey
	syntheticText
)

// syntheticEvent represents a single injected input event. Pointer events use
// screen coordinates, identical to real mouse input.
type syntheticEvent struct {
	kind             syntheticKind
	screenX, screenY float64
	pressed          bool
	key              ebiten.Key
	text             string
}

// InjectPress queues a pointer press event at the given screen coordinates.
// The event is consumed on the next frame's processInput call.
func (e *Explorer) InjectPress(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{
		kind:    syntheticPointer,
		screenX: x, screenY: y,
		pressed: true,
	})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (e *Explorer) InjectMove(x, y float64) {
	e.InjectPress(x, y)
}

// InjectHover queues a pointer move with no button held.
func (e *Explorer) InjectHover(x, y float64) {
	e.InjectRelease(x, y)
}

// InjectRelease queues a pointer release event at the given screen coordinates.
func (e *Explorer) InjectRelease(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{
		kind:    syntheticPointer,
		screenX: x, screenY: y,
	})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two frames.
func (e *Explorer) InjectClick(x, y float64) {
	e.InjectPress(x, y)
	e.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (e *Explorer) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	e.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		e.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	e.InjectRelease(toX, toY)
}

// InjectKey queues a single key press.
func (e *Explorer) InjectKey(k ebiten.Key) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: syntheticKey, key: k})
}

// InjectKeyText queues a key press together with the characters it typed,
// delivered in one frame the way a real keyboard reports them.
func (e *Explorer) InjectKeyText(k ebiten.Key, text string) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: syntheticKey, key: k, text: text})
}

// InjectText queues typed text, delivered in one frame.
func (e *Explorer) InjectText(s string) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: syntheticText, text: s})
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the same path as device input. Returns true if an event was
// consumed (real input should be skipped).
func (e *Explorer) processInjectedInput() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	evt := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	switch evt.kind {
	case syntheticPointer:
		e.processPointer(evt.screenX, evt.screenY, evt.pressed)
	case syntheticKey:
		e.handleKeys([]ebiten.Key{evt.key}, evt.text)
	case syntheticText:
		e.handleText(evt.text)
	}
	return true
}

// PendingInput returns the number of queued synthetic events.
func (e *Explorer) PendingInput() int { return len(e.injectQueue) }
