package famexplorer

import "time"

const (
	// DefaultOpenDelay debounces the open after a tile click so a click-away
	// delivered for the same gesture is processed first.
	DefaultOpenDelay = 50 * time.Millisecond

	// DefaultCloseGrace is how long the tooltip survives after the pointer
	// has left both the source tile and the panel.
	DefaultCloseGrace = 200 * time.Millisecond
)

// TooltipPhase is the coarse state of the tooltip state machine.
type TooltipPhase uint8

const (
	TooltipIdle        TooltipPhase = iota // hidden, no selection
	TooltipPendingOpen                     // click received, open timer running
	TooltipOpen                            // visible with a selected profile
)

// String returns the phase name.
func (p TooltipPhase) String() string {
	switch p {
	case TooltipIdle:
		return "idle"
	case TooltipPendingOpen:
		return "pending_open"
	case TooltipOpen:
		return "open"
	default:
		return "unknown"
	}
}

// TooltipState is what the rendering layer needs to draw the panel.
// Visible implies Selected != nil; both change in the same transition.
type TooltipState struct {
	Selected *Profile
	Visible  bool
	// Anchor is the handle of the tile the panel is attached to.
	Anchor string
}

// Tooltip is the hover/click state machine for the profile detail panel.
//
// Two latches record whether the pointer rests on the source tile or on the
// panel. The panel stays open while either latch is held; once both are
// released a grace timer closes it. Opening is debounced by OpenDelay.
//
// Every timer callback re-checks its preconditions, and every new event that
// reschedules a timer cancels the previous one with the same purpose.
type Tooltip struct {
	// OpenDelay is the click debounce. Defaults to DefaultOpenDelay.
	OpenDelay time.Duration
	// CloseGrace is the delay before closing once both latches are released.
	// Defaults to DefaultCloseGrace.
	CloseGrace time.Duration

	// OnChange, if set, is called after every visibility transition.
	OnChange func(prev, next TooltipState)

	timers      *Timers
	state       TooltipState
	overSource  bool
	overTooltip bool
	openTimer   TimerHandle
	closeTimer  TimerHandle
}

// NewTooltip creates an idle tooltip scheduling its timers on q.
func NewTooltip(q *Timers) *Tooltip {
	return &Tooltip{
		OpenDelay:  DefaultOpenDelay,
		CloseGrace: DefaultCloseGrace,
		timers:     q,
	}
}

// State returns the current tooltip state.
func (t *Tooltip) State() TooltipState { return t.state }

// Phase derives the state machine phase.
func (t *Tooltip) Phase() TooltipPhase {
	if t.openTimer.Active() {
		return TooltipPendingOpen
	}
	if t.state.Visible {
		return TooltipOpen
	}
	return TooltipIdle
}

// OverSource reports the source-tile latch.
func (t *Tooltip) OverSource() bool { return t.overSource }

// OverTooltip reports the panel latch.
func (t *Tooltip) OverTooltip() bool { return t.overTooltip }

// Click handles a click on a tile. A nil profile (tile still loading) is
// ignored. A click during PendingOpen replaces the pending target.
func (t *Tooltip) Click(p *Profile, anchor string) {
	if p == nil {
		return
	}
	profile := *p
	t.openTimer.Cancel()
	t.openTimer = t.timers.After(t.OpenDelay, func() {
		t.openTimer = TimerHandle{}
		t.resolveOpen(&profile, anchor)
	})
}

// resolveOpen runs when the open debounce fires. A closed, unheld tooltip
// opens; an already open or held one closes, so a second click toggles.
// If the pointer left during the debounce the grace timer starts at once.
func (t *Tooltip) resolveOpen(p *Profile, anchor string) {
	if !t.state.Visible && !t.overTooltip {
		t.closeTimer.Cancel()
		t.set(TooltipState{Selected: p, Visible: true, Anchor: anchor})
		if !t.overSource {
			t.scheduleClose()
		}
		return
	}
	t.hide()
}

// SourceEnter sets the source latch.
func (t *Tooltip) SourceEnter() {
	t.overSource = true
	t.closeTimer.Cancel()
}

// SourceLeave releases the source latch and, if the panel is open, starts
// the grace timer.
func (t *Tooltip) SourceLeave() {
	t.overSource = false
	t.scheduleClose()
}

// TooltipEnter sets the panel latch.
func (t *Tooltip) TooltipEnter() {
	t.overTooltip = true
	t.closeTimer.Cancel()
}

// TooltipLeave releases the panel latch and starts the grace timer.
func (t *Tooltip) TooltipLeave() {
	t.overTooltip = false
	t.scheduleClose()
}

func (t *Tooltip) scheduleClose() {
	t.closeTimer.Cancel()
	if !t.state.Visible {
		return
	}
	t.closeTimer = t.timers.After(t.CloseGrace, func() {
		t.closeTimer = TimerHandle{}
		if !t.overSource && !t.overTooltip {
			t.hide()
		}
	})
}

// OutsideClick handles a click that hit neither a tile nor the panel. It
// releases the source latch and, unless the panel latch is held, closes at
// once and cancels any pending open.
func (t *Tooltip) OutsideClick() {
	t.overSource = false
	if t.overTooltip {
		return
	}
	t.openTimer.Cancel()
	t.closeTimer.Cancel()
	t.hide()
}

// Dismiss is the panel's close button: it closes at once even though the
// pointer rests on the panel, and cancels any pending open.
func (t *Tooltip) Dismiss() {
	t.openTimer.Cancel()
	t.closeTimer.Cancel()
	t.overSource = false
	t.overTooltip = false
	t.hide()
}

// Close tears the state machine down: all timers are cancelled, latches
// released and the panel hidden.
func (t *Tooltip) Close() {
	t.Dismiss()
	t.openTimer = TimerHandle{}
	t.closeTimer = TimerHandle{}
}

func (t *Tooltip) hide() {
	if !t.state.Visible && t.state.Selected == nil {
		return
	}
	t.set(TooltipState{})
}

func (t *Tooltip) set(next TooltipState) {
	prev := t.state
	t.state = next
	if t.OnChange != nil {
		t.OnChange(prev, next)
	}
}
