package famexplorer

import "time"

// timer is a single scheduled callback. interval > 0 makes it recurring.
type timer struct {
	id       uint32
	due      time.Duration
	interval time.Duration
	fn       func()
}

// Timers is a frame-driven timer queue. Time only moves when Advance is
// called, normally once per Update with the frame delta. Callbacks run on the
// caller's goroutine in due order (ties in scheduling order), so there is no
// locking.
type Timers struct {
	now    time.Duration
	timers []*timer
	nextID uint32
}

// TimerHandle allows cancelling a scheduled callback. The zero value is an
// inactive handle; Cancel on it is a no-op.
type TimerHandle struct {
	id uint32
	q  *Timers
}

// NewTimers creates an empty timer queue at time zero.
func NewTimers() *Timers {
	return &Timers{}
}

// Now returns the queue's current time.
func (q *Timers) Now() time.Duration { return q.now }

// Len returns the number of pending timers.
func (q *Timers) Len() int { return len(q.timers) }

// After schedules fn to run once, d after the current time.
func (q *Timers) After(d time.Duration, fn func()) TimerHandle {
	return q.schedule(d, 0, fn)
}

// Every schedules fn to run every interval until cancelled.
func (q *Timers) Every(interval time.Duration, fn func()) TimerHandle {
	if interval <= 0 {
		return TimerHandle{}
	}
	return q.schedule(interval, interval, fn)
}

func (q *Timers) schedule(d, interval time.Duration, fn func()) TimerHandle {
	if d < 0 {
		d = 0
	}
	q.nextID++
	t := &timer{id: q.nextID, due: q.now + d, interval: interval, fn: fn}
	q.timers = append(q.timers, t)
	return TimerHandle{id: t.id, q: q}
}

// Advance moves time forward by dt and runs every timer that falls due, in
// order. A callback may schedule or cancel timers; newly scheduled timers
// that fall due within the same window also run.
func (q *Timers) Advance(dt time.Duration) {
	target := q.now + dt
	for {
		idx := q.nextDue(target)
		if idx < 0 {
			break
		}
		t := q.timers[idx]
		q.now = t.due
		if t.interval > 0 {
			t.due += t.interval
		} else {
			q.remove(idx)
		}
		t.fn()
	}
	q.now = target
}

// nextDue returns the index of the earliest timer due at or before target,
// or -1.
func (q *Timers) nextDue(target time.Duration) int {
	best := -1
	for i, t := range q.timers {
		if t.due > target {
			continue
		}
		if best < 0 || t.due < q.timers[best].due ||
			(t.due == q.timers[best].due && t.id < q.timers[best].id) {
			best = i
		}
	}
	return best
}

func (q *Timers) remove(i int) {
	copy(q.timers[i:], q.timers[i+1:])
	q.timers[len(q.timers)-1] = nil
	q.timers = q.timers[:len(q.timers)-1]
}

func (q *Timers) cancel(id uint32) bool {
	for i, t := range q.timers {
		if t.id == id {
			q.remove(i)
			return true
		}
	}
	return false
}

// CancelAll drops every pending timer.
func (q *Timers) CancelAll() {
	for i := range q.timers {
		q.timers[i] = nil
	}
	q.timers = q.timers[:0]
}

// Cancel unschedules the callback. It reports whether the timer was still
// pending.
func (h TimerHandle) Cancel() bool {
	if h.q == nil {
		return false
	}
	return h.q.cancel(h.id)
}

// Active reports whether the timer is still pending.
func (h TimerHandle) Active() bool {
	if h.q == nil {
		return false
	}
	for _, t := range h.q.timers {
		if t.id == h.id {
			return true
		}
	}
	return false
}
