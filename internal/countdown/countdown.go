// Package countdown implements the per-question countdown. A Timer is
// Idle or Running; only one tick is ever scheduled at a time.
package countdown

import (
	"time"

	"python-quiz/internal/loop"
)

// TickInterval is the time between two ticks.
const TickInterval = time.Second

// Timer counts down whole seconds on a loop.Scheduler.
type Timer struct {
	sched     loop.Scheduler
	onTick    func(remaining int)
	onExpire  func()
	remaining int
	running   bool
	pending   loop.Canceler
}

// New returns an idle timer. onTick receives every displayed value,
// onExpire runs once when the countdown reaches zero.
func New(sched loop.Scheduler, onTick func(remaining int), onExpire func()) *Timer {
	return &Timer{sched: sched, onTick: onTick, onExpire: onExpire}
}

// Start force-stops a running countdown and starts a fresh one.
func (t *Timer) Start(seconds int) {
	t.Stop()
	if seconds < 1 {
		seconds = 1
	}
	t.remaining = seconds
	t.running = true
	t.display()
	t.pending = t.sched.After(TickInterval, t.tick)
}

// Stop cancels the pending tick. Safe to call when idle.
func (t *Timer) Stop() {
	if t.pending != nil {
		t.pending.Cancel()
		t.pending = nil
	}
	t.running = false
}

// Running reports whether a countdown is active.
func (t *Timer) Running() bool {
	return t.running
}

// Remaining returns the seconds left on the current or last countdown.
func (t *Timer) Remaining() int {
	return t.remaining
}

func (t *Timer) tick() {
	t.pending = nil
	if !t.running {
		return
	}
	t.remaining--
	if t.remaining > 0 {
		t.display()
		t.pending = t.sched.After(TickInterval, t.tick)
		return
	}
	t.remaining = 0
	t.running = false
	t.display()
	if t.onExpire != nil {
		t.onExpire()
	}
}

func (t *Timer) display() {
	if t.onTick != nil {
		t.onTick(t.remaining)
	}
}
