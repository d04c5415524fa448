// Package loop runs every quiz state change on a single cooperative event
// loop. Scheduled work is delivered onto the same loop, so controller and
// timer code never needs locks.
package loop

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Canceler cancels a scheduled task.
type Canceler interface {
	Cancel()
}

// Scheduler arranges for fn to run once after d.
type Scheduler interface {
	After(d time.Duration, fn func()) Canceler
}

// Loop processes posted events one at a time.
type Loop struct {
	clock    clockwork.Clock
	events   chan func()
	done     chan struct{}
	stopOnce sync.Once
}

func New(clock clockwork.Clock) *Loop {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Loop{
		clock:  clock,
		events: make(chan func(), 64),
		done:   make(chan struct{}),
	}
}

// Run delivers events until Stop is called or ctx is canceled.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.events:
			fn()
		}
	}
}

// Stop ends the loop. Events posted afterwards are dropped.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

// Done is closed once the loop has been stopped.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Post enqueues fn. It reports false when the loop is already stopped.
// Post must not be called from the loop goroutine while the queue is full.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.events <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Do posts fn and waits until it has run on the loop.
func (l *Loop) Do(fn func()) bool {
	ran := make(chan struct{})
	if !l.Post(func() {
		defer close(ran)
		fn()
	}) {
		return false
	}
	select {
	case <-ran:
		return true
	case <-l.done:
		return false
	}
}

// Handle is a cancellable task scheduled with After. Its state is only
// touched on the loop goroutine.
type Handle struct {
	timer     clockwork.Timer
	cancelled bool
	fired     bool
}

// After schedules fn to run on the loop once d has elapsed on the loop clock.
// Must be called from the loop goroutine.
func (l *Loop) After(d time.Duration, fn func()) Canceler {
	h := &Handle{}
	h.timer = l.clock.AfterFunc(d, func() {
		l.Post(func() {
			// the delivery may already be queued when Cancel runs
			if h.cancelled || h.fired {
				return
			}
			h.fired = true
			fn()
		})
	})
	return h
}

// Cancel prevents the task from running. Cancelling a fired or already
// cancelled task is a no-op.
func (h *Handle) Cancel() {
	if h == nil || h.cancelled || h.fired {
		return
	}
	h.cancelled = true
	if h.timer != nil {
		_ = h.timer.Stop()
	}
}

// Fired reports whether the task has run.
func (h *Handle) Fired() bool {
	return h.fired
}
