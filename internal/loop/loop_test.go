package loop

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestPostRunsInOrder(t *testing.T) {
	l := New(clockwork.NewFakeClock())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go l.Run(ctx)
	defer l.Stop()

	var got []int
	for i := 0; i < 5; i++ {
		i := i
		l.Post(func() { got = append(got, i) })
	}
	var snapshot []int
	l.Do(func() { snapshot = append(snapshot, got...) })

	if len(snapshot) != 5 {
		t.Fatalf("expected 5 events, got %v", snapshot)
	}
	for i, v := range snapshot {
		if v != i {
			t.Fatalf("expected ordered delivery, got %v", snapshot)
		}
	}
}

func TestAfterDeliversOnLoop(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := New(clock)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go l.Run(ctx)
	defer l.Stop()

	fired := 0
	var h Canceler
	l.Do(func() { h = l.After(time.Second, func() { fired++ }) })
	if err := clock.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("timer never armed: %v", err)
	}
	clock.Advance(time.Second)

	waitFor(t, l, func() bool { return fired == 1 && h.(*Handle).Fired() })

	// cancelling after delivery is ignored
	l.Do(func() { h.Cancel() })
}

func TestCancelBeforeDeadline(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := New(clock)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go l.Run(ctx)
	defer l.Stop()

	fired := false
	var h Canceler
	l.Do(func() { h = l.After(time.Second, func() { fired = true }) })
	l.Do(func() {
		h.Cancel()
		h.Cancel()
	})
	clock.Advance(2 * time.Second)

	var result bool
	l.Do(func() { result = fired })
	if result {
		t.Fatalf("cancelled task must not run")
	}
}

func TestCancelDropsQueuedDelivery(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := New(clock)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// The loop is not running yet, so this goroutine owns loop state.
	fired := false
	h := l.After(time.Second, func() { fired = true })
	if err := clock.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("timer never armed: %v", err)
	}
	clock.Advance(time.Second)

	deadline := time.Now().Add(2 * time.Second)
	for len(l.events) == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("delivery was never queued")
		}
		time.Sleep(time.Millisecond)
	}
	h.Cancel()

	go l.Run(ctx)
	defer l.Stop()

	var result bool
	l.Do(func() { result = fired })
	if result {
		t.Fatalf("queued delivery ran after Cancel")
	}
}

func TestPostAfterStop(t *testing.T) {
	l := New(nil)
	l.Stop()
	l.Stop()
	if l.Post(func() {}) {
		t.Fatalf("expected Post to fail after Stop")
	}
	if l.Do(func() {}) {
		t.Fatalf("expected Do to fail after Stop")
	}
	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("expected clean return on stopped loop, got %v", err)
	}
}

func TestRunReturnsOnContextCancel(t *testing.T) {
	l := New(clockwork.NewFakeClock())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Run(ctx); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	select {
	case <-l.Done():
	default:
		t.Fatalf("expected loop stopped after cancel")
	}
}

func TestNilHandleCancel(t *testing.T) {
	var h *Handle
	h.Cancel()
}

func waitFor(t *testing.T, l *Loop, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		var ok bool
		l.Do(func() { ok = cond() })
		if ok {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
