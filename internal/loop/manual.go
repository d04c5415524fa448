package loop

import "time"

// ManualScheduler is a Scheduler driven by Advance instead of a clock. Tasks
// run synchronously on the caller's goroutine, which makes timer behaviour
// deterministic in tests.
type ManualScheduler struct {
	now   time.Duration
	tasks []*manualTask
}

type manualTask struct {
	at        time.Duration
	fn        func()
	cancelled bool
	fired     bool
}

func (t *manualTask) Cancel() {
	t.cancelled = true
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (m *ManualScheduler) After(d time.Duration, fn func()) Canceler {
	t := &manualTask{at: m.now + d, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

// Advance moves time forward by d, running every task that falls due,
// including tasks scheduled by tasks that ran.
func (m *ManualScheduler) Advance(d time.Duration) {
	target := m.now + d
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		m.now = next.at
		next.fired = true
		next.fn()
	}
	m.now = target
	m.compact()
}

// Pending returns the number of live tasks.
func (m *ManualScheduler) Pending() int {
	n := 0
	for _, t := range m.tasks {
		if !t.cancelled && !t.fired {
			n++
		}
	}
	return n
}

func (m *ManualScheduler) nextDue(target time.Duration) *manualTask {
	var next *manualTask
	for _, t := range m.tasks {
		if t.cancelled || t.fired || t.at > target {
			continue
		}
		if next == nil || t.at < next.at {
			next = t
		}
	}
	return next
}

func (m *ManualScheduler) compact() {
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.cancelled && !t.fired {
			live = append(live, t)
		}
	}
	m.tasks = live
}
