package toc

import (
	"sync"
	"time"
)

// DefaultInterval is the scroll handler's suppression window.
const DefaultInterval = 100 * time.Millisecond

// Timer is a pending scheduled call.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemScheduler schedules on the runtime timer.
type SystemScheduler struct{}

// AfterFunc implements Scheduler.
func (SystemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ThrottleDebounce wraps fn for bursty event streams. The first Call of a
// burst runs fn at once and opens a window of one interval; calls inside
// the window are collapsed into a single trailing run one interval after
// the latest of them.
type ThrottleDebounce struct {
	fn       func()
	interval time.Duration
	sched    Scheduler

	mu       sync.Mutex
	inWindow bool
	window   Timer
	trailing Timer
	gen      uint64
	stopped  bool
}

// NewThrottleDebounce returns a ThrottleDebounce. A nil sched uses
// SystemScheduler and a non-positive interval uses DefaultInterval.
func NewThrottleDebounce(fn func(), interval time.Duration, sched Scheduler) *ThrottleDebounce {
	if sched == nil {
		sched = SystemScheduler{}
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &ThrottleDebounce{fn: fn, interval: interval, sched: sched}
}

// Call records one event.
func (t *ThrottleDebounce) Call() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	if t.trailing != nil {
		t.trailing.Stop()
		t.trailing = nil
	}
	t.gen++
	if !t.inWindow {
		t.inWindow = true
		t.window = t.sched.AfterFunc(t.interval, t.closeWindow)
		t.mu.Unlock()
		t.fn()
		return
	}
	gen := t.gen
	t.trailing = t.sched.AfterFunc(t.interval, func() { t.fire(gen) })
	t.mu.Unlock()
}

func (t *ThrottleDebounce) closeWindow() {
	t.mu.Lock()
	t.inWindow = false
	t.window = nil
	t.mu.Unlock()
}

func (t *ThrottleDebounce) fire(gen uint64) {
	t.mu.Lock()
	if t.stopped || gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.trailing = nil
	t.mu.Unlock()
	t.fn()
}

// Stop cancels any pending run. Later calls are ignored.
func (t *ThrottleDebounce) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.trailing != nil {
		t.trailing.Stop()
		t.trailing = nil
	}
	if t.window != nil {
		t.window.Stop()
		t.window = nil
	}
}
