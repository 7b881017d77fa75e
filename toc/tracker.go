package toc

import (
	"sync"
	"time"
)

// Marker placement, in CSS pixels.
const (
	MarkerNudge     = 4
	MarkerHiddenTop = -12
)

// Layout answers geometry questions about the live page.
type Layout interface {
	// AbsoluteTop returns the document offset of the heading behind h, or
	// false when it is detached from the layout flow.
	AbsoluteTop(h Handle) (float64, bool)
	Scroll() ScrollState
	// ScrollOffset is the height of the sticky area above the content.
	ScrollOffset() float64
}

// Indicator draws the active state in the outline.
type Indicator interface {
	// ClearActive removes the active mark from every outline link.
	ClearActive()
	// MarkActive marks the link for the given fragment and returns its
	// offset inside the outline. ok is false when no such link exists.
	MarkActive(link string) (offsetTop float64, ok bool)
	SetMarker(top float64, visible bool)
}

// Tracker keeps the outline's active link in step with the scroll position.
type Tracker struct {
	store     *AnchorStore
	layout    Layout
	indicator Indicator
	handler   *ThrottleDebounce

	mu      sync.Mutex
	active  string
	version uint64
	closed  bool
}

type trackerConfig struct {
	sched    Scheduler
	interval time.Duration
}

// TrackerOption configures NewTracker.
type TrackerOption func(*trackerConfig)

// WithScheduler replaces the runtime timer, mostly for tests.
func WithScheduler(s Scheduler) TrackerOption {
	return func(c *trackerConfig) { c.sched = s }
}

// WithInterval overrides DefaultInterval.
func WithInterval(d time.Duration) TrackerOption {
	return func(c *trackerConfig) { c.interval = d }
}

// NewTracker wires a tracker to the anchors in store.
func NewTracker(store *AnchorStore, layout Layout, indicator Indicator, opts ...TrackerOption) *Tracker {
	var cfg trackerConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	t := &Tracker{store: store, layout: layout, indicator: indicator}
	t.handler = NewThrottleDebounce(t.Tick, cfg.interval, cfg.sched)
	return t
}

// Mount runs the first evaluation.
func (t *Tracker) Mount() {
	t.Tick()
}

// Notify feeds one scroll or resize event through the throttle.
func (t *Tracker) Notify() {
	t.handler.Call()
}

// Tick recomputes the active heading from scratch and redraws.
func (t *Tracker) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}

	anchors, version := t.store.Snapshot()
	if version != t.version {
		t.version = version
		t.active = ""
	}

	positions := make([]Position, len(anchors))
	for i, a := range anchors {
		top, ok := t.layout.AbsoluteTop(a.Handle)
		if !ok {
			top = nan
		}
		positions[i] = Position{Link: a.Link, Top: top}
	}

	link, ok := Select(positions, t.layout.Scroll(), t.layout.ScrollOffset())
	t.indicator.ClearActive()
	if !ok {
		t.active = ""
		t.indicator.SetMarker(MarkerHiddenTop, false)
		return
	}
	t.active = link
	if top, found := t.indicator.MarkActive(link); found {
		t.indicator.SetMarker(top+MarkerNudge, true)
	}
}

// Active returns the highlighted link, if any.
func (t *Tracker) Active() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active, t.active != ""
}

// Close detaches the tracker. Pending and later events are dropped.
func (t *Tracker) Close() {
	t.handler.Stop()
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
}
