package toc

import (
	"sort"
	"time"
)

// fakeScheduler runs callbacks only when the test advances its clock.
type fakeScheduler struct {
	now    time.Duration
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.seq++
	t := &fakeTimer{at: s.now + d, seq: s.seq, fn: f}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward by d, firing due timers in order.
func (s *fakeScheduler) Advance(d time.Duration) {
	end := s.now + d
	for {
		var due []*fakeTimer
		for _, t := range s.timers {
			if !t.stopped && !t.fired && t.at <= end {
				due = append(due, t)
			}
		}
		if len(due) == 0 {
			break
		}
		sort.Slice(due, func(i, j int) bool {
			if due[i].at != due[j].at {
				return due[i].at < due[j].at
			}
			return due[i].seq < due[j].seq
		})
		next := due[0]
		s.now = next.at
		next.fired = true
		next.fn()
	}
	s.now = end
}

func (s *fakeScheduler) pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}
