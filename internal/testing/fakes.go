// Package testing provides fake machine collaborators for device tests.
package testing

import (
	"sync"
	"time"
)

// FakeClock is a manually advanced cycle clock.
type FakeClock struct {
	Hz uint64

	mu     sync.Mutex
	cycles uint64
}

func NewFakeClock(hz uint64) *FakeClock {
	return &FakeClock{Hz: hz}
}

func (c *FakeClock) Cycles() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cycles
}

func (c *FakeClock) CyclesIn(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	// Same overflow-safe split as machine.CycleClock.
	return uint64(d/time.Second)*c.Hz + uint64(d%time.Second)*c.Hz/uint64(time.Second)
}

// Advance moves the cycle counter forward.
func (c *FakeClock) Advance(n uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cycles += n
}

// AdvanceBy moves the cycle counter forward by the cycle equivalent of d.
func (c *FakeClock) AdvanceBy(d time.Duration) {
	c.Advance(c.CyclesIn(d))
}

// FakeInterruptLine records requested interrupt levels.
type FakeInterruptLine struct {
	mu     sync.Mutex
	levels []uint8
}

func (l *FakeInterruptLine) Request(level uint8) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.levels = append(l.levels, level)
}

// Requests returns all recorded interrupt levels in order.
func (l *FakeInterruptLine) Requests() []uint8 {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]uint8, len(l.levels))
	copy(out, l.levels)
	return out
}

// Count returns the number of recorded requests.
func (l *FakeInterruptLine) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.levels)
}

// FakeScheduler captures scheduled callbacks without real timers. Tests fire
// them explicitly.
type FakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	delay     time.Duration
	fn        func()
	cancelled bool
	fired     bool
}

func (s *FakeScheduler) After(d time.Duration, fn func()) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{delay: d, fn: fn}
	s.timers = append(s.timers, t)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		t.cancelled = true
	}
}

// Outstanding returns how many callbacks are armed and not yet fired or
// cancelled.
func (s *FakeScheduler) Outstanding() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.cancelled && !t.fired {
			n++
		}
	}
	return n
}

// NextDelay returns the delay of the single outstanding callback; it panics
// when there is not exactly one, which is always a test bug.
func (s *FakeScheduler) NextDelay() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	var found *fakeTimer
	for _, t := range s.timers {
		if t.cancelled || t.fired {
			continue
		}
		if found != nil {
			panic("more than one outstanding callback")
		}
		found = t
	}
	if found == nil {
		panic("no outstanding callback")
	}
	return found.delay
}

// Fire runs the single outstanding callback.
func (s *FakeScheduler) Fire() {
	s.mu.Lock()
	var found *fakeTimer
	for _, t := range s.timers {
		if t.cancelled || t.fired {
			continue
		}
		if found != nil {
			s.mu.Unlock()
			panic("more than one outstanding callback")
		}
		found = t
	}
	if found == nil {
		s.mu.Unlock()
		panic("no outstanding callback")
	}
	found.fired = true
	fn := found.fn
	s.mu.Unlock()
	fn()
}
