package machine

import (
	"sync"
	"time"
)

// CycleClock derives a cycle count from the host monotonic clock at a fixed
// emulated rate. It stands in for a real CPU core when the keyboard runs
// outside a full machine (demo and serve front-ends).
type CycleClock struct {
	hz    uint64
	start time.Time
}

// NewCycleClock returns a clock ticking at hz cycles per second, starting now.
func NewCycleClock(hz uint64) *CycleClock {
	return &CycleClock{hz: hz, start: time.Now()}
}

func (c *CycleClock) Cycles() uint64 {
	return cycleCount(time.Since(c.start), c.hz)
}

func (c *CycleClock) CyclesIn(d time.Duration) uint64 {
	return cycleCount(d, c.hz)
}

// cycleCount converts a duration to cycles without forming the full
// nanosecond product: d*hz overflows uint64 after about two hours at typical
// rates, which would wrap Cycles() below an earlier snapshot and wedge any
// comparison against it. Whole seconds multiply exactly; the sub-second
// remainder stays under 1e9 ns and cannot overflow.
func cycleCount(d time.Duration, hz uint64) uint64 {
	if d <= 0 {
		return 0
	}
	return uint64(d/time.Second)*hz + uint64(d%time.Second)*hz/uint64(time.Second)
}

// TimerScheduler implements Scheduler on top of time.AfterFunc. Callbacks run
// on a timer goroutine; callers that require single-threaded delivery must
// funnel them back onto their own loop.
type TimerScheduler struct{}

func (TimerScheduler) After(d time.Duration, fn func()) (cancel func()) {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// FuncLine adapts a plain function to the InterruptLine interface.
type FuncLine func(level uint8)

func (f FuncLine) Request(level uint8) { f(level) }

// LoopScheduler wraps another Scheduler and redirects callback delivery into
// a queue drained by a single event loop, preserving the strictly ordered,
// single-threaded execution model devices assume.
type LoopScheduler struct {
	Inner Scheduler
	Queue chan<- func()

	mu sync.Mutex
}

func (s *LoopScheduler) After(d time.Duration, fn func()) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Inner.After(d, func() {
		select {
		case s.Queue <- fn:
		default:
			// Loop gone; drop rather than block the timer goroutine.
		}
	})
}
