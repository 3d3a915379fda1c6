// Package machine defines the interfaces a device emulator uses to reach the
// surrounding emulated machine: its cycle clock, its interrupt controller,
// and a one-shot callback scheduler. The machine itself (CPU, memory,
// instruction execution) lives elsewhere; devices only see these three
// contact points.
package machine

import "time"

// Clock exposes the emulated machine's cycle counter. Cycle counts are
// monotonic and advance with emulated execution, not wall time, so
// timing-dependent firmware behavior stays correct regardless of host speed.
type Clock interface {
	// Cycles returns the current cycle count.
	Cycles() uint64
	// CyclesIn converts a real-time duration to a cycle count at the
	// machine's current clock rate.
	CyclesIn(d time.Duration) uint64
}

// InterruptLine raises interrupt requests toward the emulated CPU.
type InterruptLine interface {
	Request(level uint8)
}

// Scheduler arranges a single future callback on the machine's event
// timeline. After returns a cancel function; calling it before the callback
// fires prevents delivery. Firing early is acceptable for all users in this
// module, which re-check elapsed time before acting.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}
