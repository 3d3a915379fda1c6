package keyboard

import "time"

// activeKey is one entry in the ordered set of keys currently considered
// down. Insertion order is what the scan protocol reports, so the slice is
// never reordered.
type activeKey struct {
	code   SoftCode
	downAt time.Time
	// auto marks the entry for synthetic release once the minimum press
	// time has elapsed.
	auto bool
}

func (k *Keyboard) findActive(sc SoftCode) int {
	for i := range k.active {
		if k.active[i].code == sc {
			return i
		}
	}
	return -1
}

// transition applies a down or up transition for a soft code. Callers hold
// the lock.
//
// Down transitions insert a fresh entry or refresh an existing one in place
// (key repeat must not duplicate entries). Up transitions on an entry that
// has been held for less than the model's minimum press time do not remove
// it; the emulated scan firmware polls too slowly to have observed such a
// press, so the entry is flagged for auto-release and stays down until the
// release scheduler clears it.
func (k *Keyboard) transition(sc SoftCode, down, forceAuto bool) {
	now := k.now()

	if down {
		if i := k.findActive(sc); i >= 0 {
			k.active[i].downAt = now
			k.active[i].auto = forceAuto
		} else {
			k.active = append(k.active, activeKey{code: sc, downAt: now, auto: forceAuto})
		}
		k.setStatusBit(sc, true)
		if forceAuto {
			k.rescanReleases()
		}
		return
	}

	i := k.findActive(sc)
	if i < 0 {
		// Hosts occasionally deliver spurious or duplicate ups.
		return
	}
	if !k.active[i].auto {
		if now.Sub(k.active[i].downAt) < k.model.MinPress {
			k.active[i].auto = true
			k.rescanReleases()
			return
		}
	}
	k.removeActive(i)
}

// removeActive deletes the entry at i, preserving insertion order, and
// mirrors the removal into pad-style status bits.
func (k *Keyboard) removeActive(i int) {
	sc := k.active[i].code
	k.active = append(k.active[:i], k.active[i+1:]...)
	k.setStatusBit(sc, false)
}

// setStatusBit mirrors a transition into the discrete status register for
// models that expose per-key bits instead of a scan matrix.
func (k *Keyboard) setStatusBit(sc SoftCode, on bool) {
	bit, ok := k.model.StatusBits[sc]
	if !ok {
		return
	}
	if on {
		k.buttons |= bit
	} else {
		k.buttons &^= bit
	}
}

// Rescan re-evaluates pending auto-releases. It is invoked by the shared
// release timer; firing early is harmless because actual elapsed time is
// re-checked before anything is removed.
func (k *Keyboard) Rescan() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.rescanReleases()
}

// rescanReleases removes every auto-release entry whose minimum press time
// has elapsed, then arms a single timer for the tightest remaining deadline.
// Removal restarts the sweep rather than continuing over shifted indices.
// Callers hold the lock.
func (k *Keyboard) rescanReleases() {
	now := k.now()

	for {
		removed := false
		for i := range k.active {
			if k.active[i].auto && now.Sub(k.active[i].downAt) >= k.model.MinPress {
				k.removeActive(i)
				removed = true
				break
			}
		}
		if !removed {
			break
		}
	}

	var minRemain time.Duration
	pending := false
	for _, e := range k.active {
		if !e.auto {
			continue
		}
		remain := k.model.MinPress - now.Sub(e.downAt)
		if !pending || remain < minRemain {
			minRemain = remain
			pending = true
		}
	}

	// One outstanding timer, re-armed to the tightest deadline. Never a
	// timer per entry.
	if k.cancelRelease != nil {
		k.cancelRelease()
		k.cancelRelease = nil
	}
	if pending && k.sched != nil {
		k.cancelRelease = k.sched.After(minRemain, k.Rescan)
	}
}
