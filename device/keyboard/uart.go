package keyboard

// scanIdle marks the scan state machine as inactive; any value >= 0 is the
// next active-set position to report.
const scanIdle = -1

// uartRegisters is the controller's register file. It is the only state
// that participates in machine save/restore; the active key set and the
// modifier mask are transient host input state, not device state.
type uartRegisters struct {
	status    uint8
	addr      uint8 // latched, persists across reads while idle
	busy      bool
	busyCycle uint64
	scanIndex int32
}

// ReadPort implements device.PortDevice.
func (k *Keyboard) ReadPort(port uint8) uint8 {
	k.mu.Lock()
	defer k.mu.Unlock()

	switch k.ports[port] {
	case opScan:
		return k.readScan()
	case opButtons:
		return k.buttons
	default:
		return 0
	}
}

// WritePort implements device.PortDevice.
func (k *Keyboard) WritePort(port uint8, v uint8) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.ports[port] == opScan {
		k.writeStatus(v)
	}
}

// writeStatus handles a host write of the status/control byte: the byte is
// latched, the transmitter goes busy against the current cycle count, and a
// set START bit begins a scan with an immediate interrupt. Indicator bits
// are forwarded to the display adapter. Callers hold the lock.
func (k *Keyboard) writeStatus(v uint8) {
	k.regs.status = v
	k.regs.busy = true
	if k.clock != nil {
		k.regs.busyCycle = k.clock.Cycles()
	}

	if v&StatusStart != 0 {
		k.regs.scanIndex = 0
		k.requestIRQ()
	}

	if k.indicatorFn != nil {
		k.indicatorFn(Indicators{
			LEDs:  v & StatusLEDMask,
			Click: v&StatusClick != 0,
		})
	}
	k.logger.Debug("keyboard status write", "status", v, "scan", v&StatusStart != 0)
}

// readScan handles a host read of the address register.
//
// Idle: the last latched address, unchanged. Mid-scan: the device address of
// the next active entry in insertion order (shift flag masked off the wire),
// then another interrupt to keep the scan moving. Past the last entry: the
// sentinel end-of-scan address, return to idle, final interrupt. Callers
// hold the lock.
func (k *Keyboard) readScan() uint8 {
	r := &k.regs
	if r.scanIndex == scanIdle {
		k.logger.Debug("keyboard address read while idle", "addr", r.addr)
		return r.addr
	}

	if int(r.scanIndex) < len(k.active) {
		e := k.active[r.scanIndex]
		r.addr = k.model.AddrOf(e.code) &^ AddrShiftFlag
		if k.removeOnRead {
			// Diagnostic mode: a debugger may never deliver the
			// terminating key-up, and a reported key must not stay
			// latched indefinitely.
			k.removeActive(int(r.scanIndex))
		} else {
			r.scanIndex++
		}
		k.requestIRQ()
		return r.addr
	}

	r.addr = k.model.ScanEnd
	r.scanIndex = scanIdle
	k.requestIRQ()
	return r.addr
}

// Ready reports whether the transmitter can accept another status write.
// The busy flag clears itself once the emulated cycle count has advanced one
// transmit frame past the snapshot taken at the last write; deriving the
// gate from cycles rather than wall clock keeps firmware timing (blink
// rates) correct at any host speed.
func (k *Keyboard) Ready() bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	r := &k.regs
	if r.busy && k.clock != nil &&
		k.clock.Cycles() >= r.busyCycle+k.clock.CyclesIn(k.model.FrameTime) {
		r.busy = false
	}
	return !r.busy
}

func (k *Keyboard) requestIRQ() {
	if k.irq != nil && k.model.IRQLevel != 0 {
		k.irq.Request(k.model.IRQLevel)
	}
}
