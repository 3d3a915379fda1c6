package keyboard

import (
	"encoding/binary"
	"fmt"
	"io"
)

// snapshotLen is the fixed wire size of a register snapshot:
// status(1) + addr(1) + busy(1) + busyCycle(8) + scanIndex(4).
const snapshotLen = 15

// MarshalBinary encodes the register file for machine save state.
func (r *uartRegisters) MarshalBinary() ([]byte, error) {
	b := make([]byte, snapshotLen)
	b[0] = r.status
	b[1] = r.addr
	if r.busy {
		b[2] = 1
	}
	binary.BigEndian.PutUint64(b[3:11], r.busyCycle)
	binary.BigEndian.PutUint32(b[11:15], uint32(r.scanIndex))
	return b, nil
}

// UnmarshalBinary decodes a register snapshot. The shape is validated in
// full before any field is assigned, so a failed restore leaves the
// registers untouched.
func (r *uartRegisters) UnmarshalBinary(data []byte) error {
	if len(data) < snapshotLen {
		return io.ErrUnexpectedEOF
	}
	if len(data) > snapshotLen {
		return fmt.Errorf("register snapshot: %d trailing bytes", len(data)-snapshotLen)
	}
	scanIndex := int32(binary.BigEndian.Uint32(data[11:15]))
	if scanIndex < scanIdle {
		return fmt.Errorf("register snapshot: invalid scan index %d", scanIndex)
	}

	r.status = data[0]
	r.addr = data[1]
	r.busy = data[2] != 0
	r.busyCycle = binary.BigEndian.Uint64(data[3:11])
	r.scanIndex = scanIndex
	return nil
}

// Snapshot implements device.Snapshotter. Only the UART registers are
// captured; the active key set and the modifier mask are transient input
// state and deliberately excluded from persistence.
func (k *Keyboard) Snapshot() []byte {
	k.mu.Lock()
	defer k.mu.Unlock()
	b, _ := k.regs.MarshalBinary()
	return b
}

// Restore implements device.Snapshotter. On error the registers keep their
// previous contents; callers typically fall back to Reset.
func (k *Keyboard) Restore(data []byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.regs.UnmarshalBinary(data)
}
