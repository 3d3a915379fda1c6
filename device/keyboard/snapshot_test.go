package keyboard

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ksTesting "github.com/retrofold/keyscan/internal/testing"
	"github.com/retrofold/keyscan/hid"
)

func TestRegisterSnapshotRoundTrip(t *testing.T) {
	in := uartRegisters{
		status:    StatusStart | 0x05,
		addr:      0x2A,
		busy:      true,
		busyCycle: 0x0102030405060708,
		scanIndex: 3,
	}

	b, err := in.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, snapshotLen)

	var out uartRegisters
	require.NoError(t, out.UnmarshalBinary(b))
	assert.Equal(t, in, out)
}

func TestRegisterSnapshotIdleIndex(t *testing.T) {
	in := uartRegisters{scanIndex: scanIdle}
	b, err := in.MarshalBinary()
	require.NoError(t, err)

	var out uartRegisters
	require.NoError(t, out.UnmarshalBinary(b))
	assert.Equal(t, int32(scanIdle), out.scanIndex)
}

func TestRegisterSnapshotRejects(t *testing.T) {
	valid, err := (&uartRegisters{scanIndex: scanIdle}).MarshalBinary()
	require.NoError(t, err)

	t.Run("undersized", func(t *testing.T) {
		var r uartRegisters
		assert.ErrorIs(t, r.UnmarshalBinary(valid[:snapshotLen-1]), io.ErrUnexpectedEOF)
	})
	t.Run("trailing bytes", func(t *testing.T) {
		var r uartRegisters
		assert.Error(t, r.UnmarshalBinary(append(append([]byte{}, valid...), 0)))
	})
	t.Run("invalid scan index", func(t *testing.T) {
		bad := append([]byte{}, valid...)
		bad[11], bad[12], bad[13], bad[14] = 0xFF, 0xFF, 0xFF, 0xFE // -2
		var r uartRegisters
		assert.Error(t, r.UnmarshalBinary(bad))
	})
}

func TestRestoreFailureLeavesRegistersUntouched(t *testing.T) {
	kb, _ := newTestKeyboard(t, Options{})
	port := kb.Model().DataPort

	kb.WritePort(port, StatusStart)
	kb.ReadPort(port) // latch the sentinel
	before := kb.Snapshot()

	assert.Error(t, kb.Restore(before[:4]))
	assert.Equal(t, before, kb.Snapshot())
}

func TestKeyboardSnapshotRestore(t *testing.T) {
	clock := ksTesting.NewFakeClock(2_457_600)
	kb, _ := newTestKeyboard(t, Options{Clock: clock})
	port := kb.Model().DataPort

	kb.DeliverKeyTransition(hid.KeyA, true, false)
	kb.WritePort(port, StatusStart)
	snap := kb.Snapshot()

	// Restore into a fresh instance: the busy gate and the mid-scan state
	// carry over.
	kb2, _ := newTestKeyboard(t, Options{Clock: clock})
	require.NoError(t, kb2.Restore(snap))
	assert.False(t, kb2.Ready())

	clock.AdvanceBy(kb2.Model().FrameTime)
	assert.True(t, kb2.Ready())

	// The active set is host input state and is not part of the snapshot;
	// with no entries the restored scan terminates immediately.
	assert.Equal(t, AddrScanEnd, kb2.ReadPort(port))
}
