package keyboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	ksTesting "github.com/retrofold/keyscan/internal/testing"
	"github.com/retrofold/keyscan/hid"
)

func TestScanReportsAndTerminates(t *testing.T) {
	irq := &ksTesting.FakeInterruptLine{}
	kb, _ := newTestKeyboard(t, Options{IRQ: irq})
	port := kb.Model().DataPort

	kb.DeliverKeyTransition(hid.KeyA, true, false)
	kb.DeliverKeyTransition(hid.KeyB, true, false)

	kb.WritePort(port, StatusStart)
	assert.Equal(t, 1, irq.Count())

	// Addresses stream in insertion order, one interrupt per read, then
	// the sentinel terminates the scan.
	assert.Equal(t, uint8(0x01), kb.ReadPort(port))
	assert.Equal(t, uint8(0x02), kb.ReadPort(port))
	assert.Equal(t, AddrScanEnd, kb.ReadPort(port))
	assert.Equal(t, 4, irq.Count())

	// Idle reads return the latched sentinel, unchanged and silent.
	assert.Equal(t, AddrScanEnd, kb.ReadPort(port))
	assert.Equal(t, AddrScanEnd, kb.ReadPort(port))
	assert.Equal(t, 4, irq.Count())
}

func TestScanOfEmptySet(t *testing.T) {
	irq := &ksTesting.FakeInterruptLine{}
	kb, _ := newTestKeyboard(t, Options{IRQ: irq})
	port := kb.Model().DataPort

	kb.WritePort(port, StatusStart)
	assert.Equal(t, AddrScanEnd, kb.ReadPort(port))
	assert.Equal(t, 2, irq.Count())
}

func TestScanIRQLevel(t *testing.T) {
	irq := &ksTesting.FakeInterruptLine{}
	kb, _ := newTestKeyboard(t, Options{IRQ: irq})

	kb.WritePort(kb.Model().DataPort, StatusStart)
	assert.Equal(t, []uint8{4}, irq.Requests())
}

func TestScanMasksShiftFlag(t *testing.T) {
	kb, _ := newTestKeyboard(t, Options{})
	port := kb.Model().DataPort

	kb.DeliverSyntheticPress(hid.BtnSoftPaste)
	kb.WritePort(port, StatusStart)

	// The table carries 0x51|AddrShiftFlag; the flag never reaches the
	// wire.
	assert.Equal(t, uint8(0x51), kb.ReadPort(port))
}

func TestScanBreakAddress(t *testing.T) {
	tests := []struct {
		name     string
		override uint8
		want     uint8
	}{
		{"default firmware value", 0, AddrBreakFirmware},
		{"service manual override", AddrBreakServiceManual, AddrBreakServiceManual},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kb, _ := newTestKeyboard(t, Options{BreakAddr: tc.override})
			port := kb.Model().DataPort

			kb.DeliverSyntheticPress(hid.BtnSoftBreak)
			kb.WritePort(port, StatusStart)
			assert.Equal(t, tc.want, kb.ReadPort(port))
		})
	}
}

func TestRemoveOnRead(t *testing.T) {
	kb, _ := newTestKeyboard(t, Options{RemoveOnRead: true})
	port := kb.Model().DataPort

	kb.DeliverKeyTransition(hid.KeyA, true, false)
	kb.DeliverKeyTransition(hid.KeyB, true, false)

	kb.WritePort(port, StatusStart)
	assert.Equal(t, uint8(0x01), kb.ReadPort(port))
	assert.Equal(t, []SoftCode{CodeB}, kb.ActiveCodes())
	assert.Equal(t, uint8(0x02), kb.ReadPort(port))
	assert.Equal(t, AddrScanEnd, kb.ReadPort(port))
	assert.Empty(t, kb.ActiveCodes())
}

func TestBusyGate(t *testing.T) {
	clock := ksTesting.NewFakeClock(2_457_600)
	kb, _ := newTestKeyboard(t, Options{Clock: clock})
	port := kb.Model().DataPort

	assert.True(t, kb.Ready())

	kb.WritePort(port, 0x01)
	assert.False(t, kb.Ready())

	frame := clock.CyclesIn(kb.Model().FrameTime)
	clock.Advance(frame - 1)
	assert.False(t, kb.Ready())
	clock.Advance(1)
	assert.True(t, kb.Ready())
	assert.True(t, kb.Ready())
}

func TestBusyGateRearmsPerWrite(t *testing.T) {
	clock := ksTesting.NewFakeClock(2_457_600)
	kb, _ := newTestKeyboard(t, Options{Clock: clock})
	port := kb.Model().DataPort
	frame := clock.CyclesIn(kb.Model().FrameTime)

	kb.WritePort(port, 0x01)
	clock.Advance(frame)
	assert.True(t, kb.Ready())

	kb.WritePort(port, 0x02)
	assert.False(t, kb.Ready())
	clock.Advance(frame)
	assert.True(t, kb.Ready())
}

func TestIndicatorCallback(t *testing.T) {
	kb, _ := newTestKeyboard(t, Options{})
	var got []Indicators
	kb.SetIndicatorFunc(func(ind Indicators) { got = append(got, ind) })

	kb.WritePort(kb.Model().DataPort, 0x05|StatusClick)
	kb.WritePort(kb.Model().DataPort, StatusStart|0x20)

	assert.Equal(t, []Indicators{
		{LEDs: 0x05, Click: true},
		{LEDs: 0x20, Click: false},
	}, got)
}

func TestPadStatusBits(t *testing.T) {
	kb, cs := newTestKeyboard(t, Options{Model: "tp2"})
	port := kb.Model().ButtonPort

	assert.Equal(t, uint8(0x00), kb.ReadPort(port))

	kb.DeliverKeyTransition(hid.KeyZ, true, false)
	assert.Equal(t, uint8(0x01), kb.ReadPort(port))
	kb.DeliverKeyTransition(hid.KeyX, true, false)
	assert.Equal(t, uint8(0x03), kb.ReadPort(port))

	cs.advance(kb.Model().MinPress + time.Millisecond)
	kb.DeliverKeyTransition(hid.KeyZ, false, false)
	assert.Equal(t, uint8(0x02), kb.ReadPort(port))
	kb.DeliverKeyTransition(hid.KeyX, false, false)
	assert.Equal(t, uint8(0x00), kb.ReadPort(port))
}

func TestPadShortPressHoldsStatusBit(t *testing.T) {
	sched := &ksTesting.FakeScheduler{}
	kb, cs := newTestKeyboard(t, Options{Model: "tp2", Scheduler: sched})
	port := kb.Model().ButtonPort

	kb.DeliverKeyTransition(hid.KeyZ, true, false)
	cs.advance(5 * time.Millisecond)
	kb.DeliverKeyTransition(hid.KeyZ, false, false)

	// The bit stays observable until the debounce floor has elapsed.
	assert.Equal(t, uint8(0x01), kb.ReadPort(port))
	cs.advance(kb.Model().MinPress)
	sched.Fire()
	assert.Equal(t, uint8(0x00), kb.ReadPort(port))
}

func TestUnclaimedPortIsInert(t *testing.T) {
	kb, _ := newTestKeyboard(t, Options{})

	assert.Equal(t, uint8(0), kb.ReadPort(0x99))
	kb.WritePort(0x99, StatusStart)
	assert.Equal(t, uint8(0), kb.ReadPort(0x99))
	// The stray write must not have started a scan on the real port.
	kb.DeliverKeyTransition(hid.KeyA, true, false)
	assert.Equal(t, uint8(0), kb.ReadPort(kb.Model().DataPort))
}

func TestReset(t *testing.T) {
	sched := &ksTesting.FakeScheduler{}
	kb, _ := newTestKeyboard(t, Options{Scheduler: sched})
	port := kb.Model().DataPort

	kb.DeliverKeyTransition(hid.KeyLeftShift, true, false)
	kb.DeliverSyntheticPress(hid.KeyA)
	kb.WritePort(port, StatusStart)

	kb.Reset()
	assert.Equal(t, Modifiers(0), kb.Modifiers())
	assert.Empty(t, kb.ActiveCodes())
	assert.Equal(t, uint8(0), kb.ReadPort(port))
	assert.Equal(t, 0, sched.Outstanding())
}
