package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retrofold/keyscan/hid"
)

func TestApplySideBits(t *testing.T) {
	tests := []struct {
		name  string
		raw   uint8
		right bool
		want  Modifiers
	}{
		{"left shift", hid.KeyLeftShift, false, ModLeftShift},
		{"right shift", hid.KeyLeftShift, true, ModRightShift},
		{"left ctrl", hid.KeyLeftCtrl, false, ModLeftCtrl},
		{"right ctrl", hid.KeyLeftCtrl, true, ModRightCtrl},
		{"left alt", hid.KeyLeftAlt, false, ModLeftAlt},
		{"right alt", hid.KeyLeftAlt, true, ModRightAlt},
		{"left cmd", hid.KeyLeftGUI, false, ModLeftCmd},
		{"right cmd", hid.KeyLeftGUI, true, ModRightCmd},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var m Modifiers
			down := m.Apply(tc.raw, true, tc.right)
			assert.True(t, down)
			assert.Equal(t, tc.want, m)

			down = m.Apply(tc.raw, false, tc.right)
			assert.False(t, down)
			assert.Equal(t, Modifiers(0), m)
		})
	}
}

func TestApplyCapsLockDownOnlyDelivery(t *testing.T) {
	// Hosts that report only down transitions for toggle keys must still
	// toggle exactly once per press.
	var m Modifiers

	down := m.Apply(hid.KeyCapsLock, true, false)
	assert.True(t, down)
	assert.Equal(t, ModCapsLock, m)

	down = m.Apply(hid.KeyCapsLock, true, false)
	assert.False(t, down)
	assert.Equal(t, Modifiers(0), m)

	down = m.Apply(hid.KeyCapsLock, true, false)
	assert.True(t, down)
	assert.Equal(t, ModCapsLock, m)
}

func TestApplyCapsLockMatchedDelivery(t *testing.T) {
	// Matched down/up pairs: every transition recomputes from the current
	// bit, so the down turns the lock on and the up turns it back off.
	var m Modifiers

	m.Apply(hid.KeyCapsLock, true, false)
	assert.Equal(t, ModCapsLock, m)
	m.Apply(hid.KeyCapsLock, false, false)
	assert.Equal(t, Modifiers(0), m)
}

func TestApplyNonModifierPassthrough(t *testing.T) {
	var m Modifiers

	assert.True(t, m.Apply(hid.KeyA, true, false))
	assert.False(t, m.Apply(hid.KeyA, false, false))
	assert.Equal(t, Modifiers(0), m)
}

func TestApplyLocks(t *testing.T) {
	var m Modifiers

	m.Apply(hid.KeyNumLock, true, false)
	m.Apply(hid.KeyScrollLock, true, false)
	assert.Equal(t, ModNumLock|ModScrollLock, m)

	m.Apply(hid.KeyNumLock, false, false)
	assert.Equal(t, ModScrollLock, m)
}

func TestPairMasks(t *testing.T) {
	var m Modifiers
	m.Apply(hid.KeyLeftShift, true, true)

	assert.NotZero(t, m&ModShift)
	assert.Zero(t, m&ModCtrl)
}

func TestNoteCharacterCase(t *testing.T) {
	tests := []struct {
		name        string
		start       Modifiers
		ch          rune
		wantChanged bool
		want        Modifiers
	}{
		{"uppercase with no shift turns lock on", 0, 'G', true, ModCapsLock},
		{"uppercase under shift is expected", ModLeftShift, 'G', false, ModLeftShift},
		{"uppercase under caps lock is expected", ModCapsLock, 'G', false, ModCapsLock},
		{"lowercase under caps lock turns lock off", ModCapsLock, 'g', true, 0},
		{"lowercase without lock is expected", 0, 'g', false, 0},
		{"digits carry no case evidence", ModCapsLock, '7', false, ModCapsLock},
		{"punctuation carries no case evidence", 0, '!', false, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := tc.start
			assert.Equal(t, tc.wantChanged, m.NoteCharacterCase(tc.ch))
			assert.Equal(t, tc.want, m)
		})
	}
}
