package keyboard

import "github.com/retrofold/keyscan/hid"

// Apply records a modifier key transition and returns the effective down
// state the rest of the pipeline should use.
//
// For SHIFT/CTRL/ALT/CMD the requested state is stored (left or right bit
// chosen by rightSide) and returned unchanged. CAPS LOCK is special: some
// hosts report only down transitions for toggle keys while others report
// matched down/up pairs, so the effective state is always recomputed as the
// negation of the current bit before storing. That makes Apply idempotent
// under down-only delivery and still correct under matched delivery.
//
// Raw codes that are not modifiers leave the mask untouched and return the
// requested state.
func (m *Modifiers) Apply(raw uint8, down, rightSide bool) bool {
	switch raw {
	case hid.KeyLeftShift:
		m.assign(pick(rightSide, ModRightShift, ModLeftShift), down)
	case hid.KeyLeftCtrl:
		m.assign(pick(rightSide, ModRightCtrl, ModLeftCtrl), down)
	case hid.KeyLeftAlt:
		m.assign(pick(rightSide, ModRightAlt, ModLeftAlt), down)
	case hid.KeyLeftGUI:
		m.assign(pick(rightSide, ModRightCmd, ModLeftCmd), down)
	case hid.KeyCapsLock:
		down = *m&ModCapsLock == 0
		m.assign(ModCapsLock, down)
	case hid.KeyNumLock:
		m.assign(ModNumLock, down)
	case hid.KeyScrollLock:
		m.assign(ModScrollLock, down)
	}
	return down
}

// NoteCharacterCase corrects the CAPS LOCK bit from character-level
// evidence. No raw key API reliably reports the physical lock state, so an
// uppercase letter arriving with neither SHIFT nor CAPS LOCK set means the
// lock must actually be on, and a lowercase letter with CAPS LOCK set means
// it must be off. Best effort, not authoritative. Reports whether the mask
// changed.
func (m *Modifiers) NoteCharacterCase(ch rune) bool {
	switch {
	case ch >= 'A' && ch <= 'Z' && *m&(ModShift|ModCapsLock) == 0:
		*m |= ModCapsLock
		return true
	case ch >= 'a' && ch <= 'z' && *m&ModCapsLock != 0:
		*m &^= ModCapsLock
		return true
	}
	return false
}

func (m *Modifiers) assign(bit Modifiers, on bool) {
	if on {
		*m |= bit
	} else {
		*m &^= bit
	}
}

func pick(right bool, r, l Modifiers) Modifiers {
	if right {
		return r
	}
	return l
}
