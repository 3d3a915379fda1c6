package keyboard

import (
	"sort"
	"time"

	"github.com/retrofold/keyscan/hid"
)

// Model is the immutable per-device configuration: mapping tables and
// protocol constants. A Model is selected once at construction and never
// mutated afterwards; instances hold a read-only reference.
type Model struct {
	Name string

	// Port assignments. DataPort serves the scan protocol (status in,
	// address out). ButtonPort, when nonzero, exposes discrete per-key
	// status bits instead of a scan matrix.
	DataPort   uint8
	ButtonPort uint8

	// IRQLevel is the interrupt level raised during scans. Zero means the
	// model never interrupts.
	IRQLevel uint8

	// MinPress is the minimum observable press duration (debounce floor).
	MinPress time.Duration

	// FrameTime is the real-time duration of one transmitted frame; the
	// busy gate holds for this long in emulated cycles.
	FrameTime time.Duration

	// ScanEnd is the sentinel address terminating a scan.
	ScanEnd uint8

	// BreakAddr selects the authoritative BREAK key address (the two
	// documented values disagree; see AddrBreakServiceManual and
	// AddrBreakFirmware).
	BreakAddr uint8

	// Keymap is the primary raw-code to soft-code table.
	Keymap map[uint8]SoftCode

	// AltCodes aliases one raw code to another before keymap lookup,
	// supporting alternate ergonomic layouts (keypad block as arrows).
	AltCodes map[uint8]uint8

	// SoftButtons maps synthetic raw codes from on-screen buttons to soft
	// codes; consulted only when Keymap has no entry.
	SoftButtons map[uint8]SoftCode

	// Addr maps a soft code to its device key address. Bit 7 carries the
	// SHIFT legend flag and is masked off the wire.
	Addr map[SoftCode]uint8

	// StatusBits maps soft codes to discrete status-register bits for
	// pad-style models; transitions on these codes bypass the scan
	// protocol entirely.
	StatusBits map[SoftCode]uint8

	// LEDNames names the indicator bits of the status byte, bit index to
	// label, for display adapters.
	LEDNames map[uint]string
}

// ToSoftCode translates a raw key code to this model's soft code. The
// alt-code alias table applies first, then the primary keymap, then the
// software-button table. A raw code with no match is not an error; the event
// is simply not for this device.
func (m *Model) ToSoftCode(raw uint8) (SoftCode, bool) {
	if alias, ok := m.AltCodes[raw]; ok {
		raw = alias
	}
	if sc, ok := m.Keymap[raw]; ok {
		return sc, true
	}
	if sc, ok := m.SoftButtons[raw]; ok {
		return sc, true
	}
	return CodeNone, false
}

// AddrOf returns the device key address for a soft code, with the BREAK
// discrepancy resolved through BreakAddr.
func (m *Model) AddrOf(sc SoftCode) uint8 {
	if sc == CodeBreak {
		return m.BreakAddr
	}
	return m.Addr[sc]
}

var tk85Keymap = map[uint8]SoftCode{
	hid.KeyA: CodeA, hid.KeyB: CodeB, hid.KeyC: CodeC, hid.KeyD: CodeD,
	hid.KeyE: CodeE, hid.KeyF: CodeF, hid.KeyG: CodeG, hid.KeyH: CodeH,
	hid.KeyI: CodeI, hid.KeyJ: CodeJ, hid.KeyK: CodeK, hid.KeyL: CodeL,
	hid.KeyM: CodeM, hid.KeyN: CodeN, hid.KeyO: CodeO, hid.KeyP: CodeP,
	hid.KeyQ: CodeQ, hid.KeyR: CodeR, hid.KeyS: CodeS, hid.KeyT: CodeT,
	hid.KeyU: CodeU, hid.KeyV: CodeV, hid.KeyW: CodeW, hid.KeyX: CodeX,
	hid.KeyY: CodeY, hid.KeyZ: CodeZ,

	hid.Key0: Code0, hid.Key1: Code1, hid.Key2: Code2, hid.Key3: Code3,
	hid.Key4: Code4, hid.Key5: Code5, hid.Key6: Code6, hid.Key7: Code7,
	hid.Key8: Code8, hid.Key9: Code9,

	hid.KeyEnter:     CodeEnter,
	hid.KeyExecute:   CodeExecute,
	hid.KeyBackspace: CodeBackspace,
	hid.KeyDelete:    CodeDelete,
	hid.KeySpace:     CodeSpace,
	hid.KeyTab:       CodeTab,
	hid.KeyEscape:    CodeEscape,
	hid.KeyPause:     CodeBreak,

	hid.KeyUp:    CodeUp,
	hid.KeyDown:  CodeDown,
	hid.KeyLeft:  CodeLeft,
	hid.KeyRight: CodeRight,

	hid.KeyLeftShift: CodeShift,
	hid.KeyLeftCtrl:  CodeCtrl,
	hid.KeyLeftAlt:   CodeAlt,

	hid.KeyF1: CodeF1, hid.KeyF2: CodeF2, hid.KeyF3: CodeF3,
	hid.KeyF4: CodeF4, hid.KeyF5: CodeF5,

	hid.KeyMenu: CodeMenu,
}

var tk85Addr = map[SoftCode]uint8{
	CodeA: 0x01, CodeB: 0x02, CodeC: 0x03, CodeD: 0x04, CodeE: 0x05,
	CodeF: 0x06, CodeG: 0x07, CodeH: 0x08, CodeI: 0x09, CodeJ: 0x0A,
	CodeK: 0x0B, CodeL: 0x0C, CodeM: 0x0D, CodeN: 0x0E, CodeO: 0x0F,
	CodeP: 0x10, CodeQ: 0x11, CodeR: 0x12, CodeS: 0x13, CodeT: 0x14,
	CodeU: 0x15, CodeV: 0x16, CodeW: 0x17, CodeX: 0x18, CodeY: 0x19,
	CodeZ: 0x1A,

	Code0: 0x20, Code1: 0x21, Code2: 0x22, Code3: 0x23, Code4: 0x24,
	Code5: 0x25, Code6: 0x26, Code7: 0x27, Code8: 0x28, Code9: 0x29,

	CodeEnter:     0x30,
	CodeExecute:   0x31,
	CodeBackspace: 0x32,
	CodeDelete:    0x33,
	CodeSpace:     0x34,
	CodeTab:       0x35,
	CodeEscape:    0x36,

	CodeUp:    0x38,
	CodeDown:  0x39,
	CodeLeft:  0x3A,
	CodeRight: 0x3B,

	CodeShift: 0x40,
	CodeCtrl:  0x41,
	CodeAlt:   0x42,

	CodeF1: 0x43, CodeF2: 0x44, CodeF3: 0x45, CodeF4: 0x46, CodeF5: 0x47,

	CodeMenu:  0x50,
	CodePaste: 0x51 | AddrShiftFlag, // shifted legend, flag carried in the table
}

var modelTK85 = Model{
	Name:      "tk85",
	DataPort:  0x82,
	IRQLevel:  4,
	MinPress:  minPressTime,
	FrameTime: txFrameTime,
	ScanEnd:   AddrScanEnd,
	BreakAddr: AddrBreakFirmware,
	Keymap:    tk85Keymap,
	AltCodes: map[uint8]uint8{
		// Keypad block doubles as arrows for layouts without a cursor pad.
		hid.KeyKp8: hid.KeyUp,
		hid.KeyKp2: hid.KeyDown,
		hid.KeyKp4: hid.KeyLeft,
		hid.KeyKp6: hid.KeyRight,
	},
	SoftButtons: map[uint8]SoftCode{
		hid.BtnSoftMenu:  CodeMenu,
		hid.BtnSoftPaste: CodePaste,
		hid.BtnSoftBreak: CodeBreak,
	},
	Addr: tk85Addr,
	LEDNames: map[uint]string{
		0: "CAPS",
		1: "NUM",
		2: "SCROLL",
		3: "GRAPH",
		4: "INS",
		5: "BATT",
	},
}

var modelTP2 = Model{
	Name:       "tp2",
	ButtonPort: 0x84,
	MinPress:   50 * time.Millisecond,
	FrameTime:  txFrameTime,
	ScanEnd:    AddrScanEnd,
	Keymap: map[uint8]SoftCode{
		hid.KeyZ: CodeBtnA,
		hid.KeyX: CodeBtnB,
	},
	SoftButtons: map[uint8]SoftCode{
		hid.BtnSoftA: CodeBtnA,
		hid.BtnSoftB: CodeBtnB,
	},
	StatusBits: map[SoftCode]uint8{
		CodeBtnA: 0x01,
		CodeBtnB: 0x02,
	},
}

var models = map[string]*Model{
	"tk85": &modelTK85,
	"tp2":  &modelTP2,
}

// LookupModel returns the built-in model with the given name.
func LookupModel(name string) (*Model, bool) {
	m, ok := models[name]
	return m, ok
}

// ModelNames returns the names of all built-in models, sorted.
func ModelNames() []string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
