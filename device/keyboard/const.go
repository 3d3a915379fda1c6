package keyboard

import "time"

// SoftCode names a logical key independent of host key codes. Vocabularies
// are device-specific: the tk85 scan keyboard and the tp2 pad define
// disjoint sets, and a soft code only has meaning together with the model
// that issued it.
type SoftCode uint8

// CodeNone is the zero SoftCode; no valid key translates to it.
const CodeNone SoftCode = 0

// tk85 soft codes.
const (
	CodeA SoftCode = iota + 1
	CodeB
	CodeC
	CodeD
	CodeE
	CodeF
	CodeG
	CodeH
	CodeI
	CodeJ
	CodeK
	CodeL
	CodeM
	CodeN
	CodeO
	CodeP
	CodeQ
	CodeR
	CodeS
	CodeT
	CodeU
	CodeV
	CodeW
	CodeX
	CodeY
	CodeZ

	Code0
	Code1
	Code2
	Code3
	Code4
	Code5
	Code6
	Code7
	Code8
	Code9

	CodeEnter
	CodeExecute
	CodeBackspace
	CodeDelete
	CodeSpace
	CodeTab
	CodeEscape
	CodeBreak

	CodeUp
	CodeDown
	CodeLeft
	CodeRight

	CodeShift
	CodeCtrl
	CodeAlt

	CodeF1
	CodeF2
	CodeF3
	CodeF4
	CodeF5

	CodeMenu
	CodePaste
)

// tp2 soft codes. The pad has no scan matrix; each code maps to a discrete
// status bit.
const (
	CodeBtnA SoftCode = iota + 0x70
	CodeBtnB
)

// Modifiers is the shared modifier/lock bitmask. Right-side bits are only
// ever set for keyboards that report side information; the pair masks below
// give the combined any-of-pair view.
type Modifiers uint16

const (
	ModLeftShift Modifiers = 1 << iota
	ModRightShift
	ModLeftCtrl
	ModRightCtrl
	ModLeftAlt
	ModRightAlt
	ModLeftCmd
	ModRightCmd
	ModCapsLock
	ModNumLock
	ModScrollLock
	// ModRemapped marks that an ALT-remapped key is currently held, so its
	// release still routes to the remapped soft code even if ALT went up
	// first.
	ModRemapped
)

// Combined left/right pair views.
const (
	ModShift = ModLeftShift | ModRightShift
	ModCtrl  = ModLeftCtrl | ModRightCtrl
	ModAlt   = ModLeftAlt | ModRightAlt
	ModCmd   = ModLeftCmd | ModRightCmd
)

// Status/control byte layout (host -> controller).
const (
	StatusLEDMask uint8 = 0x3F // bits 0-5: lock/indicator LEDs
	StatusStart   uint8 = 0x40 // bit 6: begin a key scan
	StatusClick   uint8 = 0x80 // bit 7: key click / bell
)

// Key address byte layout (controller -> host). Bit 7 of a keymap address
// carries the SHIFT legend flag; the wire address is the low 7 bits.
const (
	AddrShiftFlag uint8 = 0x80
	AddrScanEnd   uint8 = 0x7F // sentinel terminating a scan
)

// The BREAK key address is documented at two different values: 0x48 in the
// tk85 service manual and 0x68 in the firmware ROM listing. Both constants
// are kept; Model.BreakAddr makes the authoritative choice explicit.
const (
	AddrBreakServiceManual uint8 = 0x48
	AddrBreakFirmware      uint8 = 0x68
)

// Transmitter timing. The physical controller serializes key addresses at
// 1200 baud, 10 bit times per frame; the busy gate holds for one frame of
// emulated cycles after every status write.
const txFrameTime = 10 * time.Second / 1200

// minPressTime is the default minimum observable press duration. The scan
// firmware polls slowly; a host press shorter than this is stretched so the
// emulated firmware can see it at all.
const minPressTime = 80 * time.Millisecond
