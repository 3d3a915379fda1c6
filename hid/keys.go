// Package hid defines the host-neutral raw key vocabulary used at the input
// boundary of the emulated keyboard controllers. Raw codes follow the USB HID
// Keyboard/Keypad usage page so that any platform adapter (terminal, network
// feed, UI widget) can normalize its native key codes once and the per-model
// keymaps stay host-independent.
package hid

// Usage codes for keyboard keys (USB HID Keyboard/Keypad usage page).
const (
	// Letters A-Z
	KeyA = 0x04
	KeyB = 0x05
	KeyC = 0x06
	KeyD = 0x07
	KeyE = 0x08
	KeyF = 0x09
	KeyG = 0x0A
	KeyH = 0x0B
	KeyI = 0x0C
	KeyJ = 0x0D
	KeyK = 0x0E
	KeyL = 0x0F
	KeyM = 0x10
	KeyN = 0x11
	KeyO = 0x12
	KeyP = 0x13
	KeyQ = 0x14
	KeyR = 0x15
	KeyS = 0x16
	KeyT = 0x17
	KeyU = 0x18
	KeyV = 0x19
	KeyW = 0x1A
	KeyX = 0x1B
	KeyY = 0x1C
	KeyZ = 0x1D

	// Numbers 1-0 (top row)
	Key1 = 0x1E
	Key2 = 0x1F
	Key3 = 0x20
	Key4 = 0x21
	Key5 = 0x22
	Key6 = 0x23
	Key7 = 0x24
	Key8 = 0x25
	Key9 = 0x26
	Key0 = 0x27

	// Special keys
	KeyEnter      = 0x28
	KeyEscape     = 0x29
	KeyBackspace  = 0x2A
	KeyTab        = 0x2B
	KeySpace      = 0x2C
	KeyMinus      = 0x2D // - and _
	KeyEqual      = 0x2E // = and +
	KeyLeftBrace  = 0x2F // [ and {
	KeyRightBrace = 0x30 // ] and }
	KeyBackslash  = 0x31 // \ and |
	KeySemicolon  = 0x33 // ; and :
	KeyApostrophe = 0x34 // ' and "
	KeyGrave      = 0x35 // ` and ~
	KeyComma      = 0x36 // , and <
	KeyPeriod     = 0x37 // . and >
	KeySlash      = 0x38 // / and ?
	KeyCapsLock   = 0x39

	// Function keys
	KeyF1  = 0x3A
	KeyF2  = 0x3B
	KeyF3  = 0x3C
	KeyF4  = 0x3D
	KeyF5  = 0x3E
	KeyF6  = 0x3F
	KeyF7  = 0x40
	KeyF8  = 0x41
	KeyF9  = 0x42
	KeyF10 = 0x43

	// Control keys
	KeyPrintScreen = 0x46
	KeyScrollLock  = 0x47
	KeyPause       = 0x48
	KeyInsert      = 0x49
	KeyHome        = 0x4A
	KeyPageUp      = 0x4B
	KeyDelete      = 0x4C
	KeyEnd         = 0x4D
	KeyPageDown    = 0x4E

	// Arrow keys
	KeyRight = 0x4F
	KeyLeft  = 0x50
	KeyDown  = 0x51
	KeyUp    = 0x52

	// Numpad
	KeyNumLock = 0x53
	KeyKp1     = 0x59 // Keypad 1 and End
	KeyKp2     = 0x5A // Keypad 2 and Down
	KeyKp3     = 0x5B // Keypad 3 and PageDn
	KeyKp4     = 0x5C // Keypad 4 and Left
	KeyKp5     = 0x5D // Keypad 5
	KeyKp6     = 0x5E // Keypad 6 and Right
	KeyKp7     = 0x5F // Keypad 7 and Home
	KeyKp8     = 0x60 // Keypad 8 and Up
	KeyKp9     = 0x61 // Keypad 9 and PageUp
	KeyKp0     = 0x62 // Keypad 0 and Insert

	// Execution keys
	KeyExecute = 0x74
	KeyHelp    = 0x75
	KeyMenu    = 0x76
	KeySelect  = 0x77
	KeyStop    = 0x78

	// Modifier keys. Platform adapters that cannot distinguish sides
	// report the left-hand usage plus a side flag.
	KeyLeftCtrl  = 0xE0
	KeyLeftShift = 0xE1
	KeyLeftAlt   = 0xE2
	KeyLeftGUI   = 0xE3 // Command/Windows key
)

// Software-button codes sit above the HID usage range; they name on-screen
// or host-UI buttons that have no physical key.
const (
	BtnSoftBase  = 0xF0
	BtnSoftMenu  = 0xF0
	BtnSoftPaste = 0xF1
	BtnSoftBreak = 0xF2
	BtnSoftA     = 0xF8
	BtnSoftB     = 0xF9
)

// KeyName maps raw codes to human-readable key names.
var KeyName = map[uint8]string{
	// Letters
	KeyA: "A", KeyB: "B", KeyC: "C", KeyD: "D", KeyE: "E", KeyF: "F", KeyG: "G",
	KeyH: "H", KeyI: "I", KeyJ: "J", KeyK: "K", KeyL: "L", KeyM: "M", KeyN: "N",
	KeyO: "O", KeyP: "P", KeyQ: "Q", KeyR: "R", KeyS: "S", KeyT: "T", KeyU: "U",
	KeyV: "V", KeyW: "W", KeyX: "X", KeyY: "Y", KeyZ: "Z",

	// Numbers
	Key1: "1", Key2: "2", Key3: "3", Key4: "4", Key5: "5",
	Key6: "6", Key7: "7", Key8: "8", Key9: "9", Key0: "0",

	// Special keys
	KeyEnter:      "Enter",
	KeyEscape:     "Escape",
	KeyBackspace:  "Backspace",
	KeyTab:        "Tab",
	KeySpace:      "Space",
	KeyMinus:      "Minus",
	KeyEqual:      "Equal",
	KeyLeftBrace:  "LeftBrace",
	KeyRightBrace: "RightBrace",
	KeyBackslash:  "Backslash",
	KeySemicolon:  "Semicolon",
	KeyApostrophe: "Apostrophe",
	KeyGrave:      "Grave",
	KeyComma:      "Comma",
	KeyPeriod:     "Period",
	KeySlash:      "Slash",
	KeyCapsLock:   "CapsLock",

	// Function keys
	KeyF1: "F1", KeyF2: "F2", KeyF3: "F3", KeyF4: "F4", KeyF5: "F5",
	KeyF6: "F6", KeyF7: "F7", KeyF8: "F8", KeyF9: "F9", KeyF10: "F10",

	// Control keys
	KeyPrintScreen: "PrintScreen",
	KeyScrollLock:  "ScrollLock",
	KeyPause:       "Pause",
	KeyInsert:      "Insert",
	KeyHome:        "Home",
	KeyPageUp:      "PageUp",
	KeyDelete:      "Delete",
	KeyEnd:         "End",
	KeyPageDown:    "PageDown",

	// Arrow keys
	KeyRight: "Right",
	KeyLeft:  "Left",
	KeyDown:  "Down",
	KeyUp:    "Up",

	// Numpad
	KeyNumLock: "NumLock",
	KeyKp1:     "Kp1",
	KeyKp2:     "Kp2",
	KeyKp3:     "Kp3",
	KeyKp4:     "Kp4",
	KeyKp5:     "Kp5",
	KeyKp6:     "Kp6",
	KeyKp7:     "Kp7",
	KeyKp8:     "Kp8",
	KeyKp9:     "Kp9",
	KeyKp0:     "Kp0",

	// Execution keys
	KeyExecute: "Execute",
	KeyHelp:    "Help",
	KeyMenu:    "Menu",
	KeySelect:  "Select",
	KeyStop:    "Stop",

	// Modifiers
	KeyLeftCtrl:  "Ctrl",
	KeyLeftShift: "Shift",
	KeyLeftAlt:   "Alt",
	KeyLeftGUI:   "Cmd",

	// Software buttons
	BtnSoftMenu:  "SoftMenu",
	BtnSoftPaste: "SoftPaste",
	BtnSoftBreak: "SoftBreak",
	BtnSoftA:     "SoftA",
	BtnSoftB:     "SoftB",
}
