// Package keyboard emulates the keyboard controllers of the tk85 portable
// and tp2 pad: modifier tracking across inconsistent host event semantics, a
// debounced set of currently pressed keys with a guaranteed minimum press
// duration, and the tk85's UART-style scan protocol with its interrupt
// generation and cycle-accurate transmitter busy gate.
package keyboard

import (
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/retrofold/keyscan/machine"
)

// ErrUnknownModel is returned by New for an unrecognized model name. The
// returned instance is still valid and falls back to an empty configuration,
// so callers may treat this as a warning.
var ErrUnknownModel = fmt.Errorf("unknown keyboard model")

// Indicators is the payload delivered to the indicator callback whenever the
// host writes the status byte. The LED bits and the click flag are display
// state owned by the host's firmware, not by this core.
type Indicators struct {
	LEDs  uint8 // StatusLEDMask bits of the last status write
	Click bool
}

// Options configures a Keyboard instance.
type Options struct {
	// Model names the built-in device model ("tk85", "tp2").
	Model string

	// Clock, IRQ and Scheduler connect the device to the surrounding
	// emulated machine. Clock is required for tk85's busy gate; IRQ and
	// Scheduler may be nil for models or hosts that do not use them.
	Clock     machine.Clock
	IRQ       machine.InterruptLine
	Scheduler machine.Scheduler

	// RemoveOnRead enables the strict diagnostic scan mode: a reported key
	// is removed from the active set instead of advancing the scan index,
	// so a debugger environment that never delivers the terminating key-up
	// cannot leave a reported key latched forever.
	RemoveOnRead bool

	// BreakAddr overrides the model's BREAK key address; zero keeps the
	// model default.
	BreakAddr uint8

	// Overrides merges user keymap adjustments into the model tables.
	Overrides *Overrides

	Logger *slog.Logger
}

type portOp uint8

const (
	opNone portOp = iota
	opScan    // DataPort: status in, scanned address out
	opButtons // ButtonPort: discrete status bits out
)

// Keyboard is one emulated keyboard controller instance. All mutable state
// (modifier mask, active key set, UART registers) is owned exclusively by
// the instance; external collaborators go through the exported methods.
type Keyboard struct {
	model  Model
	clock  machine.Clock
	irq    machine.InterruptLine
	sched  machine.Scheduler
	logger *slog.Logger

	// ports is resolved once at construction; no per-access dispatch
	// tables.
	ports map[uint8]portOp

	mu            sync.Mutex
	mods          Modifiers
	active        []activeKey
	cancelRelease func()
	regs          uartRegisters
	buttons       uint8
	removeOnRead  bool
	indicatorFn   func(Indicators)

	// now is the press-timestamp source; replaced in tests.
	now func() time.Time
}

// New builds a Keyboard for the named model. An unrecognized model name
// returns a usable instance with an empty configuration together with
// ErrUnknownModel; everything else about the instance works, it just maps no
// keys and claims no ports.
func New(o Options) (*Keyboard, error) {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var err error
	model, ok := LookupModel(o.Model)
	if !ok {
		err = fmt.Errorf("%w: %q", ErrUnknownModel, o.Model)
		model = &Model{Name: o.Model, ScanEnd: AddrScanEnd}
		logger.Warn("unknown keyboard model, using empty configuration", "model", o.Model)
	}

	k := &Keyboard{
		model:        *model,
		clock:        o.Clock,
		irq:          o.IRQ,
		sched:        o.Scheduler,
		logger:       logger,
		removeOnRead: o.RemoveOnRead,
		now:          time.Now,
	}
	if o.BreakAddr != 0 {
		k.model.BreakAddr = o.BreakAddr
	}
	if o.Overrides != nil {
		merged, oerr := k.model.WithOverrides(o.Overrides)
		if oerr != nil {
			return nil, oerr
		}
		k.model = merged
	}

	k.ports = make(map[uint8]portOp)
	if k.model.DataPort != 0 {
		k.ports[k.model.DataPort] = opScan
	}
	if k.model.ButtonPort != 0 {
		k.ports[k.model.ButtonPort] = opButtons
	}

	k.regs.scanIndex = scanIdle
	return k, err
}

// Model returns the device configuration in use. The mapping tables are
// cloned so a caller cannot reach the instance's tables, or the built-in
// model tables behind them, through the returned value.
func (k *Keyboard) Model() Model {
	m := k.model
	m.Keymap = maps.Clone(m.Keymap)
	m.AltCodes = maps.Clone(m.AltCodes)
	m.SoftButtons = maps.Clone(m.SoftButtons)
	m.Addr = maps.Clone(m.Addr)
	m.StatusBits = maps.Clone(m.StatusBits)
	m.LEDNames = maps.Clone(m.LEDNames)
	return m
}

// SetIndicatorFunc registers a callback invoked on every status write with
// the indicator bits of the written byte.
func (k *Keyboard) SetIndicatorFunc(fn func(Indicators)) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.indicatorFn = fn
}

// Modifiers returns the current modifier/lock bitmask for display.
func (k *Keyboard) Modifiers() Modifiers {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.mods
}

// ActiveCodes returns the soft codes currently considered down, in
// insertion order.
func (k *Keyboard) ActiveCodes() []SoftCode {
	k.mu.Lock()
	defer k.mu.Unlock()
	codes := make([]SoftCode, len(k.active))
	for i, e := range k.active {
		codes[i] = e.code
	}
	return codes
}

// DeliverKeyTransition processes one physical key transition from a platform
// input adapter. rightSide distinguishes right-hand modifier variants on
// keyboards that report side information. Unknown raw codes are ignored.
func (k *Keyboard) DeliverKeyTransition(raw uint8, down, rightSide bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	down = k.mods.Apply(raw, down, rightSide)

	sc, ok := k.model.ToSoftCode(raw)
	if !ok {
		k.logger.Debug("unmapped raw key code", "raw", raw, "model", k.model.Name)
		return
	}
	sc = k.remapCode(sc, down)
	k.transition(sc, down, false)
}

// DeliverSyntheticPress presses a key with no corresponding physical
// release: the entry is flagged for auto-release immediately and removed by
// the release scheduler once the minimum press time has elapsed. Used by
// paste and on-screen-button adapters that only know about presses.
func (k *Keyboard) DeliverSyntheticPress(raw uint8) {
	k.mu.Lock()
	defer k.mu.Unlock()

	sc, ok := k.model.ToSoftCode(raw)
	if !ok {
		k.logger.Debug("unmapped raw key code", "raw", raw, "model", k.model.Name)
		return
	}
	sc = k.remapCode(sc, true)
	k.transition(sc, true, true)
}

// DeliverCharacterEvidence feeds character-level key-press evidence to the
// CAPS LOCK correction heuristic.
func (k *Keyboard) DeliverCharacterEvidence(ch rune) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.mods.NoteCharacterCase(ch) {
		k.logger.Debug("caps lock corrected from character evidence", "char", string(ch))
	}
}

// remapCode applies the ALT-based key remap: while any ALT bit (or the
// sticky ModRemapped bit) is set, ENTER trades places with EXECUTE and
// BACKSPACE with DELETE. ModRemapped is held for the lifetime of the
// remapped press so that releasing ALT first cannot strand the key under
// its original code.
func (k *Keyboard) remapCode(sc SoftCode, down bool) SoftCode {
	if k.mods&(ModAlt|ModRemapped) == 0 {
		return sc
	}

	var swapped SoftCode
	switch sc {
	case CodeEnter:
		swapped = CodeExecute
	case CodeExecute:
		swapped = CodeEnter
	case CodeBackspace:
		swapped = CodeDelete
	case CodeDelete:
		swapped = CodeBackspace
	default:
		return sc
	}

	k.mods.assign(ModRemapped, down)
	return swapped
}

// Reset returns the device to power-on state: modifier mask cleared, active
// set emptied, registers zeroed, any pending auto-release dropped.
func (k *Keyboard) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.cancelRelease != nil {
		k.cancelRelease()
		k.cancelRelease = nil
	}
	k.mods = 0
	k.active = nil
	k.buttons = 0
	k.regs = uartRegisters{scanIndex: scanIdle}
}
