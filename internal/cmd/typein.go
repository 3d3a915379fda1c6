package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/retrofold/keyscan/device/keyboard"
	"github.com/retrofold/keyscan/hid"
	"github.com/retrofold/keyscan/machine"
)

// TypeIn puts stdin into raw mode and feeds typed characters to a keyboard
// instance as character-level input: each byte becomes character evidence
// plus a synthetic press of the matching key, the same path a paste adapter
// takes. Scan results are printed as they happen. Ctrl+C exits.
type TypeIn struct {
	DeviceConfig `embed:""`
}

// Run is called by Kong when the type command is executed.
func (t *TypeIn) Run(logger *slog.Logger) error {
	kb, err := t.DeviceConfig.Build(logger, machine.FuncLine(func(uint8) {}))
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	fmt.Print("type characters (Ctrl+C to quit)\r\n")

	done := make(chan struct{})
	go t.printScans(kb, done)
	defer close(done)

	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		if n == 0 {
			continue
		}
		ch := buf[0]
		if ch == 0x03 { // Ctrl+C
			return nil
		}

		kb.DeliverCharacterEvidence(rune(ch))
		raw := hid.CharToCode(ch)
		if raw == 0 {
			continue
		}
		if hid.NeedsShift(ch) {
			kb.DeliverKeyTransition(hid.KeyLeftShift, true, false)
			kb.DeliverSyntheticPress(raw)
			kb.DeliverKeyTransition(hid.KeyLeftShift, false, false)
		} else {
			kb.DeliverSyntheticPress(raw)
		}
	}
}

func (t *TypeIn) printScans(kb *keyboard.Keyboard, done <-chan struct{}) {
	model := kb.Model()
	if model.DataPort == 0 {
		return
	}
	ticker := time.NewTicker(t.ScanInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
		}
		if !kb.Ready() || len(kb.ActiveCodes()) == 0 {
			continue
		}
		kb.WritePort(model.DataPort, keyboard.StatusStart)
		fmt.Print("scan:")
		for {
			addr := kb.ReadPort(model.DataPort)
			fmt.Printf(" %02X", addr)
			if addr == model.ScanEnd {
				break
			}
		}
		fmt.Print("\r\n")
	}
}
