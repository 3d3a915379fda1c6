// Package cmd implements the keyscan CLI commands.
package cmd

import (
	"errors"
	"log/slog"
	"time"

	"github.com/retrofold/keyscan/device/keyboard"
	"github.com/retrofold/keyscan/machine"
)

// DeviceConfig is the flag set shared by every command that builds a
// keyboard instance.
type DeviceConfig struct {
	Model        string        `help:"Device model to emulate" default:"tk85" env:"KEYSCAN_MODEL"`
	KeymapFile   string        `help:"TOML keymap override file" type:"path" env:"KEYSCAN_KEYMAP"`
	RemoveOnRead bool          `help:"Strict diagnostic scan mode: remove keys from the active set as they are reported" env:"KEYSCAN_REMOVE_ON_READ"`
	BreakAddr    uint8         `help:"Override the BREAK key address (0 keeps the model default)"`
	ClockHz      uint64        `help:"Emulated CPU clock rate" default:"2457600" env:"KEYSCAN_CLOCK_HZ"`
	ScanInterval time.Duration `help:"Firmware scan poll interval" default:"50ms" env:"KEYSCAN_SCAN_INTERVAL"`
}

// Build constructs the keyboard with a live cycle clock and timer scheduler.
// An unknown model is reported as a warning; the command proceeds with the
// empty fallback configuration exactly like a machine with an unconfigured
// keyboard would.
func (c *DeviceConfig) Build(logger *slog.Logger, irq machine.InterruptLine) (*keyboard.Keyboard, error) {
	var overrides *keyboard.Overrides
	if c.KeymapFile != "" {
		o, err := keyboard.LoadOverrides(c.KeymapFile)
		if err != nil {
			return nil, err
		}
		overrides = o
	}

	kb, err := keyboard.New(keyboard.Options{
		Model:        c.Model,
		Clock:        machine.NewCycleClock(c.ClockHz),
		IRQ:          irq,
		Scheduler:    machine.TimerScheduler{},
		RemoveOnRead: c.RemoveOnRead,
		BreakAddr:    c.BreakAddr,
		Overrides:    overrides,
		Logger:       logger,
	})
	if errors.Is(err, keyboard.ErrUnknownModel) {
		logger.Warn("proceeding with empty keyboard configuration", "model", c.Model)
		return kb, nil
	}
	return kb, err
}
