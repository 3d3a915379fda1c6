package keyboard

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml"

	"github.com/retrofold/keyscan/hid"
)

// Overrides holds user keymap adjustments loaded from a TOML file. Keys and
// values are human-readable names (hid.KeyName on the left, CodeName or
// hid.KeyName on the right):
//
//	[keymap]
//	F6 = "Help"
//
//	[altcodes]
//	Kp5 = "Down"
type Overrides struct {
	Keymap   map[string]string `toml:"keymap"`
	AltCodes map[string]string `toml:"altcodes"`
}

// LoadOverrides reads a keymap override file.
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keymap overrides: %w", err)
	}
	var o Overrides
	if err := toml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("parse keymap overrides %s: %w", path, err)
	}
	return &o, nil
}

// WithOverrides returns a copy of the model with the override entries merged
// in. The receiver's tables are not touched; built-in models stay immutable.
func (m Model) WithOverrides(o *Overrides) (Model, error) {
	if o == nil {
		return m, nil
	}

	if len(o.Keymap) > 0 {
		keymap := make(map[uint8]SoftCode, len(m.Keymap)+len(o.Keymap))
		for k, v := range m.Keymap {
			keymap[k] = v
		}
		for rawName, codeName := range o.Keymap {
			raw, ok := hid.KeyByName(rawName)
			if !ok {
				return m, fmt.Errorf("keymap override: unknown key %q", rawName)
			}
			sc, ok := CodeByName(codeName)
			if !ok {
				return m, fmt.Errorf("keymap override: unknown soft code %q", codeName)
			}
			keymap[raw] = sc
		}
		m.Keymap = keymap
	}

	if len(o.AltCodes) > 0 {
		alt := make(map[uint8]uint8, len(m.AltCodes)+len(o.AltCodes))
		for k, v := range m.AltCodes {
			alt[k] = v
		}
		for fromName, toName := range o.AltCodes {
			from, ok := hid.KeyByName(fromName)
			if !ok {
				return m, fmt.Errorf("altcode override: unknown key %q", fromName)
			}
			to, ok := hid.KeyByName(toName)
			if !ok {
				return m, fmt.Errorf("altcode override: unknown key %q", toName)
			}
			alt[from] = to
		}
		m.AltCodes = alt
	}

	return m, nil
}
