package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/retrofold/keyscan/device/keyboard"
	"github.com/retrofold/keyscan/hid"
	"github.com/retrofold/keyscan/machine"
)

// Replay feeds a scripted transition sequence to a keyboard instance and
// prints the resulting scan protocol traffic. Scripts are YAML or TOML,
// routed by file extension; key and soft-code names follow hid.KeyName and
// keyboard.CodeName.
type Replay struct {
	Script       string `arg:"" name:"script" help:"Transition script (.yaml/.yml/.toml)" type:"existingfile"`
	DeviceConfig `embed:""`
}

// Step is one scripted action. Exactly one of the action fields should be
// set per step.
type Step struct {
	// Key names a raw key for a transition; Down selects the direction
	// (default: press followed by nothing, i.e. a plain down).
	Key  string `yaml:"key" toml:"key"`
	Down *bool  `yaml:"down" toml:"down"`
	// Right marks the right-hand modifier variant.
	Right bool `yaml:"right" toml:"right"`
	// Tap presses a key with auto-release.
	Tap string `yaml:"tap" toml:"tap"`
	// Char delivers character evidence.
	Char string `yaml:"char" toml:"char"`
	// Wait pauses the script.
	Wait time.Duration `yaml:"wait" toml:"wait"`
	// Scan runs one full scan pass and prints the reported addresses.
	Scan bool `yaml:"scan" toml:"scan"`
	// Status writes an arbitrary status byte.
	Status *uint8 `yaml:"status" toml:"status"`
}

// Script is a parsed replay file.
type Script struct {
	Steps []Step `yaml:"steps" toml:"steps"`
}

// Run is called by Kong when the replay command is executed.
func (r *Replay) Run(logger *slog.Logger) error {
	script, err := loadScript(r.Script)
	if err != nil {
		return err
	}

	kb, err := r.DeviceConfig.Build(logger, machine.FuncLine(func(uint8) {}))
	if err != nil {
		return err
	}
	kb.SetIndicatorFunc(func(ind keyboard.Indicators) {
		fmt.Printf("indicators: leds=%06b click=%v\n", ind.LEDs, ind.Click)
	})

	for i, step := range script.Steps {
		if err := r.apply(kb, step); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	// Let pending auto-releases drain so the final state is quiescent.
	time.Sleep(kb.Model().MinPress)
	fmt.Printf("final active: %d keys, modifiers %012b\n", len(kb.ActiveCodes()), kb.Modifiers())
	return nil
}

func (r *Replay) apply(kb *keyboard.Keyboard, step Step) error {
	model := kb.Model()
	switch {
	case step.Key != "":
		raw, ok := hid.KeyByName(step.Key)
		if !ok {
			return fmt.Errorf("unknown key %q", step.Key)
		}
		down := true
		if step.Down != nil {
			down = *step.Down
		}
		kb.DeliverKeyTransition(raw, down, step.Right)
		fmt.Printf("key %s %s\n", step.Key, direction(down))

	case step.Tap != "":
		raw, ok := hid.KeyByName(step.Tap)
		if !ok {
			return fmt.Errorf("unknown key %q", step.Tap)
		}
		kb.DeliverSyntheticPress(raw)
		fmt.Printf("tap %s\n", step.Tap)

	case step.Char != "":
		for _, ch := range step.Char {
			kb.DeliverCharacterEvidence(ch)
		}
		fmt.Printf("char %q\n", step.Char)

	case step.Wait > 0:
		time.Sleep(step.Wait)
		fmt.Printf("wait %s\n", step.Wait)

	case step.Scan:
		if model.DataPort == 0 {
			return fmt.Errorf("model %s has no scan port", model.Name)
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
		fmt.Println()

	case step.Status != nil:
		if model.DataPort == 0 {
			return fmt.Errorf("model %s has no scan port", model.Name)
		}
		kb.WritePort(model.DataPort, *step.Status)
		fmt.Printf("status %08b\n", *step.Status)

	default:
		return fmt.Errorf("empty step")
	}
	return nil
}

func direction(down bool) string {
	if down {
		return "down"
	}
	return "up"
}

func loadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	var script Script
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &script); err != nil {
			return nil, fmt.Errorf("parse yaml script %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &script); err != nil {
			return nil, fmt.Errorf("parse toml script %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported script format %q", filepath.Ext(path))
	}
	return &script, nil
}
