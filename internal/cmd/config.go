package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/retrofold/keyscan/internal/configpaths"
)

// ConfigCommand groups configuration utilities.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Write a configuration template"`
}

// ConfigInit writes a starter configuration file for one command, populated
// with the built-in defaults. Keys are the kong flag names, so the result
// can be dropped into any of the config candidate paths and edited in place.
type ConfigInit struct {
	Command string `arg:"" name:"command" help:"Command to generate config for" enum:"serve,demo,replay,type"`
	Format  string `help:"Output format" enum:"json,yaml,toml" default:"toml"`
	Output  string `help:"Destination file path (defaults to <command>.<format>)"`
	Force   bool   `help:"Overwrite if the file already exists"`
}

// Run is called by Kong when the config init command is executed.
func (c *ConfigInit) Run() error {
	tpl, err := configTemplate(c.Command)
	if err != nil {
		return err
	}

	dest := c.Output
	if dest == "" {
		dest = c.Command + "." + c.Format
	}
	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}

	var data []byte
	switch c.Format {
	case "json":
		data, err = json.MarshalIndent(tpl, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(tpl)
	case "toml":
		var tree *toml.Tree
		if tree, err = toml.TreeFromMap(tpl); err == nil {
			var s string
			s, err = tree.ToTomlString()
			data = []byte(s)
		}
	default:
		return fmt.Errorf("unsupported format: %s", c.Format)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}

// deviceDefaults mirrors the DeviceConfig flag defaults, keyed by flag name.
func deviceDefaults() map[string]any {
	return map[string]any{
		"model":          "tk85",
		"keymap-file":    "",
		"remove-on-read": false,
		"break-addr":     0,
		"clock-hz":       2457600,
		"scan-interval":  "50ms",
	}
}

func logDefaults() map[string]any {
	return map[string]any{
		"level":    "info",
		"file":     "",
		"raw-file": "",
	}
}

// configTemplate assembles the per-command section plus the shared log
// section. Replay's script path is a positional argument and deliberately
// has no config key.
func configTemplate(command string) (map[string]any, error) {
	section := deviceDefaults()
	switch command {
	case "serve":
		section["addr"] = ":3270"
	case "demo", "replay", "type":
	default:
		return nil, fmt.Errorf("unknown command %q", command)
	}
	return map[string]any{
		command: section,
		"log":   logDefaults(),
	}, nil
}
