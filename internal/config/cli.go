// Package config defines the root CLI structure bound by Kong.
package config

import "github.com/retrofold/keyscan/internal/cmd"

// LogConfig groups the logging flags shared by all commands.
type LogConfig struct {
	Level   string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"KEYSCAN_LOG_LEVEL"`
	File    string `help:"Log file path (stdout/stderr when empty)" env:"KEYSCAN_LOG_FILE"`
	RawFile string `help:"Raw feed packet log file" env:"KEYSCAN_LOG_RAW_FILE"`
}

// CLI is the root command structure.
type CLI struct {
	Config string    `help:"Path to config file" type:"path" env:"KEYSCAN_CONFIG"`
	Log    LogConfig `embed:"" prefix:"log."`

	Serve  cmd.Serve         `cmd:"" help:"Run the network feed adapter"`
	Demo   cmd.Demo          `cmd:"" help:"Interactive terminal session against an emulated keyboard"`
	Replay cmd.Replay        `cmd:"" help:"Replay a scripted transition sequence"`
	Type   cmd.TypeIn        `cmd:"" name:"type" help:"Feed typed characters from raw stdin"`
	Models cmd.Models        `cmd:"" help:"List built-in device models"`
	Conf   cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration utilities"`
}
