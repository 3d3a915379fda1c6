package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/retrofold/keyscan/internal/config"
	"github.com/retrofold/keyscan/internal/configpaths"
	"github.com/retrofold/keyscan/internal/log"
)

func main() {
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userConfigPath())

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("keyscan"),
		kong.Description("Emulated UART keyboard controller toolkit"),
		kong.UsageOnError(),
		// Flags and env override values loaded from config files.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)
	ctx.FatalIfErrorf(run(ctx, &cli))
}

func run(ctx *kong.Context, cli *config.CLI) error {
	logger, closeLog, err := log.Setup(cli.Log.Level, cli.Log.File)
	if err != nil {
		return fmt.Errorf("logging setup: %w", err)
	}
	defer func() { _ = closeLog() }()

	raw, closeRaw, err := openRawLog(cli.Log)
	if err != nil {
		return fmt.Errorf("raw log setup: %w", err)
	}
	defer func() { _ = closeRaw() }()

	ctx.Bind(logger)
	ctx.BindTo(raw, (*log.RawLogger)(nil))
	return ctx.Run()
}

// openRawLog selects where wire-level feed packet logging goes: an explicit
// file, stdout when running at trace level, or nowhere.
func openRawLog(lc config.LogConfig) (log.RawLogger, func() error, error) {
	noop := func() error { return nil }
	switch {
	case lc.RawFile != "":
		f, err := os.OpenFile(lc.RawFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		return log.NewRaw(f), f.Close, nil
	case lc.Level == "trace":
		return log.NewRaw(os.Stdout), noop, nil
	default:
		return log.NewRaw(nil), noop, nil
	}
}

// userConfigPath sniffs --config out of the raw arguments; it has to be
// known before kong parses, because it feeds the config loaders that the
// parse itself uses.
func userConfigPath() string {
	args := os.Args[1:]
	for i, a := range args {
		if strings.HasPrefix(a, "--config=") {
			return strings.TrimPrefix(a, "--config=")
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("KEYSCAN_CONFIG")
}
