package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/thelolagemann/lr35902/internal/config"
	"github.com/thelolagemann/lr35902/pkg/log"
)

type CLI struct {
	Config   string `help:"Configuration file." type:"path" default:"lr35902.toml"`
	LogLevel string `name:"log-level" help:"Override the configured log level." placeholder:"LEVEL"`

	Run    RunCmd    `cmd:"" help:"Run a ROM until it faults."`
	Info   InfoCmd   `cmd:"" help:"Show ROM header infos."`
	Disasm DisasmCmd `cmd:"" help:"Disassemble a ROM."`
	Batch  BatchCmd  `cmd:"" help:"Run many ROMs concurrently and report their faults."`
}

// globals is bound to the Run method of every command.
type globals struct {
	cfg config.Config
	log log.Logger
	out io.Writer
}

var vars = kong.Vars{
	"frames_help": "Number of frames to run, 0 runs at 60Hz until interrupted.",
}

func parseArgs(args []string, out io.Writer) (*kong.Context, *CLI, error) {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("lr35902"),
		kong.Description("Game Boy CPU core, memory bus and interrupt controller."),
		kong.UsageOnError(),
		kong.Writers(out, os.Stderr),
		vars)
	if err != nil {
		return nil, nil, err
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return nil, nil, err
	}
	return ctx, &cli, nil
}

func run(args []string) error {
	return runWith(args, os.Stdout)
}

func runWith(args []string, out io.Writer) error {
	ctx, cli, err := parseArgs(args, out)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}

	return ctx.Run(&globals{
		cfg: cfg,
		log: log.New(cfg.Log.Level),
		out: out,
	})
}
