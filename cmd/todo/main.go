package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/idilsaglam/todomvc/internal/cli"
	"github.com/idilsaglam/todomvc/internal/config"
	"github.com/idilsaglam/todomvc/internal/logging"
	"github.com/idilsaglam/todomvc/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Root flags (apply to every subcommand)
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.Usage = func() { cli.PrintHelp(os.Stderr) }
	cfg, args, err := config.Load(fs, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		ui.Fail(os.Stderr, err.Error())
		return 2
	}
	ui.SetTheme(cfg.Theme)

	opts := logging.DefaultOptions()
	opts.Level = logging.ParseLevel(cfg.LogLevel)
	opts.Formatter = logging.ParseFormatter(cfg.LogFormat)
	logger, closeLog, err := logging.Open(cfg.LogFile, opts)
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
		return 1
	}
	defer closeLog()

	// No subcommand: open the list on a terminal, explain usage otherwise.
	if len(args) == 0 {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			cli.PrintHelp(os.Stderr)
			return 2
		}
		args = []string{"tui"}
	}

	code := cli.Run(args, cli.Options{Config: cfg, Logger: logger})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	return code
}
