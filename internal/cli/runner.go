package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/idilsaglam/todomvc/internal/app"
	"github.com/idilsaglam/todomvc/internal/config"
	"github.com/idilsaglam/todomvc/internal/controller"
	"github.com/idilsaglam/todomvc/internal/model"
	"github.com/idilsaglam/todomvc/internal/store/jsonstore"
	"github.com/idilsaglam/todomvc/internal/tui"
	"github.com/idilsaglam/todomvc/internal/ui"
)

// Options carry the resolved config and the process streams.
type Options struct {
	Config *config.Config
	Logger *log.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (o *Options) defaults() {
	if o.Config == nil {
		o.Config = &config.Config{Theme: config.DefaultTheme, Progress: true}
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	opt.defaults()
	if len(args) == 0 {
		PrintHelp(opt.Stderr)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Stdout)
		return 0

	case "tui":
		return doTUI(opt)

	case "run":
		return doRun(a, opt)

	case "dump":
		if len(a) != 0 {
			ui.Fail(opt.Stderr, "usage: todo dump")
			return 2
		}
		return doDump(opt)
	}

	ui.Fail(opt.Stderr, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Stderr)
	PrintHelp(opt.Stderr)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `todo - an in-memory todo list

Usage:
  todo [flags] <subcommand> [args]

Subcommands:
  tui                    Interactive list (default on a terminal)
  run [--trace] [--json] <script|->
                         Run actions from a script, then print the list
  dump                   Print the (seeded) list as JSON
  help                   Show this help

Script actions, one per line (positions are 0-based):
  add <text...>          Append a todo
  change <pos> <text...> Replace the text at pos
  delete <pos>           Click the delete control of row pos
  toggle <pos>           Flip completion at pos
  toggle-all             Complete all, or clear all if all are done
  show                   Print the current rows

Flags:
  --config <file>   TOML config (default ./todo.toml)
  --seed <file>     JSON todos to start from; nothing is saved back
  --theme <name>    classic, neon or mono
  --log-level <l>   debug, info, warn, error
  --log-file <file> Write logs to a file
  --progress        Show the progress bar (default true)

Examples:
  echo 'add Buy milk' | todo run -
  todo --seed todos.json run --trace today.todo
`)
}

// -------------- subcommand impls ----------------

func loadSeed(opt Options) ([]model.Item, bool) {
	if opt.Config.Seed == "" {
		return nil, true
	}
	items, err := jsonstore.LoadFile(opt.Config.Seed)
	if err != nil {
		ui.Fail(opt.Stderr, "seed: "+err.Error())
		return nil, false
	}
	opt.Logger.Info("seeded", "file", opt.Config.Seed, "items", len(items))
	return items, true
}

func doTUI(opt Options) int {
	f, isFile := opt.Stdout.(*os.File)
	if !isFile || !term.IsTerminal(int(f.Fd())) {
		ui.Fail(opt.Stderr, "tui requires a terminal; use `todo run` for scripts")
		return 2
	}
	seed, ok := loadSeed(opt)
	if !ok {
		return 1
	}
	m := tui.New(seed, tui.Options{Progress: opt.Config.Progress}, opt.Logger)
	if err := tui.Run(m); err != nil {
		ui.Fail(opt.Stderr, "tui: "+err.Error())
		return 1
	}
	fmt.Fprintln(opt.Stdout, listPanel(m.Todos(), opt.Config.Progress))
	return 0
}

func doRun(args []string, opt Options) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(opt.Stderr)
	trace := fs.Bool("trace", false, "print a diff of the rows after each change")
	asJSON := fs.Bool("json", false, "print the final list as JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		ui.Fail(opt.Stderr, "usage: todo run [--trace] [--json] <script|->")
		return 2
	}

	var src io.Reader = opt.Stdin
	if name := fs.Arg(0); name != "-" {
		f, err := os.Open(name)
		if err != nil {
			ui.Fail(opt.Stderr, "open script: "+err.Error())
			return 1
		}
		defer f.Close()
		src = f
	}

	seed, ok := loadSeed(opt)
	if !ok {
		return 1
	}
	a := app.New(seed, controller.NewTextFields(), opt.Logger)
	r := &scriptRunner{app: a, out: opt.Stdout, errOut: opt.Stderr, trace: *trace}
	failed, err := r.run(src)
	if err != nil {
		ui.Fail(opt.Stderr, "read script: "+err.Error())
		return 1
	}

	if *asJSON {
		if err := jsonstore.Save(opt.Stdout, a.Store.Todos()); err != nil {
			ui.Fail(opt.Stderr, "dump: "+err.Error())
			return 1
		}
	} else {
		fmt.Fprintln(opt.Stdout, listPanel(a.Store.Todos(), opt.Config.Progress))
	}
	if failed > 0 {
		return 1
	}
	return 0
}

func doDump(opt Options) int {
	seed, ok := loadSeed(opt)
	if !ok {
		return 1
	}
	a := app.New(seed, controller.NewTextFields(), opt.Logger)
	if err := jsonstore.Save(opt.Stdout, a.Store.Todos()); err != nil {
		ui.Fail(opt.Stderr, "dump: "+err.Error())
		return 1
	}
	return 0
}

// -------------- rendering helpers --------------

func listPanel(items []model.Item, progress bool) string {
	t := ui.Current()
	var done, pending int
	for _, it := range items {
		if it.Completed {
			done++
		} else {
			pending++
		}
	}

	lines := []string{ui.Header(done, pending)}
	if progress {
		lines = append(lines, t.Muted.Render(ui.ProgressBar(done, done+pending, 28)))
	}
	lines = append(lines, "")
	if len(items) == 0 {
		lines = append(lines, t.Muted.Render("no items"))
	}
	for i, it := range items {
		idx := t.Muted.Render(fmt.Sprintf("%2d.", i))
		label := it.Label()
		if it.Completed {
			label = t.Success.Render("(x)") + " " + t.Done.Render(it.Text)
		}
		lines = append(lines, idx+" "+label)
	}
	return ui.Panel(lines)
}

// plainRows is what `show` and --trace print.
func plainRows(lines []string) string {
	var b strings.Builder
	for i, l := range lines {
		fmt.Fprintf(&b, "%2d. %s\n", i, l)
	}
	return b.String()
}
