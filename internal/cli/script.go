package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/idilsaglam/todomvc/internal/app"
	"github.com/idilsaglam/todomvc/internal/store"
	"github.com/idilsaglam/todomvc/internal/ui"
)

var errUnknownAction = errors.New("unknown action")

// scriptRunner feeds script lines through the same fields and handlers the
// terminal UI uses.
type scriptRunner struct {
	app    *app.App
	out    io.Writer
	errOut io.Writer
	trace  bool
}

// run executes every line and returns how many failed. A failing line is
// reported and the script continues.
func (r *scriptRunner) run(src io.Reader) (int, error) {
	failed := 0
	sc := bufio.NewScanner(src)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		before := r.app.View.Lines()
		mutated, err := r.exec(line)
		if err != nil {
			failed++
			ui.Fail(r.errOut, fmt.Sprintf("line %d: %v", n, err))
			continue
		}
		if r.trace && mutated {
			fmt.Fprintf(r.out, "# %s\n%s", line, diffRows(before, r.app.View.Lines()))
		}
	}
	return failed, sc.Err()
}

func (r *scriptRunner) exec(line string) (mutated bool, err error) {
	action, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	h := r.app.Handlers
	f := h.Fields()

	switch action {
	case "add":
		f.AddText.SetValue(rest)
		return true, h.AddTodo()

	case "change":
		pos, text, _ := strings.Cut(rest, " ")
		f.ChangePosition.SetValue(pos)
		f.ChangeText.SetValue(strings.TrimSpace(text))
		err = h.ChangeTodo()
		return err == nil, err

	case "delete":
		pos, perr := strconv.Atoi(rest)
		if perr != nil {
			pos = store.NoPosition
		}
		if r.app.ClickDelete(pos) {
			return true, nil
		}
		// no such row to click; let the handler report the range error
		return false, h.DeleteTodo(pos)

	case "toggle":
		f.TogglePosition.SetValue(rest)
		err = h.ToggleCompleted()
		return err == nil, err

	case "toggle-all":
		return true, h.ToggleAll()

	case "show":
		fmt.Fprint(r.out, plainRows(r.app.View.Lines()))
		return false, nil
	}
	return false, fmt.Errorf("%w %q", errUnknownAction, action)
}

// diffRows prints a line diff between two renders: "- " removed, "+ " added.
func diffRows(before, after []string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(joinLines(before), joinLines(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		default:
			continue
		}
		for _, l := range strings.SplitAfter(d.Text, "\n") {
			if l != "" {
				out.WriteString(prefix + l)
			}
		}
	}
	return out.String()
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
