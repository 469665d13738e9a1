package ui

import (
	"fmt"
	"io"
)

// OK prints a success line.
func OK(w io.Writer, msg string) { fmt.Fprintln(w, current.Success.Render("✔ "+msg)) }

// Fail prints an error line.
func Fail(w io.Writer, msg string) { fmt.Fprintln(w, current.Error.Render("✖ "+msg)) }
