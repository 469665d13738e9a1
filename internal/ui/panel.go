package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a bar with percentage using the current theme.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := done * width / total
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(current.BarFull, filled) + strings.Repeat(current.BarEmpty, width-filled)
	return fmt.Sprintf("%s %3d%%", bar, done*100/total)
}

// Panel frames lines in the current theme's border.
func Panel(lines []string) string {
	return Frame(strings.Join(lines, "\n"))
}

// Frame draws a border around an already joined block.
func Frame(inner string) string {
	return lipgloss.NewStyle().
		Border(current.Border).
		BorderForeground(current.BorderColor).
		Padding(0, 1).
		Render(inner)
}

// Header is the "Todos  ✔ 1  • 2  Total 3" line.
func Header(done, pending int) string {
	t := current
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), pending,
		t.Accent.Render("Total"), done+pending,
	)
}
