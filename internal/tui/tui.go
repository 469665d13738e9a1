// Package tui is the interactive terminal front-end.
package tui

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/idilsaglam/todomvc/internal/app"
	"github.com/idilsaglam/todomvc/internal/controller"
	"github.com/idilsaglam/todomvc/internal/model"
	"github.com/idilsaglam/todomvc/internal/ui"
	"github.com/idilsaglam/todomvc/internal/view"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeChange
	modeToggle
)

// rowItem adapts a rendered row to bubbles/list.Item
type rowItem struct{ view.Row }

func (i rowItem) FilterValue() string { return i.Label }

// Custom delegate to control how rows render (single line)
type rowDelegate struct{}

func (d rowDelegate) Height() int                               { return 1 }
func (d rowDelegate) Spacing() int                              { return 0 }
func (d rowDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(rowItem)
	if !ok {
		return
	}
	t := ui.Current()
	label := it.Label
	if strings.HasPrefix(label, "(x) ") {
		label = t.Success.Render("(x)") + " " + t.Done.Render(strings.TrimPrefix(label, "(x) "))
	} else {
		label = t.Muted.Render("( )") + " " + strings.TrimPrefix(label, "( ) ")
	}
	idx := t.Muted.Render(fmt.Sprintf("%2d.", it.Position))
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	line := prefix + idx + " " + label
	if it.Delete != nil {
		line += "  " + t.Muted.Render("["+it.Delete.Text+"]")
	}
	fmt.Fprintln(w, line)
}

type keyMap struct {
	Add, Change, Toggle, ToggleAll, Space, Delete key.Binding
	Quit, Submit, Cancel, Next                    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Change:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "change")),
		Toggle:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle #")),
		Space:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		ToggleAll: key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "toggle all")),
		Delete:    key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Submit:    key.NewBinding(key.WithKeys("enter")),
		Cancel:    key.NewBinding(key.WithKeys("esc")),
		Next:      key.NewBinding(key.WithKeys("tab", "shift+tab")),
	}
}

// inputs are the text fields the controller reads; they live behind a
// pointer so the controller and the tea model share them.
type inputs struct {
	addText, changePos, changeText, togglePos textinput.Model
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	return ti
}

// Options tune the TUI.
type Options struct {
	Progress bool
}

// Model is the bubbletea model.
type Model struct {
	app    *app.App
	in     *inputs
	list   list.Model
	keys   keyMap
	opts   Options
	logger *log.Logger

	mode   mode
	status string
	err    error
	width  int
	height int
}

// New builds the model with its own store preloaded from seed.
func New(seed []model.Item, opts Options, logger *log.Logger) *Model {
	in := &inputs{
		addText:    newInput("New todo...", 200),
		changePos:  newInput("Position", 6),
		changeText: newInput("New text...", 200),
		togglePos:  newInput("Position", 6),
	}
	fields := controller.Fields{
		AddText:        &in.addText,
		ChangePosition: &in.changePos,
		ChangeText:     &in.changeText,
		TogglePosition: &in.togglePos,
	}

	keys := defaultKeys()
	l := list.New(nil, rowDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(true)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.HelpStyle = ui.Current().Help
	l.Styles.PaginationStyle = ui.Current().Help
	extra := func() []key.Binding {
		return []key.Binding{keys.Add, keys.Change, keys.Space, keys.ToggleAll, keys.Delete}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	w, h := widthHeight()
	m := &Model{
		app:    app.New(seed, fields, logger),
		in:     in,
		list:   l,
		keys:   keys,
		opts:   opts,
		logger: logger,
		width:  w,
		height: h,
	}
	m.sync()
	return m
}

// Run starts the program on the alternate screen.
func Run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Todos returns the current todos.
func (m *Model) Todos() []model.Item { return m.app.Store.Todos() }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.mode != modeList {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	h := m.app.Handlers
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Add):
		return m.enter(modeAdd)
	case key.Matches(msg, m.keys.Change):
		if it, ok := m.selected(); ok {
			m.in.changePos.SetValue(strconv.Itoa(it.Position))
			m.in.changeText.SetValue(strings.TrimPrefix(strings.TrimPrefix(it.Label, "(x) "), "( ) "))
			m.in.changeText.CursorEnd()
		}
		return m.enter(modeChange)
	case key.Matches(msg, m.keys.Toggle):
		if it, ok := m.selected(); ok {
			m.in.togglePos.SetValue(strconv.Itoa(it.Position))
		}
		return m.enter(modeToggle)
	case key.Matches(msg, m.keys.Space):
		if it, ok := m.selected(); ok {
			m.in.togglePos.SetValue(strconv.Itoa(it.Position))
			m.done("toggled", h.ToggleCompleted())
		}
		return m, nil
	case key.Matches(msg, m.keys.ToggleAll):
		m.done("toggled all", h.ToggleAll())
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if it, ok := m.selected(); ok {
			// goes through the container's delegated listener
			m.app.ClickDelete(it.Position)
			m.done("deleted", nil)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	h := m.app.Handlers
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.reset()
		return m, nil
	case key.Matches(msg, m.keys.Next) && m.mode == modeChange:
		if m.in.changePos.Focused() {
			m.in.changePos.Blur()
			return m, m.in.changeText.Focus()
		}
		m.in.changeText.Blur()
		return m, m.in.changePos.Focus()
	case key.Matches(msg, m.keys.Submit):
		var err error
		var what string
		switch m.mode {
		case modeAdd:
			err, what = h.AddTodo(), "added"
		case modeChange:
			err, what = h.ChangeTodo(), "changed"
		case modeToggle:
			err, what = h.ToggleCompleted(), "toggled"
		}
		m.done(what, err)
		if err == nil {
			m.blurAll()
			m.mode = modeList
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.mode {
	case modeAdd:
		m.in.addText, cmd = m.in.addText.Update(msg)
	case modeChange:
		if m.in.changePos.Focused() {
			m.in.changePos, cmd = m.in.changePos.Update(msg)
		} else {
			m.in.changeText, cmd = m.in.changeText.Update(msg)
		}
	case modeToggle:
		m.in.togglePos, cmd = m.in.togglePos.Update(msg)
	}
	return m, cmd
}

func (m *Model) enter(md mode) (tea.Model, tea.Cmd) {
	m.mode = md
	m.err = nil
	switch md {
	case modeAdd:
		return m, m.in.addText.Focus()
	case modeChange:
		return m, m.in.changeText.Focus()
	case modeToggle:
		return m, m.in.togglePos.Focus()
	}
	return m, nil
}

// reset leaves input mode, discarding whatever was typed.
func (m *Model) reset() {
	for _, ti := range []*textinput.Model{&m.in.addText, &m.in.changePos, &m.in.changeText, &m.in.togglePos} {
		ti.SetValue("")
	}
	m.blurAll()
	m.mode = modeList
	m.err = nil
}

func (m *Model) blurAll() {
	m.in.addText.Blur()
	m.in.changePos.Blur()
	m.in.changeText.Blur()
	m.in.togglePos.Blur()
}

// done records the outcome of a handler call and re-syncs the rows.
func (m *Model) done(what string, err error) {
	m.err = err
	m.status = ""
	if err == nil {
		m.status = what
	}
	m.sync()
}

// sync copies the rendered container rows into the list.
func (m *Model) sync() {
	rows := m.app.View.Rows()
	items := make([]list.Item, len(rows))
	for i, r := range rows {
		items[i] = rowItem{r}
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
}

func (m *Model) selected() (rowItem, bool) {
	it, ok := m.list.SelectedItem().(rowItem)
	return it, ok
}

func (m *Model) View() string {
	t := ui.Current()
	done, pending := m.app.Store.Stats()

	var b strings.Builder
	b.WriteString(ui.Header(done, pending))
	b.WriteString("\n")
	if m.opts.Progress {
		b.WriteString(t.Muted.Render(ui.ProgressBar(done, done+pending, 28)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	chrome := 8
	if m.mode != modeList {
		chrome += 4
	}
	m.list.SetSize(m.width-4, max(m.height-chrome, 3))
	if len(m.list.Items()) == 0 {
		b.WriteString(t.Muted.Render("no todos yet, press a to add one"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.list.View())
	}

	if m.mode != modeList {
		b.WriteString("\n")
		b.WriteString(m.inputView())
	}

	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(t.Error.Render("✖ " + m.err.Error()))
	case m.status != "":
		b.WriteString(t.Success.Render("✔ " + m.status))
	}
	return ui.Frame(b.String())
}

func (m *Model) inputView() string {
	bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ui.Current().BorderColor).Padding(0, 1)
	var title, body string
	switch m.mode {
	case modeAdd:
		title, body = "Add todo", m.in.addText.View()
	case modeChange:
		title, body = "Change todo (tab switches field)", m.in.changePos.View()+"\n"+m.in.changeText.View()
	case modeToggle:
		title, body = "Toggle todo at position", m.in.togglePos.View()
	}
	return bar.Render(title + "\n" + body)
}

func widthHeight() (int, int) {
	w, h := 80, 24
	if tw, th, err := term.GetSize(int(os.Stdout.Fd())); err == nil && tw > 0 && th > 0 {
		w, h = tw, th
	}
	return w, h
}
