// Package controller turns user actions into store mutations.
package controller

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todomvc/internal/store"
)

// Field is an input the handlers read from and clear.
// *textinput.Model from bubbles satisfies it.
type Field interface {
	Value() string
	SetValue(string)
}

// TextField is an in-memory Field.
type TextField struct{ value string }

func (f *TextField) Value() string     { return f.value }
func (f *TextField) SetValue(s string) { f.value = s }

// Fields are the inputs owned by the UI layer.
type Fields struct {
	AddText        Field
	ChangePosition Field
	ChangeText     Field
	TogglePosition Field
}

// NewTextFields returns Fields backed by TextField values.
func NewTextFields() Fields {
	return Fields{
		AddText:        &TextField{},
		ChangePosition: &TextField{},
		ChangeText:     &TextField{},
		TogglePosition: &TextField{},
	}
}

// Refresher redraws the list after a mutation.
type Refresher interface {
	Render()
}

// Handlers wire fields, store and view together.
type Handlers struct {
	store  *store.TodoStore
	fields Fields
	view   Refresher
	logger *log.Logger
}

// New builds the handlers. view may be set later with SetView, since the view
// usually needs the handlers for its delegated listener.
func New(s *store.TodoStore, fields Fields, view Refresher, logger *log.Logger) *Handlers {
	if logger == nil {
		logger = log.Default()
	}
	return &Handlers{store: s, fields: fields, view: view, logger: logger}
}

// SetView sets the refresher.
func (h *Handlers) SetView(v Refresher) { h.view = v }

// Fields returns the injected fields.
func (h *Handlers) Fields() Fields { return h.fields }

// AddTodo appends the add-text field as a new todo.
func (h *Handlers) AddTodo() error {
	text := h.fields.AddText.Value()
	h.store.Add(text)
	h.fields.AddText.SetValue("")
	h.logger.Debug("add", "text", text)
	h.refresh()
	return nil
}

// ChangeTodo replaces the text at the change-position field.
func (h *Handlers) ChangeTodo() error {
	pos := parsePosition(h.fields.ChangePosition.Value())
	text := h.fields.ChangeText.Value()
	if err := h.store.Change(pos, text); err != nil {
		return h.failed(err)
	}
	h.fields.ChangePosition.SetValue("")
	h.fields.ChangeText.SetValue("")
	h.logger.Debug("change", "position", pos, "text", text)
	h.refresh()
	return nil
}

// DeleteTodo removes the todo at pos. It is called from the view's
// delegated listener with the clicked row's position.
func (h *Handlers) DeleteTodo(pos int) error {
	if err := h.store.Delete(pos); err != nil {
		return h.failed(err)
	}
	h.logger.Debug("delete", "position", pos)
	h.refresh()
	return nil
}

// ToggleCompleted flips the todo at the toggle-position field.
func (h *Handlers) ToggleCompleted() error {
	pos := parsePosition(h.fields.TogglePosition.Value())
	if err := h.store.ToggleCompleted(pos); err != nil {
		return h.failed(err)
	}
	h.fields.TogglePosition.SetValue("")
	h.logger.Debug("toggle", "position", pos)
	h.refresh()
	return nil
}

// ToggleAll runs the bulk toggle.
func (h *Handlers) ToggleAll() error {
	h.store.ToggleAll()
	h.logger.Debug("toggle all", "items", h.store.Len())
	h.refresh()
	return nil
}

func (h *Handlers) refresh() {
	if h.view != nil {
		h.view.Render()
	}
}

func (h *Handlers) failed(err error) error {
	h.logger.Warn("action failed", "err", err)
	return err
}

// parsePosition reads a position field. Anything that is not an integer
// maps to store.NoPosition, which the store rejects.
func parsePosition(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return store.NoPosition
	}
	return n
}
