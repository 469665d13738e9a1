package controller

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todomvc/internal/store"
)

type countingView struct{ renders int }

func (v *countingView) Render() { v.renders++ }

func newTestHandlers() (*Handlers, *store.TodoStore, *countingView) {
	s := store.New()
	v := &countingView{}
	return New(s, NewTextFields(), v, log.New(io.Discard)), s, v
}

func TestAddTodo(t *testing.T) {
	h, s, v := newTestHandlers()
	h.Fields().AddText.SetValue("buy milk")

	require.NoError(t, h.AddTodo())
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "", h.Fields().AddText.Value())
	assert.Equal(t, 1, v.renders)

	it, err := s.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "buy milk", it.Text)
	assert.False(t, it.Completed)
}

func TestAddTodoEmptyText(t *testing.T) {
	h, s, _ := newTestHandlers()
	require.NoError(t, h.AddTodo())
	assert.Equal(t, 1, s.Len())
}

func TestChangeTodo(t *testing.T) {
	h, s, v := newTestHandlers()
	s.Add("a")
	f := h.Fields()
	f.ChangePosition.SetValue("0")
	f.ChangeText.SetValue("b")

	require.NoError(t, h.ChangeTodo())
	it, _ := s.Get(0)
	assert.Equal(t, "b", it.Text)
	assert.Equal(t, "", f.ChangePosition.Value())
	assert.Equal(t, "", f.ChangeText.Value())
	assert.Equal(t, 1, v.renders)
}

func TestToggleCompleted(t *testing.T) {
	h, s, v := newTestHandlers()
	s.Add("a")
	h.Fields().TogglePosition.SetValue(" 0 ")

	require.NoError(t, h.ToggleCompleted())
	it, _ := s.Get(0)
	assert.True(t, it.Completed)
	assert.Equal(t, "", h.Fields().TogglePosition.Value())
	assert.Equal(t, 1, v.renders)
}

func TestMalformedPositionIsOutOfRange(t *testing.T) {
	for _, in := range []string{"", "abc", "1.5", "-3", "7"} {
		t.Run(in, func(t *testing.T) {
			h, s, v := newTestHandlers()
			s.Add("a")
			f := h.Fields()
			f.TogglePosition.SetValue(in)
			f.ChangePosition.SetValue(in)
			f.ChangeText.SetValue("z")

			err := h.ToggleCompleted()
			assert.True(t, errors.Is(err, store.ErrOutOfRange))
			err = h.ChangeTodo()
			assert.True(t, errors.Is(err, store.ErrOutOfRange))

			// inputs are kept, nothing was redrawn, store untouched
			assert.Equal(t, in, f.TogglePosition.Value())
			assert.Equal(t, "z", f.ChangeText.Value())
			assert.Equal(t, 0, v.renders)
			it, _ := s.Get(0)
			assert.Equal(t, "a", it.Text)
			assert.False(t, it.Completed)
		})
	}
}

func TestDeleteAndToggleAll(t *testing.T) {
	h, s, v := newTestHandlers()
	s.Add("a")
	s.Add("b")

	require.NoError(t, h.ToggleAll())
	done, _ := s.Stats()
	assert.Equal(t, 2, done)

	require.NoError(t, h.DeleteTodo(0))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 2, v.renders)

	err := h.DeleteTodo(4)
	assert.True(t, errors.Is(err, store.ErrOutOfRange))
	assert.Equal(t, 2, v.renders)
}

func TestTextInputIsAField(t *testing.T) {
	s := store.New()
	ti := textinput.New()
	fields := NewTextFields()
	fields.AddText = &ti
	h := New(s, fields, nil, log.New(io.Discard))

	ti.SetValue("from the terminal")
	require.NoError(t, h.AddTodo())
	assert.Equal(t, "", ti.Value())
	it, _ := s.Get(0)
	assert.Equal(t, "from the terminal", it.Text)
}
