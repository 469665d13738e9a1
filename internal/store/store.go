// Package store holds the in-memory todo collection.
//
// Every todo gets a stable ID at creation, but all operations are addressed
// by position: the zero-based index into the current display order.
// Positions are renumbered on delete. The store is not safe for concurrent
// use; it is meant to be driven from a single UI loop.
package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/idilsaglam/todomvc/internal/model"
)

// NoPosition is what callers pass when a position could not be read at all.
// The store rejects it like any other out-of-range position.
const NoPosition = -1

// ErrOutOfRange is returned (wrapped in a *PositionError) when a position is
// outside [0, Len()).
var ErrOutOfRange = errors.New("position out of range")

// PositionError describes a rejected position.
type PositionError struct {
	Op       string
	Position int
	Len      int
}

func (e *PositionError) Error() string {
	if e.Position == NoPosition {
		return fmt.Sprintf("%s: no position given (have %d items)", e.Op, e.Len)
	}
	return fmt.Sprintf("%s: position %d out of range (have %d items)", e.Op, e.Position, e.Len)
}

func (e *PositionError) Unwrap() error { return ErrOutOfRange }

// TodoStore owns the ordered todo collection.
type TodoStore struct {
	items map[uuid.UUID]*model.Item
	order []uuid.UUID
}

// New returns an empty store.
func New() *TodoStore {
	return &TodoStore{items: make(map[uuid.UUID]*model.Item)}
}

// Len reports the number of todos.
func (s *TodoStore) Len() int { return len(s.order) }

// Add appends a new, not completed todo. Any text is accepted, including "".
func (s *TodoStore) Add(text string) {
	id := uuid.New()
	s.items[id] = &model.Item{ID: id, Text: text}
	s.order = append(s.order, id)
}

// Change replaces the text of the todo at pos. Completion is untouched.
func (s *TodoStore) Change(pos int, text string) error {
	it, err := s.at("change", pos)
	if err != nil {
		return err
	}
	it.Text = text
	return nil
}

// Delete removes the todo at pos; later todos move up by one.
func (s *TodoStore) Delete(pos int) error {
	it, err := s.at("delete", pos)
	if err != nil {
		return err
	}
	delete(s.items, it.ID)
	s.order = append(s.order[:pos], s.order[pos+1:]...)
	return nil
}

// ToggleCompleted flips the completion flag of the todo at pos.
func (s *TodoStore) ToggleCompleted(pos int) error {
	it, err := s.at("toggle", pos)
	if err != nil {
		return err
	}
	it.Completed = !it.Completed
	return nil
}

// ToggleAll clears every todo when all of them are completed (an empty
// store counts as all completed) and completes every todo otherwise.
func (s *TodoStore) ToggleAll() {
	done, _ := s.Stats()
	completed := done != len(s.order)
	for _, id := range s.order {
		s.items[id].Completed = completed
	}
}

// Get returns a copy of the todo at pos.
func (s *TodoStore) Get(pos int) (model.Item, error) {
	it, err := s.at("get", pos)
	if err != nil {
		return model.Item{}, err
	}
	return *it, nil
}

// Todos returns a snapshot of the collection in display order.
func (s *TodoStore) Todos() []model.Item {
	out := make([]model.Item, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.items[id])
	}
	return out
}

// Stats counts completed and pending todos.
func (s *TodoStore) Stats() (done, pending int) {
	for _, id := range s.order {
		if s.items[id].Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

// Load appends items in order, as if each was added and then toggled to its
// recorded completion state.
func (s *TodoStore) Load(items []model.Item) {
	for _, it := range items {
		s.Add(it.Text)
		s.items[s.order[len(s.order)-1]].Completed = it.Completed
	}
}

func (s *TodoStore) at(op string, pos int) (*model.Item, error) {
	if pos < 0 || pos >= len(s.order) {
		return nil, &PositionError{Op: op, Position: pos, Len: len(s.order)}
	}
	return s.items[s.order[pos]], nil
}
