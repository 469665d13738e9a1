package model

import "github.com/google/uuid"

// Item is the domain model for a todo entry.
// ID is assigned by the store and never shown; callers address items by position.
type Item struct {
	ID        uuid.UUID `json:"-"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
}

// Label renders the item the way the list view shows it.
func (it Item) Label() string {
	if it.Completed {
		return "(x) " + it.Text
	}
	return "( ) " + it.Text
}
