// Package view renders the todo store into a dom container.
package view

import (
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todomvc/internal/dom"
	"github.com/idilsaglam/todomvc/internal/model"
)

// DeleteClass marks delete controls for the delegated listener.
const DeleteClass = "deleteButton"

// Source is the read side of the store the view needs.
type Source interface {
	Todos() []model.Item
}

// Deleter is the controller action fired by a delete control.
type Deleter interface {
	DeleteTodo(pos int) error
}

// ListView owns a container element and re-renders it from the store.
type ListView struct {
	src       Source
	container *dom.Element
	logger    *log.Logger
}

// NewListView builds a view over container. The container is cleared on
// every Render; nothing else should write to it.
func NewListView(src Source, container *dom.Element, logger *log.Logger) *ListView {
	if logger == nil {
		logger = log.Default()
	}
	return &ListView{src: src, container: container, logger: logger}
}

// Container returns the element the view renders into.
func (v *ListView) Container() *dom.Element { return v.container }

// Render replaces the container's rows with one row per todo.
func (v *ListView) Render() {
	v.container.Clear()
	for pos, it := range v.src.Todos() {
		li := dom.New("li").
			SetID(strconv.Itoa(pos)).
			SetText(it.Label())
		li.Append(v.DeleteControl())
		v.container.Append(li)
	}
	v.logger.Debug("rendered", "rows", len(v.container.Children))
}

// DeleteControl builds one "Delete" control.
func (v *ListView) DeleteControl() *dom.Element {
	return dom.New("button").SetClass(DeleteClass).SetText("Delete")
}

// AttachDelegatedListener registers a single click listener on the container
// that turns clicks on delete controls into d.DeleteTodo calls. Call it once.
func (v *ListView) AttachDelegatedListener(d Deleter) {
	v.container.AddEventListener("click", func(ev *dom.Event) {
		target := ev.Target
		if target == nil || target.Class != DeleteClass || target.Parent == nil {
			return
		}
		pos, err := strconv.Atoi(target.Parent.ID)
		if err != nil {
			v.logger.Warn("delete control without position", "id", target.Parent.ID)
			return
		}
		if err := d.DeleteTodo(pos); err != nil {
			v.logger.Warn("delete failed", "position", pos, "err", err)
		}
	})
}

// Row is a rendered row as seen by a front-end.
type Row struct {
	Position int
	Label    string
	Delete   *dom.Element
}

// Rows reads the container back as rows, in order.
func (v *ListView) Rows() []Row {
	out := make([]Row, 0, len(v.container.Children))
	for _, li := range v.container.Children {
		pos, err := strconv.Atoi(li.ID)
		if err != nil {
			continue
		}
		out = append(out, Row{
			Position: pos,
			Label:    li.Text,
			Delete:   li.FindClass(DeleteClass),
		})
	}
	return out
}

// Lines returns the row labels, used for plain text output.
func (v *ListView) Lines() []string {
	rows := v.Rows()
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Label
	}
	return out
}
