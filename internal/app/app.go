// Package app assembles store, view and controller into one running list.
package app

import (
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todomvc/internal/controller"
	"github.com/idilsaglam/todomvc/internal/dom"
	"github.com/idilsaglam/todomvc/internal/model"
	"github.com/idilsaglam/todomvc/internal/store"
	"github.com/idilsaglam/todomvc/internal/view"
)

// App is the wired model-view-controller triple.
type App struct {
	Store    *store.TodoStore
	View     *view.ListView
	Handlers *controller.Handlers
}

// New builds the stack around fields, preloads seed and renders once.
// The view's delegated listener is attached exactly once here.
func New(seed []model.Item, fields controller.Fields, logger *log.Logger) *App {
	if logger == nil {
		logger = log.Default()
	}
	s := store.New()
	s.Load(seed)

	v := view.NewListView(s, dom.New("ul"), logger.WithPrefix("view"))
	h := controller.New(s, fields, v, logger.WithPrefix("handlers"))
	v.AttachDelegatedListener(h)
	v.Render()

	return &App{Store: s, View: v, Handlers: h}
}

// ClickDelete clicks the delete control of the row at pos, as a user would.
// It reports false when no such row is rendered.
func (a *App) ClickDelete(pos int) bool {
	rows := a.View.Rows()
	if pos < 0 || pos >= len(rows) || rows[pos].Delete == nil {
		return false
	}
	dom.Click(rows[pos].Delete)
	return true
}
