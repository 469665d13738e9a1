// Package dom is a small retained element tree with bubbling click events.
//
// It stands in for a browser document: views build rows of elements into a
// container they own, and front-ends dispatch clicks on elements. Listeners
// registered on an ancestor see clicks on any descendant, which is what makes
// delegated listeners work.
package dom

import "strings"

// Event is passed to listeners.
type Event struct {
	Type          string
	Target        *Element // element the event was dispatched on
	CurrentTarget *Element // element whose listener is running
}

// Listener handles an event.
type Listener func(ev *Event)

// Element is one node of the tree.
type Element struct {
	ID       string
	Tag      string
	Class    string
	Text     string
	Parent   *Element
	Children []*Element

	listeners map[string][]Listener
}

// New creates a detached element.
func New(tag string) *Element {
	return &Element{Tag: tag}
}

// SetID sets the element ID and returns the element for chaining.
func (e *Element) SetID(id string) *Element {
	e.ID = id
	return e
}

// SetClass sets the class name.
func (e *Element) SetClass(class string) *Element {
	e.Class = class
	return e
}

// SetText sets the element's own text.
func (e *Element) SetText(s string) *Element {
	e.Text = s
	return e
}

// Append adds children, reparenting them.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		if c.Parent != nil {
			c.Parent.remove(c)
		}
		c.Parent = e
		e.Children = append(e.Children, c)
	}
	return e
}

// Clear detaches all children. Listeners on e itself are kept.
func (e *Element) Clear() {
	for _, c := range e.Children {
		c.Parent = nil
	}
	e.Children = nil
}

// TextContent concatenates the text of e and all descendants, depth first.
func (e *Element) TextContent() string {
	var b strings.Builder
	e.walk(func(n *Element) { b.WriteString(n.Text) })
	return b.String()
}

// AddEventListener registers fn for events of the given type on e.
func (e *Element) AddEventListener(typ string, fn Listener) {
	if e.listeners == nil {
		e.listeners = make(map[string][]Listener)
	}
	e.listeners[typ] = append(e.listeners[typ], fn)
}

// ListenerCount reports how many listeners of type typ are registered on e.
func (e *Element) ListenerCount(typ string) int {
	return len(e.listeners[typ])
}

// Click dispatches a click on target. The event bubbles from target to the root.
func Click(target *Element) {
	Dispatch(target, "click")
}

// Dispatch fires an event of type typ on target and bubbles it up.
func Dispatch(target *Element, typ string) {
	ev := &Event{Type: typ, Target: target}
	for n := target; n != nil; n = n.Parent {
		ev.CurrentTarget = n
		// copy: a listener may re-render and register more
		ls := append([]Listener(nil), n.listeners[typ]...)
		for _, fn := range ls {
			fn(ev)
		}
	}
}

// Find returns the first descendant (or e itself) with the given ID.
func (e *Element) Find(id string) *Element {
	var found *Element
	e.walk(func(n *Element) {
		if found == nil && n.ID == id {
			found = n
		}
	})
	return found
}

// FindClass returns the first direct child of e with the given class.
func (e *Element) FindClass(class string) *Element {
	for _, c := range e.Children {
		if c.Class == class {
			return c
		}
	}
	return nil
}

func (e *Element) remove(c *Element) {
	for i, x := range e.Children {
		if x == c {
			e.Children = append(e.Children[:i], e.Children[i+1:]...)
			return
		}
	}
}

func (e *Element) walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.Children {
		c.walk(fn)
	}
}
