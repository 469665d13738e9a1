package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildersAndTextContent(t *testing.T) {
	ul := New("ul")
	li := New("li").SetID("0").SetText("( ) milk")
	btn := New("button").SetClass("deleteButton").SetText("Delete")
	ul.Append(li.Append(btn))

	require.Len(t, ul.Children, 1)
	assert.Same(t, ul, li.Parent)
	assert.Same(t, li, btn.Parent)
	assert.Equal(t, "( ) milkDelete", li.TextContent())
	assert.Same(t, li, ul.Find("0"))
	assert.Same(t, btn, li.FindClass("deleteButton"))
	assert.Nil(t, li.FindClass("nope"))
}

func TestAppendReparents(t *testing.T) {
	a, b := New("ul"), New("ul")
	li := New("li")
	a.Append(li)
	b.Append(li)

	assert.Empty(t, a.Children)
	assert.Same(t, b, li.Parent)
}

func TestClickBubbles(t *testing.T) {
	ul := New("ul")
	li := New("li")
	btn := New("button")
	ul.Append(li.Append(btn))

	var seen []string
	ul.AddEventListener("click", func(ev *Event) {
		assert.Same(t, btn, ev.Target)
		assert.Same(t, ul, ev.CurrentTarget)
		seen = append(seen, "ul")
	})
	li.AddEventListener("click", func(ev *Event) { seen = append(seen, "li") })

	Click(btn)
	assert.Equal(t, []string{"li", "ul"}, seen)
}

func TestClearKeepsOwnListeners(t *testing.T) {
	ul := New("ul")
	ul.AddEventListener("click", func(*Event) {})
	ul.Append(New("li"), New("li"))

	ul.Clear()
	assert.Empty(t, ul.Children)
	assert.Equal(t, 1, ul.ListenerCount("click"))
	assert.Equal(t, 0, ul.ListenerCount("keydown"))
}

func TestDetachedChildDoesNotBubble(t *testing.T) {
	ul := New("ul")
	li := New("li")
	ul.Append(li)
	calls := 0
	ul.AddEventListener("click", func(*Event) { calls++ })

	ul.Clear()
	Click(li)
	assert.Equal(t, 0, calls)
}
