package counter

import (
	"testing"

	"github.com/jfyne/live"
)

func TestComponentEvent(t *testing.T) {
	c := New("counter", live.NewHandler(), func(*live.Socket) Props { return Props{} })
	if got := c.Event(EventIncrement); got != "counter--increment" {
		t.Error("unexpected scoped event", got)
	}
}

func TestComponentRender(t *testing.T) {
	c := New("basket", live.NewHandler(), func(*live.Socket) Props { return Props{} })
	b := findButton(t, render(t, c.Render(Props{Count: 12})))
	if text(b) != "12" {
		t.Error("unexpected button text", text(b))
	}
	var click string
	for _, a := range b.Attr {
		if a.Key == "live-click" {
			click = a.Val
		}
	}
	if click != "basket--increment" {
		t.Error("button not wired to scoped event, got", click)
	}
}

func TestComponentIncrement(t *testing.T) {
	var (
		asked int
		calls []int
	)
	c := New("counter", live.NewHandler(), func(*live.Socket) Props {
		asked++
		n := asked
		return Props{Count: n, HandleIncrement: func() { calls = append(calls, n) }}
	})

	for i := 0; i < 3; i++ {
		c.increment(nil)
	}

	if asked != 3 {
		t.Errorf("props requested %d times, want 3", asked)
	}
	if len(calls) != 3 || calls[0] != 1 || calls[1] != 2 || calls[2] != 3 {
		t.Errorf("unexpected increments %v", calls)
	}
}
