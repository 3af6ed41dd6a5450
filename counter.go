package counter

import (
	"strconv"

	g "github.com/maragudk/gomponents"
	h "github.com/maragudk/gomponents/html"
)

const (
	// ClassName is the class every counter button carries.
	ClassName = "counter-button"

	// EventIncrement is the unscoped name of the click event.
	EventIncrement = "increment"
)

// Props is everything a counter needs for one render pass. Both fields are
// owned by the parent and are built fresh on every render.
type Props struct {
	// Count is displayed as the button text.
	Count int

	// HandleIncrement is called once per click. The counter never stores it.
	HandleIncrement func()
}

// Button renders the counter as a button which fires event on click. The output
// only depends on its arguments, rendering never calls p.HandleIncrement.
func Button(event string, p Props) g.Node {
	return h.Button(
		h.Class(ClassName),
		g.Attr("live-click", event),
		g.Text(strconv.Itoa(p.Count)),
	)
}

// Activate handles a single click by calling the parents increment handler.
// A nil handler panics like any other nil func call.
func Activate(p Props) {
	p.HandleIncrement()
}
