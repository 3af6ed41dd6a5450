package counter

import (
	"context"

	"github.com/jfyne/live"
	g "github.com/maragudk/gomponents"
)

// PropsFunc is supplied by the parent and returns the current props for a
// socket. It is called on every click so the counter never holds on to a
// count or a handler.
type PropsFunc func(s *live.Socket) Props

// Component binds a counter button to a live handler.
//
// Remember to use a unique ID when a page has more than one counter, the
// click event is scoped by it.
type Component struct {
	// ID identifies the counter on the page. This should be stable so that
	// events coming back from the socket find the right counter.
	ID string

	// Handler a reference to the host handler.
	Handler *live.Handler

	props PropsFunc
}

// New creates a counter and registers its click event on the handler.
func New(ID string, h *live.Handler, props PropsFunc) *Component {
	c := &Component{
		ID:      ID,
		Handler: h,
		props:   props,
	}
	c.Handler.HandleEvent(c.Event(EventIncrement), func(_ context.Context, s *live.Socket, _ live.Params) (any, error) {
		c.increment(s)
		// The parent owns the socket state, hand it back untouched.
		return s.Assigns(), nil
	})
	return c
}

// Event scopes an event string so that it applies to this counter only.
func (c *Component) Event(event string) string {
	return c.ID + "--" + event
}

// Render the counter for the given props.
func (c *Component) Render(p Props) g.Node {
	return Button(c.Event(EventIncrement), p)
}

func (c *Component) increment(s *live.Socket) {
	Activate(c.props(s))
}
