package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jfyne/live"
	g "github.com/maragudk/gomponents"
	c "github.com/maragudk/gomponents/components"
	h "github.com/maragudk/gomponents/html"
)

// render the whole page around the counter button.
func (a *host) render(_ context.Context, rc *live.RenderContext) (io.Reader, error) {
	m, ok := rc.Assigns.(*Model)
	if !ok {
		slog.Error("render", "err", ErrNoModel, "assigns", fmt.Sprintf("%T", rc.Assigns))
		return nil, ErrNoModel
	}

	var buf bytes.Buffer
	if err := a.page(m).Render(&buf); err != nil {
		return nil, fmt.Errorf("could not render page: %w", err)
	}
	return &buf, nil
}

func (a *host) page(m *Model) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:    a.cfg.Title,
		Language: "en",
		Head: []g.Node{
			h.StyleEl(h.Type("text/css"),
				g.Raw(`body {font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; }`),
			),
		},
		Body: []g.Node{
			h.H1(g.Text(a.cfg.Title)),
			h.Div(h.ID("counter"),
				a.button.Render(a.props(m, nil)),
			),
			h.Script(h.Src("/live.js")),
		},
	})
}
