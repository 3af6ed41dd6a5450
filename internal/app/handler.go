// Package app is the parent of the counter button. It owns the count for each
// socket, decides what an increment means and renders the page around the
// button.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jfyne/live"
	"github.com/rezbow/counter"
	"github.com/rezbow/counter/internal/config"
	"github.com/rezbow/counter/internal/tally"
)

const (
	// Topic the pubsub topic shared counters broadcast on.
	Topic = "counter-app"

	countChanged = "count-changed"
)

// Model the state we are tracking per socket.
type Model struct {
	Count int
}

type host struct {
	cfg    config.Config
	shared *tally.Tally
	button *counter.Component
}

// NewHandler creates the live handler for the counter page. When shared is
// not nil every socket displays and increments the same count.
func NewHandler(cfg config.Config, shared *tally.Tally) *live.Handler {
	a := &host{cfg: cfg, shared: shared}

	h := live.NewHandler()
	a.button = counter.New("counter", h, a.propsFor)

	h.MountHandler = a.mount
	h.RenderHandler = a.render
	h.ErrorHandler = func(ctx context.Context, err error) {
		slog.Error("counter page", "err", err)
		if w := live.Writer(ctx); w != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(err.Error()))
		}
	}
	h.UnmountHandler = func(s *live.Socket) error {
		slog.Debug("socket closed", "socket", s.ID())
		return nil
	}

	// Counts broadcast by any socket, on any node.
	h.HandleSelf(countChanged, func(ctx context.Context, s *live.Socket, d any) (any, error) {
		m := a.model(s)
		v, err := countFrom(d)
		if err != nil {
			return m, err
		}
		if a.shared == nil {
			m.Count = v
			return m, nil
		}
		// Echoes can arrive out of order, keep the highest count seen.
		m.Count = max(m.Count, a.shared.Raise(v))
		return m, nil
	})

	return h
}

func (a *host) mount(ctx context.Context, s *live.Socket) (any, error) {
	m := a.model(s)
	if a.shared != nil {
		m.Count = a.shared.Load()
	}
	slog.Debug("mount", "socket", s.ID(), "connected", s.Connected(), "count", m.Count)
	return m, nil
}

// model returns the sockets model, creating it if needed.
func (a *host) model(s *live.Socket) *Model {
	m, ok := s.Assigns().(*Model)
	if !ok {
		return &Model{Count: a.cfg.Start}
	}
	return m
}

// propsFor is called by the counter whenever it is clicked.
func (a *host) propsFor(s *live.Socket) counter.Props {
	return a.props(a.model(s), func(v int) {
		if err := s.Broadcast(countChanged, v); err != nil {
			slog.Error("count broadcast failed", "socket", s.ID(), "err", err)
		}
	})
}

// props builds the counter props for m. publish is only used in shared mode
// and may be nil.
func (a *host) props(m *Model, publish func(int)) counter.Props {
	return counter.Props{
		Count: m.Count,
		HandleIncrement: func() {
			if a.shared == nil {
				m.Count++
				return
			}
			m.Count = a.shared.Add(1)
			if publish != nil {
				publish(m.Count)
			}
		},
	}
}

// countFrom reads a broadcast count. Counts that travelled through a JSON
// transport arrive as float64.
func countFrom(d any) (int, error) {
	switch v := d.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	}
	return 0, fmt.Errorf("%w: %T", ErrBadCount, d)
}
