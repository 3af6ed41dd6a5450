package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jfyne/live"
	"github.com/rezbow/counter/internal/app"
	"github.com/rezbow/counter/internal/config"
	"github.com/rezbow/counter/internal/tally"
	"github.com/rezbow/counter/internal/transport"
)

func main() {
	if err := run(); err != nil {
		slog.Error("counter", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var shared *tally.Tally
	if cfg.Shared {
		shared = tally.New(cfg.Start)
	}

	// The engine outlives the signal so open websockets can unregister
	// while the server drains.
	engineCtx, stopEngine := context.WithCancel(context.Background())
	defer stopEngine()
	e := app.NewEngine(engineCtx, cfg, app.NewHandler(cfg, shared))

	// Shared counters broadcast through the pubsub topic so that every node
	// sees the same count.
	if cfg.Shared {
		t, err := transport.Open(engineCtx, cfg.PubSubURL)
		if err != nil {
			return err
		}
		defer t.Close(context.Background())
		ps := live.NewPubSub(engineCtx, t)
		ps.Subscribe(app.Topic, e)
		slog.Info("shared counter", "pubsub", cfg.PubSubURL, "node", t.Node())
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: app.Routes(e),
	}
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("could not listen on %s: %w", cfg.Addr, err)
	}
	slog.Info("server", "link", fmt.Sprintf("http://localhost%s", cfg.Addr))
	return serve(ctx, srv, ln, stopEngine)
}

// serve runs srv on ln until ctx is done, then shuts it down. stopEngine is only
// called once the shutdown has returned.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, stopEngine context.CancelFunc) error {
	defer stopEngine()

	errs := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err, ok := <-errs:
		if ok {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	slog.Info("shutting down")
	return srv.Shutdown(shutdown)
}
