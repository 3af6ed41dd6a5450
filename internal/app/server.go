package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jfyne/live"
	"github.com/rezbow/counter/internal/config"
	"golang.org/x/time/rate"
)

// NewEngine serves the handler with the broadcast limits from the config.
func NewEngine(ctx context.Context, cfg config.Config, h *live.Handler) *live.Engine {
	return live.NewHttpHandler(ctx, h, withBroadcastLimit(cfg.BroadcastInterval, cfg.BroadcastBurst))
}

// withBroadcastLimit replaces the engines broadcast limiter.
func withBroadcastLimit(interval time.Duration, burst int) live.EngineConfig {
	return func(e *live.Engine) error {
		if burst < 1 {
			return fmt.Errorf("broadcast burst must be at least 1, got %d", burst)
		}
		e.BroadcastLimiter = rate.NewLimiter(rate.Every(interval), burst)
		return nil
	}
}

// Routes for the counter server.
func Routes(e *live.Engine) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", e)
	mux.Handle("/live.js", live.Javascript{})
	mux.Handle("/auto.js.map", live.JavascriptMap{})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}
