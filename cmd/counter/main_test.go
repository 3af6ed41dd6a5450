package main

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"
)

func TestServeStopsEngineAfterShutdown(t *testing.T) {
	engineCtx, stopEngine := context.WithCancel(context.Background())
	defer stopEngine()

	inHandler := make(chan struct{})
	release := make(chan struct{})
	during := make(chan error, 1)
	srv := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			close(inHandler)
			<-release
			during <- engineCtx.Err()
			w.WriteHeader(http.StatusOK)
		}),
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, signal := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, srv, ln, stopEngine)
	}()
	go func() {
		res, err := http.Get("http://" + ln.Addr().String())
		if err == nil {
			res.Body.Close()
		}
	}()

	select {
	case <-inHandler:
	case <-time.After(5 * time.Second):
		t.Fatal("request never reached the handler")
	}

	// Shutdown is now waiting on the open request.
	signal()
	time.Sleep(50 * time.Millisecond)
	if engineCtx.Err() != nil {
		t.Fatal("engine stopped before the server drained")
	}
	close(release)

	select {
	case err := <-done:
		if err != nil {
			t.Fatal("unexpected serve error", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return")
	}
	if err := <-during; err != nil {
		t.Error("engine context cancelled while a request was in flight", err)
	}
	if engineCtx.Err() == nil {
		t.Error("engine context still running after shutdown")
	}
}
