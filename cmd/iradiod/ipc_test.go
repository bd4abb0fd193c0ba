package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestIPCServer_RoundTrip(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	socketPath := filepath.Join(t.TempDir(), "iradiod.sock")
	events := make(chan Event, 8)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := runIPCServer(ctx, socketPath, events, testLogger()); err != nil {
			t.Errorf("ipc server error: %v", err)
		}
	}()

	// Wait for the listener to come up.
	waitUntil(t, 2*time.Second, func() bool {
		return SendIPCEvent(socketPath, NextStation{}) == nil
	}, "ipc server never accepted a connection")

	select {
	case ev := <-events:
		if _, ok := ev.(NextStation); !ok {
			t.Fatalf("expected NextStation on the event bus, got %T", ev)
		}
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting for event from ipc server")
	}

	// A payload event survives the wire.
	if err := SendIPCEvent(socketPath, SelectStation{Index: 2}); err != nil {
		t.Fatalf("send select_station: %v", err)
	}
	select {
	case ev := <-events:
		sel, ok := ev.(SelectStation)
		if !ok || sel.Index != 2 {
			t.Fatalf("expected SelectStation index 2, got %v", ev)
		}
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting for event from ipc server")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting for ipc server to stop")
	}
}
