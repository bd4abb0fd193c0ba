package main

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockKnob returns a fixed raw reading that tests can change at runtime.
type mockKnob struct {
	mu  sync.Mutex
	raw int
}

func (m *mockKnob) ReadRaw() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.raw, nil
}

func (m *mockKnob) Close() error { return nil }

func (m *mockKnob) setRaw(raw int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = raw
}

// snapshotFromDaemon round-trips a snapshot request through the running daemon.
// Returns the snapshot the reducer published, or fails the test on timeout.
func snapshotFromDaemon(t *testing.T, events chan<- Event) StateSnapshot {
	t.Helper()
	reply := make(chan StateSnapshot, 1)

	select {
	case events <- RequestStateSnapshot{Reply: reply}:
	case <-time.After(time.Second):
		t.Fatalf("timeout sending snapshot request")
	}

	select {
	case snap := <-reply:
		return snap
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting for snapshot reply")
	}
	return StateSnapshot{}
}

func TestRunDaemon_KnobCommitEndToEnd(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	player := newMockPlayerClient()
	display := &mockDisplay{}
	knob := &mockKnob{raw: 0}

	state := &DaemonState{Stations: testStations()}
	cfg := testReducerConfig()

	events := make(chan Event, 64)
	broadcasts := make(chan StateBroadcast, 64)

	// 500 Hz keeps the 25-poll debounce under ~60ms of test time.
	done := make(chan struct{})
	go func() {
		defer close(done)
		runDaemon(ctx, events, player, display, knob, cfg, state, 500, broadcasts, testLogger())
	}()

	// Knob at rest: the daemon must poll but never commit.
	time.Sleep(100 * time.Millisecond)
	if calls := player.setVolCallsCopy(); len(calls) != 0 {
		t.Fatalf("unexpected SetVolume calls for resting knob: %v", calls)
	}

	// Turn the knob to full scale; raw 1023 maps to level 20.
	knob.setRaw(1023)

	waitUntil(t, 2*time.Second, func() bool {
		return snapshotFromDaemon(t, events).VolumeLevel == 20
	}, "daemon never committed the new knob level")

	// Exactly one committed change reaches the player and the broadcast channel.
	if calls := player.setVolCallsCopy(); len(calls) != 1 || calls[0] != 20 {
		t.Errorf("expected one SetVolume(20) call, got %v", calls)
	}

	select {
	case b := <-broadcasts:
		bc, ok := b.(BroadcastVolumeChanged)
		if !ok || bc.Level != 20 {
			t.Errorf("expected BroadcastVolumeChanged level 20, got %v", b)
		}
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting for volume broadcast")
	}

	// The status row shows the bar right after the commit.
	if text, ok := display.lastWrite(rowStatus); !ok || text != VolumeBlocks(20) {
		t.Errorf("expected volume bar on status row, got %q", text)
	}

	if player.serviceCount() == 0 {
		t.Errorf("expected the daemon to service the player every tick")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting for daemon to stop")
	}
}

func TestRunDaemon_StationSwitchViaEventBus(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	player := newMockPlayerClient()
	display := &mockDisplay{}
	knob := &mockKnob{raw: 0}

	state := &DaemonState{Stations: testStations()}
	cfg := testReducerConfig()

	events := make(chan Event, 64)

	done := make(chan struct{})
	go func() {
		defer close(done)
		runDaemon(ctx, events, player, display, knob, cfg, state, 200, nil, testLogger())
	}()

	events <- NextStation{}

	waitUntil(t, 2*time.Second, func() bool {
		return snapshotFromDaemon(t, events).StationIndex == 1
	}, "daemon never advanced the station cursor")

	snap := snapshotFromDaemon(t, events)
	if snap.StationName != "FM4" {
		t.Errorf("expected station FM4, got %q", snap.StationName)
	}

	// The switch connected the new station and updated the panel.
	waitUntil(t, time.Second, func() bool {
		calls := player.connectCallsCopy()
		return len(calls) == 1 && calls[0] == "http://fm4.example/stream.mp3"
	}, "daemon never connected the new station")

	if text, ok := display.lastWrite(rowStation); !ok || text != "FM4" {
		t.Errorf("expected FM4 on station row, got %q", text)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting for daemon to stop")
	}
}

func TestRunDaemon_ZeroUpdateHzFallsBackToDefault(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	player := newMockPlayerClient()
	display := &mockDisplay{}
	knob := &mockKnob{raw: 0}

	events := make(chan Event, 64)

	// An unset rate must not panic the ticker setup; the daemon falls back
	// to the default cadence and keeps ticking.
	done := make(chan struct{})
	go func() {
		defer close(done)
		runDaemon(ctx, events, player, display, knob, testReducerConfig(), &DaemonState{Stations: testStations()}, 0, nil, testLogger())
	}()

	waitUntil(t, 2*time.Second, func() bool {
		return player.serviceCount() > 0
	}, "daemon never ticked with a zero update rate")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting for daemon to stop")
	}
}

func TestRunDaemon_StopsWhenEventsChannelCloses(t *testing.T) {
	player := newMockPlayerClient()
	display := &mockDisplay{}
	knob := &mockKnob{raw: 0}

	events := make(chan Event)

	done := make(chan struct{})
	go func() {
		defer close(done)
		runDaemon(context.Background(), events, player, display, knob, testReducerConfig(), &DaemonState{}, 200, nil, testLogger())
	}()

	close(events)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("daemon did not stop when events channel closed")
	}
}
