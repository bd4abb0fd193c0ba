package main

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

// readFrame pops one marshaled frame off the hub's broadcast queue.
// The hub loop is intentionally not running in these tests.
func readFrame(t *testing.T, hub *Hub, timeout time.Duration) []byte {
	t.Helper()
	select {
	case msg := <-hub.broadcast:
		return msg
	case <-time.After(timeout):
		t.Fatalf("timeout waiting for broadcast frame")
		return nil
	}
}

func TestRunBroadcaster_CoalescesVolumeBursts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := newTestHub(t, 4, 8)
	src := make(chan StateBroadcast, 8)

	// Pre-fill a burst so the broadcaster drains it back-to-back: three volume
	// updates followed by a station change. Latest-wins means only level 3
	// survives, flushed right before the station frame.
	t0 := time.Unix(1000, 0).UTC()
	src <- BroadcastVolumeChanged{Level: 1, At: t0}
	src <- BroadcastVolumeChanged{Level: 2, At: t0}
	src <- BroadcastVolumeChanged{Level: 3, At: t0}
	src <- BroadcastStationChanged{Index: 1, Name: "FM4", At: t0}

	go RunBroadcaster(ctx, hub, src, testLogger())

	frame := readFrame(t, hub, time.Second)
	var env struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(frame, &env); err != nil {
		t.Fatalf("unmarshal frame: %v", err)
	}
	if env.Type != "volume_changed" {
		t.Fatalf("expected coalesced volume frame first, got %q", env.Type)
	}
	if !strings.Contains(string(env.Data), `"level":3`) {
		t.Errorf("expected latest volume level 3, got %s", env.Data)
	}

	frame = readFrame(t, hub, time.Second)
	if err := json.Unmarshal(frame, &env); err != nil {
		t.Fatalf("unmarshal frame: %v", err)
	}
	if env.Type != "station_changed" {
		t.Fatalf("expected station frame second, got %q", env.Type)
	}
}

func TestRunBroadcaster_FlushesVolumeAfterWindow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := newTestHub(t, 4, 8)
	src := make(chan StateBroadcast, 8)

	go RunBroadcaster(ctx, hub, src, testLogger())

	src <- BroadcastVolumeChanged{Level: 9, At: time.Unix(2000, 0).UTC()}

	// No other traffic: the coalescing timer must flush the update on its own.
	frame := readFrame(t, hub, time.Second)
	if !strings.Contains(string(frame), `"volume_changed"`) || !strings.Contains(string(frame), `"level":9`) {
		t.Errorf("expected flushed volume frame, got %s", frame)
	}
}
