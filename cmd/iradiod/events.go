package main

import (
	"encoding/json"
	"fmt"
	"time"
)

// ==============================
// Events
// ==============================

// Event is the input to the reducer.
// It can be a user Action, a Tick, or an observation fed back by the effects layer.
type Event interface {
	eventMarker()
}

// Tick is emitted by the daemon loop at a fixed cadence.
// Dt is wall-clock delta in seconds between ticks.
type Tick struct {
	Now time.Time
	Dt  float64
}

func (Tick) eventMarker() {}

// TimedEvent wraps a payload event with the time it entered the daemon loop.
// Payload types stay clean for IPC; the daemon assigns timestamps on arrival.
type TimedEvent struct {
	Event Event
	At    time.Time
}

func (TimedEvent) eventMarker() {}

// KnobSampleObserved is emitted by the effects layer after a knob read.
type KnobSampleObserved struct {
	Raw int
	At  time.Time
}

func (KnobSampleObserved) eventMarker() {}

// StreamTitleSeen carries a raw stream title announced by the player.
type StreamTitleSeen struct {
	Title string `json:"title"`
}

func (StreamTitleSeen) eventMarker() {}

// StationNameSeen carries a station name announced in-stream by the player.
// The reducer ignores the announced text and shows the configured name instead.
type StationNameSeen struct {
	Name string `json:"name"`
}

func (StationNameSeen) eventMarker() {}

// PlayerConnectResult is emitted after a connect attempt completed.
// OK mirrors the boolean the player reports; there is no retry at this layer.
type PlayerConnectResult struct {
	URL string
	OK  bool
	At  time.Time
}

func (PlayerConnectResult) eventMarker() {}

// CommandFailed is emitted when executing a Command fails.
type CommandFailed struct {
	Command Command
	Err     error
	At      time.Time
}

func (CommandFailed) eventMarker() {}

// RequestStateSnapshot asks the reducer to publish a coherent state snapshot.
// Used by the state websocket handler for the state_init message on connect.
type RequestStateSnapshot struct {
	Reply chan<- StateSnapshot
}

func (RequestStateSnapshot) eventMarker() {}

// ==============================
// JSON envelope (IPC wire format)
// ==============================

// EventEnvelope wraps an event with a type discriminator for JSON marshaling.
// Since Go doesn't have union types, we use a type discriminator.
type EventEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// UnmarshalEvent deserializes a JSON event envelope into a concrete Event.
// Only payload events are accepted here; timestamps are assigned by the daemon.
func UnmarshalEvent(data []byte) (Event, error) {
	var env EventEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}

	switch env.Type {
	case "connect_current":
		return ConnectCurrent{}, nil

	case "select_station":
		var a SelectStation
		if err := json.Unmarshal(env.Data, &a); err != nil {
			return nil, fmt.Errorf("unmarshal SelectStation: %w", err)
		}
		return a, nil

	case "next_station":
		return NextStation{}, nil

	case "prev_station":
		return PrevStation{}, nil

	case "stream_title_seen":
		var e StreamTitleSeen
		if err := json.Unmarshal(env.Data, &e); err != nil {
			return nil, fmt.Errorf("unmarshal StreamTitleSeen: %w", err)
		}
		return e, nil

	case "station_name_seen":
		var e StationNameSeen
		if err := json.Unmarshal(env.Data, &e); err != nil {
			return nil, fmt.Errorf("unmarshal StationNameSeen: %w", err)
		}
		return e, nil

	default:
		return nil, fmt.Errorf("unknown event type: %q", env.Type)
	}
}

// MarshalEvent serializes an Event into a JSON envelope with type discriminator.
func MarshalEvent(e Event) ([]byte, error) {
	var env EventEnvelope

	switch e := e.(type) {
	case ConnectCurrent:
		env.Type = "connect_current"

	case SelectStation:
		env.Type = "select_station"
		data, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("marshal SelectStation: %w", err)
		}
		env.Data = data

	case NextStation:
		env.Type = "next_station"

	case PrevStation:
		env.Type = "prev_station"

	case StreamTitleSeen:
		env.Type = "stream_title_seen"
		data, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("marshal StreamTitleSeen: %w", err)
		}
		env.Data = data

	case StationNameSeen:
		env.Type = "station_name_seen"
		data, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("marshal StationNameSeen: %w", err)
		}
		env.Data = data

	default:
		return nil, fmt.Errorf("unsupported event type: %T", e)
	}

	return json.Marshal(env)
}
