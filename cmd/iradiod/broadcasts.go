package main

import "time"

// ==============================
// State broadcasts
// ==============================
// Broadcasts are reducer-emitted notifications for external observers
// (the state websocket hub). They never flow back into the reducer.

// StateBroadcast is a marker interface for reducer-emitted state notifications.
type StateBroadcast interface {
	broadcastMarker()
}

// BroadcastVolumeChanged is emitted when a debounced level commit changes the volume.
type BroadcastVolumeChanged struct {
	Level int
	At    time.Time
}

func (BroadcastVolumeChanged) broadcastMarker() {}

// BroadcastNowPlayingChanged is emitted when a parsed stream title changes.
type BroadcastNowPlayingChanged struct {
	Artist string
	Title  string
	At     time.Time
}

func (BroadcastNowPlayingChanged) broadcastMarker() {}

// BroadcastStationChanged is emitted when the station cursor moves.
type BroadcastStationChanged struct {
	Index int
	Name  string
	At    time.Time
}

func (BroadcastStationChanged) broadcastMarker() {}

// BroadcastPlayerChanged is emitted after a connect attempt completed.
type BroadcastPlayerChanged struct {
	URL       string
	Connected bool
	At        time.Time
}

func (BroadcastPlayerChanged) broadcastMarker() {}
