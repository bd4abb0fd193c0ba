package main

import "time"

// DaemonState is the top-level, daemon-owned state container.
//
// Goals:
//   - Keep all reducer-owned state in one place (pure reducer, no external mutation).
//   - Replace what a naive port would keep in globals (last applied volume,
//     debounce counter, display window start, player handle) with one struct
//     threaded through tick calls, so everything is unit-testable.
//   - Make it easy to publish a coherent snapshot to other clients (IPC/UI).
type DaemonState struct {
	// Volume is the knob debounce machine (applied level, stable count, window start).
	Volume VolumeDebounceState

	// Display is the status row reconciler state.
	Display DisplayReconcilerState

	// Stations is the configured station list plus the selection cursor.
	Stations StationListState

	// Player caches the outcome of the last connect attempt.
	Player PlayerState

	// NowPlaying caches the last parsed stream title.
	NowPlaying NowPlayingState
}

// DisplayReconcilerState owns the transient volume display window.
//
// WindowStart is the time of the last committed volume change. While the
// window is open the status row shows the volume bar; once it has elapsed the
// reconciler rewrites the greeting/clock line every tick. Level-triggered, so
// it is safe to evaluate on every Tick. time.Time carries a monotonic reading,
// so the comparison is immune to wall clock jumps.
type DisplayReconcilerState struct {
	WindowStart time.Time
}

// PlayerState is the daemon's cached view of the player connection.
// Observed state: updated only from PlayerConnectResult events.
type PlayerState struct {
	Connected bool
	URL       string
	Known     bool
	At        time.Time
}

// NowPlayingState caches the last artist/title split shown on the panel.
type NowPlayingState struct {
	Artist string
	Title  string
	Known  bool
	At     time.Time
}

// StateSnapshot is a coherent copy of the externally interesting state,
// safe to hand to other goroutines.
type StateSnapshot struct {
	VolumeLevel int `json:"volume_level"`

	StationIndex int    `json:"station_index"`
	StationName  string `json:"station_name"`

	Artist string `json:"artist"`
	Title  string `json:"title"`

	Connected bool `json:"connected"`
}

// Snapshot builds a StateSnapshot from the current state.
// This is intended to be called only by the daemon goroutine (single-owner).
func (s *DaemonState) Snapshot() StateSnapshot {
	snap := StateSnapshot{
		VolumeLevel:  s.Volume.Applied,
		StationIndex: s.Stations.Current,
		Artist:       s.NowPlaying.Artist,
		Title:        s.NowPlaying.Title,
		Connected:    s.Player.Connected,
	}
	if st, ok := s.Stations.CurrentStation(); ok {
		snap.StationName = st.Name
	}
	return snap
}

// SetObservedNowPlaying updates the cached artist/title split.
// This is intended to be called only by the daemon goroutine (single-owner).
func (s *DaemonState) SetObservedNowPlaying(artist, title string, now time.Time) {
	s.NowPlaying.Artist = artist
	s.NowPlaying.Title = title
	s.NowPlaying.Known = true
	s.NowPlaying.At = now
}

// SetObservedConnection updates the cached player connection state after a
// connect attempt. This is intended to be called only by the daemon goroutine
// (single-owner).
func (s *DaemonState) SetObservedConnection(url string, ok bool, now time.Time) {
	s.Player.Connected = ok
	s.Player.URL = url
	s.Player.Known = true
	s.Player.At = now
}
