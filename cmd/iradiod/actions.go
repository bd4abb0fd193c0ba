package main

// ============================================================================
// Action Types
// ============================================================================
// Actions represent intent from various sources (panel buttons, IPC, UI).
// The daemon loop wraps them in TimedEvent and feeds them to the reducer.
// ============================================================================

// Action is a marker interface for all daemon commands.
//
// NOTE: Actions also implement the reducer's Event marker so they can be
// reduced directly (TimedEvent supplies the timestamp, payloads stay clean).
type Action interface {
	eventMarker()
}

// ConnectCurrent requests a (re)connect to the currently selected station.
type ConnectCurrent struct{}

func (ConnectCurrent) eventMarker() {}

// SelectStation moves the station cursor to an absolute index.
type SelectStation struct {
	Index int `json:"index"`
}

func (SelectStation) eventMarker() {}

// NextStation moves the station cursor forward with wraparound.
type NextStation struct{}

func (NextStation) eventMarker() {}

// PrevStation moves the station cursor backward with wraparound.
type PrevStation struct{}

func (PrevStation) eventMarker() {}
