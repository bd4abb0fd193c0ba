package main

import "fmt"

// ==============================
// Commands (side effects)
// ==============================

// Command represents an external side effect to be executed by the daemon loop:
// player websocket calls, panel writes, and knob reads.
type Command interface {
	commandMarker()
	String() string
}

// CmdServicePlayer drains the player's queued notifications.
// Issued once per tick so metadata callbacks run on the daemon goroutine.
type CmdServicePlayer struct{}

func (CmdServicePlayer) commandMarker() {}
func (CmdServicePlayer) String() string { return "CmdServicePlayer()" }

// CmdReadKnob samples the volume knob once.
// The effects layer answers with KnobSampleObserved.
type CmdReadKnob struct{}

func (CmdReadKnob) commandMarker() {}
func (CmdReadKnob) String() string { return "CmdReadKnob()" }

// CmdSetPlayerVolume applies a committed level to the player.
type CmdSetPlayerVolume struct {
	Level int
}

func (CmdSetPlayerVolume) commandMarker() {}
func (c CmdSetPlayerVolume) String() string {
	return fmt.Sprintf("CmdSetPlayerVolume(level=%d)", c.Level)
}

// CmdConnect instructs the player to start streaming from a URL.
type CmdConnect struct {
	URL string
}

func (CmdConnect) commandMarker() {}
func (c CmdConnect) String() string { return fmt.Sprintf("CmdConnect(url=%s)", c.URL) }

// CmdShowLine writes one line of text to a front panel row.
type CmdShowLine struct {
	Row  int
	Text string
}

func (CmdShowLine) commandMarker() {}
func (c CmdShowLine) String() string { return fmt.Sprintf("CmdShowLine(row=%d, text=%q)", c.Row, c.Text) }

// CmdPublishStateSnapshot delivers a reducer-produced snapshot to a requester.
// Keeps the reducer pure by moving the channel send into the effects layer.
type CmdPublishStateSnapshot struct {
	Snapshot StateSnapshot
	Reply    chan<- StateSnapshot
}

func (CmdPublishStateSnapshot) commandMarker() {}
func (CmdPublishStateSnapshot) String() string { return "CmdPublishStateSnapshot()" }
