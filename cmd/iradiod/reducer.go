package main

import "time"

// This file implements the reducer-style architecture building blocks:
//
//   - Events: inputs to the reducer (ticks, knob samples, player observations, user actions)
//   - Commands: side effects requested by the reducer (player calls, panel writes, knob reads)
//   - Reduce(): computes next state + commands + broadcasts, without performing I/O
//
// The reducer must be pure. All controller state is embedded in DaemonState
// (the debounce machine, the display window, the station cursor), and the
// debounce itself is performed via the pure StepVolumeDebounce function.
//
// The daemon loop is responsible for executing Commands and feeding
// observations back as Events.

// ReducerConfig is the static tuning the reducer needs per call.
type ReducerConfig struct {
	// KnobRawMax is the top of the ADC range the knob reports.
	KnobRawMax int

	// DebounceThreshold is the number of consecutive differing polls
	// required before a level commits.
	DebounceThreshold int

	// Greeting is the fixed prefix of the default status line.
	Greeting string

	// DisplayWindow is how long the volume bar stays on the status row
	// after a commit.
	DisplayWindow time.Duration
}

// ReduceResult is the output of Reduce(): next state plus a set of Commands
// to execute and StateBroadcasts to fan out to external observers.
type ReduceResult struct {
	State      *DaemonState
	Commands   []Command
	Broadcasts []StateBroadcast
}

// Reduce is the pure reducer:
//
// Rules:
//   - Must not perform I/O
//   - Must not block
//   - Must not mutate anything outside the returned state
//
// The daemon loop must:
//   - execute Commands
//   - translate results into Events
//   - feed those Events back into Reduce()
func Reduce(s *DaemonState, e Event, cfg ReducerConfig) ReduceResult {
	if s == nil {
		s = &DaemonState{}
	}

	var cmds []Command
	var bcasts []StateBroadcast

	switch ev := e.(type) {
	case Tick:
		// Tick drives the player service call, the knob poll, and the
		// status row reconciliation, in that order.
		cmds = append(cmds, CmdServicePlayer{}, CmdReadKnob{})

		// Level-triggered reconcile: once the transient window has elapsed,
		// rewrite the default status line. Repeating the write every tick is
		// harmless and keeps the clock current.
		if ev.Now.Sub(s.Display.WindowStart) >= cfg.DisplayWindow {
			cmds = append(cmds, CmdShowLine{Row: rowStatus, Text: statusLine(cfg.Greeting, ev.Now)})
		}

	case KnobSampleObserved:
		level := MapRawToLevel(ev.Raw, cfg.KnobRawMax, maxVolume)

		next, committed := StepVolumeDebounce(s.Volume, level, ev.At, cfg.DebounceThreshold)
		s.Volume = next
		if committed {
			s.Display.WindowStart = next.LastChangeAt

			cmds = append(cmds,
				CmdSetPlayerVolume{Level: next.Applied},
				CmdShowLine{Row: rowStatus, Text: VolumeBlocks(next.Applied)},
			)
			bcasts = append(bcasts, BroadcastVolumeChanged{Level: next.Applied, At: ev.At})
		}

	case TimedEvent:
		switch a := ev.Event.(type) {
		case ConnectCurrent:
			if st, ok := s.Stations.CurrentStation(); ok {
				cmds = append(cmds,
					CmdShowLine{Row: rowStation, Text: st.Name},
					CmdConnect{URL: st.URL},
				)
			}

		case SelectStation:
			if s.Stations.Select(a.Index) {
				cmds, bcasts = stationSwitched(s, cmds, bcasts, ev.At)
			}

		case NextStation:
			if s.Stations.Advance(1) {
				cmds, bcasts = stationSwitched(s, cmds, bcasts, ev.At)
			}

		case PrevStation:
			if s.Stations.Advance(-1) {
				cmds, bcasts = stationSwitched(s, cmds, bcasts, ev.At)
			}

		case StreamTitleSeen:
			artist, title := SplitStreamTitle(a.Title)
			s.SetObservedNowPlaying(artist, title, ev.At)

			// Both rows are written unconditionally, even when a segment
			// came out empty, so stale text never lingers.
			cmds = append(cmds,
				CmdShowLine{Row: rowArtist, Text: artist},
				CmdShowLine{Row: rowTitle, Text: title},
			)
			bcasts = append(bcasts, BroadcastNowPlayingChanged{Artist: artist, Title: title, At: ev.At})

		case StationNameSeen:
			// The announced name is ignored; the configured name is authoritative.
			if st, ok := s.Stations.CurrentStation(); ok {
				cmds = append(cmds, CmdShowLine{Row: rowStation, Text: st.Name})
			}

		default:
			// no-op
		}

	case PlayerConnectResult:
		s.SetObservedConnection(ev.URL, ev.OK, ev.At)
		bcasts = append(bcasts, BroadcastPlayerChanged{URL: ev.URL, Connected: ev.OK, At: ev.At})

	case RequestStateSnapshot:
		cmds = append(cmds, CmdPublishStateSnapshot{Snapshot: s.Snapshot(), Reply: ev.Reply})

	case CommandFailed:
		// Keep state as-is. The effects layer already logged the failure.
		_ = ev

	default:
		// Unknown event type: no-op.
	}

	return ReduceResult{
		State:      s,
		Commands:   cmds,
		Broadcasts: bcasts,
	}
}

// stationSwitched emits the panel write, connect command, and broadcast that
// follow any station cursor move.
func stationSwitched(s *DaemonState, cmds []Command, bcasts []StateBroadcast, at time.Time) ([]Command, []StateBroadcast) {
	st, ok := s.Stations.CurrentStation()
	if !ok {
		return cmds, bcasts
	}

	cmds = append(cmds,
		CmdShowLine{Row: rowStation, Text: st.Name},
		CmdConnect{URL: st.URL},
	)
	bcasts = append(bcasts, BroadcastStationChanged{Index: s.Stations.Current, Name: st.Name, At: at})
	return cmds, bcasts
}
