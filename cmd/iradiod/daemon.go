package main

import (
	"context"
	"log/slog"
	"time"
)

// ============================================================================
// Central Daemon Loop
// ============================================================================
//
// Design rules enforced here:
//   - The reducer performs no I/O and computes: next state + commands + broadcasts.
//   - The daemon loop is the only place that executes side effects
//     (player calls, panel writes, knob reads).
//   - Effect results are turned into Events and fed back into the reducer.
//   - Broadcasts are forwarded to the state websocket hub without blocking.
//
// An explicit event queue and command queue avoid nested/re-entrant execution.
// ============================================================================

// runDaemon is the main daemon loop that:
//   - Receives Events from multiple sources (input devices, IPC, player callbacks)
//   - Emits Tick events on a fixed cadence
//   - Reduces events into (state, commands, broadcasts)
//   - Executes commands against the collaborators and feeds observations back
//
// Shutdown semantics:
//   - Exits when ctx is canceled
//   - Exits cleanly when the events channel is closed
func runDaemon(
	ctx context.Context,
	events <-chan Event,
	player PlayerClientInterface,
	display Display,
	knob KnobReader,
	cfg ReducerConfig,
	state *DaemonState,
	updateHz int,
	broadcasts chan<- StateBroadcast,
	logger *slog.Logger,
) {
	// Guard: reducer-driven daemon expects a state container.
	if state == nil {
		logger.Error("daemon state is nil")
		return
	}

	// Configure tick cadence. time.NewTicker panics on a non-positive
	// interval, so an unset or bogus rate falls back to the default.
	if updateHz <= 0 {
		logger.Warn("invalid update rate, using default", "update_hz", updateHz, "default", defaultUpdateHz)
		updateHz = defaultUpdateHz
	}
	updateInterval := time.Second / time.Duration(updateHz)
	ticker := time.NewTicker(updateInterval)
	defer ticker.Stop()

	lastTick := time.Now()

	// Explicit queues:
	// - eventQueue holds events awaiting reduction
	// - cmdQueue holds commands awaiting execution
	var eventQueue []Event
	var cmdQueue []Command

	enqueueEvent := func(ev Event) {
		eventQueue = append(eventQueue, ev)
	}
	enqueueCommands := func(cmds []Command) {
		if len(cmds) == 0 {
			return
		}
		cmdQueue = append(cmdQueue, cmds...)
	}
	publishBroadcasts := func(bcasts []StateBroadcast) {
		if broadcasts == nil {
			return
		}
		for _, b := range bcasts {
			select {
			case broadcasts <- b:
			default:
				logger.Warn("broadcast channel full, dropping state broadcast")
			}
		}
	}

	// Reduce all queued events, enqueuing any resulting commands.
	flushEvents := func() {
		for len(eventQueue) > 0 {
			ev := eventQueue[0]
			eventQueue = eventQueue[1:]

			rr := Reduce(state, ev, cfg)
			if rr.State != nil {
				state = rr.State
			}
			enqueueCommands(rr.Commands)
			publishBroadcasts(rr.Broadcasts)
		}
	}

	// Execute all queued commands, enqueuing observation events.
	flushCommands := func() {
		for len(cmdQueue) > 0 {
			cmd := cmdQueue[0]
			cmdQueue = cmdQueue[1:]

			runEffect(player, display, knob, cmd, logger, func(obs Event) {
				enqueueEvent(obs)
			})

			// Observations should be reduced promptly to keep state coherent and
			// allow the reducer to emit follow-up commands (if any).
			flushEvents()
		}
	}

	// Main loop
	for {
		select {
		case <-ctx.Done():
			logger.Info("daemon stopping (context canceled)")
			return

		case ev, ok := <-events:
			if !ok {
				logger.Info("daemon stopping (events channel closed)")
				return
			}
			// Snapshot requests carry their own reply channel; everything else
			// is a payload event and gets stamped on arrival.
			if _, isSnap := ev.(RequestStateSnapshot); isSnap {
				enqueueEvent(ev)
			} else {
				enqueueEvent(TimedEvent{Event: ev, At: time.Now()})
			}
			flushEvents()
			flushCommands()

		case now := <-ticker.C:
			dt := now.Sub(lastTick).Seconds()
			lastTick = now
			enqueueEvent(Tick{Now: now, Dt: dt})
			flushEvents()
			flushCommands()
		}
	}
}
