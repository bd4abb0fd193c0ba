package main

import (
	"log/slog"
	"time"
)

// runEffect executes a single reducer-emitted Command (side effect) against
// the external collaborators (player, panel, knob) and emits observation
// Events via onEvent.
//
// Design rules:
//   - This function is allowed to perform I/O.
//   - It must never call Reduce() directly; it only emits Events to be reduced
//     by the daemon loop.
//   - The daemon loop owns sequencing: Reduce -> Commands -> runEffect -> Events -> Reduce.
func runEffect(
	player PlayerClientInterface,
	display Display,
	knob KnobReader,
	cmd Command,
	logger *slog.Logger,
	onEvent func(Event),
) {
	if onEvent == nil {
		// No place to report observations/errors; nothing sensible to do.
		return
	}

	now := time.Now()

	switch c := cmd.(type) {
	case CmdServicePlayer:
		if player == nil {
			onEvent(CommandFailed{Command: cmd, Err: errNoPlayer{}, At: now})
			return
		}
		player.Service()

	case CmdReadKnob:
		if knob == nil {
			onEvent(CommandFailed{Command: cmd, Err: errNoKnob{}, At: now})
			return
		}
		raw, err := knob.ReadRaw()
		if err != nil {
			logger.Warn("knob read failed", "error", err)
			onEvent(CommandFailed{Command: cmd, Err: err, At: now})
			return
		}
		onEvent(KnobSampleObserved{Raw: raw, At: now})

	case CmdSetPlayerVolume:
		if player == nil {
			onEvent(CommandFailed{Command: cmd, Err: errNoPlayer{}, At: now})
			return
		}
		if err := player.SetVolume(c.Level); err != nil {
			logger.Error("player SetVolume failed", "error", err, "level", c.Level)
			onEvent(CommandFailed{Command: cmd, Err: err, At: now})
			return
		}

	case CmdConnect:
		if player == nil {
			onEvent(CommandFailed{Command: cmd, Err: errNoPlayer{}, At: now})
			return
		}
		ok, err := player.Connect(c.URL)
		if err != nil {
			logger.Error("player Connect failed", "error", err, "url", c.URL)
			onEvent(CommandFailed{Command: cmd, Err: err, At: now})
			return
		}
		// A clean false is not an error: logged, fed back, never retried here.
		logger.Debug("player connect", "url", c.URL, "ok", ok)
		onEvent(PlayerConnectResult{URL: c.URL, OK: ok, At: now})

	case CmdShowLine:
		if display == nil {
			return
		}
		if err := display.SetText(c.Text, c.Row); err != nil {
			// Panel writes are fire-and-forget.
			logger.Debug("panel write failed", "error", err, "row", c.Row)
		}

	case CmdPublishStateSnapshot:
		// Deliver reducer-produced snapshot to the requester.
		// This keeps the reducer pure by moving the channel send into the effects layer.
		if c.Reply == nil {
			logger.Warn("state snapshot requested with nil reply channel")
			return
		}

		// Never block the effects stage indefinitely.
		select {
		case c.Reply <- c.Snapshot:
			// delivered
		default:
			logger.Warn("state snapshot reply channel not ready; dropping snapshot")
		}

	default:
		// Unknown command: record failure so reducer can react (if desired).
		logger.Warn("unknown command type", "command", cmd.String())
		onEvent(CommandFailed{
			Command: cmd,
			Err:     errUnknownCommand{cmd: cmd},
			At:      now,
		})
	}
}

// errNoPlayer indicates the daemon was asked to execute a command without a player client.
type errNoPlayer struct{}

func (errNoPlayer) Error() string { return "no player client" }

// errNoKnob indicates the daemon was asked to read the knob without a reader.
type errNoKnob struct{}

func (errNoKnob) Error() string { return "no knob reader" }

type errUnknownCommand struct {
	cmd Command
}

func (e errUnknownCommand) Error() string { return "unknown command: " + e.cmd.String() }
