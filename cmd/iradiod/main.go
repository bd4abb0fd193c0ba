package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const version = "1.0.0"

func printVersion() {
	fmt.Printf("iradiod v%s\n", version)
	fmt.Println("Internet radio appliance daemon: volume knob, panel display and station control")
}

func printUsage() {
	printVersion()
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  iradiod [OPTIONS]")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Daemon that polls an analog volume knob (Linux IIO ADC), drives the")
	fmt.Println("  streaming player over WebSocket, renders status and stream metadata on")
	fmt.Println("  the front panel, and switches stations on button presses or IPC events.")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -config string")
	fmt.Println("        YAML config file (flags below override the file)")
	fmt.Println()
	fmt.Println("  -knob-raw-path string")
	fmt.Println("        IIO sysfs attribute for the volume knob ADC channel")
	fmt.Println("        (default \"/sys/bus/iio/devices/iio:device0/in_voltage0_raw\")")
	fmt.Println()
	fmt.Println("  -knob-raw-max int")
	fmt.Printf("        Maximum raw ADC value (default %d)\n", defaultKnobRawMax)
	fmt.Println()
	fmt.Println("  -player-ws-url string")
	fmt.Println("        Streaming player websocket URL (default \"ws://127.0.0.1:2323\")")
	fmt.Println()
	fmt.Println("  -player-ws-timeout-ms int")
	fmt.Printf("        Timeout for websocket responses in ms (default %d)\n", defaultReadTimeoutMS)
	fmt.Println()
	fmt.Println("  -update-hz int")
	fmt.Printf("        Knob poll / tick loop frequency in Hz (default %d)\n", defaultUpdateHz)
	fmt.Println()
	fmt.Println("  -display-socket string")
	fmt.Println("        Panel driver unix socket path (default \"/run/iradio-panel.sock\")")
	fmt.Println()
	fmt.Println("  -greeting string")
	fmt.Println("        Greeting text shown on the status row (default \"iRadio\")")
	fmt.Println()
	fmt.Println("  -input-device string")
	fmt.Println("        Linux input event device for the station buttons (e.g. /dev/input/event2)")
	fmt.Println()
	fmt.Println("  -ipc-socket string")
	fmt.Println("        Unix domain socket path for IPC (default \"/tmp/iradiod.sock\")")
	fmt.Println()
	fmt.Println("  -state-ws-addr string")
	fmt.Println("        State websocket listen address, e.g. 127.0.0.1:3680 (empty disables)")
	fmt.Println()
	fmt.Println("  -log-level string")
	fmt.Println("        Log level: error, warn, info, debug (default \"info\")")
	fmt.Println()
	fmt.Println("  -version")
	fmt.Println("        Print version and exit")
	fmt.Println()
	fmt.Println("  -help")
	fmt.Println("        Print this help message")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  # Start daemon with a config file")
	fmt.Println("  iradiod -config /etc/iradiod.yaml")
	fmt.Println()
	fmt.Println("  # Override the player endpoint")
	fmt.Println("  iradiod -config /etc/iradiod.yaml -player-ws-url ws://192.168.1.50:2323")
	fmt.Println()
	fmt.Println("  # Expose live state for a web UI")
	fmt.Println("  iradiod -config /etc/iradiod.yaml -state-ws-addr 127.0.0.1:3680")
	fmt.Println()
	fmt.Println("NOTES:")
	fmt.Println("  - Requires read access to the IIO sysfs attribute and input devices")
	fmt.Println("  - The player must be running with its websocket control interface enabled")
	fmt.Println("  - Station switching is available via input buttons, iradio-ctl, or IPC")
	fmt.Println()
}

func main() {
	// Check for version/help flags early
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" {
			printVersion()
			return
		}
		if arg == "-help" || arg == "--help" || arg == "-h" {
			printUsage()
			return
		}
	}

	// Parse command-line flags
	var (
		configPath = flag.String("config", "", "YAML config file (flags override the file)")

		knobRawPath = flag.String("knob-raw-path", "/sys/bus/iio/devices/iio:device0/in_voltage0_raw", "IIO sysfs attribute for the volume knob")
		knobRawMax  = flag.Int("knob-raw-max", defaultKnobRawMax, "Maximum raw ADC value")

		playerWsURL     = flag.String("player-ws-url", "ws://127.0.0.1:2323", "Streaming player websocket URL")
		playerWsTimeout = flag.Int("player-ws-timeout-ms", defaultReadTimeoutMS, "Timeout in milliseconds for reading websocket responses")
		updateHz        = flag.Int("update-hz", defaultUpdateHz, "Knob poll / tick loop frequency in Hz")

		displaySocket = flag.String("display-socket", "/run/iradio-panel.sock", "Panel driver unix socket path")
		greeting      = flag.String("greeting", "iRadio", "Greeting text shown on the status row")

		inputDevice = flag.String("input-device", "", "Linux input event device for station buttons")

		ipcSocketPath = flag.String("ipc-socket", "/tmp/iradiod.sock", "Unix domain socket path for IPC")
		stateWsAddr   = flag.String("state-ws-addr", "", "State websocket listen address (empty disables)")

		logLevelStr = flag.String("log-level", "info", "Log level: error, warn, info, debug")
		showVersion = flag.Bool("version", false, "Print version and exit")
		showHelp    = flag.Bool("help", false, "Print help message")
	)

	// Custom usage function
	flag.Usage = printUsage
	flag.Parse()

	// Handle help and version flags
	if *showHelp {
		printUsage()
		return
	}
	if *showVersion {
		printVersion()
		return
	}

	// Load config: defaults, then file, then flag overrides.
	cfg := DefaultConfig()
	if *configPath != "" {
		loaded, err := LoadConfigFile(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Only flags the user actually set override the file.
	overrides := FlagOverrides{}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "knob-raw-path":
			overrides.KnobRawPath = knobRawPath
		case "knob-raw-max":
			overrides.KnobRawMax = knobRawMax
		case "player-ws-url":
			overrides.PlayerWsURL = playerWsURL
		case "player-ws-timeout-ms":
			overrides.PlayerTimeoutMS = playerWsTimeout
		case "update-hz":
			overrides.PlayerUpdateHz = updateHz
		case "display-socket":
			overrides.DisplaySocketPath = displaySocket
		case "greeting":
			overrides.DisplayGreeting = greeting
		case "input-device":
			overrides.InputDevice = inputDevice
		case "ipc-socket":
			overrides.IPCSocketPath = ipcSocketPath
		case "state-ws-addr":
			overrides.StateWSAddr = stateWsAddr
		case "log-level":
			overrides.LogLevel = logLevelStr
		}
	})
	overrides.Apply(&cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	// Parse and validate log level
	logLevel, err := parseLogLevel(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(logLevel)

	// Context canceled on SIGINT/SIGTERM; shuts down every goroutine.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create event channel - central command bus into the daemon
	events := make(chan Event, 64)

	// Player metadata callbacks become events on the same bus.
	observer := &eventObserver{events: events, logger: logger}

	// Initialize player client
	player, err := NewPlayerClient(cfg.Player.WsURL, observer, logger, cfg.Player.TimeoutMS)
	if err != nil {
		logger.Error("failed to connect to player", "error", err)
		os.Exit(1)
	}
	defer player.Close()

	// Initialize knob reader
	knob, err := NewIIOKnob(cfg.Knob.RawPath)
	if err != nil {
		logger.Error("failed to open volume knob", "path", cfg.Knob.RawPath, "error", err)
		os.Exit(1)
	}
	defer knob.Close()

	// Panel display (dials lazily; daemon can start before the panel driver)
	display := NewPanelDisplay(cfg.Display.SocketPath, logger)
	defer display.Close()

	// Seed the daemon state with the current knob position so the first poll
	// doesn't register as a volume change.
	state := &DaemonState{}
	state.Stations = StationListState{List: cfg.Stations}
	if raw, rerr := knob.ReadRaw(); rerr == nil {
		level := MapRawToLevel(raw, cfg.Knob.RawMax, maxVolume)
		state.Volume.Applied = level
		if verr := player.SetVolume(level); verr != nil {
			logger.Warn("could not set initial volume", "error", verr, "level", level)
		}
	} else {
		logger.Warn("could not read initial knob position", "error", rerr)
	}

	rcfg := ReducerConfig{
		KnobRawMax:        cfg.Knob.RawMax,
		DebounceThreshold: debounceThreshold,
		Greeting:          cfg.Display.Greeting,
		DisplayWindow:     volumeDisplayWindow,
	}

	// State websocket (optional)
	var broadcasts chan StateBroadcast
	if cfg.StateWS.Addr != "" {
		broadcasts = make(chan StateBroadcast, 128)

		wsServer := NewServer(logger, events, ServerConfig{})
		mux := http.NewServeMux()
		wsServer.Register(mux, "/ws/state")

		httpServer := &http.Server{
			Addr:    cfg.StateWS.Addr,
			Handler: mux,
		}

		go wsServer.Hub().Run(ctx)
		go RunBroadcaster(ctx, wsServer.Hub(), broadcasts, logger)
		go func() {
			logger.Info("state ws listening", "addr", cfg.StateWS.Addr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("state ws server error", "error", err)
			}
		}()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = httpServer.Shutdown(shutdownCtx)
		}()
	}

	// Start daemon brain in a goroutine
	go runDaemon(ctx, events, player, display, knob, rcfg, state, cfg.Player.UpdateHz, broadcasts, logger)

	// Start IPC server
	go func() {
		if err := runIPCServer(ctx, cfg.IPC.SocketPath, events, logger); err != nil {
			logger.Error("IPC server error", "error", err)
		}
	}()

	// Open input devices for the station buttons (optional)
	inputEvents := make(chan inputEvent, 64)
	readErr := make(chan error, 1)
	var inputFiles []*os.File
	for _, dev := range cfg.Input.Devices {
		f, err := os.Open(dev)
		if err != nil {
			logger.Error("failed to open input device", "device", dev, "error", err, "tip", "run as root or add user to 'input' group")
			os.Exit(1)
		}
		defer f.Close()
		inputFiles = append(inputFiles, f)
	}
	switch len(inputFiles) {
	case 0:
		// No buttons configured; station switching stays on IPC/WS only.
	case 1:
		go readInputEvents(inputFiles[0], inputEvents, readErr)
	default:
		go readInputEventsEpoll(inputFiles, inputEvents, readErr)
	}

	// Connect the startup station.
	events <- ConnectCurrent{}

	logger.Debug("starting iradiod", "version", version)
	logger.Debug("configuration",
		"knob_raw_path", cfg.Knob.RawPath,
		"knob_raw_max", cfg.Knob.RawMax,
		"player_ws_url", cfg.Player.WsURL,
		"player_ws_timeout_ms", cfg.Player.TimeoutMS,
		"update_hz", cfg.Player.UpdateHz,
		"display_socket", cfg.Display.SocketPath,
		"greeting", cfg.Display.Greeting,
		"input_devices", cfg.Input.Devices,
		"ipc_socket", cfg.IPC.SocketPath,
		"state_ws_addr", cfg.StateWS.Addr,
		"stations", len(cfg.Stations))
	logger.Info("listening",
		"knob", cfg.Knob.RawPath,
		"ipc", cfg.IPC.SocketPath,
		"player_ws", cfg.Player.WsURL,
		"update_rate_hz", cfg.Player.UpdateHz)

	// ============================================================================
	// Main Event Loop - Input Coordination Only
	// ============================================================================
	// This loop now only handles:
	//   - Shutdown signals
	//   - Input errors
	//   - Translating button presses into station events
	//
	// The daemon brain (runDaemon) handles all state updates and the player.
	// ============================================================================

	for {
		select {
		// --------------------------------------------------------------------
		// Shutdown handling
		// --------------------------------------------------------------------
		case <-ctx.Done():
			logger.Info("shutting down")
			return

		// --------------------------------------------------------------------
		// Input error handling
		// --------------------------------------------------------------------
		case err := <-readErr:
			logger.Error("input reader stopped", "error", err)
			stop()
			return

		// --------------------------------------------------------------------
		// Button event handling (event translation layer)
		// --------------------------------------------------------------------
		// Button presses are translated into station events for the daemon brain
		case ev := <-inputEvents:
			// Filter non-key events
			if ev.Type != EV_KEY {
				continue
			}
			if ev.Value != evValuePress {
				continue
			}

			switch ev.Code {
			case KEY_NEXTSONG:
				events <- NextStation{}
			case KEY_PREVIOUSSONG:
				events <- PrevStation{}
			case KEY_PLAYCD, KEY_PLAYPAUSE:
				events <- ConnectCurrent{}
			}
		}
	}
}

// eventObserver forwards player metadata callbacks onto the daemon event bus.
// Sends never block; a full queue drops the observation (the stream will
// usually repeat it with the next metadata update anyway).
type eventObserver struct {
	events chan<- Event
	logger *slog.Logger
}

func (o *eventObserver) OnStreamTitle(title string) {
	select {
	case o.events <- StreamTitleSeen{Title: title}:
	default:
		o.logger.Warn("event queue full, dropping stream title", "title", title)
	}
}

func (o *eventObserver) OnStationAnnounced(name string) {
	select {
	case o.events <- StationNameSeen{Name: name}:
	default:
		o.logger.Warn("event queue full, dropping station name", "name", name)
	}
}
