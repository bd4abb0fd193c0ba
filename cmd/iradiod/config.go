package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the top-level YAML configuration for the iradiod daemon.
//
// The config file is the primary configuration surface; flags exist for small
// overrides and for environments where a file is awkward. Keep defaults and
// validation centralized so the rest of the code can assume a well-formed config.
type Config struct {
	// Volume knob (IIO sysfs ADC channel)
	Knob KnobConfig `yaml:"knob"`

	// Streaming player control connection
	Player PlayerConfig `yaml:"player"`

	// Front panel display driver
	Display DisplayConfig `yaml:"display"`

	// Optional input devices for station buttons
	Input InputConfig `yaml:"input"`

	// IPC configuration (iradio-ctl and scripting)
	IPC IPCConfig `yaml:"ipc"`

	// State websocket endpoint (empty addr disables it)
	StateWS StateWSConfig `yaml:"state_ws"`

	// Station list; index 0 is selected at startup
	Stations []Station `yaml:"stations" validate:"min=1,dive"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

type KnobConfig struct {
	// RawPath is the sysfs attribute to poll, e.g.
	// /sys/bus/iio/devices/iio:device0/in_voltage0_raw
	RawPath string `yaml:"raw_path" validate:"required"`
	RawMax  int    `yaml:"raw_max" validate:"gt=0"`
}

type PlayerConfig struct {
	WsURL     string `yaml:"ws_url" validate:"required,url"`
	TimeoutMS int    `yaml:"timeout_ms" validate:"gt=0"`
	UpdateHz  int    `yaml:"update_hz" validate:"gt=0,lte=1000"`
}

type DisplayConfig struct {
	SocketPath string `yaml:"socket_path" validate:"required"`
	Greeting   string `yaml:"greeting" validate:"required"`
}

type InputConfig struct {
	Devices []string `yaml:"devices,omitempty"` // List of input devices to monitor
}

type IPCConfig struct {
	SocketPath string `yaml:"socket_path" validate:"required"`
}

type StateWSConfig struct {
	Addr string `yaml:"addr,omitempty"` // e.g. "127.0.0.1:3680"; empty disables
}

type LoggingConfig struct {
	Level string `yaml:"level" validate:"required,oneof=error warn info debug"`
}

// DefaultConfig returns a fully-populated Config with defaults.
// Keep this aligned with constants.go defaults and current CLI defaults.
func DefaultConfig() Config {
	return Config{
		Knob: KnobConfig{
			RawPath: "/sys/bus/iio/devices/iio:device0/in_voltage0_raw",
			RawMax:  defaultKnobRawMax,
		},
		Player: PlayerConfig{
			WsURL:     "ws://127.0.0.1:2323",
			TimeoutMS: defaultReadTimeoutMS,
			UpdateHz:  defaultUpdateHz,
		},
		Display: DisplayConfig{
			SocketPath: "/run/iradio-panel.sock",
			Greeting:   "iRadio",
		},
		Input: InputConfig{},
		IPC: IPCConfig{
			SocketPath: "/tmp/iradiod.sock",
		},
		StateWS: StateWSConfig{
			Addr: "",
		},
		Stations: []Station{
			{Name: "Deutschlandfunk", URL: "http://st01.sslstream.dlf.de/dlf/01/128/mp3/stream.mp3"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfigFile reads and parses a YAML config file.
//
// Notes:
//   - The file must be valid YAML.
//   - Unknown fields are rejected (helps catch typos) via KnownFields(true).
func LoadConfigFile(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("config path is empty")
	}
	b, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config yaml: %w", err)
	}

	// Ensure there's no trailing garbage (only whitespace/comments are allowed
	// after the document). Decoding into a Node accepts any YAML shape, so
	// anything but EOF here means a second document is present.
	var trailing yaml.Node
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config yaml: unexpected trailing document")
	}

	return cfg, nil
}

// FlagOverrides applies overrides from flags on top of a loaded config.
//
// Flags should pass pointers; each override is only applied if the pointer is
// non-nil. Keeping the override mechanism separate makes it easy to evolve
// flags without proliferating conditionals all over the code.
type FlagOverrides struct {
	KnobRawPath *string
	KnobRawMax  *int

	PlayerWsURL     *string
	PlayerTimeoutMS *int
	PlayerUpdateHz  *int

	DisplaySocketPath *string
	DisplayGreeting   *string

	InputDevice *string

	IPCSocketPath *string
	StateWSAddr   *string

	LogLevel *string
}

// Apply merges the overrides into cfg. If an override pointer is nil, it is ignored.
func (o FlagOverrides) Apply(cfg *Config) {
	if cfg == nil {
		return
	}
	if o.KnobRawPath != nil {
		cfg.Knob.RawPath = *o.KnobRawPath
	}
	if o.KnobRawMax != nil {
		cfg.Knob.RawMax = *o.KnobRawMax
	}

	if o.PlayerWsURL != nil {
		cfg.Player.WsURL = *o.PlayerWsURL
	}
	if o.PlayerTimeoutMS != nil {
		cfg.Player.TimeoutMS = *o.PlayerTimeoutMS
	}
	if o.PlayerUpdateHz != nil {
		cfg.Player.UpdateHz = *o.PlayerUpdateHz
	}

	if o.DisplaySocketPath != nil {
		cfg.Display.SocketPath = *o.DisplaySocketPath
	}
	if o.DisplayGreeting != nil {
		cfg.Display.Greeting = *o.DisplayGreeting
	}

	if o.InputDevice != nil {
		cfg.Input.Devices = []string{*o.InputDevice}
	}

	if o.IPCSocketPath != nil {
		cfg.IPC.SocketPath = *o.IPCSocketPath
	}
	if o.StateWSAddr != nil {
		cfg.StateWS.Addr = *o.StateWSAddr
	}

	if o.LogLevel != nil {
		cfg.Logging.Level = *o.LogLevel
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks config invariants and returns a user-friendly error.
// This is intended to be called after defaults + file + overrides are applied.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Checks struct tags cannot express.
	for i, dev := range c.Input.Devices {
		if dev == "" {
			return fmt.Errorf("input.devices[%d] is empty", i)
		}
	}
	seen := make(map[string]int, len(c.Stations))
	for i, st := range c.Stations {
		if j, dup := seen[st.Name]; dup {
			return fmt.Errorf("stations[%d] and stations[%d] share the name %q", j, i, st.Name)
		}
		seen[st.Name] = i
	}

	return nil
}

// ExpandPath expands a leading "~" in a path using $HOME.
func ExpandPath(p string) string {
	if p == "" {
		return p
	}
	if p[0] != '~' {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	if len(p) >= 2 && (p[1] == '/' || p[1] == '\\') {
		return filepath.Join(home, p[2:])
	}
	return p
}
