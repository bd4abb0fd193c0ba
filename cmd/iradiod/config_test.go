package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "iradiod.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestDefaultConfig_Validates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got: %v", err)
	}
}

func TestLoadConfigFile_PartialFileKeepsDefaults(t *testing.T) {
	path := writeTempConfig(t, `
player:
  ws_url: ws://10.0.0.5:2323
stations:
  - name: FM4
    url: http://fm4.example/stream.mp3
`)

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Player.WsURL != "ws://10.0.0.5:2323" {
		t.Errorf("expected overridden ws url, got %q", cfg.Player.WsURL)
	}
	// Untouched sections keep their defaults.
	if cfg.Player.UpdateHz != defaultUpdateHz {
		t.Errorf("expected default update hz, got %d", cfg.Player.UpdateHz)
	}
	if cfg.Knob.RawMax != defaultKnobRawMax {
		t.Errorf("expected default knob raw max, got %d", cfg.Knob.RawMax)
	}
	if len(cfg.Stations) != 1 || cfg.Stations[0].Name != "FM4" {
		t.Errorf("expected replaced station list, got %+v", cfg.Stations)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("loaded config should validate, got: %v", err)
	}
}

func TestLoadConfigFile_UnknownFieldRejected(t *testing.T) {
	path := writeTempConfig(t, `
player:
  ws_url: ws://127.0.0.1:2323
  ws_urll: typo
`)

	if _, err := LoadConfigFile(path); err == nil {
		t.Fatalf("expected unknown field to be rejected")
	}
}

func TestLoadConfigFile_TrailingDocumentRejected(t *testing.T) {
	path := writeTempConfig(t, `
logging:
  level: debug
---
logging:
  level: info
`)

	if _, err := LoadConfigFile(path); err == nil {
		t.Fatalf("expected trailing document to be rejected")
	}
}

func TestValidate_EmptyStationsFail(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Stations = nil
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected empty station list to fail validation")
	}
}

func TestValidate_StationWithoutURLFails(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Stations = []Station{{Name: "FM4"}}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected station without URL to fail validation")
	}
}

func TestValidate_DuplicateStationNamesFail(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Stations = []Station{
		{Name: "FM4", URL: "http://fm4.example/a"},
		{Name: "FM4", URL: "http://fm4.example/b"},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected duplicate station names to fail validation")
	}
}

func TestValidate_BadLogLevelFails(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected unknown log level to fail validation")
	}
}

func TestFlagOverrides_Apply(t *testing.T) {
	cfg := DefaultConfig()

	greeting := "Guten Morgen"
	rawMax := 4095
	addr := "127.0.0.1:3680"
	overrides := FlagOverrides{
		DisplayGreeting: &greeting,
		KnobRawMax:      &rawMax,
		StateWSAddr:     &addr,
	}
	overrides.Apply(&cfg)

	if cfg.Display.Greeting != "Guten Morgen" {
		t.Errorf("expected greeting override, got %q", cfg.Display.Greeting)
	}
	if cfg.Knob.RawMax != 4095 {
		t.Errorf("expected raw max override, got %d", cfg.Knob.RawMax)
	}
	if cfg.StateWS.Addr != addr {
		t.Errorf("expected state ws addr override, got %q", cfg.StateWS.Addr)
	}
	// Untouched fields stay at their defaults.
	if cfg.IPC.SocketPath != "/tmp/iradiod.sock" {
		t.Errorf("expected default ipc socket, got %q", cfg.IPC.SocketPath)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("overridden config should validate, got: %v", err)
	}
}
