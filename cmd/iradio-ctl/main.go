package main

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"
)

// ============================================================================
// iradio-ctl - Command-line IPC Client
// ============================================================================
// This tool sends events to the iradiod daemon via IPC.
//
// Usage:
//   iradio-ctl connect
//   iradio-ctl station 2
//   iradio-ctl next
//   iradio-ctl prev
//
// Options:
//   -socket PATH    Unix domain socket path (default: /tmp/iradiod.sock)
// ============================================================================

// Event types (duplicated from main package for standalone binary)
type Event interface{}

type ConnectCurrent struct{}

type SelectStation struct {
	Index int `json:"index"`
}

type NextStation struct{}

type PrevStation struct{}

// EventEnvelope wraps events for JSON
type EventEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// IPCResponse represents the daemon's response
type IPCResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func main() {
	socketPath := "/tmp/iradiod.sock"

	// Parse arguments
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	// Check for -socket flag
	if args[0] == "-socket" || args[0] == "--socket" {
		if len(args) < 2 {
			fmt.Fprintf(os.Stderr, "error: -socket requires an argument\n")
			os.Exit(1)
		}
		socketPath = args[1]
		args = args[2:]
	}

	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	// Parse command
	var ev Event

	switch args[0] {
	case "connect", "play":
		ev = ConnectCurrent{}

	case "station", "select":
		if len(args) < 2 {
			fmt.Fprintf(os.Stderr, "error: station requires an index\n")
			os.Exit(1)
		}
		index, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: invalid station index: %v\n", err)
			os.Exit(1)
		}
		ev = SelectStation{Index: index}

	case "next":
		ev = NextStation{}

	case "prev", "previous":
		ev = PrevStation{}

	case "help", "-h", "--help":
		printUsage()
		os.Exit(0)

	default:
		fmt.Fprintf(os.Stderr, "error: unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}

	// Send event
	if err := sendEvent(socketPath, ev); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("ok")
}

func sendEvent(socketPath string, ev Event) error {
	// Connect to socket
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", socketPath, err)
	}
	defer conn.Close()

	// Marshal event
	data, err := marshalEvent(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	// Send event (line-delimited JSON)
	if _, err := fmt.Fprintf(conn, "%s\n", data); err != nil {
		return fmt.Errorf("send event: %w", err)
	}

	// Read response
	var response IPCResponse
	decoder := json.NewDecoder(conn)
	if err := decoder.Decode(&response); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	// Check response status
	if response.Status == "error" {
		return fmt.Errorf("daemon error: %s", response.Error)
	}

	return nil
}

func marshalEvent(ev Event) ([]byte, error) {
	var env EventEnvelope

	switch e := ev.(type) {
	case ConnectCurrent:
		env.Type = "connect_current"

	case SelectStation:
		env.Type = "select_station"
		data, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("marshal SelectStation: %w", err)
		}
		env.Data = data

	case NextStation:
		env.Type = "next_station"

	case PrevStation:
		env.Type = "prev_station"

	default:
		return nil, fmt.Errorf("unknown event type: %T", ev)
	}

	return json.Marshal(env)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `iradio-ctl - Control the iradiod daemon via IPC

Usage:
  iradio-ctl [options] <command> [args]

Options:
  -socket PATH    Unix domain socket path (default: /tmp/iradiod.sock)

Commands:
  connect, play           Connect the currently selected station
  station, select <N>     Select station N (0-based) and connect it
  next                    Switch to the next station
  prev, previous          Switch to the previous station
  help, -h, --help        Show this help message

Examples:
  iradio-ctl next
  iradio-ctl station 3
  iradio-ctl -socket /var/run/iradiod.sock connect
`)
}
