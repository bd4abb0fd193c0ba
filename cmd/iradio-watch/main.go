package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

// iradio-watch connects to the iradiod state websocket and prints state
// changes as they happen. Useful for debugging and for driving shell scripts.

// envelope mirrors the daemon's state websocket wire format.
type envelope struct {
	Type string          `json:"type"`
	Ts   *time.Time      `json:"ts,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

func main() {
	var (
		wsURL = flag.String("ws", "ws://127.0.0.1:3680/ws/state", "iradiod state websocket URL")
		raw   = flag.Bool("raw", false, "Print raw JSON frames instead of formatted output")
	)
	flag.Parse()

	// Parse websocket URL
	u, err := url.Parse(*wsURL)
	if err != nil {
		log.Fatalf("invalid websocket URL: %v", err)
	}

	// Handle shutdown
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	// Connect to websocket
	d := websocket.Dialer{
		HandshakeTimeout: 5 * time.Second,
	}

	log.Printf("connecting to %s...", u.String())
	conn, _, err := d.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer conn.Close()

	log.Printf("connected! (press Ctrl+C to exit)")

	// Mutex to protect concurrent writes to websocket
	var writeMu sync.Mutex

	// Set up ping/pong handlers for connection health
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// Start ping ticker to keep connection alive
	pingTicker := time.NewTicker(30 * time.Second)
	defer pingTicker.Stop()

	go func() {
		for range pingTicker.C {
			writeMu.Lock()
			err := conn.WriteMessage(websocket.PingMessage, nil)
			writeMu.Unlock()
			if err != nil {
				log.Printf("ping failed: %v", err)
				return
			}
		}
	}()

	// Message reading loop
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			messageType, message, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("websocket error: %v", err)
				}
				return
			}

			if messageType != websocket.TextMessage {
				continue
			}

			if *raw {
				fmt.Printf("%s\n", string(message))
				continue
			}

			handleFrame(message)
		}
	}()

	// Wait for shutdown signal or connection close
	select {
	case <-sigc:
		log.Printf("shutting down...")
		// Clean close
		writeMu.Lock()
		err := conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		writeMu.Unlock()
		if err != nil {
			log.Printf("error closing connection: %v", err)
		}
	case <-done:
		log.Printf("connection closed")
	}
}

// handleFrame decodes one envelope and prints a one-line summary per event type.
func handleFrame(message []byte) {
	var env envelope
	if err := json.Unmarshal(message, &env); err != nil {
		fmt.Printf("[TEXT] %s\n", string(message))
		return
	}

	switch env.Type {
	case "state_init":
		var snap struct {
			VolumeLevel  int    `json:"volume_level"`
			StationIndex int    `json:"station_index"`
			StationName  string `json:"station_name"`
			Artist       string `json:"artist"`
			Title        string `json:"title"`
			Connected    bool   `json:"connected"`
		}
		if err := json.Unmarshal(env.Data, &snap); err != nil {
			printRaw(env)
			return
		}
		fmt.Printf("[INIT] station=%d (%s) volume=%d connected=%v artist=%q title=%q\n",
			snap.StationIndex, snap.StationName, snap.VolumeLevel, snap.Connected, snap.Artist, snap.Title)

	case "volume_changed":
		var data struct {
			Level int `json:"level"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			printRaw(env)
			return
		}
		fmt.Printf("[VOLUME] %d\n", data.Level)

	case "now_playing_changed":
		var data struct {
			Artist string `json:"artist"`
			Title  string `json:"title"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			printRaw(env)
			return
		}
		fmt.Printf("[NOW PLAYING] %s - %s\n", data.Artist, data.Title)

	case "station_changed":
		var data struct {
			Index int    `json:"index"`
			Name  string `json:"name"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			printRaw(env)
			return
		}
		fmt.Printf("[STATION] %d (%s)\n", data.Index, data.Name)

	case "player_changed":
		var data struct {
			URL       string `json:"url"`
			Connected bool   `json:"connected"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			printRaw(env)
			return
		}
		status := "DISCONNECTED"
		if data.Connected {
			status = "CONNECTED"
		}
		fmt.Printf("[PLAYER] %s %s\n", status, data.URL)

	default:
		printRaw(env)
	}
}

func printRaw(env envelope) {
	pretty, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return
	}
	fmt.Printf("[EVENT]\n%s\n\n", string(pretty))
}
