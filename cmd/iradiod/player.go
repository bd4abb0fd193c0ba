package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// MetadataObserver receives the player's asynchronous metadata callbacks.
// Callbacks run on the daemon goroutine during Service and must not block.
type MetadataObserver interface {
	OnStreamTitle(title string)
	OnStationAnnounced(name string)
}

// PlayerClientInterface defines the interface for player operations.
// This allows for mocking in tests.
type PlayerClientInterface interface {
	// Connect starts streaming from streamURL. The boolean mirrors the
	// player's own success report; callers log it and move on.
	Connect(streamURL string) (bool, error)

	// SetVolume applies a level in [0, maxVolume].
	SetVolume(level int) error

	// Service drains queued stream notifications and invokes the observer.
	// Must be called every control-loop tick and must return promptly.
	Service()

	Close() error
}

// playerNotification is one queued asynchronous frame from the player.
type playerNotification struct {
	kind string
	text string
}

// PlayerClient manages WebSocket communication with the streaming player.
//
// The player sends two kinds of text frames: responses to commands we issued,
// and unsolicited notifications (stream_title, station_name). A background
// read pump separates the two; responses go to a rendezvous channel, while
// notifications queue up until the next Service call drains them on the
// daemon goroutine.
type PlayerClient struct {
	mu          sync.Mutex
	conn        *websocket.Conn
	url         string
	logger      *slog.Logger
	readTimeout time.Duration

	observer MetadataObserver

	respCh chan []byte

	notifMu sync.Mutex
	notifs  []playerNotification
}

// NewPlayerClient creates a player client and establishes the initial connection.
// The observer is registered once at construction.
func NewPlayerClient(wsURL string, observer MetadataObserver, logger *slog.Logger, readTimeout int) (*PlayerClient, error) {
	if _, err := url.Parse(wsURL); err != nil {
		return nil, fmt.Errorf("invalid websocket URL: %w", err)
	}

	client := &PlayerClient{
		url:         wsURL,
		logger:      logger,
		readTimeout: time.Duration(readTimeout) * time.Millisecond,
		observer:    observer,
		respCh:      make(chan []byte, 1),
	}

	if err := client.connectWithRetry(); err != nil {
		return nil, err
	}

	return client, nil
}

// connect establishes a WebSocket connection and starts its read pump.
func (c *PlayerClient) connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}

	d := websocket.Dialer{
		HandshakeTimeout: 2 * time.Second,
	}

	conn, _, err := d.Dial(c.url, nil)
	if err != nil {
		return err
	}

	c.conn = conn
	go c.readPump(conn)
	return nil
}

// connectWithRetry attempts to connect with a short fixed backoff.
func (c *PlayerClient) connectWithRetry() error {
	var lastErr error
	for attempt := 0; attempt < 10; attempt++ {
		err := c.connect()
		if err == nil {
			c.logger.Info("connected to player", "url", c.url)
			return nil
		}
		lastErr = err
		c.logger.Warn("player connection failed; retrying...", "error", err, "attempt", attempt+1)
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("failed to connect after 10 attempts: %w", lastErr)
}

// ensureConnected checks the connection and reconnects if necessary.
func (c *PlayerClient) ensureConnected() error {
	c.mu.Lock()
	if c.conn != nil {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	c.logger.Warn("player connection lost; reconnecting...")
	return c.connectWithRetry()
}

// readPump reads frames until the connection breaks, routing notifications
// to the queue and everything else to the response channel.
func (c *PlayerClient) readPump(conn *websocket.Conn) {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			if c.conn == conn {
				c.conn = nil // Mark connection as broken
			}
			c.mu.Unlock()
			return
		}

		var note struct {
			Notification struct {
				Type  string `json:"type"`
				Value string `json:"value"`
			} `json:"notification"`
		}
		if err := json.Unmarshal(msg, &note); err == nil && note.Notification.Type != "" {
			c.notifMu.Lock()
			c.notifs = append(c.notifs, playerNotification{
				kind: note.Notification.Type,
				text: note.Notification.Value,
			})
			c.notifMu.Unlock()
			continue
		}

		select {
		case c.respCh <- msg:
		default:
			c.logger.Debug("dropping unsolicited player response", "bytes", len(msg))
		}
	}
}

// request sends a command and waits for the matching response frame.
func (c *PlayerClient) request(v any) ([]byte, error) {
	if err := c.ensureConnected(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal command: %w", err)
	}

	// Drop any stale response left over from a timed-out request.
	select {
	case <-c.respCh:
	default:
	}

	c.mu.Lock()
	conn := c.conn
	if conn == nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("no websocket connection")
	}
	err = conn.WriteMessage(websocket.TextMessage, payload)
	if err != nil {
		c.conn = nil // Mark connection as broken
	}
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}

	select {
	case msg := <-c.respCh:
		return msg, nil
	case <-time.After(c.readTimeout):
		return nil, fmt.Errorf("timeout waiting for player response")
	}
}

// Close closes the WebSocket connection.
func (c *PlayerClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	return nil
}

// Connect instructs the player to start streaming from streamURL.
// The returned boolean mirrors the player's connect result.
func (c *PlayerClient) Connect(streamURL string) (bool, error) {
	cmd := map[string]any{"Connect": streamURL}

	response, err := c.request(cmd)
	if err != nil {
		return false, fmt.Errorf("connect: %w", err)
	}

	var resp struct {
		Connect struct {
			Result string `json:"result"`
			Value  bool   `json:"value"`
		} `json:"Connect"`
	}

	if err := json.Unmarshal(response, &resp); err != nil {
		c.logger.Warn("failed to parse Connect response", "error", err)
		return true, nil // Assume success
	}

	c.logger.Debug("Connect", "url", streamURL, "result", resp.Connect.Result, "ok", resp.Connect.Value)

	return resp.Connect.Value, nil
}

// SetVolume applies a volume level to the player.
func (c *PlayerClient) SetVolume(level int) error {
	cmd := map[string]any{"SetVolume": level}

	response, err := c.request(cmd)
	if err != nil {
		return fmt.Errorf("set volume: %w", err)
	}

	var resp struct {
		SetVolume struct {
			Result string `json:"result"`
		} `json:"SetVolume"`
	}

	if err := json.Unmarshal(response, &resp); err != nil {
		c.logger.Warn("failed to parse SetVolume response", "error", err)
		return nil // Assume success
	}

	c.logger.Debug("SetVolume", "level", level, "result", resp.SetVolume.Result)

	return nil
}

// Service drains queued notifications and invokes the observer for each.
// Called once per tick on the daemon goroutine; the callbacks therefore run
// single-threaded alongside the rest of the control loop.
func (c *PlayerClient) Service() {
	c.notifMu.Lock()
	pending := c.notifs
	c.notifs = nil
	c.notifMu.Unlock()

	if c.observer == nil {
		return
	}

	for _, n := range pending {
		switch n.kind {
		case "stream_title":
			c.observer.OnStreamTitle(n.text)
		case "station_name":
			c.observer.OnStationAnnounced(n.text)
		default:
			c.logger.Debug("ignoring unknown player notification", "type", n.kind)
		}
	}
}
