package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"
)

// Display writes a single line of text to the front panel.
// Writes are assumed to succeed; callers log errors and continue.
type Display interface {
	SetText(text string, row int) error
	Close() error
}

// panelFrame is the wire format for one panel line write.
type panelFrame struct {
	Row  int    `json:"row"`
	Text string `json:"text"`
}

// panelDisplay talks to the panel driver over its unix socket with
// line-delimited JSON frames. Fire-and-forget: a failed write tears down the
// connection so the next write can redial, but it never escalates.
type panelDisplay struct {
	mu         sync.Mutex
	conn       net.Conn
	socketPath string
	logger     *slog.Logger
}

// NewPanelDisplay creates a panel client. The socket is dialed lazily on the
// first write so the daemon can start before the panel driver does.
func NewPanelDisplay(socketPath string, logger *slog.Logger) *panelDisplay {
	return &panelDisplay{
		socketPath: socketPath,
		logger:     logger,
	}
}

// SetText writes one line to the given panel row.
func (d *panelDisplay) SetText(text string, row int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn == nil {
		conn, err := net.DialTimeout("unix", d.socketPath, 250*time.Millisecond)
		if err != nil {
			return fmt.Errorf("dial panel socket: %w", err)
		}
		d.conn = conn
	}

	payload, err := json.Marshal(panelFrame{Row: row, Text: text})
	if err != nil {
		return fmt.Errorf("marshal panel frame: %w", err)
	}

	if _, err := d.conn.Write(append(payload, '\n')); err != nil {
		d.conn.Close()
		d.conn = nil
		return fmt.Errorf("write panel frame: %w", err)
	}

	return nil
}

// Close closes the panel socket.
func (d *panelDisplay) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conn != nil {
		d.conn.Close()
		d.conn = nil
	}
	return nil
}
