package main

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
)

// inputEvent mirrors the kernel's struct input_event as read from an evdev
// character device on a 64-bit system. The station buttons arrive as EV_KEY
// events; Sec/Usec carry the kernel timestamp, which we ignore in favor of
// arrival time.
type inputEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

// readInputEvents pumps raw events from a single evdev device into the events
// channel. It blocks on the device read, so each device gets its own
// goroutine; the first read failure (device unplugged, fd closed on shutdown)
// is reported on readErr and the pump exits.
func readInputEvents(f *os.File, events chan<- inputEvent, readErr chan<- error) {
	evSize := binary.Size(inputEvent{})
	buf := make([]byte, evSize)
	reader := bytes.NewReader(buf)

	for {
		if _, err := io.ReadFull(f, buf); err != nil {
			readErr <- err
			return
		}

		reader.Reset(buf)
		var ev inputEvent
		if err := binary.Read(reader, binary.LittleEndian, &ev); err != nil {
			continue
		}

		events <- ev
	}
}
