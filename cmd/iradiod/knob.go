package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// KnobReader samples the raw analog volume knob position once per poll.
type KnobReader interface {
	ReadRaw() (int, error)
	Close() error
}

// iioKnob reads an industrial I/O ADC channel attribute from sysfs,
// e.g. /sys/bus/iio/devices/iio:device0/in_voltage0_raw. The kernel
// re-samples on every read, so one ReadFile per poll is the whole protocol.
type iioKnob struct {
	path string
}

// NewIIOKnob validates that the sysfs attribute is readable and returns a reader.
func NewIIOKnob(path string) (*iioKnob, error) {
	k := &iioKnob{path: path}
	if _, err := k.ReadRaw(); err != nil {
		return nil, err
	}
	return k, nil
}

func (k *iioKnob) ReadRaw() (int, error) {
	b, err := os.ReadFile(k.path)
	if err != nil {
		return 0, fmt.Errorf("read knob: %w", err)
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return 0, fmt.Errorf("parse knob value: %w", err)
	}
	return v, nil
}

func (k *iioKnob) Close() error { return nil }
