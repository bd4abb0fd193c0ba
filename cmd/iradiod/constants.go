package main

import "time"

// Linux input event types and codes (from <linux/input.h>)
const (
	EV_KEY = 0x01

	KEY_NEXTSONG     = 163
	KEY_PLAYPAUSE    = 164
	KEY_PREVIOUSSONG = 165
	KEY_PLAYCD       = 200
)

// Input event value constants
const (
	evValueRelease = 0
	evValuePress   = 1
	evValueRepeat  = 2
)

// Volume control configuration
const (
	// maxVolume is the top of the logical volume range [0, maxVolume].
	// A level at maxVolume is treated as overload and rendered with a warning marker.
	maxVolume = 20

	// debounceThreshold is the number of consecutive polls a changed knob level must
	// survive before it is committed. The knob ADC oscillates by about one raw unit
	// around a resting position; committing on every poll would produce audible
	// zipper volume changes.
	debounceThreshold = 25

	defaultKnobRawMax = 1023 // 10-bit ADC

	defaultUpdateHz      = 50  // Control loop frequency (Hz); 25 polls ~ 500ms at this rate
	defaultReadTimeoutMS = 500 // Default timeout for reading player websocket responses (ms)
)

// volumeDisplayWindow is how long the status row keeps showing the volume bar
// after a committed change before the reconciler reverts it to the greeting/clock line.
const volumeDisplayWindow = 2000 * time.Millisecond

// Front panel display rows
const (
	rowStatus  = 0
	rowStation = 1
	rowArtist  = 2
	rowTitle   = 3
)

// barWidth is the fixed width of the rendered volume bar in display cells.
const barWidth = 7
