package main

import "time"

// VolumeDebounceState is the reducer-owned state of the knob debounce machine.
//
// Applied is the last committed level and the only value the player has ever
// been handed. StableCount counts consecutive polls in which the sampled level
// differed from Applied; it resets to zero whenever the knob returns to the
// applied level, so a wobble that dies down before the threshold never commits.
type VolumeDebounceState struct {
	Applied      int
	StableCount  int
	LastChangeAt time.Time
}

// MapRawToLevel maps a raw ADC reading in [0, rawMax] onto [0, maxLevel]
// with truncating integer division. Readings outside the raw range are clamped.
func MapRawToLevel(raw, rawMax, maxLevel int) int {
	if rawMax <= 0 || maxLevel <= 0 {
		return 0
	}
	if raw < 0 {
		raw = 0
	}
	if raw > rawMax {
		raw = rawMax
	}
	return raw * maxLevel / rawMax
}

// StepVolumeDebounce advances the debounce machine by one poll.
//
// Rules:
//   - level == Applied: reset StableCount, nothing pending.
//   - level != Applied: increment StableCount; below threshold nothing happens.
//   - StableCount reaches threshold: commit. StableCount resets, Applied becomes
//     the current sample, LastChangeAt records the start of the transient
//     display window.
//
// Pure function: no I/O, no clock reads. The committed flag tells the reducer
// to emit player/display commands for the new level.
func StepVolumeDebounce(s VolumeDebounceState, level int, now time.Time, threshold int) (VolumeDebounceState, bool) {
	if level == s.Applied {
		s.StableCount = 0
		return s, false
	}

	s.StableCount++
	if s.StableCount < threshold {
		return s, false
	}

	s.StableCount = 0
	s.Applied = level
	s.LastChangeAt = now
	return s, true
}
