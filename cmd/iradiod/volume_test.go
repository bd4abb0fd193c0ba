package main

import (
	"testing"
	"time"
)

func TestMapRawToLevel_Endpoints(t *testing.T) {
	if got := MapRawToLevel(0, 1023, 20); got != 0 {
		t.Errorf("expected level 0 at raw 0, got %d", got)
	}
	if got := MapRawToLevel(1023, 1023, 20); got != 20 {
		t.Errorf("expected level 20 at raw 1023, got %d", got)
	}
}

func TestMapRawToLevel_Truncates(t *testing.T) {
	// 511*20/1023 = 10220/1023 = 9 (truncating), not 10.
	if got := MapRawToLevel(511, 1023, 20); got != 9 {
		t.Errorf("expected truncated level 9 at raw 511, got %d", got)
	}
	// One raw unit above half rolls over to 10.
	if got := MapRawToLevel(512, 1023, 20); got != 10 {
		t.Errorf("expected level 10 at raw 512, got %d", got)
	}
}

func TestMapRawToLevel_ClampsOutOfRange(t *testing.T) {
	if got := MapRawToLevel(-5, 1023, 20); got != 0 {
		t.Errorf("expected negative raw to clamp to 0, got %d", got)
	}
	if got := MapRawToLevel(2000, 1023, 20); got != 20 {
		t.Errorf("expected over-range raw to clamp to 20, got %d", got)
	}
	if got := MapRawToLevel(100, 0, 20); got != 0 {
		t.Errorf("expected level 0 for degenerate rawMax, got %d", got)
	}
}

func TestStepVolumeDebounce_CommitsOnThreshold(t *testing.T) {
	now := time.Unix(1000, 0).UTC()
	s := VolumeDebounceState{Applied: 5}

	// threshold-1 differing polls must not commit.
	for i := 0; i < debounceThreshold-1; i++ {
		var committed bool
		s, committed = StepVolumeDebounce(s, 6, now, debounceThreshold)
		if committed {
			t.Fatalf("unexpected commit on poll %d", i+1)
		}
		if s.Applied != 5 {
			t.Fatalf("applied level changed before commit: %d", s.Applied)
		}
	}

	// The threshold-th poll commits exactly once.
	commitAt := now.Add(500 * time.Millisecond)
	s, committed := StepVolumeDebounce(s, 6, commitAt, debounceThreshold)
	if !committed {
		t.Fatalf("expected commit on poll %d", debounceThreshold)
	}
	if s.Applied != 6 {
		t.Errorf("expected applied level 6, got %d", s.Applied)
	}
	if s.StableCount != 0 {
		t.Errorf("expected stable count reset after commit, got %d", s.StableCount)
	}
	if !s.LastChangeAt.Equal(commitAt) {
		t.Errorf("expected LastChangeAt %v, got %v", commitAt, s.LastChangeAt)
	}

	// The very next equal poll must not commit again.
	s, committed = StepVolumeDebounce(s, 6, commitAt, debounceThreshold)
	if committed {
		t.Fatalf("unexpected commit for already-applied level")
	}
}

func TestStepVolumeDebounce_ResetsWhenKnobReturns(t *testing.T) {
	now := time.Unix(1000, 0).UTC()
	s := VolumeDebounceState{Applied: 10}

	// Wobble away from the applied level for a while...
	for i := 0; i < debounceThreshold-1; i++ {
		s, _ = StepVolumeDebounce(s, 11, now, debounceThreshold)
	}
	if s.StableCount != debounceThreshold-1 {
		t.Fatalf("expected stable count %d, got %d", debounceThreshold-1, s.StableCount)
	}

	// ...then return to the applied level: counter resets, nothing commits.
	s, committed := StepVolumeDebounce(s, 10, now, debounceThreshold)
	if committed {
		t.Fatalf("unexpected commit when knob returned to applied level")
	}
	if s.StableCount != 0 {
		t.Errorf("expected stable count reset, got %d", s.StableCount)
	}
	if s.Applied != 10 {
		t.Errorf("expected applied level unchanged, got %d", s.Applied)
	}
}

func TestStepVolumeDebounce_CommitsCurrentSample(t *testing.T) {
	// The committed level is the sample seen on the threshold poll, not the
	// one that started the count. A knob still in motion commits whatever
	// position it passed at that moment; the next stable stretch corrects it.
	now := time.Unix(1000, 0).UTC()
	s := VolumeDebounceState{Applied: 0}

	for i := 0; i < debounceThreshold-1; i++ {
		s, _ = StepVolumeDebounce(s, 3, now, debounceThreshold)
	}
	s, committed := StepVolumeDebounce(s, 7, now, debounceThreshold)
	if !committed {
		t.Fatalf("expected commit on threshold poll")
	}
	if s.Applied != 7 {
		t.Errorf("expected committed level 7 (current sample), got %d", s.Applied)
	}
}
