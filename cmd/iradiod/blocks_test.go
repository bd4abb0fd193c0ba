package main

import (
	"testing"
	"unicode/utf8"
)

func TestVolumeBlocks_AlwaysBarWidthCells(t *testing.T) {
	for level := 0; level <= maxVolume; level++ {
		bar := VolumeBlocks(level)
		if n := utf8.RuneCountInString(bar); n != barWidth {
			t.Errorf("level %d: expected %d cells, got %d (%q)", level, barWidth, n, bar)
		}
	}
}

func TestVolumeBlocks_Zero(t *testing.T) {
	if got := VolumeBlocks(0); got != "       " {
		t.Errorf("expected all spaces for level 0, got %q", got)
	}
}

func TestVolumeBlocks_FullBlocksAndPartial(t *testing.T) {
	// 12 = two full blocks plus the remainder-2 partial glyph.
	got := VolumeBlocks(12)
	want := "██▎    "
	if got != want {
		t.Errorf("level 12: expected %q, got %q", want, got)
	}

	// Exact multiples of five render no partial glyph.
	got = VolumeBlocks(15)
	want = "███    "
	if got != want {
		t.Errorf("level 15: expected %q, got %q", want, got)
	}
}

func TestVolumeBlocks_PartialRamp(t *testing.T) {
	// Levels 1..4 select successively wider partial glyphs.
	wants := []string{"▏      ", "▎      ", "▍      ", "▋      "}
	for i, want := range wants {
		if got := VolumeBlocks(i + 1); got != want {
			t.Errorf("level %d: expected %q, got %q", i+1, want, got)
		}
	}
}

func TestVolumeBlocks_OverloadMarker(t *testing.T) {
	got := VolumeBlocks(maxVolume)
	want := "████!  "
	if got != want {
		t.Errorf("level %d: expected %q, got %q", maxVolume, want, got)
	}
}

func TestVolumeBlocks_ClampsOutOfRange(t *testing.T) {
	if got, want := VolumeBlocks(-3), VolumeBlocks(0); got != want {
		t.Errorf("expected negative level to render as 0, got %q", got)
	}
	if got, want := VolumeBlocks(99), VolumeBlocks(maxVolume); got != want {
		t.Errorf("expected over-range level to render as %d, got %q", maxVolume, got)
	}
}
