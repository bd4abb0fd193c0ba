package main

import (
	"strings"
	"testing"
	"time"
)

func TestSplitStreamTitle_PrimarySeparator(t *testing.T) {
	artist, title := SplitStreamTitle("Miles Davis - So What")
	if artist != "Miles Davis" || title != "So What" {
		t.Errorf("expected (Miles Davis, So What), got (%q, %q)", artist, title)
	}
}

func TestSplitStreamTitle_FirstSeparatorWins(t *testing.T) {
	// Only the first " - " splits; further occurrences stay in the title.
	artist, title := SplitStreamTitle("AC - DC - Back In Black")
	if artist != "AC" || title != "DC - Back In Black" {
		t.Errorf("expected (AC, DC - Back In Black), got (%q, %q)", artist, title)
	}
}

func TestSplitStreamTitle_FallbackSeparator(t *testing.T) {
	artist, title := SplitStreamTitle("WDR 2: Der Morgen")
	if artist != "WDR 2" || title != "Der Morgen" {
		t.Errorf("expected (WDR 2, Der Morgen), got (%q, %q)", artist, title)
	}
}

func TestSplitStreamTitle_LeadingSeparatorFallsBack(t *testing.T) {
	// " - " at index 0 means there is no artist segment; the fallback
	// separator takes over.
	artist, title := SplitStreamTitle(" - News: Headlines")
	if artist != " - News" || title != "Headlines" {
		t.Errorf("expected ( - News, Headlines), got (%q, %q)", artist, title)
	}
}

func TestSplitStreamTitle_NoSeparator(t *testing.T) {
	artist, title := SplitStreamTitle("NoSeparatorHere")
	if artist != "NoSeparatorHere" || title != "" {
		t.Errorf("expected whole string as artist, got (%q, %q)", artist, title)
	}
}

func TestSplitStreamTitle_Empty(t *testing.T) {
	artist, title := SplitStreamTitle("")
	if artist != "" || title != "" {
		t.Errorf("expected empty segments, got (%q, %q)", artist, title)
	}
}

func TestNormalizeDisplayText_Transliterates(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Motörhead - Überdosis großer Beat", "Motoerhead - Ueberdosis grosser Beat"},
		{"Sinéad O'Connor - Óró Sé", "Sinead O'Connor - Oro Se"},
		{"Íñigo - Así fue", "Inigo - Asi fue"},
	}
	for _, c := range cases {
		if got := NormalizeDisplayText(c.in); got != c.want {
			t.Errorf("NormalizeDisplayText(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestNormalizeDisplayText_DropsUnmappable(t *testing.T) {
	got := NormalizeDisplayText("Sigur Rós – Hoppípolla ♪\r\n")
	want := "Sigur Ros - Hoppipolla "
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestStatusLine_GreetingAndClock(t *testing.T) {
	at := time.Date(2025, 6, 1, 9, 5, 30, 0, time.UTC)
	got := statusLine("iRadio", at)

	if !strings.HasPrefix(got, "iRadio  09:05") {
		t.Errorf("expected greeting and clock prefix, got %q", got)
	}
	// Trailing pad must be wide enough to cover a stale volume bar.
	if len(got) < len("iRadio  09:05")+barWidth-1 {
		t.Errorf("status line too short to overwrite the volume bar: %q", got)
	}
}
