package main

import (
	"strings"
	"time"
)

// Separator literals and their lengths, kept together so the substring
// offsets below can never drift from the literals they belong to.
const (
	sepArtistTitle    = " - "
	sepArtistTitleLen = len(sepArtistTitle)

	sepFallback    = ": "
	sepFallbackLen = len(sepFallback)
)

// displayTranslit maps characters the panel cannot show onto plain ASCII.
var displayTranslit = map[rune]string{
	'Ä': "Ae", 'Ö': "Oe", 'Ü': "Ue",
	'ä': "ae", 'ö': "oe", 'ü': "ue", 'ß': "ss",
	'À': "A", 'Á': "A", 'Â': "A", 'à': "a", 'á': "a", 'â': "a",
	'È': "E", 'É': "E", 'Ê': "E", 'è': "e", 'é': "e", 'ê': "e",
	'Ì': "I", 'Í': "I", 'Î': "I", 'ì': "i", 'í': "i", 'î': "i",
	'Ò': "O", 'Ó': "O", 'Ô': "O", 'ò': "o", 'ó': "o", 'ô': "o",
	'Ù': "U", 'Ú': "U", 'Û': "U", 'ù': "u", 'ú': "u", 'û': "u",
	'Ç': "C", 'ç': "c", 'Ñ': "N", 'ñ': "n",
	'´': "'", '’': "'", '‘': "'", '“': "\"", '”': "\"",
	'–': "-", '…': "...",
}

// NormalizeDisplayText maps raw stream text onto the panel's character set:
// known accented characters are transliterated, control characters and any
// other non-ASCII runes are dropped.
func NormalizeDisplayText(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	for _, r := range raw {
		if sub, ok := displayTranslit[r]; ok {
			b.WriteString(sub)
			continue
		}
		if r < 0x20 || r == 0x7f || r > 0x7e {
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// SplitStreamTitle splits freeform stream metadata into an artist segment and
// a title segment. The primary separator is " - "; a match anywhere after the
// first character splits the string around it. "Not found" and "found at
// index 0" are deliberately the same case: metadata that leads with the
// separator carries no usable artist, so both fall back to ": " under the
// same rule. When neither separator matches usably, the whole normalized
// string becomes the artist segment and the title segment stays empty.
// Either segment may come out empty; callers write them to the panel as-is.
func SplitStreamTitle(raw string) (artist, title string) {
	s := NormalizeDisplayText(raw)

	if idx := strings.Index(s, sepArtistTitle); idx > 0 {
		return s[:idx], s[idx+sepArtistTitleLen:]
	}

	if idx := strings.Index(s, sepFallback); idx > 0 {
		return s[:idx], s[idx+sepFallbackLen:]
	}

	return s, ""
}

// statusLine is the default status row content: the configured greeting plus
// the wall clock, padded so stale volume bar cells are always overwritten.
func statusLine(greeting string, now time.Time) string {
	return greeting + "  " + now.Format("15:04") + "      "
}
