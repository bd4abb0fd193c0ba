package main

// volumeRamp is the ordered partial-block glyph ramp, thinnest to fullest.
// The last entry is the full block used for each whole step of five levels.
var volumeRamp = [5]rune{'▏', '▎', '▍', '▋', '█'}

// VolumeBlocks renders a volume level as a bar of exactly barWidth cells:
// one full block per five levels, one partial glyph for the remainder
// (ramp index remainder-1), a "!" overload marker at maxVolume and above,
// space padding on the right. Total and side-effect free; levels outside
// [0, maxVolume] are clamped.
func VolumeBlocks(level int) string {
	if level < 0 {
		level = 0
	}
	if level > maxVolume {
		level = maxVolume
	}

	out := make([]rune, 0, barWidth)

	for i := 0; i < level/5; i++ {
		out = append(out, volumeRamp[len(volumeRamp)-1])
	}
	if rem := level % 5; rem != 0 {
		out = append(out, volumeRamp[rem-1])
	}
	if level >= maxVolume {
		out = append(out, '!')
	}
	for len(out) < barWidth {
		out = append(out, ' ')
	}

	return string(out)
}
