package tui

import "math"

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// micro rounds a canvas coordinate to the nearest braille micro-pixel.
func micro(v float64) int {
	return int(math.Round(v))
}
