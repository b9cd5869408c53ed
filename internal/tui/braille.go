package tui

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"shpmap/internal/layer"
)

type brailleBuf struct {
	w, h int            // in cells
	m    [][]uint8      // per-cell 8-bit mask
	c    [][]color.RGBA // last color drawn into each cell
	pen  color.RGBA
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	c := make([][]color.RGBA, h)
	for i := range m {
		m[i] = make([]uint8, w)
		c[i] = make([]color.RGBA, w)
	}
	return &brailleBuf{w: w, h: h, m: m, c: c}
}

// setColor sets the color used by subsequent setPixel calls.
func (b *brailleBuf) setColor(c color.RGBA) { b.pen = c }

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
	b.c[cy][cx] = b.pen
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// glyph returns the braille glyph for a cell, or a space when empty.
func (b *brailleBuf) glyph(x, y int) rune {
	if mask := b.m[y][x]; mask != 0 {
		return rune(0x2800 + int(mask))
	}
	return ' '
}

// toStyledLines returns the glyph rows with each run of same-colored cells
// wrapped in a foreground style.
func (b *brailleBuf) toStyledLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		out[y] = b.styledRange(y, 0, b.w)
	}
	return out
}

// styledRange renders cells [x0, x1) of row y.
func (b *brailleBuf) styledRange(y, x0, x1 int) string {
	var sb, run strings.Builder
	var runColor color.RGBA
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runColor == (color.RGBA{}) {
			sb.WriteString(run.String())
		} else {
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(layer.Hex(runColor))).Render(run.String()))
		}
		run.Reset()
	}
	for x := max(x0, 0); x < min(x1, b.w); x++ {
		var c color.RGBA
		if b.m[y][x] != 0 {
			c = b.c[y][x]
		}
		if c != runColor {
			flush()
			runColor = c
		}
		run.WriteRune(b.glyph(x, y))
	}
	flush()
	return sb.String()
}
