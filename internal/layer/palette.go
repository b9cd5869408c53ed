package layer

import (
	"image/color"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette hands out layer colors. Colors are random but reproducible for a
// given seed, and kept bright enough to read on a dark background.
type Palette struct {
	rng *rand.Rand
}

func NewPalette(seed int64) *Palette {
	return &Palette{rng: rand.New(rand.NewSource(seed))}
}

// Next returns the next color.
func (p *Palette) Next() color.RGBA {
	c := colorful.Hsv(p.rng.Float64()*360, 0.55+p.rng.Float64()*0.35, 0.75+p.rng.Float64()*0.25)
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}
