package noise

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSVToRGB converts a hue (degrees, wrapped into [0, 360)), saturation
// and value (both clamped to [0, 1]) to RGB components in [0, 1].
// Generative patterns cycle hue over the loop phase with this mapping.
func HSVToRGB(h, s, v float64) (r, g, b float64) {
	h = wrap360(h)
	s = clamp01(s)
	v = clamp01(v)
	c := colorful.Hsv(h, s, v)
	return c.R, c.G, c.B
}

func wrap360(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
