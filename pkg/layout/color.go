package layout

import (
	"fmt"
	"math"
)

// RGB is a color with channels in the 0-255 range. Channels are floats so
// that color animations can interpolate without rounding drift.
type RGB struct {
	R, G, B float64
}

// Lerp returns the color t of the way from c to to.
func (c RGB) Lerp(to RGB, t float64) RGB {
	return RGB{
		R: c.R + (to.R-c.R)*t,
		G: c.G + (to.G-c.G)*t,
		B: c.B + (to.B-c.B)*t,
	}
}

// Hex returns the color as a #rrggbb string, clamping each channel.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

// Normalized returns the channels scaled to [0, 1].
func (c RGB) Normalized() (r, g, b float64) {
	return float64(channel(c.R)) / 255, float64(channel(c.G)) / 255, float64(channel(c.B)) / 255
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}
