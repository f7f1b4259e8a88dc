package perception

import (
	"math"

	"framesense/internal/config"
	"framesense/internal/frame"
)

// Classify labels every pixel of f. Colors are compared on the palette's
// single channel, in priority order wall, hostile, agent, portal, so any pixel
// sharing that byte with a reference color takes its category.
// The second result is the number of hostile pixels.
func Classify(f *frame.Frame, p config.Palette) (*Grid, int) {
	g := NewGrid(f.Height, f.Width)
	ch := p.Channel
	wall, hostile, agent, portal := p.Wall[ch], p.Hostile[ch], p.Agent[ch], p.Portal[ch]

	hostilePixels := 0
	for i := range g.Cells {
		v := f.Pix[i*frame.Channels+ch]
		switch v {
		case wall:
			g.Cells[i] = Wall
		case hostile:
			g.Cells[i] = Hostile
			hostilePixels++
		case agent:
			g.Cells[i] = Agent
		case portal:
			g.Cells[i] = Portal
		}
	}
	return g, hostilePixels
}

// EstimateHostiles converts a hostile pixel count into an entity count,
// rounding half to even.
func EstimateHostiles(pixels, avgPerHostile int) int {
	if avgPerHostile <= 0 {
		return 0
	}
	return int(math.RoundToEven(float64(pixels) / float64(avgPerHostile)))
}
