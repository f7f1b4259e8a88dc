package perception

import (
	"strings"

	"framesense/internal/config"
	"framesense/internal/frame"
)

// gridOf parses a picture of a grid: '.' empty, '#' wall, 'E' hostile,
// 'A' agent, 'P' portal.
func gridOf(rows ...string) *Grid {
	g := NewGrid(len(rows), len(rows[0]))
	for r, line := range rows {
		for c, ch := range line {
			switch ch {
			case '#':
				g.Set(r, c, Wall)
			case 'E':
				g.Set(r, c, Hostile)
			case 'A':
				g.Set(r, c, Agent)
			case 'P':
				g.Set(r, c, Portal)
			}
		}
	}
	return g
}

func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.Height; r++ {
		for c := 0; c < g.Width; c++ {
			sb.WriteByte(".#EAP"[g.At(r, c)])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ringGrid returns an h x w grid whose outermost ring is wall
func ringGrid(h, w int) *Grid {
	g := NewGrid(h, w)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			if r == 0 || c == 0 || r == h-1 || c == w-1 {
				g.Set(r, c, Wall)
			}
		}
	}
	return g
}

// paint renders a grid with the default palette, surrounded by margin
// background pixels on every side
func paint(g *Grid, margin int) *frame.Frame {
	p := config.Default().Palette
	colors := map[Category]frame.Color{
		Empty:   p.Empty,
		Wall:    p.Wall,
		Hostile: p.Hostile,
		Agent:   p.Agent,
		Portal:  p.Portal,
	}
	f := frame.New(g.Height+2*margin, g.Width+2*margin)
	for r := 0; r < g.Height; r++ {
		for c := 0; c < g.Width; c++ {
			f.Set(r+margin, c+margin, colors[g.At(r, c)])
		}
	}
	return f
}
