package perception

import (
	"errors"
	"fmt"

	"framesense/internal/config"
)

var (
	// ErrScanExhausted means some ray never met a wall or the border
	ErrScanExhausted = errors.New("no walls found in every direction")
	// ErrBoxOutsideGrid means a scan was requested from a box the grid does not hold
	ErrBoxOutsideGrid = errors.New("agent box lies outside the grid")
)

// Sighting is the first cell of some category met while scanning.
// Visible is false when nothing was seen; Point is then meaningless.
type Sighting struct {
	Point
	Visible bool
}

// ScanResult holds the wall contact of each cardinal direction and the
// first hostile and portal cells met by any ray
type ScanResult struct {
	Left, Right, Up, Down Point
	Hostile               Sighting
	Portal                Sighting
}

// Contacts returns the wall contacts in scan order: left, right, up, down
func (r ScanResult) Contacts() [4]Point {
	return [4]Point{r.Left, r.Right, r.Up, r.Down}
}

// RayOrigins are the box perimeter points rays start from
type RayOrigins struct {
	Left, Right, Up, Down []Point
}

// ScanPoints samples rows evenly spaced rows on the left and right edges of
// the box and cols evenly spaced columns on its top and bottom edges.
// Every edge gets at least one point.
func ScanPoints(box Box, rows, cols int) RayOrigins {
	rows, cols = max(rows, 1), max(cols, 1)
	ys := intLinspace(box.MinRow, box.MaxRow, rows)
	xs := intLinspace(box.MinCol, box.MaxCol, cols)

	o := RayOrigins{
		Left:  make([]Point, len(ys)),
		Right: make([]Point, len(ys)),
		Up:    make([]Point, len(xs)),
		Down:  make([]Point, len(xs)),
	}
	for i, y := range ys {
		o.Left[i] = Point{Row: y, Col: box.MinCol}
		o.Right[i] = Point{Row: y, Col: box.MaxCol}
	}
	for i, x := range xs {
		o.Up[i] = Point{Row: box.MinRow, Col: x}
		o.Down[i] = Point{Row: box.MaxRow, Col: x}
	}
	return o
}

// intLinspace truncates count evenly spaced values from start to stop
func intLinspace(start, stop, count int) []int {
	out := make([]int, count)
	if count == 1 {
		out[0] = start
		return out
	}
	step := float64(stop-start) / float64(count-1)
	for k := range out {
		out[k] = int(float64(start) + float64(k)*step)
	}
	return out
}

type ray struct {
	origins []Point
	step    Point
	contact *Point
	border  func(p Point) bool
	done    bool
}

// Scan casts rays from the box outward in the four cardinal directions.
//
// All rays of a direction advance together one cell per step. A direction is
// resolved by the first wall cell or border cell it meets, which becomes its
// contact, or by a portal cell, which leaves the border fallback contact in
// place. Hostiles do not stop a ray. Within a step directions are checked
// left, right, up, down, and the first hostile and first portal seen win.
func Scan(g *Grid, box Box, cfg config.ScanConfig) (ScanResult, error) {
	if !g.InBounds(Point{box.MinRow, box.MinCol}) || !g.InBounds(Point{box.MaxRow, box.MaxCol}) {
		return ScanResult{}, fmt.Errorf("%w: box %+v, grid %dx%d", ErrBoxOutsideGrid, box, g.Height, g.Width)
	}

	o := ScanPoints(box, cfg.RowSamples, cfg.ColSamples)
	res := ScanResult{
		Left:  Point{Row: o.Left[0].Row, Col: 0},
		Right: Point{Row: o.Right[0].Row, Col: g.Width - 1},
		Up:    Point{Row: 0, Col: o.Up[0].Col},
		Down:  Point{Row: g.Height - 1, Col: o.Down[0].Col},
	}

	rays := [4]ray{
		{origins: o.Left, step: Point{0, -1}, contact: &res.Left, border: func(p Point) bool { return p.Col == 0 }},
		{origins: o.Right, step: Point{0, 1}, contact: &res.Right, border: func(p Point) bool { return p.Col == g.Width-1 }},
		{origins: o.Up, step: Point{-1, 0}, contact: &res.Up, border: func(p Point) bool { return p.Row == 0 }},
		{origins: o.Down, step: Point{1, 0}, contact: &res.Down, border: func(p Point) bool { return p.Row == g.Height-1 }},
	}

	resolved := 0
	limit := max(g.Height, g.Width)
	for i := 0; i <= limit; i++ {
		for d := range rays {
			r := &rays[d]
			if r.done {
				continue
			}
			for _, origin := range r.origins {
				p := Point{Row: origin.Row + r.step.Row*i, Col: origin.Col + r.step.Col*i}
				c := g.At(p.Row, p.Col)
				if c == Wall || r.border(p) {
					r.done = true
					*r.contact = p
				}
				if c == Portal {
					r.done = true
					if !res.Portal.Visible {
						res.Portal = Sighting{Point: p, Visible: true}
					}
				} else if c == Hostile && !res.Hostile.Visible {
					res.Hostile = Sighting{Point: p, Visible: true}
				}
				if r.done {
					resolved++
					break
				}
			}
		}
		if resolved == len(rays) {
			return res, nil
		}
	}
	return ScanResult{}, fmt.Errorf("%w within %d steps", ErrScanExhausted, limit)
}
