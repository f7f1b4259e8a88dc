package perception

import (
	"errors"
	"fmt"

	"framesense/internal/config"
)

// ErrBorderWalkExhausted means the perimeter walk did not return to its start
var ErrBorderWalkExhausted = errors.New("border walk did not close the perimeter")

// FillReport describes what Reconstruct did to the outer wall
type FillReport struct {
	Skipped    bool
	Reason     string
	WallBreaks int // gaps re-sealed with wall
	Portals    int // gaps filled as portal openings
	Filled     int // cells overwritten
}

type segment int

const (
	segLeft segment = iota
	segBottom
	segRight
	segTop
)

// inward is the unit step from each border segment toward the interior
var inward = [4]Point{
	segLeft:   {Row: 0, Col: 1},
	segBottom: {Row: -1, Col: 0},
	segRight:  {Row: 0, Col: -1},
	segTop:    {Row: 1, Col: 0},
}

// perimeter enumerates the outer ring counter-clockwise from (0,0):
// down the left column, along the bottom row, up the right column, back
// along the top row.
type perimeter struct {
	h, w   int
	length int
}

func newPerimeter(h, w int) perimeter {
	return perimeter{h: h, w: w, length: 2*(h-1) + 2*(w-1)}
}

// at returns the k-th perimeter cell and the segment it is reached on
func (p perimeter) at(k int) (Point, segment) {
	if k > 0 && k%p.length == 0 {
		return Point{}, segTop
	}
	k %= p.length
	left, bottom, right := p.h-1, p.w-1, p.h-1
	switch {
	case k < left:
		return Point{Row: k, Col: 0}, segLeft
	case k < left+bottom:
		return Point{Row: p.h - 1, Col: k - left}, segBottom
	case k < left+bottom+right:
		return Point{Row: p.h - 1 - (k - left - bottom), Col: p.w - 1}, segRight
	default:
		return Point{Row: 0, Col: p.w - 1 - (k - left - bottom - right)}, segTop
	}
}

// segments lists the border segments the k-th cell lies on: two at a corner,
// one elsewhere
func (p perimeter) segments(k int) []segment {
	switch k % p.length {
	case 0:
		return []segment{segLeft, segTop}
	case p.h - 1:
		return []segment{segLeft, segBottom}
	case p.h - 1 + p.w - 1:
		return []segment{segBottom, segRight}
	case 2*(p.h-1) + p.w - 1:
		return []segment{segRight, segTop}
	}
	_, seg := p.at(k)
	return []segment{seg}
}

// Reconstruct repairs gaps in the outer wall and returns the repaired copy.
// Short gaps are re-sealed with a wall patch reaching inward; long gaps become
// portal openings along the border line. A gap that wraps a corner is patched
// per segment, so each side reaches inward along its own normal. Only Empty cells are overwritten and
// g itself is never modified.
//
// The walk needs a wall at (0,0) to anchor on. Without one, or on grids
// smaller than 3x3, the copy is returned untouched and the report says why.
func Reconstruct(g *Grid, cfg config.BorderConfig) (*Grid, FillReport, error) {
	out := g.Clone()
	var report FillReport

	if g.Height < 3 || g.Width < 3 {
		report.Skipped = true
		report.Reason = fmt.Sprintf("grid %dx%d is smaller than 3x3", g.Height, g.Width)
		return out, report, nil
	}
	if g.At(0, 0) != Wall {
		report.Skipped = true
		report.Reason = fmt.Sprintf("corner (0,0) is %s, not wall", g.At(0, 0))
		return out, report, nil
	}

	per := newPerimeter(g.Height, g.Width)
	var last Point
	lastK := 0
	for k := 1; k <= 2*per.length; k++ {
		cur, _ := per.at(k)
		if out.At(cur.Row, cur.Col) == Wall {
			if d := cur.Chebyshev(last); d > 1 {
				if d < cfg.WallBreakMaxGap {
					report.WallBreaks++
					report.Filled += out.patch(per, lastK, k, cfg.WallPatchWidth, Wall)
				} else {
					report.Portals++
					report.Filled += out.patch(per, lastK, k, cfg.PortalPatchWidth, Portal)
				}
			}
			last, lastK = cur, k
		}
		if k%per.length == 0 {
			return out, report, nil
		}
	}
	return g.Clone(), FillReport{}, fmt.Errorf("%w after %d steps", ErrBorderWalkExhausted, 2*per.length)
}

// patch fills the Empty cells of the perimeter run from index from to index
// to, each pushed width cells inward along its own segment's normal. Corners
// are pushed along both segments they join. It returns the cells written.
func (g *Grid) patch(per perimeter, from, to, width int, c Category) int {
	filled := 0
	for k := from; k <= to; k++ {
		p, _ := per.at(k)
		for _, seg := range per.segments(k) {
			n := inward[seg]
			for step := 0; step <= width; step++ {
				q := Point{Row: p.Row + n.Row*step, Col: p.Col + n.Col*step}
				if !g.InBounds(q) {
					break
				}
				if i := q.Row*g.Width + q.Col; g.Cells[i] == Empty {
					g.Cells[i] = c
					filled++
				}
			}
		}
	}
	return filled
}
