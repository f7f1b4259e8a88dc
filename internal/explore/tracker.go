package explore

import (
	"framesense/internal/config"
	"framesense/internal/perception"
)

// Coverage is the exploration status of one mask cell
type Coverage uint8

const (
	Unseen       Coverage = iota
	AgentVisited          // occupied by the agent box
	RayScanned            // crossed by a scan ray
)

// Mask is a row-major coverage grid
type Mask struct {
	Height int
	Width  int
	Cells  []Coverage
}

// At returns the coverage of (row, col)
func (m Mask) At(row, col int) Coverage {
	return m.Cells[row*m.Width+col]
}

// Tracker accumulates which cells the agent has occupied or scanned during
// one episode. It is the only writer of its mask and is not safe for
// concurrent use.
type Tracker struct {
	mask    Mask
	scan    config.ScanConfig
	visited int
	scanned int
}

// NewTracker creates a tracker with an all-unseen h x w mask
func NewTracker(h, w int, scan config.ScanConfig) *Tracker {
	return &Tracker{
		mask: Mask{Height: h, Width: w, Cells: make([]Coverage, h*w)},
		scan: scan,
	}
}

// Reset clears the mask for a new episode
func (t *Tracker) Reset() {
	clear(t.mask.Cells)
	t.visited = 0
	t.scanned = 0
}

// Cover marks the agent box and scan rays of s.
// It returns the newly visited and newly scanned cell counts, both zero for
// an empty state.
func (t *Tracker) Cover(s *perception.State) (visited, scanned int) {
	if s.Empty {
		return 0, 0
	}
	visited = t.MarkAgentArea(s.Box)
	scanned = t.MarkScanTraces(s.Box, s.ScanResult)
	return visited, scanned
}

// MarkAgentArea marks the unseen cells of the closed box, clipped to the
// mask, as visited and returns how many were new
func (t *Tracker) MarkAgentArea(box perception.Box) int {
	r0, c0 := max(box.MinRow, 0), max(box.MinCol, 0)
	r1, c1 := min(box.MaxRow, t.mask.Height-1), min(box.MaxCol, t.mask.Width-1)

	n := 0
	for r := r0; r <= r1; r++ {
		row := t.mask.Cells[r*t.mask.Width : (r+1)*t.mask.Width]
		for c := c0; c <= c1; c++ {
			if row[c] == Unseen {
				row[c] = AgentVisited
				n++
			}
		}
	}
	t.visited += n
	return n
}

// MarkScanTraces marks the unseen cells between each ray origin and the
// wall contact of its direction. Only straight segments are drawn; an
// origin not aligned with its contact contributes nothing.
func (t *Tracker) MarkScanTraces(box perception.Box, contacts perception.ScanResult) int {
	o := perception.ScanPoints(box, t.scan.RowSamples, t.scan.ColSamples)

	n := 0
	for _, p := range o.Left {
		n += t.markLine(p, contacts.Left)
	}
	for _, p := range o.Right {
		n += t.markLine(p, contacts.Right)
	}
	for _, p := range o.Up {
		n += t.markLine(p, contacts.Up)
	}
	for _, p := range o.Down {
		n += t.markLine(p, contacts.Down)
	}
	t.scanned += n
	return n
}

func (t *Tracker) markLine(from, to perception.Point) int {
	n := 0
	switch {
	case from.Row == to.Row:
		for c := min(from.Col, to.Col); c <= max(from.Col, to.Col); c++ {
			n += t.markScanned(from.Row, c)
		}
	case from.Col == to.Col:
		for r := min(from.Row, to.Row); r <= max(from.Row, to.Row); r++ {
			n += t.markScanned(r, from.Col)
		}
	}
	return n
}

func (t *Tracker) markScanned(r, c int) int {
	if r < 0 || r >= t.mask.Height || c < 0 || c >= t.mask.Width {
		return 0
	}
	i := r*t.mask.Width + c
	if t.mask.Cells[i] != Unseen {
		return 0
	}
	t.mask.Cells[i] = RayScanned
	return 1
}

// Counts returns the cumulative visited and scanned cells since Reset
func (t *Tracker) Counts() (visited, scanned int) {
	return t.visited, t.scanned
}

// Covered returns the number of cells no longer unseen
func (t *Tracker) Covered() int {
	return t.visited + t.scanned
}

// Fraction returns the covered share of the mask
func (t *Tracker) Fraction() float64 {
	if len(t.mask.Cells) == 0 {
		return 0
	}
	return float64(t.Covered()) / float64(len(t.mask.Cells))
}

// Mask returns a copy of the coverage mask
func (t *Tracker) Mask() Mask {
	cells := make([]Coverage, len(t.mask.Cells))
	copy(cells, t.mask.Cells)
	return Mask{Height: t.mask.Height, Width: t.mask.Width, Cells: cells}
}
