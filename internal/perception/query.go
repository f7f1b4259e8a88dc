package perception

import "math"

// Direction is a compass direction relative to the agent
type Direction int

const (
	DirNone Direction = iota - 1
	DirUp
	DirRight
	DirLeft
	DirDown
	DirUpRight
	DirUpLeft
	DirDownRight
	DirDownLeft
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirLeft:
		return "left"
	case DirDown:
		return "down"
	case DirUpRight:
		return "up-right"
	case DirUpLeft:
		return "up-left"
	case DirDownRight:
		return "down-right"
	case DirDownLeft:
		return "down-left"
	default:
		return "none"
	}
}

// Center returns the agent box center, or (0,0) for an empty state
func (s *State) Center() Point {
	if s.Empty {
		return Point{}
	}
	return s.Box.Center()
}

// HasHostile reports whether hostiles are on screen or one was sighted
func (s *State) HasHostile() bool {
	return s.Hostiles > 0 || s.Hostile.Visible
}

// AreaFraction returns pixels as a share of the trimmed grid area
func (s *State) AreaFraction(pixels int) float64 {
	if s.Empty || s.Area() == 0 {
		return 0
	}
	return float64(pixels) / float64(s.Area())
}

// WallDistances returns the cell distances from the agent center to the
// up, right, left and down wall contacts
func (s *State) WallDistances() [4]int {
	c := s.Center()
	return [4]int{
		c.Row - s.Up.Row,
		s.Right.Col - c.Col,
		c.Col - s.Left.Col,
		s.Down.Row - c.Row,
	}
}

// ClosestWall returns the direction and distance of the nearest wall contact.
// Ties go to the earlier of up, right, left, down.
func (s *State) ClosestWall() (Direction, int) {
	if s.Empty {
		return DirNone, 0
	}
	dists := s.WallDistances()
	best := 0
	for i, d := range dists {
		if d < dists[best] {
			best = i
		}
	}
	return Direction(best), dists[best]
}

// DistanceFromAgent returns the Euclidean distance from the agent center to p
func (s *State) DistanceFromAgent(p Point) (float64, bool) {
	if s.Empty {
		return 0, false
	}
	c := s.Center()
	dr, dc := float64(c.Row-p.Row), float64(c.Col-p.Col)
	return math.Sqrt(dr*dr + dc*dc), true
}

// DirectionFromAgent classifies p against the agent box into one of eight
// compass sectors. It reports false for an empty state or a point inside the
// box.
func (s *State) DirectionFromAgent(p Point) (Direction, bool) {
	if s.Empty {
		return DirNone, false
	}
	b := s.Box
	switch {
	case p.Row < b.MinRow:
		switch {
		case p.Col < b.MinCol:
			return DirUpLeft, true
		case p.Col > b.MaxCol:
			return DirUpRight, true
		}
		return DirUp, true
	case p.Row > b.MaxRow:
		switch {
		case p.Col < b.MinCol:
			return DirDownLeft, true
		case p.Col > b.MaxCol:
			return DirDownRight, true
		}
		return DirDown, true
	case p.Col < b.MinCol:
		return DirLeft, true
	case p.Col > b.MaxCol:
		return DirRight, true
	}
	return DirNone, false
}
