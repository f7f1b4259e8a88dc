package perception

// Category is the semantic label of a classified cell
type Category uint8

const (
	Empty Category = iota
	Wall
	Hostile
	Agent
	Portal
)

// NumCategories is the size of the one-hot encoding
const NumCategories = 5

func (c Category) String() string {
	switch c {
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case Hostile:
		return "hostile"
	case Agent:
		return "agent"
	case Portal:
		return "portal"
	default:
		return "unknown"
	}
}

// Point is a (row, col) cell coordinate
type Point struct {
	Row, Col int
}

// Chebyshev returns the king-move distance between two cells
func (p Point) Chebyshev(q Point) int {
	return max(abs(p.Row-q.Row), abs(p.Col-q.Col))
}

// Box is a closed axis-aligned rectangle of cells
type Box struct {
	MinRow, MinCol int
	MaxRow, MaxCol int
}

// Center returns the box midpoint rounded toward the top-left
func (b Box) Center() Point {
	return Point{Row: (b.MinRow + b.MaxRow) / 2, Col: (b.MinCol + b.MaxCol) / 2}
}

// Contains reports whether p lies inside the box
func (b Box) Contains(p Point) bool {
	return p.Row >= b.MinRow && p.Row <= b.MaxRow && p.Col >= b.MinCol && p.Col <= b.MaxCol
}

// Grid is a classified scene stored row-major
type Grid struct {
	Height int
	Width  int
	Cells  []Category
}

// NewGrid allocates an all-empty grid
func NewGrid(height, width int) *Grid {
	return &Grid{
		Height: height,
		Width:  width,
		Cells:  make([]Category, height*width),
	}
}

// At returns the category of (row, col)
func (g *Grid) At(row, col int) Category {
	return g.Cells[row*g.Width+col]
}

// Set writes the category of (row, col)
func (g *Grid) Set(row, col int, c Category) {
	g.Cells[row*g.Width+col] = c
}

// InBounds reports whether p addresses a cell of the grid
func (g *Grid) InBounds(p Point) bool {
	return p.Row >= 0 && p.Row < g.Height && p.Col >= 0 && p.Col < g.Width
}

// OnBorder reports whether p lies on the outermost ring
func (g *Grid) OnBorder(p Point) bool {
	return p.Row == 0 || p.Col == 0 || p.Row == g.Height-1 || p.Col == g.Width-1
}

// Clone returns an independent copy
func (g *Grid) Clone() *Grid {
	out := &Grid{Height: g.Height, Width: g.Width, Cells: make([]Category, len(g.Cells))}
	copy(out.Cells, g.Cells)
	return out
}

// Count returns the number of cells holding c
func (g *Grid) Count(c Category) int {
	n := 0
	for _, v := range g.Cells {
		if v == c {
			n++
		}
	}
	return n
}

// OneHot flattens the grid into H*W*NumCategories indicator values
func (g *Grid) OneHot() []float32 {
	out := make([]float32, len(g.Cells)*NumCategories)
	for i, c := range g.Cells {
		if c < NumCategories {
			out[i*NumCategories+int(c)] = 1
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
