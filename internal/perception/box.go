package perception

// LocateAgent returns the smallest box holding every Agent cell.
// ok is false when the grid contains no Agent cell.
func LocateAgent(g *Grid) (box Box, ok bool) {
	box = Box{MinRow: g.Height, MinCol: g.Width, MaxRow: -1, MaxCol: -1}
	for i, c := range g.Cells {
		if c != Agent {
			continue
		}
		r, col := i/g.Width, i%g.Width
		box.MinRow = min(box.MinRow, r)
		box.MaxRow = max(box.MaxRow, r)
		box.MinCol = min(box.MinCol, col)
		box.MaxCol = max(box.MaxCol, col)
		ok = true
	}
	if !ok {
		return Box{}, false
	}
	return box, true
}
