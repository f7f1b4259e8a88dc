package frame

// Trim strips the empty margin around the playfield.
//
// The first pass counts background pixels along the main diagonal from the
// top-left corner and removes that many layers from all four sides. The second
// pass counts background pixels along the diagonal from the bottom-right
// corner and removes that many rows from the bottom only; the right-hand
// columns are left in place. A fully empty frame trims to 0x0.
func Trim(f *Frame, empty Color) *Frame {
	skip := 0
	for n := min(f.Height, f.Width); skip < n && f.At(skip, skip) == empty; skip++ {
	}
	out := f.Sub(skip, f.Height-skip, skip, f.Width-skip)
	if out.Empty() {
		return out
	}

	bottom := 0
	for n := min(out.Height, out.Width); bottom < n && out.At(out.Height-1-bottom, out.Width-1-bottom) == empty; bottom++ {
	}
	if bottom == 0 {
		return out
	}
	return out.Sub(0, out.Height-bottom, 0, out.Width)
}
