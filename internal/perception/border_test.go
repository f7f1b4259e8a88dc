package perception

import (
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"framesense/internal/config"
)

func TestReconstruct(t *testing.T) {
	cfg := config.Default().Border

	Convey("When reconstructing the outer wall", t, func() {
		Convey("A closed border is left untouched", func() {
			g := ringGrid(10, 10)
			g.Set(4, 4, Agent)

			out, report, err := Reconstruct(g, cfg)
			So(err, ShouldBeNil)
			So(report.Skipped, ShouldBeFalse)
			So(report.Filled, ShouldEqual, 0)
			So(out.Cells, ShouldResemble, g.Cells)
		})

		Convey("A long gap becomes a portal along the border line only", func() {
			g := ringGrid(12, 12)
			for c := 3; c <= 7; c++ {
				g.Set(11, c, Empty)
			}

			out, report, err := Reconstruct(g, cfg)
			So(err, ShouldBeNil)
			So(report.Portals, ShouldEqual, 1)
			So(report.WallBreaks, ShouldEqual, 0)
			So(report.Filled, ShouldEqual, 5)
			for c := 3; c <= 7; c++ {
				So(out.At(11, c), ShouldEqual, Portal)
				So(out.At(10, c), ShouldEqual, Empty)
			}
		})

		Convey("A gap spanning distance two is re-sealed with wall reaching inward", func() {
			g := ringGrid(10, 10)
			g.Set(5, 0, Empty)
			g.Set(5, 2, Agent)

			out, report, err := Reconstruct(g, cfg)
			So(err, ShouldBeNil)
			So(report.WallBreaks, ShouldEqual, 1)
			So(report.Portals, ShouldEqual, 0)
			So(out.At(5, 0), ShouldEqual, Wall)
			So(out.At(4, 3), ShouldEqual, Wall)
			So(out.At(6, 1), ShouldEqual, Wall)
			So(out.At(5, 4), ShouldEqual, Empty)

			Convey("Existing content inside the patch is never overwritten", func() {
				So(out.At(5, 2), ShouldEqual, Agent)
			})
		})

		Convey("Gaps on every side use that side's inward direction", func() {
			g := ringGrid(10, 10)
			g.Set(0, 5, Empty) // top
			g.Set(5, 9, Empty) // right

			out, report, err := Reconstruct(g, cfg)
			So(err, ShouldBeNil)
			So(report.WallBreaks, ShouldEqual, 2)
			So(out.At(0, 5), ShouldEqual, Wall)
			So(out.At(3, 5), ShouldEqual, Wall)
			So(out.At(4, 5), ShouldEqual, Empty)
			So(out.At(5, 9), ShouldEqual, Wall)
			So(out.At(5, 6), ShouldEqual, Wall)
			So(out.At(5, 5), ShouldEqual, Empty)
		})

		Convey("A portal gap wrapping a corner fills only the border line", func() {
			g := ringGrid(10, 10)
			for _, p := range []Point{{7, 0}, {8, 0}, {9, 0}, {9, 1}, {9, 2}} {
				g.Set(p.Row, p.Col, Empty)
			}

			out, report, err := Reconstruct(g, cfg)
			So(err, ShouldBeNil)
			So(report.Portals, ShouldEqual, 1)
			So(report.WallBreaks, ShouldEqual, 0)
			So(report.Filled, ShouldEqual, 5)
			for _, p := range []Point{{7, 0}, {8, 0}, {9, 0}, {9, 1}, {9, 2}} {
				So(out.At(p.Row, p.Col), ShouldEqual, Portal)
			}
			for r := 1; r < 9; r++ {
				for c := 1; c < 9; c++ {
					So(out.At(r, c), ShouldEqual, Empty)
				}
			}
		})

		Convey("A wall break wrapping a corner reaches inward from each side", func() {
			g := ringGrid(10, 10)
			g.Set(8, 0, Empty)
			g.Set(9, 0, Empty)

			out, report, err := Reconstruct(g, cfg)
			So(err, ShouldBeNil)
			So(report.WallBreaks, ShouldEqual, 1)
			So(report.Portals, ShouldEqual, 0)
			So(report.Filled, ShouldEqual, 9)
			So(out.At(8, 0), ShouldEqual, Wall)
			So(out.At(9, 0), ShouldEqual, Wall)

			Convey("The left side reaches three cells right", func() {
				So(out.At(8, 3), ShouldEqual, Wall)
				So(out.At(8, 4), ShouldEqual, Empty)
				So(out.At(7, 3), ShouldEqual, Wall)
			})

			Convey("The bottom side reaches three cells up", func() {
				So(out.At(6, 1), ShouldEqual, Wall)
				So(out.At(5, 1), ShouldEqual, Empty)
				So(out.At(6, 2), ShouldEqual, Empty)
			})
		})

		Convey("The input grid is not modified", func() {
			g := ringGrid(12, 12)
			for c := 3; c <= 7; c++ {
				g.Set(11, c, Empty)
			}
			before := g.Clone()

			_, _, err := Reconstruct(g, cfg)
			So(err, ShouldBeNil)
			So(g.Cells, ShouldResemble, before.Cells)
		})

		Convey("Without a wall at (0,0) the step is an observable no-op", func() {
			g := ringGrid(8, 8)
			g.Set(0, 0, Empty)
			g.Set(0, 4, Empty)

			out, report, err := Reconstruct(g, cfg)
			So(err, ShouldBeNil)
			So(report.Skipped, ShouldBeTrue)
			So(report.Reason, ShouldContainSubstring, "corner")
			So(out.Cells, ShouldResemble, g.Cells)
		})

		Convey("Grids smaller than 3x3 are skipped", func() {
			_, report, err := Reconstruct(ringGrid(2, 5), cfg)
			So(err, ShouldBeNil)
			So(report.Skipped, ShouldBeTrue)
		})
	})
}

func TestReconstructIdempotent(t *testing.T) {
	cfg := config.Default().Border
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 50; trial++ {
		h, w := 3+rng.Intn(12), 3+rng.Intn(12)
		g := ringGrid(h, w)
		for i := range g.Cells {
			r, c := i/w, i%w
			if g.OnBorder(Point{r, c}) {
				// knock random holes into the border, keeping the anchor corner
				if (r != 0 || c != 0) && rng.Intn(4) == 0 {
					g.Cells[i] = Empty
				}
				continue
			}
			g.Cells[i] = Category(rng.Intn(NumCategories))
		}

		once, _, err := Reconstruct(g, cfg)
		if err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}
		twice, report, err := Reconstruct(once, cfg)
		if err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}
		if report.Filled != 0 {
			t.Errorf("trial %d: second pass filled %d cells\nonce:\n%s\ntwice:\n%s", trial, report.Filled, once, twice)
		}
	}
}

func TestPerimeterOrder(t *testing.T) {
	p := newPerimeter(3, 4)
	want := []Point{
		{0, 0}, {1, 0}, // left column
		{2, 0}, {2, 1}, {2, 2}, // bottom row
		{2, 3}, {1, 3}, // right column
		{0, 3}, {0, 2}, {0, 1}, // top row
	}
	if p.length != len(want) {
		t.Fatalf("perimeter length = %d, want %d", p.length, len(want))
	}
	for k, w := range want {
		if got, _ := p.at(k); got != w {
			t.Errorf("at(%d) = %v, want %v", k, got, w)
		}
	}
	if got, seg := p.at(p.length); got != (Point{}) || seg != segTop {
		t.Errorf("at(length) = %v/%v, want origin on top segment", got, seg)
	}
}
