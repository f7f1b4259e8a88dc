package perception

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"framesense/internal/config"
	"framesense/internal/frame"
)

func TestClassify(t *testing.T) {
	Convey("When classifying a frame", t, func() {
		p := config.Default().Palette
		f := frame.New(2, 3)
		f.Set(0, 0, p.Wall)
		f.Set(0, 1, p.Hostile)
		f.Set(0, 2, p.Agent)
		f.Set(1, 0, p.Portal)
		f.Set(1, 1, p.Hostile)
		f.Set(1, 2, frame.Color{1, 2, 3})

		g, hostilePixels := Classify(f, p)

		Convey("Each reference color maps to its category", func() {
			So(g.Height, ShouldEqual, 2)
			So(g.Width, ShouldEqual, 3)
			So(g.At(0, 0), ShouldEqual, Wall)
			So(g.At(0, 1), ShouldEqual, Hostile)
			So(g.At(0, 2), ShouldEqual, Agent)
			So(g.At(1, 0), ShouldEqual, Portal)
			So(g.At(1, 2), ShouldEqual, Empty)
		})

		Convey("Hostile pixels are counted", func() {
			So(hostilePixels, ShouldEqual, 2)
		})

		Convey("Only the first channel is compared", func() {
			// Known aliasing: a pixel sharing the red byte takes the category.
			f := frame.New(1, 2)
			f.Set(0, 0, frame.Color{p.Wall[0], 0, 0})
			f.Set(0, 1, frame.Color{p.Agent[0], 255, 255})

			g, _ := Classify(f, p)
			So(g.At(0, 0), ShouldEqual, Wall)
			So(g.At(0, 1), ShouldEqual, Agent)
		})

		Convey("A different channel can be selected", func() {
			p.Channel = 2
			f := frame.New(1, 1)
			f.Set(0, 0, frame.Color{0, 0, p.Portal[2]})

			g, _ := Classify(f, p)
			So(g.At(0, 0), ShouldEqual, Portal)
		})
	})
}

func TestEstimateHostiles(t *testing.T) {
	tests := []struct {
		pixels, avg, want int
	}{
		{0, 74, 0},
		{37, 74, 0}, // half rounds to even
		{74, 74, 1},
		{111, 74, 2}, // 1.5 rounds to even
		{148, 74, 2},
		{200, 74, 3},
		{10, 0, 0},
	}
	for _, tt := range tests {
		if got := EstimateHostiles(tt.pixels, tt.avg); got != tt.want {
			t.Errorf("EstimateHostiles(%d, %d) = %d, want %d", tt.pixels, tt.avg, got, tt.want)
		}
	}
}

func TestLocateAgent(t *testing.T) {
	Convey("When locating the agent", t, func() {
		Convey("A grid without agent cells has no box", func() {
			_, ok := LocateAgent(ringGrid(5, 5))
			So(ok, ShouldBeFalse)
		})

		Convey("Scattered agent cells give their closed bounding rectangle", func() {
			g := gridOf(
				"#######",
				"#..A..#",
				"#.....#",
				"#A....#",
				"#....A#",
				"#######",
			)
			box, ok := LocateAgent(g)
			So(ok, ShouldBeTrue)
			So(box, ShouldResemble, Box{MinRow: 1, MinCol: 1, MaxRow: 4, MaxCol: 5})
			So(box.Center(), ShouldResemble, Point{Row: 2, Col: 3})
		})
	})
}

func TestOneHot(t *testing.T) {
	g := gridOf("#A", "P.")
	got := g.OneHot()
	if len(got) != 4*NumCategories {
		t.Fatalf("expected %d values, got %d", 4*NumCategories, len(got))
	}
	want := map[int]bool{
		0*NumCategories + int(Wall):   true,
		1*NumCategories + int(Agent):  true,
		2*NumCategories + int(Portal): true,
		3*NumCategories + int(Empty):  true,
	}
	for i, v := range got {
		if want[i] != (v == 1) {
			t.Errorf("index %d: got %v", i, v)
		}
	}
}
