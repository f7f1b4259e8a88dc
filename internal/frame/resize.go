package frame

import (
	"image"

	"golang.org/x/image/draw"
)

// Resize scales the frame to height x width with nearest-neighbour sampling,
// so no blended colors appear that the palette would not recognise.
func Resize(f *Frame, height, width int) *Frame {
	if f.Empty() || height <= 0 || width <= 0 {
		return New(0, 0)
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	src := f.Image()
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return FromImage(dst)
}
