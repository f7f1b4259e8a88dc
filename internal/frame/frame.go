package frame

import (
	"fmt"
	"image"
)

// Channels is the number of color bytes per pixel
const Channels = 3

// Color is an RGB triple
type Color [Channels]uint8

// Frame is a rendered screen stored row-major, three bytes per pixel
type Frame struct {
	Height int
	Width  int
	Pix    []uint8
}

// New allocates a black frame of the given size
func New(height, width int) *Frame {
	if height < 0 || width < 0 {
		height, width = 0, 0
	}
	return &Frame{
		Height: height,
		Width:  width,
		Pix:    make([]uint8, height*width*Channels),
	}
}

// FromPixels wraps an existing row-major RGB buffer
func FromPixels(height, width int, pix []uint8) (*Frame, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("frame dimensions must be positive, got %dx%d", height, width)
	}
	if len(pix) != height*width*Channels {
		return nil, fmt.Errorf("frame buffer has %d bytes, want %d for %dx%d", len(pix), height*width*Channels, height, width)
	}
	return &Frame{Height: height, Width: width, Pix: pix}, nil
}

// FromImage converts any image into a frame, dropping alpha
func FromImage(img image.Image) *Frame {
	b := img.Bounds()
	f := New(b.Dy(), b.Dx())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			f.Set(y-b.Min.Y, x-b.Min.X, Color{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8)})
		}
	}
	return f
}

// Empty reports whether the frame has no pixels
func (f *Frame) Empty() bool {
	return f.Height == 0 || f.Width == 0
}

// At returns the pixel at (row, col)
func (f *Frame) At(row, col int) Color {
	i := (row*f.Width + col) * Channels
	return Color{f.Pix[i], f.Pix[i+1], f.Pix[i+2]}
}

// Set writes the pixel at (row, col)
func (f *Frame) Set(row, col int, c Color) {
	i := (row*f.Width + col) * Channels
	f.Pix[i], f.Pix[i+1], f.Pix[i+2] = c[0], c[1], c[2]
}

// Fill paints a closed rectangle, clipped to the frame
func (f *Frame) Fill(r0, c0, r1, c1 int, c Color) {
	r0, c0 = max(r0, 0), max(c0, 0)
	r1, c1 = min(r1, f.Height-1), min(c1, f.Width-1)
	for r := r0; r <= r1; r++ {
		for col := c0; col <= c1; col++ {
			f.Set(r, col, c)
		}
	}
}

// Sub copies the rows [r0, r1) and columns [c0, c1) into a new frame
func (f *Frame) Sub(r0, r1, c0, c1 int) *Frame {
	if r1 <= r0 || c1 <= c0 {
		return New(0, 0)
	}
	out := New(r1-r0, c1-c0)
	rowBytes := out.Width * Channels
	for r := r0; r < r1; r++ {
		src := (r*f.Width + c0) * Channels
		dst := (r - r0) * rowBytes
		copy(out.Pix[dst:dst+rowBytes], f.Pix[src:src+rowBytes])
	}
	return out
}

// Image exposes the frame as an RGBA image
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for r := 0; r < f.Height; r++ {
		for c := 0; c < f.Width; c++ {
			src := (r*f.Width + c) * Channels
			dst := img.PixOffset(c, r)
			img.Pix[dst] = f.Pix[src]
			img.Pix[dst+1] = f.Pix[src+1]
			img.Pix[dst+2] = f.Pix[src+2]
			img.Pix[dst+3] = 0xff
		}
	}
	return img
}
