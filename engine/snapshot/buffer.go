package snapshot

import (
	"image"
	"image/color"
	"math"
)

// FrameBuffer holds the rendering target as flat slices for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA interleaved, len = W*H*4
	Depth  []float64 // NDC depth per pixel, len = W*H, initialized to +inf
}

// NewFrameBuffer allocates a color buffer filled with background and a +inf depth buffer.
func NewFrameBuffer(w, h int, background color.NRGBA) *FrameBuffer {
	n := w * h
	depth := make([]float64, n)
	for i := range depth {
		depth[i] = math.Inf(1)
	}
	c := make([]uint8, n*4)
	if background != (color.NRGBA{}) {
		for i := 0; i < len(c); i += 4 {
			c[i], c[i+1], c[i+2], c[i+3] = background.R, background.G, background.B, background.A
		}
	}
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  c,
		Depth:  depth,
	}
}

// Image copies the color buffer into an NRGBA image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}
