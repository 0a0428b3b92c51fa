package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Image receives the rendered pixels. Each pixel is written exactly once per render.
type Image interface {
	Width() int
	Height() int
	SetPixel(x, y int, color core.Color)
}

// FrameBuffer is an in-memory Image holding unclamped linear colors
type FrameBuffer struct {
	width  int
	height int
	pixels []core.Color
}

// NewFrameBuffer allocates a black frame buffer
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		width:  width,
		height: height,
		pixels: make([]core.Color, width*height),
	}
}

// Width returns the buffer width in pixels
func (fb *FrameBuffer) Width() int { return fb.width }

// Height returns the buffer height in pixels
func (fb *FrameBuffer) Height() int { return fb.height }

// SetPixel stores the color at (x, y); (0, 0) is the top-left corner
func (fb *FrameBuffer) SetPixel(x, y int, color core.Color) {
	fb.pixels[y*fb.width+x] = color
}

// At returns the color stored at (x, y)
func (fb *FrameBuffer) At(x, y int) core.Color {
	return fb.pixels[y*fb.width+x]
}

// ToRGBA converts the buffer to an 8-bit image, clamping channels to [0, 1].
// No gamma correction is applied.
func (fb *FrameBuffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			img.SetRGBA(x, y, colorToRGBA(fb.At(x, y)))
		}
	}
	return img
}

// colorToRGBA converts a linear color to RGBA with clamping
func colorToRGBA(c core.Color) color.RGBA {
	c = c.Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255 * c.R),
		G: uint8(255 * c.G),
		B: uint8(255 * c.B),
		A: 255,
	}
}
