package renderer

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Camera generates primary rays from a pinhole at the world origin looking
// down +Z with a fixed 60 degree vertical field of view.
type Camera struct {
	width       int
	height      int
	aspectRatio float64
	scale       float64
	origin      core.Vec3
}

// NewCamera creates a camera for an image of the given size
func NewCamera(width, height int) *Camera {
	return &Camera{
		width:  width,
		height: height,
		// Integer division: non-landscape images collapse the horizontal extent
		aspectRatio: float64(width / height),
		scale:       math.Tan(math.Pi / 6),
		origin:      core.NewVec3(0, 0, 0),
	}
}

// GenerateRay returns the normalized primary ray through pixel (i, j) at the
// sub-pixel offset (offsetX, offsetY), each in [0, 1).
func (c *Camera) GenerateRay(i, j int, offsetX, offsetY float64) core.Ray {
	x := (2*(float64(i)+offsetX)/float64(c.width) - 1) * c.aspectRatio * c.scale
	y := (1 - 2*(float64(j)+offsetY)/float64(c.height)) * c.scale

	direction := core.NewVec3(x, y, 1).Normalize()
	return core.NewRay(c.origin, direction)
}

// SubpixelOffsets returns the regular grid coordinates k/(n+1) for k = 1..n
func SubpixelOffsets(n int) []float64 {
	offsets := make([]float64, n)
	for k := 1; k <= n; k++ {
		offsets[k-1] = float64(k) / float64(n+1)
	}
	return offsets
}
