package geometry

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Center   core.Vec3     // A point on the plane
	Normal   core.Vec3     // Unit normal vector
	Material core.Material // Material of the plane
}

// NewPlane creates a new plane
func NewPlane(center, normal core.Vec3, material core.Material) *Plane {
	return &Plane{
		Center:   center,
		Normal:   normal.Normalize(),
		Material: material,
	}
}

// Intersect tests if a ray intersects with the plane
func (p *Plane) Intersect(ray core.Ray) *core.RayHit {
	denominator := p.Normal.Dot(ray.Direction)

	// Parallel rays never meet the plane
	if denominator == 0 {
		return nil
	}

	t := p.Center.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < 0 {
		return nil
	}

	return core.NewRayHit(ray.At(t), p.Normal.Normalize(), ray.Direction, p.Material)
}
