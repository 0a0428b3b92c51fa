package geometry

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material core.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material core.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Intersect tests the ray against the sphere using the geometric method.
// A sphere whose center lies behind the ray origin is never hit, even when
// the origin is inside the sphere.
func (s *Sphere) Intersect(ray core.Ray) *core.RayHit {
	l := s.Center.Subtract(ray.Origin)

	tca := l.Dot(ray.Direction)
	if tca < 0 {
		return nil
	}

	radius2 := s.Radius * s.Radius
	d2 := l.LengthSquared() - tca*tca
	if d2 > radius2 {
		return nil
	}

	thc := math.Sqrt(radius2 - d2)
	t := tca - thc
	if t <= 0 {
		t = tca + thc
		if t <= 0 {
			return nil
		}
	}

	position := ray.At(t)
	normal := position.Subtract(s.Center).Normalize()
	return core.NewRayHit(position, normal, ray.Direction, s.Material)
}
