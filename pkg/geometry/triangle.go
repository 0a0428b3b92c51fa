package geometry

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3     // The three vertices
	Material   core.Material // Material of the triangle
	normal     core.Vec3     // Cached normal vector
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, material core.Material) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: material,
	}
	t.computeNormal()
	return t
}

// computeNormal calculates and caches the triangle's normal vector
func (t *Triangle) computeNormal() {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	t.normal = edge1.Cross(edge2).Normalize()
}

// Intersect finds where the ray meets the triangle's plane, then accepts the
// point only if it lies on the inner side of all three directed edges.
func (t *Triangle) Intersect(ray core.Ray) *core.RayHit {
	denominator := t.normal.Dot(ray.Direction)
	if denominator == 0 {
		return nil
	}

	d := -t.normal.Dot(t.V0)
	tParam := -(t.normal.Dot(ray.Origin) + d) / denominator
	if tParam <= 0 {
		return nil
	}

	position := ray.At(tParam)

	edges := [3][2]core.Vec3{
		{t.V0, t.V1},
		{t.V1, t.V2},
		{t.V2, t.V0},
	}
	for _, e := range edges {
		edge := e[1].Subtract(e[0])
		c := edge.Cross(position.Subtract(e[0]))
		if t.normal.Dot(c) < 0 {
			return nil
		}
	}

	return core.NewRayHit(position, t.normal, ray.Direction, t.Material)
}

// GetNormal returns the triangle's normal vector
func (t *Triangle) GetNormal() core.Vec3 {
	return t.normal
}
