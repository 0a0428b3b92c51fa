package integrator

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// occluded reports whether any entity intersects ray closer than distanceToLight
func (it *Integrator) occluded(ray core.Ray, distanceToLight float64) bool {
	it.raysTraced++

	for _, entity := range it.entities {
		hit := entity.Intersect(ray)
		if hit != nil && hit.Position.Subtract(ray.Origin).Length() < distanceToLight {
			return true
		}
	}
	return false
}

// directLighting sums the unshadowed contribution of every point light.
// The cosine term is not clamped, so lights behind the surface subtract.
func (it *Integrator) directLighting(hit *core.RayHit) core.Color {
	color := core.Black()

	for _, light := range it.lights {
		toLight := light.Position.Subtract(hit.Position)
		distanceToLight := toLight.Length()
		l := toLight.Normalize()

		shadowRay := core.NewRay(hit.Position.Add(l.Multiply(Epsilon)), l)
		if it.occluded(shadowRay, distanceToLight) {
			continue
		}

		contribution := hit.Material.Color.
			MultiplyColor(light.Color).
			Multiply(l.Dot(hit.Normal))
		color = color.Add(contribution)
	}

	return color
}
