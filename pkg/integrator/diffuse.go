package integrator

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// shadeDiffuse combines direct lighting with an optional ambient bounce
// estimated from uniform hemisphere samples around the normal.
func (it *Integrator) shadeDiffuse(hit *core.RayHit, depth int, sampler core.Sampler) core.Color {
	direct := it.directLighting(hit)
	if !it.config.Options.AmbientLightingEnabled {
		return direct
	}

	const pdf = 1 / (2 * math.Pi)

	nt, nb := core.CoordinateSystem(hit.Normal)
	origin := hit.Position.Add(hit.Normal.Multiply(Epsilon))
	samples := it.config.DiffuseSamples()

	indirect := core.Black()
	for i := 0; i < samples; i++ {
		sample := sampler.Get2D()
		direction := core.LocalToWorld(core.SampleHemisphere(sample), hit.Normal, nt, nb)

		radiance := it.RayColor(core.NewRay(origin, direction), depth+1, sampler)
		indirect = indirect.Add(radiance.Multiply(sample.X * pdf))
	}
	indirect = indirect.Divide(float64(samples))

	return direct.Add(indirect.MultiplyColor(hit.Material.Color))
}
