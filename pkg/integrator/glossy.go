package integrator

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// shadeGlossy adds a blurred reflection to direct lighting. Samples are drawn
// around the mirror direction and pulled halfway back toward it.
func (it *Integrator) shadeGlossy(hit *core.RayHit, depth int, sampler core.Sampler) core.Color {
	const pdf = 1 / math.Pi

	direct := it.directLighting(hit)

	reflected := Reflect(hit.Incident, hit.Normal)
	nt, nb := core.CoordinateSystem(reflected)
	origin := hit.Position.Add(hit.Normal.Multiply(Epsilon))
	samples := it.config.GlossySamples()

	indirect := core.Black()
	for i := 0; i < samples; i++ {
		sample := sampler.Get2D()
		lobe := core.LocalToWorld(core.SampleHemisphere(sample), reflected, nt, nb)
		direction := lobe.Add(reflected).Normalize()

		radiance := it.RayColor(core.NewRay(origin, direction), depth+1, sampler)
		indirect = indirect.Add(radiance.Multiply(sample.X * pdf))
	}
	indirect = indirect.Divide(float64(samples))

	return direct.Add(indirect.Multiply(2).MultiplyColor(hit.Material.Color))
}
