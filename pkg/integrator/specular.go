package integrator

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// shadeReflective traces a single mirror ray and returns what it sees unattenuated
func (it *Integrator) shadeReflective(hit *core.RayHit, depth int, sampler core.Sampler) core.Color {
	direction := Reflect(hit.Incident, hit.Normal)
	origin := hit.Position.Add(hit.Normal.Multiply(Epsilon))
	return it.RayColor(core.NewRay(origin, direction), depth+1, sampler)
}

// shadeRefractive splits the ray into reflected and transmitted parts weighted
// by the Fresnel reflectance.
func (it *Integrator) shadeRefractive(hit *core.RayHit, depth int, sampler core.Sampler) core.Color {
	ior := hit.Material.RefractiveIndex
	kr := Fresnel(hit.Incident, hit.Normal, ior)

	outside := hit.Incident.Dot(hit.Normal) < 0
	bias := hit.Normal.Multiply(Epsilon)

	refractionColor := core.Black()
	if kr < 1 {
		direction := Refract(hit.Incident, hit.Normal, ior)
		origin := hit.Position.Add(bias)
		if outside {
			origin = hit.Position.Subtract(bias)
		}
		refractionColor = it.RayColor(core.NewRay(origin, direction), depth+1, sampler)
	}

	direction := Reflect(hit.Incident, hit.Normal)
	origin := hit.Position.Subtract(bias)
	if outside {
		origin = hit.Position.Add(bias)
	}
	reflectionColor := it.RayColor(core.NewRay(origin, direction), depth+1, sampler)

	return reflectionColor.Multiply(kr).Add(refractionColor.Multiply(1 - kr))
}
