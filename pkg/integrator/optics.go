package integrator

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Reflect mirrors the incident direction about the normal: r = d - 2(d·n)n
func Reflect(incident, normal core.Vec3) core.Vec3 {
	return incident.Subtract(normal.Multiply(2 * incident.Dot(normal)))
}

// Refract bends the incident direction through a surface with the given index
// of refraction using the vector form of Snell's law. The normal may face
// either side; a ray arriving from inside the medium swaps the indices.
// Total internal reflection yields the zero vector.
func Refract(incident, normal core.Vec3, ior float64) core.Vec3 {
	cosi := clamp(incident.Dot(normal), -1, 1)
	etai, etat := 1.0, ior
	n := normal
	if cosi < 0 {
		cosi = -cosi
	} else {
		etai, etat = etat, etai
		n = normal.Negate()
	}

	eta := etai / etat
	k := 1 - eta*eta*(1-cosi*cosi)
	if k < 0 {
		return core.Vec3{}
	}
	return incident.Multiply(eta).Add(n.Multiply(eta*cosi - math.Sqrt(k)))
}

// Fresnel returns the fraction of light reflected at a dielectric boundary,
// averaging the s- and p-polarized terms. It is 1 under total internal reflection.
func Fresnel(incident, normal core.Vec3, ior float64) float64 {
	cosi := clamp(incident.Dot(normal), -1, 1)
	etai, etat := 1.0, ior
	if cosi > 0 {
		etai, etat = etat, etai
	}

	sint := etai / etat * math.Sqrt(math.Max(0, 1-cosi*cosi))
	if sint >= 1 {
		return 1
	}

	cost := math.Sqrt(math.Max(0, 1-sint*sint))
	cosi = math.Abs(cosi)
	rs := (etat*cosi - etai*cost) / (etat*cosi + etai*cost)
	rp := (etai*cosi - etat*cost) / (etai*cosi + etat*cost)
	return (rs*rs + rp*rp) / 2
}

func clamp(value, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, value))
}
