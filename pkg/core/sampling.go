package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// CoordinateSystem builds two unit vectors nt and nb that form an orthonormal
// basis with n. The tangent is built from whichever of n.X and n.Y has the
// larger magnitude.
func CoordinateSystem(n Vec3) (nt, nb Vec3) {
	if math.Abs(n.X) > math.Abs(n.Y) {
		nt = NewVec3(n.Z, 0, -n.X).Divide(math.Sqrt(n.X*n.X + n.Z*n.Z))
	} else {
		nt = NewVec3(0, -n.Z, n.Y).Divide(math.Sqrt(n.Y*n.Y + n.Z*n.Z))
	}
	nb = n.Cross(nt)
	return nt, nb
}

// SampleHemisphere maps a sample pair to a direction in the local hemisphere
// whose pole is +Y. sample.X is cos(theta), sample.Y is phi/(2*pi).
func SampleHemisphere(sample Vec2) Vec3 {
	sinTheta := math.Sqrt(math.Max(0, 1-sample.X*sample.X))
	phi := 2 * math.Pi * sample.Y
	return NewVec3(sinTheta*math.Cos(phi), sample.X, sinTheta*math.Sin(phi))
}

// LocalToWorld transforms a hemisphere sample into world space using the
// basis (nb, n, nt) produced by CoordinateSystem.
func LocalToWorld(local, n, nt, nb Vec3) Vec3 {
	return NewVec3(
		local.X*nb.X+local.Y*n.X+local.Z*nt.X,
		local.X*nb.Y+local.Y*n.Y+local.Z*nt.Y,
		local.X*nb.Z+local.Y*n.Z+local.Z*nt.Z,
	)
}
