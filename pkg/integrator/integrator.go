package integrator

import (
	"context"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

const (
	// BaseDepth is the recursion depth allowed at Quality 0
	BaseDepth = 3
	// DiffuseBaseSamples is the ambient hemisphere sample count at Quality 0
	DiffuseBaseSamples = 4
	// GlossyBaseSamples is the glossy lobe sample count at Quality 0
	GlossyBaseSamples = 4
	// Epsilon offsets secondary ray origins off the surface they leave
	Epsilon = 1e-4
)

// Config is the immutable per-render configuration threaded through shading
type Config struct {
	Options            core.SceneOptions
	BaseDepth          int
	DiffuseBaseSamples int
	GlossyBaseSamples  int
}

// NewConfig returns the standard configuration for the given scene options
func NewConfig(options core.SceneOptions) Config {
	return Config{
		Options:            options,
		BaseDepth:          BaseDepth,
		DiffuseBaseSamples: DiffuseBaseSamples,
		GlossyBaseSamples:  GlossyBaseSamples,
	}
}

// MaxDepth is the deepest recursion level that is still shaded
func (c Config) MaxDepth() int {
	return c.BaseDepth + c.Options.Quality
}

// DiffuseSamples is the number of ambient hemisphere samples per diffuse hit
func (c Config) DiffuseSamples() int {
	return c.DiffuseBaseSamples + 2*c.Options.Quality
}

// GlossySamples is the number of lobe samples per glossy hit
func (c Config) GlossySamples() int {
	return c.GlossyBaseSamples + 2*c.Options.Quality
}

// Integrator computes radiance along rays by recursive Whitted-style tracing
// with Monte-Carlo glossy and ambient terms. It scans every entity for every
// ray; there is no acceleration structure.
type Integrator struct {
	entities   []core.Entity
	lights     []core.PointLight
	config     Config
	ctx        context.Context
	raysTraced int64
}

// New creates an integrator over a fixed set of entities and lights
func New(entities []core.Entity, lights []core.PointLight, config Config) *Integrator {
	return &Integrator{
		entities: entities,
		lights:   lights,
		config:   config,
		ctx:      context.Background(),
	}
}

// WithContext makes the integrator stop tracing once ctx is done. Rays cast
// after cancellation return black, so a cancelled pixel unwinds immediately.
func (it *Integrator) WithContext(ctx context.Context) *Integrator {
	it.ctx = ctx
	return it
}

// Config returns the configuration the integrator was built with
func (it *Integrator) Config() Config {
	return it.config
}

// RaysTraced returns the number of camera, secondary and shadow rays cast so far
func (it *Integrator) RaysTraced() int64 {
	return it.raysTraced
}

// RayColor returns the color seen along ray at the given recursion depth
func (it *Integrator) RayColor(ray core.Ray, depth int, sampler core.Sampler) core.Color {
	if it.ctx.Err() != nil {
		return core.Black()
	}
	it.raysTraced++

	hit := it.nearestHit(ray)
	if hit == nil {
		return core.Black()
	}

	// Past the depth cap the surface color stands in for the shaded result
	if depth > it.config.MaxDepth() {
		return hit.Material.Color
	}

	switch hit.Material.Type {
	case core.Diffuse:
		return it.shadeDiffuse(hit, depth, sampler)
	case core.Glossy:
		return it.shadeGlossy(hit, depth, sampler)
	case core.Reflective:
		return it.shadeReflective(hit, depth, sampler)
	case core.Refractive:
		return it.shadeRefractive(hit, depth, sampler)
	default:
		return hit.Material.Color
	}
}

func (it *Integrator) nearestHit(ray core.Ray) *core.RayHit {
	hit, _ := NearestHit(it.entities, ray)
	return hit
}

// NearestHit scans every entity and keeps the hit with the smallest squared
// distance from the ray origin. Ties keep the earlier entity. The index of the
// hit entity is -1 when nothing is hit.
func NearestHit(entities []core.Entity, ray core.Ray) (*core.RayHit, int) {
	var nearest *core.RayHit
	nearestIndex := -1
	nearestDistSq := 0.0

	for i, entity := range entities {
		hit := entity.Intersect(ray)
		if hit == nil {
			continue
		}
		distSq := hit.Position.Subtract(ray.Origin).LengthSquared()
		// Degenerate entities can report NaN positions; they never count as hits
		if !(distSq >= 0) {
			continue
		}
		if nearest == nil || distSq < nearestDistSq {
			nearest = hit
			nearestIndex = i
			nearestDistSq = distSq
		}
	}

	return nearest, nearestIndex
}
