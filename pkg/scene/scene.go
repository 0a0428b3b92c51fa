package scene

import (
	"context"
	"reflect"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
)

// Scene holds the entities, lights and options of a render. Scenes are built
// first and rendered afterwards; they must not change during a render.
type Scene struct {
	options  core.SceneOptions
	entities []core.Entity
	lights   []core.PointLight
}

// New creates an empty scene with the given options
func New(options core.SceneOptions) *Scene {
	return &Scene{
		options:  options,
		entities: make([]core.Entity, 0),
		lights:   make([]core.PointLight, 0),
	}
}

// AddEntity adds an entity to the scene. Adding the same entity twice has no
// effect. Entities of non-comparable types (structs holding slices or maps)
// cannot be matched and are always appended. A nil entity is ignored.
func (s *Scene) AddEntity(entity core.Entity) {
	if entity == nil {
		return
	}
	if reflect.TypeOf(entity).Comparable() {
		for _, existing := range s.entities {
			if existing == entity {
				return
			}
		}
	}
	s.entities = append(s.entities, entity)
}

// AddPointLight adds a light to the scene. Identical lights collapse into one.
func (s *Scene) AddPointLight(light core.PointLight) {
	for _, existing := range s.lights {
		if existing == light {
			return
		}
	}
	s.lights = append(s.lights, light)
}

// Entities returns the entities in insertion order
func (s *Scene) Entities() []core.Entity {
	return s.entities
}

// Lights returns the point lights in insertion order
func (s *Scene) Lights() []core.PointLight {
	return s.lights
}

// Options returns the scene options
func (s *Scene) Options() core.SceneOptions {
	return s.options
}

// SetOptions replaces the scene options
func (s *Scene) SetOptions(options core.SceneOptions) {
	s.options = options
}

// Render traces the scene into img with default driver settings and no logging
func (s *Scene) Render(img renderer.Image) error {
	_, err := s.RenderContext(context.Background(), img, renderer.DefaultRaytracerConfig(), renderer.NewDiscardLogger())
	return err
}

// RenderContext traces the scene into img, stopping early if ctx is cancelled
func (s *Scene) RenderContext(ctx context.Context, img renderer.Image, config renderer.RaytracerConfig, logger core.Logger) (renderer.RenderStats, error) {
	return renderer.NewRaytracer(s, config, logger).Render(ctx, img)
}
