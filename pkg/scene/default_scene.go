package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
)

// NewDefaultScene creates a default scene with one sphere of each material over a floor
func NewDefaultScene() *Scene {
	options := core.DefaultSceneOptions()
	options.AAMultiplier = 2
	s := New(options)

	white := core.NewMaterial(core.Diffuse, core.NewColor(0.8, 0.8, 0.8), 1)
	blue := core.NewMaterial(core.Diffuse, core.NewColor(0.2, 0.3, 0.8), 1)
	mirror := core.NewMaterial(core.Reflective, core.NewColor(1, 1, 1), 1)
	glass := core.NewMaterial(core.Refractive, core.NewColor(1, 1, 1), 1.5)
	gold := core.NewMaterial(core.Glossy, core.NewColor(0.8, 0.6, 0.2), 1)
	orange := core.NewMaterial(core.Diffuse, core.NewColor(1.0, 0.5, 0.1), 1)

	// Ground and back wall
	s.AddEntity(geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), white))
	s.AddEntity(geometry.NewPlane(core.NewVec3(0, 0, 12), core.NewVec3(0, 0, -1), blue))

	// Spheres left to right
	s.AddEntity(geometry.NewSphere(core.NewVec3(-2.2, -0.2, 7), 0.8, mirror))
	s.AddEntity(geometry.NewSphere(core.NewVec3(-0.1, -0.3, 5), 0.7, glass))
	s.AddEntity(geometry.NewSphere(core.NewVec3(1.9, -0.2, 6.5), 0.8, gold))

	// A triangle standing behind the glass sphere
	s.AddEntity(geometry.NewTriangle(
		core.NewVec3(-0.8, -1, 8.5),
		core.NewVec3(0, 0.6, 8.5),
		core.NewVec3(0.8, -1, 8.5),
		orange,
	))

	s.AddPointLight(core.NewPointLight(core.NewVec3(0, 2.5, 2), core.NewColor(0.6, 0.6, 0.6)))
	s.AddPointLight(core.NewPointLight(core.NewVec3(-3, 1.5, 4), core.NewColor(0.3, 0.3, 0.35)))

	return s
}
