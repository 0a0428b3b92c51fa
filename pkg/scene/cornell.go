package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
)

// NewCornellScene creates a Cornell-style box built from planes, with a
// triangle block, a glass sphere and a mirror sphere inside.
func NewCornellScene() *Scene {
	options := core.DefaultSceneOptions()
	options.AAMultiplier = 2
	s := New(options)

	// Create materials
	white := core.NewMaterial(core.Diffuse, core.NewColor(0.73, 0.73, 0.73), 1)
	red := core.NewMaterial(core.Diffuse, core.NewColor(0.65, 0.05, 0.05), 1)
	green := core.NewMaterial(core.Diffuse, core.NewColor(0.12, 0.45, 0.15), 1)
	glass := core.NewMaterial(core.Refractive, core.NewColor(1, 1, 1), 1.4)
	mirror := core.NewMaterial(core.Reflective, core.NewColor(1, 1, 1), 1)
	block := core.NewMaterial(core.Diffuse, core.NewColor(0.9, 0.9, 0.6), 1)

	// Walls face into the box, which spans x,y in [-1, 1] and z in [0, 3]
	s.AddEntity(geometry.NewPlane(core.NewVec3(-1, 0, 0), core.NewVec3(1, 0, 0), red))
	s.AddEntity(geometry.NewPlane(core.NewVec3(1, 0, 0), core.NewVec3(-1, 0, 0), green))
	s.AddEntity(geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), white))
	s.AddEntity(geometry.NewPlane(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0), white))
	s.AddEntity(geometry.NewPlane(core.NewVec3(0, 0, 3), core.NewVec3(0, 0, -1), white))

	// Tetrahedron block on the floor
	apex := core.NewVec3(0.1, -0.3, 2.4)
	a := core.NewVec3(-0.3, -1, 2.2)
	b := core.NewVec3(0.5, -1, 2.2)
	c := core.NewVec3(0.1, -1, 2.8)
	s.AddEntity(geometry.NewTriangle(a, apex, b, block))
	s.AddEntity(geometry.NewTriangle(b, apex, c, block))
	s.AddEntity(geometry.NewTriangle(c, apex, a, block))

	s.AddEntity(geometry.NewSphere(core.NewVec3(-0.5, -0.65, 2), 0.35, glass))
	s.AddEntity(geometry.NewSphere(core.NewVec3(0.55, -0.7, 1.6), 0.3, mirror))

	s.AddPointLight(core.NewPointLight(core.NewVec3(0, 0.8, 1.5), core.NewColor(0.5, 0.5, 0.5)))

	return s
}
