package scene

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
)

// oklchToRGB converts OKLCH color values to linear RGB clamped to [0, 1].
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Color {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to cube-root LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewColor(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene creates a grid of colored spheres on a floor. Hue varies
// across the grid and depth varies chroma. Every third sphere is a mirror.
func NewSphereGridScene() *Scene {
	s := New(core.DefaultSceneOptions())

	s.AddEntity(geometry.NewPlane(
		core.NewVec3(0, -1, 0),
		core.NewVec3(0, 1, 0),
		core.NewMaterial(core.Diffuse, core.NewColor(0.5, 0.5, 0.5), 1),
	))

	// Every sphere is tested for every ray, so the grid stays small
	gridSize := 6
	width := 4.0
	spacing := width / float64(gridSize-1)
	radius := spacing * 0.35

	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - width/2
			z := float64(j)*spacing + 5
			position := core.NewVec3(x, -1+radius, z)

			hue := float64(i) / float64(gridSize-1) * 360.0
			chroma := minChroma + float64(j)/float64(gridSize-1)*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			color := oklchToRGB(lightness, chroma, hue)

			materialType := core.Glossy
			if (i+j)%3 == 0 {
				materialType = core.Reflective
			}

			s.AddEntity(geometry.NewSphere(position, radius, core.NewMaterial(materialType, color, 1)))
		}
	}

	s.AddPointLight(core.NewPointLight(core.NewVec3(3, 4, 2), core.NewColor(0.8, 0.78, 0.7)))
	s.AddPointLight(core.NewPointLight(core.NewVec3(-3, 2, 3), core.NewColor(0.2, 0.2, 0.25)))

	return s
}
