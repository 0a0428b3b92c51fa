package scene

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
)

func TestAddEntity_SetSemantics(t *testing.T) {
	s := New(core.DefaultSceneOptions())
	mat := core.NewMaterial(core.Diffuse, core.NewColor(1, 1, 1), 1)

	a := geometry.NewSphere(core.NewVec3(0, 0, 5), 1, mat)
	b := geometry.NewSphere(core.NewVec3(0, 0, 5), 1, mat)

	s.AddEntity(a)
	s.AddEntity(a)
	if len(s.Entities()) != 1 {
		t.Errorf("Adding the same entity twice should keep one, got %d", len(s.Entities()))
	}

	// Equal geometry but a distinct entity
	s.AddEntity(b)
	if len(s.Entities()) != 2 {
		t.Errorf("Distinct entities should both be kept, got %d", len(s.Entities()))
	}
}

// meshEntity is a value-type entity holding a slice, so it is not comparable
type meshEntity struct {
	vertices []core.Vec3
}

func (m meshEntity) Intersect(ray core.Ray) *core.RayHit { return nil }

func TestAddEntity_NonComparableAndNil(t *testing.T) {
	s := New(core.DefaultSceneOptions())
	sphere := geometry.NewSphere(core.NewVec3(0, 0, 5), 1, core.NewMaterial(core.Diffuse, core.NewColor(1, 1, 1), 1))
	mesh := meshEntity{vertices: []core.Vec3{core.NewVec3(0, 0, 0)}}

	s.AddEntity(mesh)
	s.AddEntity(mesh)
	s.AddEntity(sphere)
	s.AddEntity(sphere)
	s.AddEntity(nil)

	if len(s.Entities()) != 3 {
		t.Errorf("Expected both mesh copies and one sphere, got %d entities", len(s.Entities()))
	}
	if s.Entities()[2] != core.Entity(sphere) {
		t.Errorf("Expected sphere last, got %T", s.Entities()[2])
	}
}

func TestAddPointLight_SetSemantics(t *testing.T) {
	s := New(core.DefaultSceneOptions())
	light := core.NewPointLight(core.NewVec3(0, 5, 0), core.NewColor(1, 1, 1))

	s.AddPointLight(light)
	s.AddPointLight(core.NewPointLight(core.NewVec3(0, 5, 0), core.NewColor(1, 1, 1)))
	if len(s.Lights()) != 1 {
		t.Errorf("Identical lights should collapse, got %d", len(s.Lights()))
	}

	s.AddPointLight(core.NewPointLight(core.NewVec3(0, 5, 0), core.NewColor(0.5, 0.5, 0.5)))
	if len(s.Lights()) != 2 {
		t.Errorf("Lights with different colors are distinct, got %d", len(s.Lights()))
	}
}

func TestRender_EmptySceneIsBlack(t *testing.T) {
	s := New(core.DefaultSceneOptions())
	img := renderer.NewFrameBuffer(4, 3)

	if err := s.Render(img); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if c := img.At(x, y); c != core.Black() {
				t.Errorf("Pixel (%d,%d) = %v, want black", x, y, c)
			}
		}
	}
}

func TestRender_LitPlane(t *testing.T) {
	s := New(core.DefaultSceneOptions())
	mat := core.NewMaterial(core.Diffuse, core.NewColor(1, 1, 1), 1)
	s.AddEntity(geometry.NewPlane(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), mat))
	s.AddPointLight(core.NewPointLight(core.NewVec3(0, 0, 0), core.NewColor(1, 1, 1)))

	img := renderer.NewFrameBuffer(1, 1)
	if err := s.Render(img); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	// The single pixel looks straight down +Z at a plane facing the light
	c := img.At(0, 0)
	if c.R <= 0 || math.Abs(c.R-c.G) > 1e-9 || math.Abs(c.G-c.B) > 1e-9 {
		t.Errorf("Expected lit gray pixel, got %v", c)
	}
}

func TestRender_InvalidOptions(t *testing.T) {
	s := New(core.SceneOptions{AAMultiplier: 0})
	if err := s.Render(renderer.NewFrameBuffer(1, 1)); err == nil {
		t.Error("Expected error for AAMultiplier 0")
	}
}

func TestRenderContext_Cancelled(t *testing.T) {
	s := NewDefaultScene()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.RenderContext(ctx, renderer.NewFrameBuffer(8, 8), renderer.DefaultRaytracerConfig(), renderer.NewDiscardLogger())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestNewSceneFromReader(t *testing.T) {
	description := `
Material "white" Diffuse (1, 1, 1)
Material "glass" Refractive (1, 1, 1) 1.5
Sphere "ball" (0, 0, 5) 1 "glass"
Plane "floor" (0, -1, 0) (0, 1, 0) "white"
Triangle "tri" (0, 0, 5) (0, 1, 5) (1, 0, 5) "white"
PointLight "key" (0, 5, 0) (1, 1, 1)
PointLight "key2" (0, 5, 0) (1, 1, 1)
`
	s, err := NewSceneFromReader(strings.NewReader(description), core.DefaultSceneOptions())
	if err != nil {
		t.Fatalf("NewSceneFromReader() error: %v", err)
	}

	entities := s.Entities()
	if len(entities) != 3 {
		t.Fatalf("Expected 3 entities, got %d", len(entities))
	}
	if _, ok := entities[0].(*geometry.Sphere); !ok {
		t.Errorf("Expected first entity to be a sphere, got %T", entities[0])
	}
	if _, ok := entities[1].(*geometry.Plane); !ok {
		t.Errorf("Expected second entity to be a plane, got %T", entities[1])
	}
	if _, ok := entities[2].(*geometry.Triangle); !ok {
		t.Errorf("Expected third entity to be a triangle, got %T", entities[2])
	}

	// Two named lights with the same value collapse into one
	if len(s.Lights()) != 1 {
		t.Errorf("Expected 1 light, got %d", len(s.Lights()))
	}

	sphere := entities[0].(*geometry.Sphere)
	if sphere.Material.Type != core.Refractive || sphere.Material.RefractiveIndex != 1.5 {
		t.Errorf("Sphere material not resolved: %+v", sphere.Material)
	}
}

func TestNewSceneFromReader_Error(t *testing.T) {
	_, err := NewSceneFromReader(strings.NewReader(`Sphere "ball" (0, 0, 5) 1 "missing"`), core.DefaultSceneOptions())
	if err == nil {
		t.Fatal("Expected error for unknown material")
	}
	if !strings.Contains(err.Error(), "line 1") {
		t.Errorf("Expected line number in error, got %v", err)
	}
}

func TestOklchToRGB(t *testing.T) {
	// Zero chroma is a neutral gray
	gray := oklchToRGB(0.65, 0, 120)
	if math.Abs(gray.R-gray.G) > 1e-6 || math.Abs(gray.G-gray.B) > 1e-6 {
		t.Errorf("Expected neutral gray, got %v", gray)
	}

	// Extreme values stay inside [0, 1]
	for hue := 0.0; hue < 360; hue += 30 {
		c := oklchToRGB(0.9, 0.4, hue)
		for _, v := range []float64{c.R, c.G, c.B} {
			if v < 0 || v > 1 {
				t.Errorf("Hue %v produced out-of-range color %v", hue, c)
			}
		}
	}
}

func TestNewSphereGridScene(t *testing.T) {
	s := NewSphereGridScene()
	// Floor plus a 6x6 grid
	if len(s.Entities()) != 37 {
		t.Errorf("Expected 37 entities, got %d", len(s.Entities()))
	}

	mirrors := 0
	for _, entity := range s.Entities()[1:] {
		sphere, ok := entity.(*geometry.Sphere)
		if !ok {
			t.Fatalf("Expected sphere, got %T", entity)
		}
		if sphere.Material.Type == core.Reflective {
			mirrors++
		}
	}
	if mirrors != 12 {
		t.Errorf("Expected 12 mirror spheres, got %d", mirrors)
	}
}
