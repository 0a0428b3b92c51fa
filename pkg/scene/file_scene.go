package scene

import (
	"fmt"
	"io"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/loaders"
)

// NewFileScene creates a scene from a text scene file
func NewFileScene(filepath string, options core.SceneOptions) (*Scene, error) {
	file, err := loaders.LoadSceneFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene file: %w", err)
	}
	return FromSceneFile(file, options)
}

// NewSceneFromReader parses a scene description from r
func NewSceneFromReader(r io.Reader, options core.SceneOptions) (*Scene, error) {
	file, err := loaders.ParseSceneFile(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	return FromSceneFile(file, options)
}

// FromSceneFile converts parsed statements into a scene
func FromSceneFile(file *loaders.SceneFile, options core.SceneOptions) (*Scene, error) {
	s := New(options)

	for _, stmt := range file.Shapes {
		entity, err := convertShape(stmt)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", stmt.Line, err)
		}
		s.AddEntity(entity)
	}

	for _, stmt := range file.Lights {
		s.AddPointLight(stmt.Light)
	}

	return s, nil
}

func convertShape(stmt loaders.ShapeStatement) (core.Entity, error) {
	switch stmt.Kind {
	case loaders.ShapeSphere:
		return geometry.NewSphere(stmt.Points[0], stmt.Radius, stmt.Material), nil
	case loaders.ShapePlane:
		return geometry.NewPlane(stmt.Points[0], stmt.Points[1], stmt.Material), nil
	case loaders.ShapeTriangle:
		return geometry.NewTriangle(stmt.Points[0], stmt.Points[1], stmt.Points[2], stmt.Material), nil
	default:
		return nil, fmt.Errorf("unsupported shape %q", stmt.Kind)
	}
}
