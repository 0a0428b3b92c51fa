package core

import (
	"fmt"
	"strings"
)

// MaterialType selects the shading model used for a surface
type MaterialType int

const (
	Diffuse MaterialType = iota
	Reflective
	Refractive
	Glossy
	Emissive
)

var materialTypeNames = map[MaterialType]string{
	Diffuse:    "Diffuse",
	Reflective: "Reflective",
	Refractive: "Refractive",
	Glossy:     "Glossy",
	Emissive:   "Emissive",
}

func (t MaterialType) String() string {
	if name, ok := materialTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("MaterialType(%d)", int(t))
}

// ParseMaterialType converts a material type name (case-insensitive) to a MaterialType
func ParseMaterialType(name string) (MaterialType, error) {
	for t, n := range materialTypeNames {
		if strings.EqualFold(n, name) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown material type %q", name)
}

// Material describes how a surface responds to light
type Material struct {
	Type            MaterialType
	Color           Color
	RefractiveIndex float64 // Only meaningful for Refractive
}

// NewMaterial creates a new material
func NewMaterial(materialType MaterialType, color Color, refractiveIndex float64) Material {
	return Material{Type: materialType, Color: color, RefractiveIndex: refractiveIndex}
}
