package core

import "fmt"

// SceneOptions controls sampling and recursion for a render
type SceneOptions struct {
	AAMultiplier           int  // Supersampling grid resolution per axis
	Quality                int  // Extra Monte-Carlo samples and recursion depth
	AmbientLightingEnabled bool // Enables the indirect bounce in diffuse shading
}

// DefaultSceneOptions returns a single sample per pixel with no ambient lighting
func DefaultSceneOptions() SceneOptions {
	return SceneOptions{
		AAMultiplier:           1,
		Quality:                0,
		AmbientLightingEnabled: false,
	}
}

// Validate reports whether the options can drive a render
func (o SceneOptions) Validate() error {
	if o.AAMultiplier < 1 {
		return fmt.Errorf("AA multiplier must be at least 1, got %d", o.AAMultiplier)
	}
	if o.Quality < 0 {
		return fmt.Errorf("quality must not be negative, got %d", o.Quality)
	}
	return nil
}
