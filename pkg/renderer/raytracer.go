package renderer

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/integrator"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

type discardLogger struct{}

func (discardLogger) Printf(string, ...interface{}) {}

// NewDiscardLogger returns a logger that drops all output
func NewDiscardLogger() core.Logger {
	return discardLogger{}
}

// Scene interface to avoid circular imports
type Scene interface {
	Entities() []core.Entity
	Lights() []core.PointLight
	Options() core.SceneOptions
}

// RaytracerConfig contains driver settings that do not affect shading
type RaytracerConfig struct {
	Seed          int64 // Seed of the single random stream used for the render
	ProgressSteps int   // Number of progress messages per render (0 disables)
}

// DefaultRaytracerConfig returns sensible default values
func DefaultRaytracerConfig() RaytracerConfig {
	return RaytracerConfig{
		Seed:          42, // Deterministic for testing
		ProgressSteps: 10,
	}
}

// Raytracer drives the pixel loop for a scene
type Raytracer struct {
	scene  Scene
	config RaytracerConfig
	logger core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, config RaytracerConfig, logger core.Logger) *Raytracer {
	return &Raytracer{
		scene:  scene,
		config: config,
		logger: logger,
	}
}

// Render traces every pixel of img in row-major order. The context is checked
// before each row and by the integrator on every ray; a cancelled render
// leaves the remaining rows unwritten and returns the context error.
func (rt *Raytracer) Render(ctx context.Context, img Image) (RenderStats, error) {
	options := rt.scene.Options()
	if err := options.Validate(); err != nil {
		return RenderStats{}, fmt.Errorf("invalid scene options: %w", err)
	}

	width, height := img.Width(), img.Height()
	if width <= 0 || height <= 0 {
		return RenderStats{}, fmt.Errorf("invalid image size %dx%d", width, height)
	}

	camera := NewCamera(width, height)
	tracer := integrator.New(rt.scene.Entities(), rt.scene.Lights(), integrator.NewConfig(options)).WithContext(ctx)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(rt.config.Seed)))
	offsets := SubpixelOffsets(options.AAMultiplier)

	stats := RenderStats{
		SamplesPerPixel: len(offsets) * len(offsets),
	}

	rt.logger.Printf("Rendering %dx%d with %d samples/pixel (quality %d, ambient %t)...\n",
		width, height, stats.SamplesPerPixel, options.Quality, options.AmbientLightingEnabled)
	startTime := time.Now()

	progressEvery := 0
	if rt.config.ProgressSteps > 0 {
		progressEvery = max(1, height/rt.config.ProgressSteps)
	}

	for j := 0; j < height; j++ {
		if err := ctx.Err(); err != nil {
			stats.RaysTraced = tracer.RaysTraced()
			stats.Elapsed = time.Since(startTime)
			return stats, fmt.Errorf("render cancelled at row %d: %w", j, err)
		}

		for i := 0; i < width; i++ {
			img.SetPixel(i, j, rt.renderPixel(camera, tracer, sampler, offsets, i, j))
			stats.TotalPixels++
			stats.TotalSamples += stats.SamplesPerPixel
		}

		if progressEvery > 0 && (j+1)%progressEvery == 0 && j+1 < height {
			rt.logger.Printf("  %d%% (%d/%d rows)\n", (j+1)*100/height, j+1, height)
		}
	}

	stats.RaysTraced = tracer.RaysTraced()
	stats.Elapsed = time.Since(startTime)

	// A deadline hit inside the last row leaves black pixels behind
	if err := ctx.Err(); err != nil {
		return stats, fmt.Errorf("render cancelled at row %d: %w", height-1, err)
	}

	rt.logger.Printf("Render completed: %s\n", stats)

	return stats, nil
}

// renderPixel averages one integrator evaluation per supersampling grid cell
func (rt *Raytracer) renderPixel(camera *Camera, tracer *integrator.Integrator, sampler core.Sampler, offsets []float64, i, j int) core.Color {
	colorAccum := core.Black()
	for _, oy := range offsets {
		for _, ox := range offsets {
			ray := camera.GenerateRay(i, j, ox, oy)
			colorAccum = colorAccum.Add(tracer.RayColor(ray, 0, sampler))
		}
	}
	return colorAccum.Divide(float64(len(offsets) * len(offsets)))
}
