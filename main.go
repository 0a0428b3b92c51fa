package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/output"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// Config holds the command line settings for a render
type Config struct {
	SceneFile string
	SceneName string
	Output    string
	Width     int
	Height    int
	Seed      int64
	Thumbnail int
	UploadKey string
	EnvFile   string

	// Scene option overrides; nil keeps the scene's own value
	AAMultiplier *int
	Quality      *int
	Ambient      *bool
}

func parseFlags(args []string, stderr io.Writer) (*Config, error) {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfg := &Config{}
	fs.StringVar(&cfg.SceneFile, "f", "", "Scene file to render (.txt)")
	fs.StringVar(&cfg.SceneName, "scene", "default", "Built-in scene: "+strings.Join(scene.BuiltinSceneIDs(), ", "))
	fs.StringVar(&cfg.Output, "o", "", "Output image (.png, .jpg, .bmp, .gif, .tif); default output/<scene>/render_<timestamp>.png")
	fs.IntVar(&cfg.Width, "w", 640, "Image width")
	fs.IntVar(&cfg.Height, "h", 480, "Image height")
	fs.Int64Var(&cfg.Seed, "seed", 42, "Random seed for ambient and glossy sampling")
	fs.IntVar(&cfg.Thumbnail, "thumb", 0, "Also write a thumbnail no larger than this many pixels (0 disables)")
	fs.StringVar(&cfg.UploadKey, "upload", "", "Upload the render to S3 under this key")
	fs.StringVar(&cfg.EnvFile, "env", ".env", "Environment file with S3 settings")
	aa := fs.Int("x", 1, "Anti-aliasing multiplier (samples per pixel = x*x)")
	quality := fs.Int("q", 0, "Quality: raises recursion depth and ambient/glossy sample counts")
	ambient := fs.Bool("l", false, "Enable ambient (indirect diffuse) lighting")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	// Only explicitly set flags override scene options
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "x":
			cfg.AAMultiplier = aa
		case "q":
			cfg.Quality = quality
		case "l":
			cfg.Ambient = ambient
		}
	})

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("image size must be positive, got %dx%d", cfg.Width, cfg.Height)
	}

	return cfg, nil
}

// createScene loads the scene file if one is given, otherwise the named built-in scene
func createScene(cfg *Config) (*scene.Scene, error) {
	var s *scene.Scene
	var err error

	if cfg.SceneFile != "" {
		s, err = scene.NewFileScene(cfg.SceneFile, core.DefaultSceneOptions())
	} else {
		s, err = scene.NewBuiltinScene(cfg.SceneName)
	}
	if err != nil {
		return nil, err
	}

	options := s.Options()
	if cfg.AAMultiplier != nil {
		options.AAMultiplier = *cfg.AAMultiplier
	}
	if cfg.Quality != nil {
		options.Quality = *cfg.Quality
	}
	if cfg.Ambient != nil {
		options.AmbientLightingEnabled = *cfg.Ambient
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}
	s.SetOptions(options)

	return s, nil
}

// sceneLabel names the output directory for a render
func sceneLabel(cfg *Config) string {
	if cfg.SceneFile != "" {
		base := filepath.Base(cfg.SceneFile)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return cfg.SceneName
}

func outputPath(cfg *Config, now time.Time) string {
	if cfg.Output != "" {
		return cfg.Output
	}
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", sceneLabel(cfg), fmt.Sprintf("render_%s.png", timestamp))
}

func run(ctx context.Context, cfg *Config, stdout io.Writer) error {
	s, err := createScene(cfg)
	if err != nil {
		return fmt.Errorf("failed to create scene: %w", err)
	}

	fmt.Fprintf(stdout, "Rendering %s (%d entities, %d lights) at %dx%d\n",
		sceneLabel(cfg), len(s.Entities()), len(s.Lights()), cfg.Width, cfg.Height)

	fb := renderer.NewFrameBuffer(cfg.Width, cfg.Height)
	config := renderer.DefaultRaytracerConfig()
	config.Seed = cfg.Seed

	stats, err := s.RenderContext(ctx, fb, config, renderer.NewDefaultLogger())
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Render completed: %s\n", stats)

	img := fb.ToRGBA()
	fmt.Fprintf(stdout, "Average luminance: %.3f\n", renderer.CalculateAverageLuminance(img))

	filename := outputPath(cfg, time.Now())
	if err := output.SaveImage(img, filename); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Render saved as %s\n", filename)

	if cfg.Thumbnail > 0 {
		thumbName := output.ThumbnailPath(filename)
		if err := output.SaveImage(output.Thumbnail(img, cfg.Thumbnail), thumbName); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Thumbnail saved as %s\n", thumbName)
	}

	if cfg.UploadKey != "" {
		publisher, err := output.NewS3Publisher(output.S3ConfigFromEnv())
		if err != nil {
			return fmt.Errorf("failed to configure upload: %w", err)
		}
		if err := publisher.PublishPNG(ctx, cfg.UploadKey, img); err != nil {
			return err
		}
	}

	return nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// A missing .env file is fine; variables may come from the environment
	_ = godotenv.Load(cfg.EnvFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
