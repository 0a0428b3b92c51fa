package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectError bool
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults",
			args: nil,
			check: func(t *testing.T, cfg *Config) {
				if cfg.SceneName != "default" || cfg.Width != 640 || cfg.Height != 480 || cfg.Seed != 42 {
					t.Errorf("Unexpected defaults: %+v", cfg)
				}
				if cfg.AAMultiplier != nil || cfg.Quality != nil || cfg.Ambient != nil {
					t.Error("Unset flags should not override scene options")
				}
			},
		},
		{
			name: "overrides",
			args: []string{"-scene", "cornell", "-x", "3", "-q", "2", "-l", "-w", "200", "-h", "100"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.AAMultiplier == nil || *cfg.AAMultiplier != 3 {
					t.Errorf("Expected AA override 3, got %v", cfg.AAMultiplier)
				}
				if cfg.Quality == nil || *cfg.Quality != 2 {
					t.Errorf("Expected quality override 2, got %v", cfg.Quality)
				}
				if cfg.Ambient == nil || !*cfg.Ambient {
					t.Error("Expected ambient override true")
				}
				if cfg.Width != 200 || cfg.Height != 100 {
					t.Errorf("Expected 200x100, got %dx%d", cfg.Width, cfg.Height)
				}
			},
		},
		{name: "zero width", args: []string{"-w", "0"}, expectError: true},
		{name: "unknown flag", args: []string{"-bogus"}, expectError: true},
		{name: "positional argument", args: []string{"scene.txt"}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseFlags(tt.args, io.Discard)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for args %v", tt.args)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectError bool
	}{
		{"default scene", []string{"-scene", "default"}, false},
		{"cornell scene", []string{"-scene", "cornell"}, false},
		{"unknown scene", []string{"-scene", "nonexistent"}, true},
		{"missing file", []string{"-f", "scenes/nonexistent.txt"}, true},
		{"wrong extension", []string{"-f", "scene.pbrt"}, true},
		{"invalid aa", []string{"-x", "0"}, true},
		{"invalid quality", []string{"-q", "-1"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseFlags(tt.args, io.Discard)
			if err != nil {
				t.Fatalf("parseFlags() error: %v", err)
			}

			s, err := createScene(cfg)
			if tt.expectError {
				if err == nil {
					t.Error("Expected error, got none")
				}
				if s != nil {
					t.Errorf("Expected nil scene on error, got %T", s)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(s.Entities()) == 0 {
				t.Error("Expected scene with entities")
			}
		})
	}
}

func TestCreateScene_OptionOverrides(t *testing.T) {
	cfg, err := parseFlags([]string{"-scene", "cornell", "-x", "1", "-q", "3", "-l"}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags() error: %v", err)
	}
	s, err := createScene(cfg)
	if err != nil {
		t.Fatalf("createScene() error: %v", err)
	}

	options := s.Options()
	if options.AAMultiplier != 1 || options.Quality != 3 || !options.AmbientLightingEnabled {
		t.Errorf("Overrides not applied: %+v", options)
	}
}

func TestOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

	tests := []struct {
		name     string
		cfg      Config
		expected string
	}{
		{"explicit", Config{Output: "out.jpg"}, "out.jpg"},
		{"builtin", Config{SceneName: "cornell"}, filepath.Join("output", "cornell", "render_20240305_140709.png")},
		{"file", Config{SceneFile: "scenes/glass.txt"}, filepath.Join("output", "glass", "render_20240305_140709.png")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(&tt.cfg, now); got != tt.expected {
				t.Errorf("outputPath() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRun_WritesImageAndThumbnail(t *testing.T) {
	dir := t.TempDir()
	sceneFile := filepath.Join(dir, "mini.txt")
	description := `Material "white" Diffuse (1, 1, 1)
Plane "wall" (0, 0, 5) (0, 0, -1) "white"
PointLight "key" (0, 0, 0) (1, 1, 1)
`
	if err := os.WriteFile(sceneFile, []byte(description), 0644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}

	out := filepath.Join(dir, "out", "mini.png")
	cfg, err := parseFlags([]string{"-f", sceneFile, "-o", out, "-w", "32", "-h", "16", "-thumb", "8"}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags() error: %v", err)
	}

	var stdout bytes.Buffer
	if err := run(context.Background(), cfg, &stdout); err != nil {
		t.Fatalf("run() error: %v", err)
	}

	img, err := imaging.Open(out)
	if err != nil {
		t.Fatalf("Failed to open render: %v", err)
	}
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 16 {
		t.Errorf("Render size = %v, want 32x16", img.Bounds().Size())
	}

	thumb, err := imaging.Open(filepath.Join(dir, "out", "mini_thumb.png"))
	if err != nil {
		t.Fatalf("Failed to open thumbnail: %v", err)
	}
	if thumb.Bounds().Dx() != 8 || thumb.Bounds().Dy() != 4 {
		t.Errorf("Thumbnail size = %v, want 8x4", thumb.Bounds().Size())
	}

	if !strings.Contains(stdout.String(), "Render saved as") {
		t.Errorf("Expected save message, got %q", stdout.String())
	}
}

func TestRun_Cancelled(t *testing.T) {
	cfg, err := parseFlags([]string{"-o", filepath.Join(t.TempDir(), "x.png"), "-w", "8", "-h", "8"}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := run(ctx, cfg, io.Discard); err == nil {
		t.Error("Expected error for cancelled render")
	}
}
