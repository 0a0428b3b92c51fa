package output

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}
	return img
}

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"render.png", "render.jpg", "nested/dir/render.bmp"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := SaveImage(testImage(16, 8), path); err != nil {
				t.Fatalf("SaveImage() error: %v", err)
			}

			loaded, err := imaging.Open(path)
			if err != nil {
				t.Fatalf("Failed to reopen %s: %v", path, err)
			}
			if loaded.Bounds().Dx() != 16 || loaded.Bounds().Dy() != 8 {
				t.Errorf("Reloaded size = %v, want 16x8", loaded.Bounds().Size())
			}
		})
	}
}

func TestSaveImage_UnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.xyz")
	if err := SaveImage(testImage(2, 2), path); err == nil {
		t.Error("Expected error for unknown extension")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("No file should be written for an unknown extension")
	}
}

func TestThumbnail(t *testing.T) {
	tests := []struct {
		name             string
		w, h, size       int
		expectW, expectH int
	}{
		{"landscape", 400, 200, 100, 100, 50},
		{"portrait", 100, 200, 100, 50, 100},
		{"already small", 50, 40, 64, 50, 40},
		{"disabled", 400, 200, 0, 400, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			thumb := Thumbnail(testImage(tt.w, tt.h), tt.size)
			if thumb.Bounds().Dx() != tt.expectW || thumb.Bounds().Dy() != tt.expectH {
				t.Errorf("Thumbnail size = %dx%d, want %dx%d",
					thumb.Bounds().Dx(), thumb.Bounds().Dy(), tt.expectW, tt.expectH)
			}
		})
	}
}

func TestThumbnailPath(t *testing.T) {
	tests := map[string]string{
		"render.png":      "render_thumb.png",
		"out/cornell.jpg": "out/cornell_thumb.jpg",
		"noext":           "noext_thumb",
	}
	for in, expected := range tests {
		if got := ThumbnailPath(in); got != expected {
			t.Errorf("ThumbnailPath(%q) = %q, want %q", in, got, expected)
		}
	}
}
