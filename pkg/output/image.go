package output

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// SaveImage writes img to filename, choosing the encoder from the extension
// (.png, .jpg, .gif, .bmp, .tif). Missing parent directories are created.
func SaveImage(img image.Image, filename string) error {
	if _, err := imaging.FormatFromFilename(filename); err != nil {
		return fmt.Errorf("unsupported output file %s: %w", filename, err)
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := imaging.Save(img, filename, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("failed to save %s: %w", filename, err)
	}
	return nil
}

// EncodePNG writes img to w as PNG
func EncodePNG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

// Thumbnail scales img down so that neither side exceeds size, keeping the
// aspect ratio. Images already small enough are returned unchanged.
func Thumbnail(img image.Image, size int) image.Image {
	if size <= 0 {
		return img
	}
	bounds := img.Bounds()
	if bounds.Dx() <= size && bounds.Dy() <= size {
		return img
	}
	return resize.Thumbnail(uint(size), uint(size), img, resize.Bilinear)
}

// ThumbnailPath derives the thumbnail filename for an output file,
// e.g. "out/render.png" -> "out/render_thumb.png"
func ThumbnailPath(filename string) string {
	ext := filepath.Ext(filename)
	return filename[:len(filename)-len(ext)] + "_thumb" + ext
}
