// Package screenshot saves rendered frames as PNG files.
package screenshot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Writer names and writes screenshots into a directory.
type Writer struct {
	dir    string
	prefix string
	now    func() time.Time
}

// NewWriter creates a writer. An empty dir writes into the working directory.
func NewWriter(dir, prefix string) *Writer {
	return &Writer{dir: dir, prefix: prefix, now: time.Now}
}

// Filename returns the path the next screenshot would be written to.
func (w *Writer) Filename() string {
	name := fmt.Sprintf("%s_%s.png", w.prefix, w.now().Format("2006-01-02_15-04-05.000"))
	if w.dir != "" {
		name = filepath.Join(w.dir, name)
	}
	return name
}

// FromPixels converts RGBA rows read from a framebuffer, bottom row first,
// into an image with the top row first.
func FromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// Save writes a frame read from a framebuffer and returns the file path.
func (w *Writer) Save(pixels []byte, width, height int) (string, error) {
	img, err := FromPixels(pixels, width, height)
	if err != nil {
		return "", err
	}

	if w.dir != "" {
		if err := os.MkdirAll(w.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	path := w.Filename()
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return path, nil
}
