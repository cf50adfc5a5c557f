package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // glTF base color textures
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // BMP decoder registration
)

// Decode decodes image data. TGA is chosen by the name's extension, any
// other format by its registered signature.
func Decode(name string, data []byte) (*image.RGBA, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		img, err := DecodeTGA(data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", name, err)
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return ToRGBA(img), nil
}

// Load reads and decodes an image file.
func Load(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading texture: %w", err)
	}
	return Decode(path, data)
}

// ToRGBA converts any image to *image.RGBA with its origin at (0, 0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
