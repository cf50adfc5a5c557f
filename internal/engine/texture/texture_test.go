package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

// tgaFile builds a TGA file with the given type, depth, descriptor and body.
func tgaFile(imageType byte, width, height int, bpp byte, descriptor byte, body []byte) []byte {
	h := make([]byte, tgaHeaderSize)
	h[2] = imageType
	h[12], h[13] = byte(width), byte(width>>8)
	h[14], h[15] = byte(height), byte(height>>8)
	h[16] = bpp
	h[17] = descriptor
	return append(h, body...)
}

var (
	red   = color.RGBA{255, 0, 0, 255}
	green = color.RGBA{0, 255, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
	white = color.RGBA{255, 255, 255, 255}
)

func TestDecodeTGA(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		// expected pixels, top row first
		want [][]color.RGBA
	}{
		{
			name: "uncompressed bottom-up 24bit",
			// File order is bottom row first: blue white / red green
			data: tgaFile(tgaTrueColor, 2, 2, 24, 0, []byte{
				255, 0, 0, 255, 255, 255,
				0, 0, 255, 0, 255, 0,
			}),
			want: [][]color.RGBA{{red, green}, {blue, white}},
		},
		{
			name: "uncompressed top-down 32bit",
			data: tgaFile(tgaTrueColor, 2, 1, 32, 0x20, []byte{
				0, 0, 255, 128,
				255, 0, 0, 255,
			}),
			want: [][]color.RGBA{{{255, 0, 0, 128}, blue}},
		},
		{
			name: "rle mixed packets",
			// Run of 3 green, then raw packet of 1 red
			data: tgaFile(tgaTrueColorRLE, 4, 1, 24, 0x20, []byte{
				0x82, 0, 255, 0,
				0x00, 0, 0, 255,
			}),
			want: [][]color.RGBA{{green, green, green, red}},
		},
		{
			name: "grayscale",
			data: tgaFile(tgaGray, 2, 1, 8, 0x20, []byte{0, 255}),
			want: [][]color.RGBA{{{0, 0, 0, 255}, white}},
		},
		{
			name: "right to left",
			data: tgaFile(tgaTrueColor, 2, 1, 24, 0x30, []byte{
				0, 0, 255,
				255, 0, 0,
			}),
			want: [][]color.RGBA{{blue, red}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := DecodeTGA(tt.data)
			if err != nil {
				t.Fatalf("DecodeTGA() error: %v", err)
			}
			for y, row := range tt.want {
				for x, want := range row {
					if got := img.RGBAAt(x, y); got != want {
						t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", func() []byte { d := tgaFile(1, 1, 1, 8, 0, []byte{0}); d[1] = 1; return d }()},
		{"unsupported type", tgaFile(9, 1, 1, 24, 0, []byte{0, 0, 0})},
		{"unsupported depth", tgaFile(tgaTrueColor, 1, 1, 16, 0, []byte{0, 0})},
		{"empty image", tgaFile(tgaTrueColor, 0, 0, 24, 0, nil)},
		{"truncated raw", tgaFile(tgaTrueColor, 2, 2, 24, 0, []byte{1, 2, 3})},
		{"truncated rle", tgaFile(tgaTrueColorRLE, 4, 1, 24, 0, []byte{0x83, 1})},
		{"id past end", func() []byte { d := tgaFile(tgaTrueColor, 1, 1, 24, 0, nil); d[0] = 200; return d }()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestDecodeByExtension(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	src.Set(0, 0, green)
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	img, err := Decode("base_color.png", buf.Bytes())
	if err != nil {
		t.Fatalf("Decode(png) error: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != green {
		t.Errorf("png pixel = %v, want %v", got, green)
	}

	tga := tgaFile(tgaTrueColor, 1, 1, 24, 0, []byte{255, 0, 0})
	img, err = Decode("SKY_RT.TGA", tga)
	if err != nil {
		t.Fatalf("Decode(tga) error: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != blue {
		t.Errorf("tga pixel = %v, want %v", got, blue)
	}

	var bmpBuf bytes.Buffer
	if err := bmp.Encode(&bmpBuf, src); err != nil {
		t.Fatal(err)
	}
	img, err = Decode("hills_rt.bmp", bmpBuf.Bytes())
	if err != nil {
		t.Fatalf("Decode(bmp) error: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != green {
		t.Errorf("bmp pixel = %v, want %v", got, green)
	}

	if _, err := Decode("broken.png", []byte("nope")); err == nil {
		t.Error("expected an error for undecodable data")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hills_up.tga")
	if err := os.WriteFile(path, tgaFile(tgaTrueColor, 1, 1, 24, 0, []byte{0, 255, 0}), 0o644); err != nil {
		t.Fatal(err)
	}

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if img.Bounds().Dx() != 1 || img.RGBAAt(0, 0) != green {
		t.Errorf("unexpected image %v", img.RGBAAt(0, 0))
	}

	if _, err := Load(filepath.Join(dir, "missing.tga")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestToRGBAOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 6))
	src.SetRGBA(5, 5, red)

	got := ToRGBA(src)
	if got.Bounds().Min != (image.Point{}) || got.RGBAAt(0, 0) != red {
		t.Errorf("ToRGBA should rebase to origin, got bounds %v", got.Bounds())
	}
}
