// Package texture decodes texture images into RGBA pixels ready for upload.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	tgaTrueColor    = 2
	tgaGray         = 3
	tgaTrueColorRLE = 10
	tgaGrayRLE      = 11
)

const tgaHeaderSize = 18

var (
	errTGAShort     = errors.New("tga: data too short")
	errTGATruncated = errors.New("tga: pixel data truncated")
)

type tgaHeader struct {
	idLength     int
	colorMapType byte
	imageType    byte
	width        int
	height       int
	bpp          int
	topToBottom  bool
	rightToLeft  bool
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, errTGAShort
	}
	h := tgaHeader{
		idLength:     int(data[0]),
		colorMapType: data[1],
		imageType:    data[2],
		width:        int(data[12]) | int(data[13])<<8,
		height:       int(data[14]) | int(data[15])<<8,
		bpp:          int(data[16]),
		topToBottom:  data[17]&0x20 != 0,
		rightToLeft:  data[17]&0x10 != 0,
	}

	if h.colorMapType != 0 {
		return h, errors.New("tga: color-mapped images not supported")
	}
	switch h.imageType {
	case tgaTrueColor, tgaTrueColorRLE:
		if h.bpp != 24 && h.bpp != 32 {
			return h, fmt.Errorf("tga: unsupported true-color depth %d", h.bpp)
		}
	case tgaGray, tgaGrayRLE:
		if h.bpp != 8 {
			return h, fmt.Errorf("tga: unsupported grayscale depth %d", h.bpp)
		}
	default:
		return h, fmt.Errorf("tga: unsupported image type %d", h.imageType)
	}
	if h.width == 0 || h.height == 0 {
		return h, errors.New("tga: empty image")
	}
	return h, nil
}

func (h tgaHeader) rle() bool {
	return h.imageType == tgaTrueColorRLE || h.imageType == tgaGrayRLE
}

// pixel converts one stored pixel (BGR, BGRA or gray) to RGBA.
func (h tgaHeader) pixel(p []byte) color.RGBA {
	switch len(p) {
	case 1:
		return color.RGBA{R: p[0], G: p[0], B: p[0], A: 255}
	case 3:
		return color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	default:
		return color.RGBA{R: p[2], G: p[1], B: p[0], A: p[3]}
	}
}

// DecodeTGA decodes an uncompressed or RLE TGA image (true-color or
// grayscale) into an RGBA image with the top row first.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}

	offset := tgaHeaderSize + h.idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}
	src := data[offset:]

	img := image.NewRGBA(image.Rect(0, 0, h.width, h.height))
	bytesPerPixel := h.bpp / 8
	total := h.width * h.height

	// put stores the n-th pixel in file order at its image position
	put := func(n int, c color.RGBA) {
		x, y := n%h.width, n/h.width
		if !h.topToBottom {
			y = h.height - 1 - y
		}
		if h.rightToLeft {
			x = h.width - 1 - x
		}
		img.SetRGBA(x, y, c)
	}

	if !h.rle() {
		if len(src) < total*bytesPerPixel {
			return nil, errTGATruncated
		}
		for n := 0; n < total; n++ {
			i := n * bytesPerPixel
			put(n, h.pixel(src[i:i+bytesPerPixel]))
		}
		return img, nil
	}

	n, i := 0, 0
	for n < total {
		if i >= len(src) {
			return nil, errTGATruncated
		}
		packet := src[i]
		i++
		count := int(packet&0x7f) + 1

		if packet&0x80 != 0 {
			if i+bytesPerPixel > len(src) {
				return nil, errTGATruncated
			}
			c := h.pixel(src[i : i+bytesPerPixel])
			i += bytesPerPixel
			for k := 0; k < count && n < total; k++ {
				put(n, c)
				n++
			}
			continue
		}

		if i+count*bytesPerPixel > len(src) {
			return nil, errTGATruncated
		}
		for k := 0; k < count && n < total; k++ {
			put(n, h.pixel(src[i:i+bytesPerPixel]))
			i += bytesPerPixel
			n++
		}
	}

	return img, nil
}
