// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pages decodes page images and normalizes them to opaque RGB
// rasters ready to be embedded in a PDF.
package pages

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"os"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Decoder loads page images from disk. JPEG and WebP are supported; the
// format is detected from the file content, not its extension.
type Decoder struct{}

// Load opens and decodes the image at path and returns it as opaque RGB.
func (Decoder) Load(path string) (image.Image, error) {
	return Load(path)
}

// Load opens and decodes the image at path and returns it as opaque RGB.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image %s: %w", path, err)
	}
	defer f.Close()

	src, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image %s: %w", path, err)
	}
	if b := src.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("decoding image %s: empty %s image", path, format)
	}
	return ToRGB(src), nil
}

// ToRGB flattens src onto a white background, dropping the alpha channel.
// Grayscale, CMYK and YCbCr sources all come out as 8-bit RGB.
func ToRGB(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst
}

// Encode writes img as a baseline JPEG page stream at the given quality.
func Encode(w io.Writer, img image.Image, quality int) error {
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("encoding page: %w", err)
	}
	return nil
}
