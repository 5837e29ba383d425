// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pagetest writes small image fixtures for tests.
package pagetest

import (
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// webpLossless1x1 is a 1x1 lossless WebP with an alpha channel. There is no
// pure-Go WebP encoder, so the fixture is stored as bytes.
const webpLossless1x1 = "UklGRhoAAABXRUJQVlA4TA0AAAAvAAAAEAcQERGIiP4HAA=="

// webpLossy1x1 is a 1x1 lossy (VP8) WebP.
const webpLossy1x1 = "UklGRiIAAABXRUJQVlA4IBYAAAAwAQCdASoBAAEADsD+JaQAA3AAAAAA"

// WriteJPEG writes a w x h JPEG filled with c to dir/name and returns its path.
func WriteJPEG(t *testing.T, dir, name string, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return writeImage(t, dir, name, img)
}

// WriteGrayJPEG writes a single-channel JPEG to dir/name and returns its path.
func WriteGrayJPEG(t *testing.T, dir, name string, w, h int, v uint8) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return writeImage(t, dir, name, img)
}

// WriteWebP writes the 1x1 lossless WebP fixture to dir/name and returns its path.
func WriteWebP(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(webpLossless1x1)
	require.NoError(t, err)
	return WriteRaw(t, dir, name, data)
}

// WriteLossyWebP writes the 1x1 lossy WebP fixture to dir/name and returns its path.
func WriteLossyWebP(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(webpLossy1x1)
	require.NoError(t, err)
	return WriteRaw(t, dir, name, data)
}

// WriteRaw writes data to dir/name, creating dir, and returns the path.
func WriteRaw(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

func writeImage(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, &jpeg.Options{Quality: 100}))
	return p
}
