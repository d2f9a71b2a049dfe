package testsupport

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"lightbox/internal/imaging"
)

// NewJPEG generates a JPEG asset of the given dimensions with a gradient fill
// so transforms have distinguishable content to work on.
func NewJPEG(t testing.TB, width, height int) imaging.Asset {
	t.Helper()

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, gradient(width, height), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode test jpeg: %v", err)
	}
	return imaging.Asset{Data: buf.Bytes(), MIMEType: "image/jpeg"}
}

// NewPNG generates a PNG asset of the given dimensions.
func NewPNG(t testing.TB, width, height int) imaging.Asset {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, gradient(width, height)); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return imaging.Asset{Data: buf.Bytes(), MIMEType: "image/png"}
}

// MustDimensions returns the pixel dimensions of an asset, failing the test on
// decode errors.
func MustDimensions(t testing.TB, a imaging.Asset) (int, int) {
	t.Helper()

	w, h, err := a.Dimensions()
	if err != nil {
		t.Fatalf("Dimensions: %v", err)
	}
	return w, h
}

func gradient(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x * 255 / max(width, 1)),
				G: uint8(y * 255 / max(height, 1)),
				B: uint8((x + y) % 256),
				A: 255,
			})
		}
	}
	return img
}
