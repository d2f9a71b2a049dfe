package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultQuality is the JPEG re-encode quality used when a transform does not
// receive an explicit quality factor.
const DefaultQuality = 85

// ErrEncode indicates the drawing surface could not be re-encoded. Operations
// fail rather than return an empty asset.
var ErrEncode = errors.New("encode image")

// decodeSurface decodes an asset onto a zero-origin RGBA drawing surface.
func decodeSurface(a Asset) (*image.RGBA, error) {
	if a.Empty() {
		return nil, errors.New("decode image: empty asset")
	}
	src, _, err := image.Decode(bytes.NewReader(a.Data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return toSurface(src), nil
}

// toSurface normalizes an image onto an RGBA surface with bounds anchored at
// the origin, so transform math never has to account for offset bounds.
func toSurface(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	if rgba, ok := src.(*image.RGBA); ok && bounds.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
	return dst
}

// encodeSurface re-encodes a drawing surface to the requested MIME type and
// returns the resulting asset. Types without a Go encoder (WebP) fall back to
// PNG, and the returned asset's MIMEType reflects the actual encoding.
func encodeSurface(surface image.Image, mimeType string, quality int) (Asset, error) {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}

	var buf bytes.Buffer
	outMIME := mimeType
	var err error
	switch mimeType {
	case "image/jpeg":
		err = jpeg.Encode(&buf, surface, &jpeg.Options{Quality: quality})
	case "image/png":
		err = png.Encode(&buf, surface)
	case "image/gif":
		err = gif.Encode(&buf, surface, nil)
	case "image/bmp":
		err = bmp.Encode(&buf, surface)
	case "image/tiff":
		err = tiff.Encode(&buf, surface, nil)
	default:
		outMIME = "image/png"
		err = png.Encode(&buf, surface)
	}
	if err != nil {
		return Asset{}, fmt.Errorf("%w as %s: %w", ErrEncode, outMIME, err)
	}
	if buf.Len() == 0 {
		return Asset{}, fmt.Errorf("%w as %s: encoder produced no output", ErrEncode, outMIME)
	}
	return Asset{Data: buf.Bytes(), MIMEType: outMIME}, nil
}
