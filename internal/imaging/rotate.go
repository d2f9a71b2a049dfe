package imaging

import (
	"fmt"
	"image"
)

// Rotate turns an asset clockwise by a multiple of 90 degrees. Zero is the
// identity and returns the input untouched. For 90 and 270 the destination
// surface is allocated with swapped dimensions before drawing, so no corner
// is ever clipped.
func Rotate(a Asset, degrees int) (Asset, error) {
	degrees = ((degrees % 360) + 360) % 360
	if degrees == 0 {
		return a, nil
	}
	if degrees%90 != 0 {
		return Asset{}, fmt.Errorf("rotate: %d is not a multiple of 90 degrees", degrees)
	}

	src, err := decodeSurface(a)
	if err != nil {
		return Asset{}, err
	}
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()

	var dst *image.RGBA
	switch degrees {
	case 90, 270:
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
	default:
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	}

	dw := dst.Bounds().Dx()
	dh := dst.Bounds().Dy()
	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			var sx, sy int
			switch degrees {
			case 90:
				sx, sy = y, h-1-x
			case 180:
				sx, sy = w-1-x, h-1-y
			case 270:
				sx, sy = w-1-y, x
			}
			dst.SetRGBA(x, y, src.RGBAAt(sx, sy))
		}
	}

	return encodeSurface(dst, a.MIMEType, DefaultQuality)
}
