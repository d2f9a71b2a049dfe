package imaging

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// Resize downscales an asset so that both dimensions fit within maxWidth and
// maxHeight, preserving aspect ratio. Assets that already fit are returned
// byte-for-byte unchanged, which keeps the operation idempotent. Resize never
// upscales.
func Resize(a Asset, maxWidth, maxHeight, quality int) (Asset, error) {
	if maxWidth <= 0 || maxHeight <= 0 {
		return Asset{}, fmt.Errorf("resize: bounds %dx%d must be positive", maxWidth, maxHeight)
	}

	width, height, err := a.Dimensions()
	if err != nil {
		return Asset{}, err
	}
	if width <= maxWidth && height <= maxHeight {
		return a, nil
	}

	scale := float64(maxWidth) / float64(width)
	if s := float64(maxHeight) / float64(height); s < scale {
		scale = s
	}
	targetW := int(float64(width) * scale)
	targetH := int(float64(height) * scale)
	if targetW < 1 {
		targetW = 1
	}
	if targetH < 1 {
		targetH = 1
	}

	src, err := decodeSurface(a)
	if err != nil {
		return Asset{}, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	return encodeSurface(dst, a.MIMEType, quality)
}
