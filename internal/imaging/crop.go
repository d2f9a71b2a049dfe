package imaging

import (
	"fmt"
	"image"
	"image/draw"
)

// Crop draws the source sub-rectangle rect onto a surface sized exactly
// rect.Width x rect.Height and re-encodes it. The rectangle is clamped to the
// source bounds; a rectangle with no remaining area is an error. Minimum-size
// policy is a caller concern.
func Crop(a Asset, rect Rect) (Asset, error) {
	src, err := decodeSurface(a)
	if err != nil {
		return Asset{}, err
	}

	clamped := clampRect(rect, src.Bounds().Dx(), src.Bounds().Dy())
	if clamped.Empty() {
		return Asset{}, fmt.Errorf("crop: rectangle %s has no area within %dx%d source",
			rect, src.Bounds().Dx(), src.Bounds().Dy())
	}

	dst := image.NewRGBA(image.Rect(0, 0, clamped.Width, clamped.Height))
	draw.Draw(dst, dst.Bounds(), src, image.Pt(clamped.X, clamped.Y), draw.Src)

	return encodeSurface(dst, a.MIMEType, DefaultQuality)
}

func clampRect(r Rect, width, height int) Rect {
	if r.X < 0 {
		r.Width += r.X
		r.X = 0
	}
	if r.Y < 0 {
		r.Height += r.Y
		r.Y = 0
	}
	if r.X+r.Width > width {
		r.Width = width - r.X
	}
	if r.Y+r.Height > height {
		r.Height = height - r.Y
	}
	if r.X >= width || r.Y >= height {
		return Rect{}
	}
	return r
}
