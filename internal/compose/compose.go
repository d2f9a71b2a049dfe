// Package compose folds a staged image's pending edits into its binary asset.
// The order is fixed: rotation first, crop second, because a crop rectangle is
// always expressed in the coordinate space produced by the rotation. The Crop
// step is a method on the Rotated stage output, so the two stages cannot be
// applied in the wrong order.
package compose

import (
	"fmt"

	"lightbox/internal/imaging"
)

// MinCropSize is the pixel threshold below which a crop rectangle counts as
// "no crop requested". The transform engine itself stays permissive; this is
// the call-site policy.
const MinCropSize = 10

// Rotated is the output of the rotation stage. A crop can only be constructed
// from it.
type Rotated struct {
	asset imaging.Asset
}

// Rotate runs the first stage of the pipeline. Zero degrees short-circuits.
func Rotate(a imaging.Asset, degrees int) (Rotated, error) {
	if degrees == 0 {
		return Rotated{asset: a}, nil
	}
	rotated, err := imaging.Rotate(a, degrees)
	if err != nil {
		return Rotated{}, fmt.Errorf("compose rotation: %w", err)
	}
	return Rotated{asset: rotated}, nil
}

// Asset returns the post-rotation asset.
func (r Rotated) Asset() imaging.Asset {
	return r.asset
}

// Crop runs the second stage against the post-rotation raster. A nil or
// sub-threshold rectangle is treated as no crop.
func (r Rotated) Crop(rect *imaging.Rect) (imaging.Asset, error) {
	if !Croppable(rect) {
		return r.asset, nil
	}
	cropped, err := imaging.Crop(r.asset, *rect)
	if err != nil {
		return imaging.Asset{}, fmt.Errorf("compose crop: %w", err)
	}
	return cropped, nil
}

// Croppable reports whether the rectangle is large enough to count as a real
// crop request.
func Croppable(rect *imaging.Rect) bool {
	return rect != nil && rect.Width >= MinCropSize && rect.Height >= MinCropSize
}

// Process applies rotation then crop and returns the final asset. Identity
// inputs (zero rotation, no effective crop) return the input unchanged.
func Process(a imaging.Asset, rotation int, rect *imaging.Rect) (imaging.Asset, error) {
	rotated, err := Rotate(a, rotation)
	if err != nil {
		return imaging.Asset{}, err
	}
	return rotated.Crop(rect)
}

// Identity reports whether the given edit state would leave the asset
// untouched.
func Identity(rotation int, rect *imaging.Rect) bool {
	return rotation%360 == 0 && !Croppable(rect)
}
