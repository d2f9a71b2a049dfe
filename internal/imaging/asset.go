package imaging

import (
	"bytes"
	"fmt"
	"image"
)

// Asset is an encoded raster image together with its MIME type. The bytes are
// the single source of truth; previews and stored copies derive from them.
type Asset struct {
	Data     []byte
	MIMEType string
}

// Empty reports whether the asset carries no image data.
func (a Asset) Empty() bool {
	return len(a.Data) == 0
}

// Size returns the asset's byte length.
func (a Asset) Size() int64 {
	return int64(len(a.Data))
}

// Dimensions decodes only the image header and returns width and height in
// pixels.
func (a Asset) Dimensions() (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(a.Data))
	if err != nil {
		return 0, 0, fmt.Errorf("decode image header: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// Rect is an axis-aligned rectangle in the pixel coordinate space of the
// raster it was drawn against. Rotating the raster invalidates any Rect
// expressed against the previous orientation.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}
