package compose_test

import (
	"bytes"
	"testing"

	"lightbox/internal/compose"
	"lightbox/internal/imaging"
	"lightbox/internal/testsupport"
)

func TestProcessIdentityReturnsInput(t *testing.T) {
	asset := testsupport.NewJPEG(t, 100, 60)

	out, err := compose.Process(asset, 0, nil)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if !bytes.Equal(out.Data, asset.Data) {
		t.Fatal("identity edit must not touch the asset")
	}
}

func TestProcessRotatesThenCrops(t *testing.T) {
	// 300x200 rotated 90 degrees becomes 200x300; the crop rectangle is
	// expressed against that post-rotation raster and must be honored there.
	asset := testsupport.NewPNG(t, 300, 200)

	rect := &imaging.Rect{X: 0, Y: 0, Width: 150, Height: 250}
	out, err := compose.Process(asset, 90, rect)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	w, h := testsupport.MustDimensions(t, out)
	if w != 150 || h != 250 {
		t.Fatalf("unexpected dimensions: %dx%d, want 150x250", w, h)
	}
}

func TestProcessOrderIsLoadBearing(t *testing.T) {
	// On a non-square image the same rectangle selects different pixels with
	// and without the preceding rotation.
	asset := testsupport.NewPNG(t, 300, 200)
	rect := &imaging.Rect{X: 10, Y: 20, Width: 100, Height: 120}

	withRotation, err := compose.Process(asset, 90, rect)
	if err != nil {
		t.Fatalf("Process with rotation failed: %v", err)
	}
	withoutRotation, err := compose.Process(asset, 0, rect)
	if err != nil {
		t.Fatalf("Process without rotation failed: %v", err)
	}
	if bytes.Equal(withRotation.Data, withoutRotation.Data) {
		t.Fatal("rotation must change which pixels the crop selects")
	}
}

func TestProcessIgnoresTinyCrop(t *testing.T) {
	asset := testsupport.NewJPEG(t, 100, 100)

	out, err := compose.Process(asset, 0, &imaging.Rect{X: 0, Y: 0, Width: 5, Height: 5})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if !bytes.Equal(out.Data, asset.Data) {
		t.Fatal("sub-threshold crop must be treated as no crop")
	}
}

func TestProcessRotationOnly(t *testing.T) {
	asset := testsupport.NewJPEG(t, 80, 40)

	out, err := compose.Process(asset, 270, nil)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	w, h := testsupport.MustDimensions(t, out)
	if w != 40 || h != 80 {
		t.Fatalf("unexpected dimensions after rotation: %dx%d", w, h)
	}
}

func TestIdentity(t *testing.T) {
	if !compose.Identity(0, nil) {
		t.Fatal("no rotation and no rect must be identity")
	}
	if !compose.Identity(360, &imaging.Rect{Width: 4, Height: 4}) {
		t.Fatal("full turn with tiny rect must be identity")
	}
	if compose.Identity(90, nil) {
		t.Fatal("rotation is not identity")
	}
	if compose.Identity(0, &imaging.Rect{Width: 50, Height: 50}) {
		t.Fatal("real crop is not identity")
	}
}
